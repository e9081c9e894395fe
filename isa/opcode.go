package isa

import (
	"github.com/ezrec/mcpu/cpu"
)

// Opcode is an opcode byte of the standard instruction set.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NOP    = Opcode(0)  // nop
	OP_HALT   = Opcode(1)  // halt
	OP_LDM    = Opcode(2)  // ldm
	OP_STM    = Opcode(3)  // stm
	OP_LDMR   = Opcode(4)  // ldmr
	OP_STMR   = Opcode(5)  // stmr
	OP_ADDI   = Opcode(6)  // addi
	OP_ADD    = Opcode(7)  // add
	OP_LDI    = Opcode(8)  // ldi
	OP_MOV    = Opcode(9)  // mov
	OP_PUSHI  = Opcode(10) // pushi
	OP_PUSH   = Opcode(11) // push
	OP_POP    = Opcode(12) // pop
	OP_JMP    = Opcode(13) // jmp
	OP_JMPR   = Opcode(14) // jmpr
	OP_SUBI   = Opcode(15) // subi
	OP_SUB    = Opcode(16) // sub
	OP_LDS    = Opcode(17) // lds
	OP_STS    = Opcode(18) // sts
	OP_CMP    = Opcode(19) // cmp
	OP_JEQ    = Opcode(20) // jeq
	OP_JNE    = Opcode(21) // jne
	OP_JGT    = Opcode(22) // jgt
	OP_JLT    = Opcode(23) // jlt
	OP_JLE    = Opcode(24) // jle
	OP_JGE    = Opcode(25) // jge
	OP_CALL   = Opcode(26) // call
	OP_CALLGE = Opcode(27) // callge
	OP_RET    = Opcode(28) // ret
)

// Jumps maps each conditional jump to its condition.
var Jumps = map[Opcode]cpu.Cond{
	OP_JEQ: cpu.COND_EQUAL,
	OP_JNE: cpu.COND_NOT_EQUAL,
	OP_JGT: cpu.COND_GREATER,
	OP_JLT: cpu.COND_LESS,
	OP_JLE: cpu.COND_LESS_OR_EQUAL,
	OP_JGE: cpu.COND_GREATER_OR_EQUAL,
}
