// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package isa is the standard instruction set of the microcoded processor.
//
// Every operand is a single byte following the opcode: a register id, an
// immediate, or a memory address.
package isa

import (
	"github.com/ezrec/mcpu/cpu"
)

const (
	REG_INSTRUCTION_TEMP = "instruction_temp_0" // Scratch register for call and ret.
)

// registers are the register ids the microcode refers to directly.
type registers struct {
	pc    uint8
	sp    uint8
	bp    uint8
	flags uint8
	regA  uint8
	regB  uint8
	temp  uint8
}

func resolve(rf *cpu.RegisterFile) (regs registers, err error) {
	for _, entry := range []struct {
		name string
		id   *uint8
	}{
		{cpu.REG_PROGRAM_COUNTER, &regs.pc},
		{cpu.REG_STACK_POINTER, &regs.sp},
		{cpu.REG_BASE_POINTER, &regs.bp},
		{cpu.REG_FLAGS, &regs.flags},
		{cpu.REG_A, &regs.regA},
		{cpu.REG_B, &regs.regB},
		{REG_INSTRUCTION_TEMP, &regs.temp},
	} {
		var id int
		id, err = rf.Resolve(entry.name)
		if err != nil {
			return
		}
		*entry.id = uint8(id)
	}

	return
}

// Build returns the standard instruction set for a register file.
func Build(rf *cpu.RegisterFile) (is cpu.InstructionSet, err error) {
	regs, err := resolve(rf)
	if err != nil {
		return
	}

	isb := cpu.NewInstructionSetBuilder()
	add := func(op Opcode, args uint8) *cpu.InstructionBuilder {
		return isb.Add(uint8(op), op.String(), args)
	}

	add(OP_NOP, 0)

	add(OP_HALT, 0).Micro(cpu.MicroHalt())

	// ldm addr, reg
	add(OP_LDM, 2).Micro(
		cpu.MicroLoadImmediate(1),
		cpu.MicroSetMemoryAddress(),
		cpu.MicroLoadFromMemory(),
		cpu.MicroStoreToRegister(2),
		cpu.MicroStepProgramMemory(2),
	)

	// stm reg, addr
	add(OP_STM, 2).Micro(
		cpu.MicroLoadImmediate(2),
		cpu.MicroSetMemoryAddress(),
		cpu.MicroLoadFromRegister(1),
		cpu.MicroStoreToMemory(),
		cpu.MicroStepProgramMemory(2),
	)

	// ldmr areg, reg
	add(OP_LDMR, 2).Micro(
		cpu.MicroLoadFromRegister(1),
		cpu.MicroSetMemoryAddress(),
		cpu.MicroLoadFromMemory(),
		cpu.MicroStoreToRegister(2),
		cpu.MicroStepProgramMemory(2),
	)

	// stmr reg, areg
	add(OP_STMR, 2).Micro(
		cpu.MicroLoadFromRegister(2),
		cpu.MicroSetMemoryAddress(),
		cpu.MicroLoadFromRegister(1),
		cpu.MicroStoreToMemory(),
		cpu.MicroStepProgramMemory(2),
	)

	// lds addr, reg
	add(OP_LDS, 2).Micro(
		cpu.MicroLoadImmediate(1),
		cpu.MicroSetMemoryAddress(),
		cpu.MicroLoadFromStorage(),
		cpu.MicroStoreToRegister(2),
		cpu.MicroStepProgramMemory(2),
	)

	// sts reg, addr
	add(OP_STS, 2).Micro(
		cpu.MicroLoadImmediate(2),
		cpu.MicroSetMemoryAddress(),
		cpu.MicroLoadFromRegister(1),
		cpu.MicroStoreToStorage(),
		cpu.MicroStepProgramMemory(2),
	)

	// ldi reg, imm
	add(OP_LDI, 2).Micro(
		cpu.MicroLoadImmediate(2),
		cpu.MicroStoreToRegister(1),
		cpu.MicroStepProgramMemory(2),
	)

	// mov src, dst
	add(OP_MOV, 2).Micro(
		cpu.MicroLoadFromRegister(1),
		cpu.MicroStoreToRegister(2),
		cpu.MicroStepProgramMemory(2),
	)

	arith := func(op Opcode, immediate bool, action cpu.MicroOp) {
		second := cpu.MicroLoadFromRegister(2)
		if immediate {
			second = cpu.MicroLoadImmediate(2)
		}
		add(op, 2).Micro(
			cpu.MicroLoadFromRegister(1),
			cpu.MicroStoreToRegisterInternal(regs.regA),
			second,
			cpu.MicroStoreToRegisterInternal(regs.regB),
			action,
			cpu.MicroStoreToRegister(1),
			cpu.MicroStepProgramMemory(2),
		)
	}
	arith(OP_ADDI, true, cpu.MicroAdd())
	arith(OP_ADD, false, cpu.MicroAdd())
	arith(OP_SUBI, true, cpu.MicroSub())
	arith(OP_SUB, false, cpu.MicroSub())

	add(OP_PUSHI, 1).Micro(
		cpu.MicroLoadImmediate(1),
		cpu.MicroPushToStack(),
		cpu.MicroStepProgramMemory(1),
	)

	add(OP_PUSH, 1).Micro(
		cpu.MicroLoadFromRegister(1),
		cpu.MicroPushToStack(),
		cpu.MicroStepProgramMemory(1),
	)

	add(OP_POP, 1).Micro(
		cpu.MicroPopFromStack(),
		cpu.MicroStoreToRegister(1),
		cpu.MicroStepProgramMemory(1),
	)

	add(OP_JMP, 1).Micro(
		cpu.MicroLoadImmediate(1),
		cpu.MicroJump(),
	)

	add(OP_JMPR, 1).Micro(
		cpu.MicroLoadFromRegister(1),
		cpu.MicroJump(),
	)

	add(OP_CMP, 2).Micro(regs.compare()...).
		Micro(cpu.MicroStepProgramMemory(2))

	// jXX ra, rb, addr
	for op, cond := range Jumps {
		add(op, 3).Micro(regs.compare()...).Micro(
			cpu.MicroLoadImmediate(3),
			cpu.CondMasks[cond].MicroOp(),
			cpu.MicroStepProgramMemory(3),
		)
	}

	// call addr
	add(OP_CALL, 1).Micro(regs.call(1)...)

	// callge ra, rb, addr
	less := cpu.CondMasks[cpu.COND_LESS]
	add(OP_CALLGE, 3).Micro(regs.compare()...).Micro(
		cpu.MicroLoadFromRegisterInternal(regs.pc),
		cpu.MicroStoreToRegisterInternal(regs.regA),
		cpu.MicroLoadImmediateInternal(4),
		cpu.MicroStoreToRegisterInternal(regs.regB),
		cpu.MicroAdd(),
		cpu.MicroJumpIfFlag(less.True, less.False),
	).Micro(regs.call(3)...)

	add(OP_RET, 0).Micro(
		cpu.MicroPopFromStack(),
		cpu.MicroStoreToRegisterInternal(regs.temp),
		cpu.MicroPopFromStack(),
		cpu.MicroStoreToRegisterInternal(regs.bp),
		cpu.MicroLoadFromRegisterInternal(regs.temp),
		cpu.MicroJump(),
	)

	is = isb.Build()

	return
}

// compare loads the two register operands at offsets 1 and 2, and
// compares them.
func (regs registers) compare() []cpu.MicroOp {
	return []cpu.MicroOp{
		cpu.MicroLoadFromRegister(1),
		cpu.MicroStoreToRegisterInternal(regs.regA),
		cpu.MicroLoadFromRegister(2),
		cpu.MicroStoreToRegisterInternal(regs.regB),
		cpu.MicroCompare(),
	}
}

// call saves the caller context, and jumps to the address operand.
//
// The stack is left as [..., base_pointer, return_address], the flags are
// preserved, and the base pointer is set to the new stack pointer.
func (regs registers) call(target uint8) []cpu.MicroOp {
	// The target is the last operand.
	length := uint64(1 + target)

	return []cpu.MicroOp{
		cpu.MicroLoadFromRegisterInternal(regs.bp),
		cpu.MicroPushToStack(),
		cpu.MicroLoadFromRegisterInternal(regs.flags),
		cpu.MicroPushToStack(),
		cpu.MicroLoadFromRegisterInternal(regs.pc),
		cpu.MicroStoreToRegisterInternal(regs.regA),
		cpu.MicroLoadImmediateInternal(length),
		cpu.MicroStoreToRegisterInternal(regs.regB),
		cpu.MicroAdd(),
		cpu.MicroStoreToRegisterInternal(regs.temp),
		cpu.MicroPopFromStack(),
		cpu.MicroStoreToRegisterInternal(regs.flags),
		cpu.MicroLoadFromRegisterInternal(regs.temp),
		cpu.MicroPushToStack(),
		cpu.MicroLoadFromRegisterInternal(regs.sp),
		cpu.MicroStoreToRegisterInternal(regs.bp),
		cpu.MicroLoadImmediate(target),
		cpu.MicroJump(),
	}
}
