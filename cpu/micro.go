package cpu

import (
	"fmt"
)

// MicroAction is the kind of a micro-operation.
type MicroAction int

//go:generate go tool stringer -linecomment -type=MicroAction
const (
	MICRO_NOP                = MicroAction(0)  // nop
	MICRO_HALT               = MicroAction(1)  // halt
	MICRO_LOAD_IMMEDIATE     = MicroAction(2)  // ldi
	MICRO_LOAD_INTERNAL      = MicroAction(3)  // ldii
	MICRO_LOAD_MEMORY        = MicroAction(4)  // ldm
	MICRO_LOAD_REGISTER      = MicroAction(5)  // ldr
	MICRO_LOAD_REGISTER_ID   = MicroAction(6)  // ldri
	MICRO_SET_MEMORY_ADDRESS = MicroAction(7)  // sma
	MICRO_STORE_MEMORY       = MicroAction(8)  // stm
	MICRO_STORE_REGISTER     = MicroAction(9)  // str
	MICRO_STORE_REGISTER_ID  = MicroAction(10) // stri
	MICRO_STEP               = MicroAction(11) // step
	MICRO_ADD                = MicroAction(12) // add
	MICRO_SUB                = MicroAction(13) // sub
	MICRO_PUSH               = MicroAction(14) // push
	MICRO_POP                = MicroAction(15) // pop
	MICRO_JUMP               = MicroAction(16) // jmp
	MICRO_COMPARE            = MicroAction(17) // cmp
	MICRO_JUMP_IF_FLAG       = MicroAction(18) // jf
	MICRO_JUMP_IF_NOT_FLAG   = MicroAction(19) // jnf
	MICRO_LOAD_STORAGE       = MicroAction(20) // lds
	MICRO_STORE_STORAGE      = MicroAction(21) // sts
)

// MicroOp is a single micro-operation, executed in one clock tick.
type MicroOp struct {
	Action MicroAction
	Arg    uint8 // Program offset, register id, or step count.
	Value  Value // Literal for MICRO_LOAD_INTERNAL.
	True   Flag  // Flags that must be set, for conditional jumps.
	False  Flag  // Flags that must be clear, for conditional jumps.
}

// MicroNop does nothing.
func MicroNop() MicroOp { return MicroOp{Action: MICRO_NOP} }

// MicroHalt halts the machine.
func MicroHalt() MicroOp { return MicroOp{Action: MICRO_HALT} }

// MicroLoadImmediate loads the program byte at pc+offset into the accumulator.
func MicroLoadImmediate(offset uint8) MicroOp {
	return MicroOp{Action: MICRO_LOAD_IMMEDIATE, Arg: offset}
}

// MicroLoadImmediateInternal loads a constant into the accumulator.
func MicroLoadImmediateInternal(value uint64) MicroOp {
	return MicroOp{Action: MICRO_LOAD_INTERNAL, Value: ValueOf(value)}
}

// MicroLoadFromMemory loads a data word from memory at the memory address register.
func MicroLoadFromMemory() MicroOp { return MicroOp{Action: MICRO_LOAD_MEMORY} }

// MicroLoadFromRegister loads the register named by the program byte at pc+offset.
func MicroLoadFromRegister(offset uint8) MicroOp {
	return MicroOp{Action: MICRO_LOAD_REGISTER, Arg: offset}
}

// MicroLoadFromRegisterInternal loads a fixed register.
func MicroLoadFromRegisterInternal(id uint8) MicroOp {
	return MicroOp{Action: MICRO_LOAD_REGISTER_ID, Arg: id}
}

// MicroSetMemoryAddress copies the accumulator to the memory address register.
func MicroSetMemoryAddress() MicroOp { return MicroOp{Action: MICRO_SET_MEMORY_ADDRESS} }

// MicroStoreToMemory stores the accumulator to memory at the memory address register.
func MicroStoreToMemory() MicroOp { return MicroOp{Action: MICRO_STORE_MEMORY} }

// MicroStoreToRegister stores the accumulator to the register named by the program byte at pc+offset.
func MicroStoreToRegister(offset uint8) MicroOp {
	return MicroOp{Action: MICRO_STORE_REGISTER, Arg: offset}
}

// MicroStoreToRegisterInternal stores the accumulator to a fixed register.
func MicroStoreToRegisterInternal(id uint8) MicroOp {
	return MicroOp{Action: MICRO_STORE_REGISTER_ID, Arg: id}
}

// MicroStepProgramMemory advances the program counter past operand bytes.
func MicroStepProgramMemory(steps uint8) MicroOp {
	return MicroOp{Action: MICRO_STEP, Arg: steps}
}

// MicroAdd sets the accumulator to reg_a + reg_b.
func MicroAdd() MicroOp { return MicroOp{Action: MICRO_ADD} }

// MicroSub sets the accumulator to reg_a - reg_b.
func MicroSub() MicroOp { return MicroOp{Action: MICRO_SUB} }

// MicroPushToStack pushes the accumulator.
func MicroPushToStack() MicroOp { return MicroOp{Action: MICRO_PUSH} }

// MicroPopFromStack pops into the accumulator.
func MicroPopFromStack() MicroOp { return MicroOp{Action: MICRO_POP} }

// MicroJump sets the program counter to the accumulator, ending the instruction.
func MicroJump() MicroOp { return MicroOp{Action: MICRO_JUMP} }

// MicroCompare compares reg_a with reg_b into the flags register.
func MicroCompare() MicroOp { return MicroOp{Action: MICRO_COMPARE} }

// MicroJumpIfFlag jumps if all of trueMask is set and none of falseMask is.
func MicroJumpIfFlag(trueMask, falseMask Flag) MicroOp {
	return MicroOp{Action: MICRO_JUMP_IF_FLAG, True: trueMask, False: falseMask}
}

// MicroJumpIfNotFlag jumps unless all of trueMask is set and none of falseMask is.
func MicroJumpIfNotFlag(trueMask, falseMask Flag) MicroOp {
	return MicroOp{Action: MICRO_JUMP_IF_NOT_FLAG, True: trueMask, False: falseMask}
}

// MicroLoadFromStorage loads a data word from storage at the memory address register.
func MicroLoadFromStorage() MicroOp { return MicroOp{Action: MICRO_LOAD_STORAGE} }

// MicroStoreToStorage stores the accumulator to storage at the memory address register.
func MicroStoreToStorage() MicroOp { return MicroOp{Action: MICRO_STORE_STORAGE} }

// String returns the micro-op in a compact listing form.
func (op MicroOp) String() (out string) {
	switch op.Action {
	case MICRO_LOAD_IMMEDIATE, MICRO_LOAD_REGISTER, MICRO_STORE_REGISTER, MICRO_STEP:
		out = fmt.Sprintf("%v.+%d", op.Action, op.Arg)
	case MICRO_LOAD_REGISTER_ID, MICRO_STORE_REGISTER_ID:
		out = fmt.Sprintf("%v.r%d", op.Action, op.Arg)
	case MICRO_LOAD_INTERNAL:
		out = fmt.Sprintf("%v.%v", op.Action, op.Value)
	case MICRO_JUMP_IF_FLAG, MICRO_JUMP_IF_NOT_FLAG:
		out = fmt.Sprintf("%v.%02b.%02b", op.Action, op.True, op.False)
	default:
		out = op.Action.String()
	}

	return
}
