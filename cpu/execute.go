package cpu

import (
	"github.com/ezrec/mcpu/store"
)

// Execute runs a single micro-op against the machine state.
func (cpu *Cpu) Execute(op MicroOp) (err error) {
	switch op.Action {
	case MICRO_NOP:
		// pass
	case MICRO_HALT:
		cpu.Halted = true
	case MICRO_LOAD_IMMEDIATE:
		var value byte
		value, err = cpu.readProgram(op.Arg)
		if err != nil {
			return
		}
		cpu.Accumulator = ValueOf(uint64(value))
	case MICRO_LOAD_INTERNAL:
		cpu.Accumulator = op.Value
	case MICRO_LOAD_MEMORY:
		err = cpu.loadWord(cpu.Memory)
	case MICRO_LOAD_STORAGE:
		err = cpu.loadWord(cpu.Storage)
	case MICRO_LOAD_REGISTER:
		var id byte
		id, err = cpu.readProgram(op.Arg)
		if err != nil {
			return
		}
		cpu.Accumulator, err = cpu.Registers.Value(int(id))
	case MICRO_LOAD_REGISTER_ID:
		cpu.Accumulator, err = cpu.Registers.Value(int(op.Arg))
	case MICRO_SET_MEMORY_ADDRESS:
		err = cpu.Registers.SetValue(cpu.ma, cpu.Accumulator)
	case MICRO_STORE_MEMORY:
		err = cpu.storeWord(cpu.Memory)
	case MICRO_STORE_STORAGE:
		err = cpu.storeWord(cpu.Storage)
	case MICRO_STORE_REGISTER:
		var id byte
		id, err = cpu.readProgram(op.Arg)
		if err != nil {
			return
		}
		err = cpu.Registers.SetValue(int(id), cpu.Accumulator)
	case MICRO_STORE_REGISTER_ID:
		err = cpu.Registers.SetValue(int(op.Arg), cpu.Accumulator)
	case MICRO_STEP:
		err = cpu.stepProgram(int(op.Arg))
	case MICRO_ADD, MICRO_SUB:
		var a, b Value
		a, b, err = cpu.operands()
		if err != nil {
			return
		}
		if op.Action == MICRO_ADD {
			cpu.Accumulator = a.Add(b)
		} else {
			cpu.Accumulator, err = a.Sub(b)
		}
	case MICRO_PUSH:
		err = cpu.push()
	case MICRO_POP:
		err = cpu.pop()
	case MICRO_JUMP:
		err = cpu.jump()
	case MICRO_COMPARE:
		var a, b Value
		a, b, err = cpu.operands()
		if err != nil {
			return
		}
		err = cpu.Registers.SetValue(cpu.flags, ValueOf(uint64(Compare(a, b))))
	case MICRO_JUMP_IF_FLAG:
		if flagTest(cpu.Flags(), op.True, op.False) {
			err = cpu.jump()
		}
	case MICRO_JUMP_IF_NOT_FLAG:
		if !flagTest(cpu.Flags(), op.True, op.False) {
			err = cpu.jump()
		}
	default:
		err = ErrMicroOpUnknown
	}

	return
}

// operands reads reg_a and reg_b.
func (cpu *Cpu) operands() (a Value, b Value, err error) {
	a, err = cpu.Registers.Value(cpu.regA)
	if err != nil {
		return
	}

	b, err = cpu.Registers.Value(cpu.regB)
	return
}

// loadWord loads a data word from a store at the memory address register.
func (cpu *Cpu) loadWord(st *store.Store) (err error) {
	addr, err := cpu.registerAddress(cpu.ma)
	if err != nil {
		return
	}

	data, err := st.ReadRange(addr, addr+cpu.DataSize)
	if err != nil {
		return
	}

	cpu.Accumulator = NewValue(data)
	return
}

// storeWord stores the accumulator to a store at the memory address register.
func (cpu *Cpu) storeWord(st *store.Store) (err error) {
	addr, err := cpu.registerAddress(cpu.ma)
	if err != nil {
		return
	}

	data, err := cpu.Accumulator.Bytes(cpu.DataSize)
	if err != nil {
		return
	}

	return st.WriteRange(addr, data)
}

// push moves the stack pointer down a slot, and stores the accumulator there.
func (cpu *Cpu) push() (err error) {
	sp, err := cpu.registerAddress(cpu.sp)
	if err != nil {
		return
	}

	if sp < cpu.DataSize {
		err = ErrStackOverflow
		return
	}

	data, err := cpu.Accumulator.Bytes(cpu.DataSize)
	if err != nil {
		return
	}

	sp -= cpu.DataSize
	err = cpu.Memory.WriteRange(sp, data)
	if err != nil {
		return
	}

	return cpu.Registers.SetValue(cpu.sp, ValueOf(uint64(sp)))
}

// pop loads the top slot into the accumulator, zeroes it, and moves the
// stack pointer past it.
func (cpu *Cpu) pop() (err error) {
	sp, err := cpu.registerAddress(cpu.sp)
	if err != nil {
		return
	}

	if sp+cpu.DataSize > cpu.Memory.Size() {
		err = ErrStackUnderflow
		return
	}

	data, err := cpu.Memory.ReadRange(sp, sp+cpu.DataSize)
	if err != nil {
		return
	}

	err = cpu.Memory.ClearRange(sp, sp+cpu.DataSize)
	if err != nil {
		return
	}

	cpu.Accumulator = NewValue(data)

	return cpu.Registers.SetValue(cpu.sp, ValueOf(uint64(sp+cpu.DataSize)))
}
