package cpu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mcpu/store"
)

func FuzzExecute(f *testing.F) {
	for action := range MICRO_STORE_STORAGE + 1 {
		f.Add(uint8(action), uint8(0), uint16(0x1234), uint16(0x0567), uint8(0))
		f.Add(uint8(action), uint8(0x3f), uint16(0x0567), uint16(0x1234), uint8(3))
		f.Add(uint8(action), uint8(0xff), uint16(0xffff), uint16(0xffff), uint8(1))
	}

	f.Fuzz(func(t *testing.T, action uint8, arg uint8, a uint16, b uint16, flags uint8) {
		assert := assert.New(t)

		cpu, err := NewDefaultCpu(2, 64, 64)
		assert.NoError(err)

		for addr := range cpu.Memory.Size() {
			assert.NoError(cpu.Memory.Write(addr, byte(addr*7)))
		}

		const pc = 8
		target := uint64(a & 0x3f)

		assert.NoError(cpu.Registers.SetValue(cpu.regA, ValueOf(uint64(a))))
		assert.NoError(cpu.Registers.SetValue(cpu.regB, ValueOf(uint64(b))))
		assert.NoError(cpu.Registers.SetValue(cpu.flags, ValueOf(uint64(flags&3))))
		assert.NoError(cpu.Registers.SetValue(cpu.pc, ValueOf(pc)))
		cpu.Accumulator = ValueOf(target)
		cpu.Executing = true

		op := MicroOp{
			Action: MicroAction(action) % (MICRO_STORE_STORAGE + 1),
			Arg:    arg,
			Value:  ValueOf(uint64(b)),
			True:   Flag(arg & 3),
			False:  Flag((arg >> 2) & 3),
		}

		err = cpu.Execute(op)

		state := fmt.Sprintf("%v a=%#x b=%#x flags=%d\n%v", op, a, b, flags&3, cpu.String())

		switch op.Action {
		case MICRO_ADD:
			assert.NoError(err, state)
			assert.True(cpu.Accumulator.Equal(ValueOf(uint64(a)+uint64(b))), state)
		case MICRO_SUB:
			if a < b {
				assert.ErrorIs(err, ErrUnderflow, state)
			} else {
				assert.NoError(err, state)
				assert.True(cpu.Accumulator.Equal(ValueOf(uint64(a-b))), state)
			}
		case MICRO_COMPARE:
			assert.NoError(err, state)
			expected := FLAG_NONE
			switch {
			case a == b:
				expected = FLAG_ZERO
			case a > b:
				expected = FLAG_GREATER
			}
			assert.Equal(expected, cpu.Flags(), state)
		case MICRO_JUMP_IF_FLAG, MICRO_JUMP_IF_NOT_FLAG:
			assert.NoError(err, state)
			jump := flagTest(Flag(flags&3), op.True, op.False)
			if op.Action == MICRO_JUMP_IF_NOT_FLAG {
				jump = !jump
			}
			if jump {
				assert.Equal(int(target), cpu.ProgramCounter(), state)
			} else {
				assert.Equal(pc, cpu.ProgramCounter(), state)
			}
			assert.Equal(!jump, cpu.Executing, state)
		case MICRO_JUMP:
			assert.NoError(err, state)
			assert.Equal(int(target), cpu.ProgramCounter(), state)
			assert.False(cpu.Executing, state)
		case MICRO_STEP:
			if pc+int(arg) > 0xff {
				var overflow ErrValueOverflow
				assert.ErrorAs(err, &overflow, state)
			} else {
				assert.NoError(err, state)
				assert.Equal(pc+int(arg), cpu.ProgramCounter(), state)
			}
		case MICRO_LOAD_IMMEDIATE:
			if pc+int(arg) >= cpu.Memory.Size() {
				assert.ErrorIs(err, store.ErrRange, state)
			} else {
				assert.NoError(err, state)
				assert.True(cpu.Accumulator.Equal(ValueOf(uint64(byte((pc+int(arg))*7)))), state)
			}
		case MICRO_LOAD_INTERNAL:
			assert.NoError(err, state)
			assert.True(cpu.Accumulator.Equal(ValueOf(uint64(b))), state)
		case MICRO_LOAD_REGISTER_ID:
			if int(arg) >= cpu.Registers.Len() {
				assert.ErrorIs(err, ErrRegisterUnknown, state)
			} else {
				assert.NoError(err, state)
				value, _ := cpu.Registers.Value(int(arg))
				assert.True(cpu.Accumulator.Equal(value), state)
			}
		case MICRO_PUSH:
			assert.NoError(err, state)
			assert.Equal(62, cpu.StackPointer(), state)
			slot, _ := cpu.Memory.ReadRange(62, 64)
			assert.Equal([]byte{0, byte(target)}, slot, state)
		case MICRO_POP:
			assert.ErrorIs(err, ErrStackUnderflow, state)
		case MICRO_HALT:
			assert.NoError(err, state)
			assert.True(cpu.IsHalted(), state)
		}
	})
}
