package isa

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/mcpu/asm"
	"github.com/ezrec/mcpu/cpu"
)

func newMachine(t *testing.T) (machine *cpu.Cpu) {
	machine, err := cpu.NewDefaultCpu(1, 64, 32)
	require.NoError(t, err)

	is, err := Build(machine.Registers)
	require.NoError(t, err)
	machine.SetInstructionSet(is)

	return
}

func load(t *testing.T, machine *cpu.Cpu, program ...string) {
	assembler := &asm.Assembler{Instructions: machine.Instructions}
	for id, reg := range machine.Registers.Registers() {
		assembler.Predefine(reg.Name, strconv.Itoa(id))
	}

	prog, err := assembler.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)
	require.NoError(t, machine.Memory.WriteRange(0, prog.Binary()))
}

func run(t *testing.T, machine *cpu.Cpu) {
	for range 10000 {
		if machine.IsHalted() {
			return
		}
		require.NoError(t, machine.Clock())
	}
	t.Fatal("did not halt")
}

func reg(t *testing.T, machine *cpu.Cpu, name string) uint64 {
	data, err := machine.Registers.ReadName(name)
	require.NoError(t, err)
	u, ok := cpu.NewValue(data).Uint64()
	require.True(t, ok)
	return u
}

func TestBuild(t *testing.T) {
	assert := assert.New(t)

	machine := newMachine(t)

	for op := OP_NOP; op <= OP_RET; op++ {
		in, ok := machine.Instructions[uint8(op)]
		assert.True(ok, op)
		assert.Equal(op.String(), in.Name)
	}
	assert.Equal(int(OP_RET)+1, len(machine.Instructions))

	assert.Equal(2, machine.Instructions[uint8(OP_CALL)].Len())
	assert.Equal(4, machine.Instructions[uint8(OP_CALLGE)].Len())
	assert.Equal(0, len(machine.Instructions[uint8(OP_NOP)].MicroOps))

	_, err := Build(cpu.NewRegisterFile())
	assert.ErrorIs(err, cpu.ErrRegisterUnknown)
}

func TestArithmetic(t *testing.T) {
	assert := assert.New(t)

	machine := newMachine(t)
	load(t, machine,
		"ldi reg_0, 5",
		"ldi reg_1, 7",
		"add reg_0, reg_1", // 12
		"addi reg_0, 3",    // 15
		"subi reg_0, 1",    // 14
		"sub reg_0, reg_1", // 7
		"mov reg_0, reg_2",
		"halt",
	)
	run(t, machine)

	assert.Equal(uint64(7), reg(t, machine, "reg_0"))
	assert.Equal(uint64(7), reg(t, machine, "reg_1"))
	assert.Equal(uint64(7), reg(t, machine, "reg_2"))
}

func TestArithmeticFault(t *testing.T) {
	assert := assert.New(t)

	machine := newMachine(t)
	load(t, machine,
		"ldi reg_0, 1",
		"subi reg_0, 2",
		"halt",
	)

	var err error
	for range 100 {
		err = machine.Clock()
		if err != nil {
			break
		}
	}
	assert.ErrorIs(err, cpu.ErrUnderflow)
	assert.False(machine.IsHalted())

	load(t, machine,
		"ldi reg_0, 200",
		"addi reg_0, 100",
		"halt",
	)
	assert.NoError(machine.Reset())
	for range 100 {
		err = machine.Clock()
		if err != nil {
			break
		}
	}
	var overflow cpu.ErrValueOverflow
	assert.ErrorAs(err, &overflow)
}

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	machine := newMachine(t)
	load(t, machine,
		"ldi reg_0, 0x42",
		"stm reg_0, 40",
		"ldm 40, reg_1",
		"ldi reg_2, 41",
		"addi reg_0, 1",
		"stmr reg_0, reg_2",
		"ldmr reg_2, reg_3",
		"sts reg_3, 5",
		"lds 5, reg_c",
		"halt",
	)
	run(t, machine)

	data, _ := machine.Memory.ReadRange(40, 42)
	assert.Equal([]byte{0x42, 0x43}, data)
	assert.Equal(uint64(0x42), reg(t, machine, "reg_1"))
	assert.Equal(uint64(0x43), reg(t, machine, "reg_3"))
	assert.Equal(uint64(0x43), reg(t, machine, "reg_c"))

	value, _ := machine.Storage.Read(5)
	assert.Equal(byte(0x43), value)
}

func TestStack(t *testing.T) {
	assert := assert.New(t)

	machine := newMachine(t)
	load(t, machine,
		"ldi reg_0, 3",
		"pushi 9",
		"push reg_0",
		"pop reg_1",
		"pop reg_2",
		"halt",
	)
	run(t, machine)

	assert.Equal(uint64(3), reg(t, machine, "reg_1"))
	assert.Equal(uint64(9), reg(t, machine, "reg_2"))
	assert.Equal(64, machine.StackPointer())
}

func TestJump(t *testing.T) {
	assert := assert.New(t)

	machine := newMachine(t)
	load(t, machine,
		"      jmp over",
		"      halt",
		"over: ldi reg_0, there",
		"      jmpr reg_0",
		"      halt",
		"there: ldi reg_1, 1",
		"      halt",
	)
	run(t, machine)

	assert.Equal(uint64(1), reg(t, machine, "reg_1"))
	assert.Equal(12, machine.ProgramCounter())
}

func TestLoop(t *testing.T) {
	assert := assert.New(t)

	machine := newMachine(t)
	load(t, machine,
		"      ldi reg_0, 0",
		"      ldi reg_1, 5",
		"      ldi reg_2, 0",
		"loop: addi reg_0, 2",
		"      subi reg_1, 1",
		"      jgt reg_1, reg_2, loop",
		"      halt",
	)
	run(t, machine)

	assert.Equal(uint64(10), reg(t, machine, "reg_0"))
	assert.Equal(uint64(0), reg(t, machine, "reg_1"))
}

func TestConditionalJumps(t *testing.T) {
	assert := assert.New(t)

	expect := map[Opcode]func(a, b int) bool{
		OP_JEQ: func(a, b int) bool { return a == b },
		OP_JNE: func(a, b int) bool { return a != b },
		OP_JGT: func(a, b int) bool { return a > b },
		OP_JLT: func(a, b int) bool { return a < b },
		OP_JLE: func(a, b int) bool { return a <= b },
		OP_JGE: func(a, b int) bool { return a >= b },
	}
	assert.Equal(len(Jumps), len(expect))

	pairs := [][2]int{{1, 2}, {2, 2}, {3, 2}, {0, 255}, {255, 0}}

	for op, want := range expect {
		for _, pair := range pairs {
			a, b := pair[0], pair[1]
			machine := newMachine(t)
			load(t, machine,
				fmt.Sprintf("ldi reg_0, %d", a),
				fmt.Sprintf("ldi reg_1, %d", b),
				fmt.Sprintf("%v reg_0, reg_1, taken", op),
				"ldi reg_2, 1",
				"halt",
				"taken: ldi reg_2, 2",
				"halt",
			)
			run(t, machine)

			taken := reg(t, machine, "reg_2") == 2
			assert.Equal(want(a, b), taken, "%v %d %d", op, a, b)
		}
	}
}

func TestCallReturn(t *testing.T) {
	assert := assert.New(t)

	machine := newMachine(t)
	load(t, machine,
		"      ldi base_pointer, 0x11", // 0
		"      ldi reg_0, 1",           // 3
		"      cmp reg_0, reg_0",       // 6
		"      call sub",               // 9
		"      ldi reg_1, 7",           // 11
		"      halt",                   // 14
		"sub:  addi reg_0, 4",          // 15
		"      halt",                   // 18
		"      ret",                    // 19
	)

	// Stop inside the subroutine.
	run(t, machine)
	assert.Equal(18, machine.ProgramCounter())
	assert.Equal(62, machine.StackPointer())
	assert.Equal(uint64(62), reg(t, machine, "base_pointer"))
	assert.Equal(cpu.FLAG_ZERO, machine.Flags())

	frame, _ := machine.Memory.ReadRange(62, 64)
	assert.Equal([]byte{11, 0x11}, frame)

	machine.Unhalt()
	run(t, machine)

	assert.Equal(14, machine.ProgramCounter())
	assert.Equal(uint64(5), reg(t, machine, "reg_0"))
	assert.Equal(uint64(7), reg(t, machine, "reg_1"))
	assert.Equal(uint64(0x11), reg(t, machine, "base_pointer"))
	assert.Equal(64, machine.StackPointer())
	assert.Equal(cpu.FLAG_ZERO, machine.Flags())

	frame, _ = machine.Memory.ReadRange(62, 64)
	assert.Equal([]byte{0, 0}, frame)
}

func TestCallNested(t *testing.T) {
	assert := assert.New(t)

	machine := newMachine(t)
	load(t, machine,
		"       call outer",
		"       halt",
		"outer: ldi reg_0, 1",
		"       call inner",
		"       addi reg_0, 10",
		"       ret",
		"inner: addi reg_0, 100",
		"       ret",
	)
	run(t, machine)

	assert.Equal(2, machine.ProgramCounter())
	assert.Equal(uint64(111), reg(t, machine, "reg_0"))
	assert.Equal(64, machine.StackPointer())
	assert.Equal(uint64(0), reg(t, machine, "base_pointer"))
}

func TestCallGreaterOrEqual(t *testing.T) {
	assert := assert.New(t)

	pairs := [][2]int{{1, 2}, {2, 2}, {3, 2}, {0, 9}, {9, 0}}

	for _, pair := range pairs {
		a, b := pair[0], pair[1]

		machine := newMachine(t)
		load(t, machine,
			fmt.Sprintf("      ldi reg_0, %d", a),
			fmt.Sprintf("      ldi reg_1, %d", b),
			"      callge reg_0, reg_1, sub",
			"      ldi reg_3, 1",
			"      halt",
			"sub:  ldi reg_2, 9",
			"      ret",
		)
		run(t, machine)

		called := reg(t, machine, "reg_2") == 9
		assert.Equal(a >= b, called, "%d %d", a, b)
		assert.Equal(uint64(1), reg(t, machine, "reg_3"), "%d %d", a, b)
		assert.Equal(64, machine.StackPointer(), "%d %d", a, b)
		assert.Equal(uint64(0), reg(t, machine, "base_pointer"), "%d %d", a, b)
		assert.Equal(13, machine.ProgramCounter(), "%d %d", a, b)
	}
}
