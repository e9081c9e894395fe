// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"log"
	"strings"

	"github.com/ezrec/mcpu/store"
)

// Cpu is the simulation context for the microcoded processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Registers    *RegisterFile  // Register file.
	Memory       *store.Store   // Program and data memory.
	Storage      *store.Store   // Backing storage.
	Instructions InstructionSet // Microcode for each opcode.
	DataSize     int            // Width in bytes of a data word and stack slot.

	Accumulator Value // Working value of the micro-ops.
	Executing   bool  // Set while an instruction is in progress.
	Opcode      uint8 // Opcode in progress, valid if Executing.
	Step        int   // Index of the next micro-op of Opcode.
	Halted      bool  // Set by a halt micro-op, cleared by Unhalt.
	Fault       error // First fatal error, sticky until Reset.
	Ticks       int   // Clock ticks that did work since reset.

	address int // Address the opcode in progress was fetched from.

	pc    int
	sp    int
	ma    int
	flags int
	regA  int
	regB  int
}

// NewCpu creates a CPU over a register file and two stores.
// The register file must hold the reserved registers.
func NewCpu(regs *RegisterFile, memory, storage *store.Store, dataSize int) (cpu *Cpu, err error) {
	if dataSize <= 0 {
		err = ErrDataSize
		return
	}

	cpu = &Cpu{
		Registers:    regs,
		Memory:       memory,
		Storage:      storage,
		Instructions: InstructionSet{},
		DataSize:     dataSize,
	}

	// Resolve reserved registers once.
	for _, reserved := range []struct {
		name string
		id   *int
	}{
		{REG_PROGRAM_COUNTER, &cpu.pc},
		{REG_STACK_POINTER, &cpu.sp},
		{REG_MEMORY_ADDRESS, &cpu.ma},
		{REG_FLAGS, &cpu.flags},
		{REG_A, &cpu.regA},
		{REG_B, &cpu.regB},
	} {
		*reserved.id, err = regs.Resolve(reserved.name)
		if err != nil {
			cpu = nil
			return
		}
	}

	err = cpu.Reset()
	if err != nil {
		cpu = nil
		return
	}

	return
}

// NewDefaultCpu creates a CPU with the default register file and fresh stores.
func NewDefaultCpu(dataSize int, memorySize int, storageSize int) (cpu *Cpu, err error) {
	regs, err := NewDefaultRegisterFile(dataSize, memorySize)
	if err != nil {
		return
	}

	return NewCpu(regs, store.New(memorySize), store.New(storageSize), dataSize)
}

// SetInstructionSet installs the microcode.
func (cpu *Cpu) SetInstructionSet(is InstructionSet) {
	cpu.Instructions = is
}

// Reset the CPU state.
// - Zeroes the registers and accumulator.
// - Points the stack pointer at the top of memory.
// - Clears the instruction cursor, halt, fault and tick counter.
// Memory and storage are left as they are.
func (cpu *Cpu) Reset() (err error) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers.Reset()
	cpu.Accumulator = Value{}
	cpu.Executing = false
	cpu.Opcode = 0
	cpu.Step = 0
	cpu.Halted = false
	cpu.Fault = nil
	cpu.Ticks = 0

	err = cpu.Registers.SetValue(cpu.sp, ValueOf(uint64(cpu.Memory.Size())))
	return
}

// IsHalted returns true if a halt micro-op has run.
func (cpu *Cpu) IsHalted() bool {
	return cpu.Halted
}

// Unhalt lets the clock resume after a halt.
func (cpu *Cpu) Unhalt() {
	cpu.Halted = false
}

// ProgramCounter returns the address of the current instruction.
func (cpu *Cpu) ProgramCounter() int {
	addr, _ := cpu.registerAddress(cpu.pc)
	return addr
}

// InstructionAddress returns the address of the instruction in progress,
// or the program counter when idle.
func (cpu *Cpu) InstructionAddress() int {
	if cpu.Executing {
		return cpu.address
	}
	return cpu.ProgramCounter()
}

// StackPointer returns the address of the top of the stack.
func (cpu *Cpu) StackPointer() int {
	addr, _ := cpu.registerAddress(cpu.sp)
	return addr
}

// Flags returns the flags register.
func (cpu *Cpu) Flags() Flag {
	value, _ := cpu.Registers.Value(cpu.flags)
	u, _ := value.Uint64()
	return Flag(u & 0xff)
}

// Instruction returns the instruction in progress.
func (cpu *Cpu) Instruction() (in Instruction, ok bool) {
	if !cpu.Executing {
		return
	}
	in, ok = cpu.Instructions[cpu.Opcode]
	return
}

// registerAddress reads a register as an address.
func (cpu *Cpu) registerAddress(id int) (addr int, err error) {
	value, err := cpu.Registers.Value(id)
	if err != nil {
		return
	}

	addr, ok := value.Address()
	if !ok {
		err = ErrAddressInvalid
	}
	return
}

// Clock advances the machine by one tick:
//   - Idle: fetch the opcode at the program counter, without consuming it.
//   - Executing: run the next micro-op.
//   - Executing, no micro-ops left: go idle, and step past the opcode byte.
//
// A halted machine does nothing. A faulted machine returns its fault.
func (cpu *Cpu) Clock() (err error) {
	if cpu.Halted {
		return
	}

	if cpu.Fault != nil {
		return cpu.Fault
	}

	defer func() {
		if err != nil {
			cpu.Fault = err
			if cpu.Verbose {
				log.Printf("cpu: fault: %v", err)
			}
		}
	}()

	cpu.Ticks++

	if !cpu.Executing {
		return cpu.fetch()
	}

	in := cpu.Instructions[cpu.Opcode]
	if cpu.Step >= len(in.MicroOps) {
		cpu.Executing = false
		err = cpu.stepProgram(1)
		if err != nil {
			err = ErrFetch{Address: cpu.address, Err: err}
		}
		return
	}

	op := in.MicroOps[cpu.Step]
	if cpu.Verbose {
		log.Printf("cpu: %04x: %v[%d] %v", cpu.address, in.Name, cpu.Step, op)
	}

	err = cpu.Execute(op)
	if err != nil {
		err = ErrMicroOp{Address: cpu.address, Opcode: cpu.Opcode, Step: cpu.Step, Op: op, Err: err}
		return
	}

	cpu.Step++

	return
}

// fetch peeks at the opcode under the program counter.
func (cpu *Cpu) fetch() (err error) {
	pc, err := cpu.registerAddress(cpu.pc)
	if err != nil {
		return
	}

	defer func() {
		if err != nil {
			err = ErrFetch{Address: pc, Err: err}
		}
	}()

	opcode, err := cpu.Memory.Read(pc)
	if err != nil {
		return
	}

	in, ok := cpu.Instructions[opcode]
	if !ok {
		err = ErrOpcode(opcode)
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %04x: fetch 0x%02x %v", pc, opcode, in.Name)
	}

	cpu.address = pc
	cpu.Opcode = opcode
	cpu.Executing = true
	cpu.Step = 0

	return
}

// stepProgram advances the program counter.
func (cpu *Cpu) stepProgram(steps int) (err error) {
	pc, err := cpu.registerAddress(cpu.pc)
	if err != nil {
		return
	}

	return cpu.Registers.SetValue(cpu.pc, ValueOf(uint64(pc+steps)))
}

// readProgram reads the program byte at an offset from the program counter.
func (cpu *Cpu) readProgram(offset uint8) (value byte, err error) {
	pc, err := cpu.registerAddress(cpu.pc)
	if err != nil {
		return
	}

	return cpu.Memory.Read(pc + int(offset))
}

// jump sets the program counter to the accumulator and ends the instruction.
func (cpu *Cpu) jump() (err error) {
	err = cpu.Registers.SetValue(cpu.pc, cpu.Accumulator)
	if err != nil {
		return
	}

	cpu.Executing = false
	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	status := "running"
	switch {
	case cpu.Fault != nil:
		status = "fault"
	case cpu.Halted:
		status = "halted"
	}

	fmt.Fprintf(&sb, "% 20s: %v\n", "status", status)
	fmt.Fprintf(&sb, "% 20s: %v\n", "ticks", cpu.Ticks)
	if in, ok := cpu.Instruction(); ok {
		fmt.Fprintf(&sb, "% 20s: 0x%02x %v %d/%d\n", "opcode", cpu.Opcode, in.Name, cpu.Step, len(in.MicroOps))
	} else {
		fmt.Fprintf(&sb, "% 20s: --\n", "opcode")
	}
	fmt.Fprintf(&sb, "% 20s: %v\n", "accumulator", cpu.Accumulator)

	for id, reg := range cpu.Registers.Registers() {
		data, _ := cpu.Registers.Read(id)
		fmt.Fprintf(&sb, "% 20s: %x\n", reg.Name, data)
	}

	return sb.String()
}
