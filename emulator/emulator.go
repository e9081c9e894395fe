// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives a machine built from a machine description:
// it assembles and loads programs, and clocks the CPU by tick, by
// instruction, or to a halt.
package emulator

import (
	"context"
	"io"
	"iter"
	"log"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/mcpu/asm"
	"github.com/ezrec/mcpu/cpu"
	"github.com/ezrec/mcpu/internal"
)

// Emulator state. CPU + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *asm.Program // Reference to the currently loaded program listing.
	Config   Config       // Machine description.
}

// NewEmulator creates a new emulator for a machine description.
func NewEmulator(cfg Config) (emu *Emulator, err error) {
	machine, err := cfg.NewCpu()
	if err != nil {
		return
	}

	emu = &Emulator{
		Cpu:     machine,
		Program: &asm.Program{},
		Config:  cfg,
	}

	return
}

// registerDefines returns the register ids by name.
func (emu *Emulator) registerDefines() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for id, reg := range emu.Cpu.Registers.Registers() {
			if !yield(reg.Name, strconv.Itoa(id)) {
				return
			}
		}
	}
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		internal.SortedDefines(emu.Config.Defines()),
		emu.registerDefines(),
	)
}

// Assembler returns an assembler for the machine, with its defines.
func (emu *Emulator) Assembler() (assembler *asm.Assembler) {
	assembler = &asm.Assembler{
		Verbose:      emu.Verbose,
		Instructions: emu.Cpu.Instructions,
	}

	for name, value := range emu.Defines() {
		assembler.Predefine(name, value)
	}

	return
}

// Assemble parses program text for the machine.
func (emu *Emulator) Assemble(input io.Reader) (prog *asm.Program, err error) {
	return emu.Assembler().Parse(input)
}

// Load places a program at the start of memory, and resets the machine.
// The rest of memory is cleared.
func (emu *Emulator) Load(prog *asm.Program) (err error) {
	binary := prog.Binary()

	err = emu.Cpu.Memory.ClearRange(0, emu.Cpu.Memory.Size())
	if err != nil {
		return
	}

	err = emu.Cpu.Memory.WriteRange(0, binary)
	if err != nil {
		return
	}

	emu.Program = prog

	if emu.Verbose {
		log.Printf("emu: loaded %d bytes", len(binary))
	}

	return emu.Reset()
}

// LoadStorage loads a storage image.
func (emu *Emulator) LoadStorage(input io.Reader) (err error) {
	return emu.Cpu.Storage.Unmarshal(input)
}

// SaveStorage writes the storage image.
func (emu *Emulator) SaveStorage(output io.Writer) (err error) {
	return emu.Cpu.Storage.Marshal(output)
}

// Reset the machine state.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	return emu.Cpu.Reset()
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Cpu.InstructionAddress())
}

// Tick performs a single clock tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Clock()
	if err != nil {
		return
	}

	done = emu.Cpu.IsHalted()
	return
}

// StepInstruction runs the machine until the current (or next)
// instruction retires, and returns the ticks used. A halted machine
// uses no ticks.
func (emu *Emulator) StepInstruction() (ticks int, done bool, err error) {
	if emu.Cpu.IsHalted() {
		done = true
		return
	}

	for {
		done, err = emu.Tick()
		ticks++
		if err != nil || done || !emu.Cpu.Executing {
			return
		}
	}
}

// Run clocks the machine until it halts. A limit of zero or less runs
// without a cycle limit. The context is checked between ticks.
func (emu *Emulator) Run(ctx context.Context, limit int) (err error) {
	for ticks := 0; !emu.Cpu.IsHalted(); ticks++ {
		if limit > 0 && ticks >= limit {
			err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrCycleLimit}
			return
		}

		err = ctx.Err()
		if err != nil {
			return
		}

		_, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emu: halted after %d ticks", emu.Cpu.Ticks)
	}

	return
}

// RunAll runs independent machines in parallel, each until it halts.
// The first error cancels the other machines.
func RunAll(ctx context.Context, limit int, emus ...*Emulator) (err error) {
	g, ctx := errgroup.WithContext(ctx)

	for _, emu := range emus {
		g.Go(func() error {
			return emu.Run(ctx, limit)
		})
	}

	return g.Wait()
}

// String returns the machine state, and the source line being executed.
func (emu *Emulator) String() string {
	var sb strings.Builder

	if dbg := emu.Program.Debug(emu.Cpu.InstructionAddress()); dbg.Opcode != nil {
		sb.WriteString(f("line %d: %v\n", dbg.LineNo, strings.Join(dbg.Words, " ")))
	}
	sb.WriteString(emu.Cpu.String())

	return sb.String()
}
