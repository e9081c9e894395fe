package asm

import (
	"slices"

	"github.com/ezrec/mcpu/cpu"
)

// ProgramWriter builds a program image one instruction at a time.
type ProgramWriter struct {
	Instructions cpu.InstructionSet // Instruction set the program is checked against.

	program []byte
}

// NewProgramWriter creates a writer for an instruction set.
func NewProgramWriter(is cpu.InstructionSet) *ProgramWriter {
	return &ProgramWriter{Instructions: is}
}

// Add appends an opcode and its operand bytes.
func (pw *ProgramWriter) Add(opcode uint8, args ...byte) (err error) {
	in, ok := pw.Instructions[opcode]
	if !ok {
		err = cpu.ErrOpcode(opcode)
		return
	}

	if len(args) != int(in.Args) {
		err = ErrArgs{Opcode: opcode, Expected: int(in.Args), Got: len(args)}
		return
	}

	pw.program = append(pw.program, opcode)
	pw.program = append(pw.program, args...)

	return
}

// Len is the size of the program so far.
func (pw *ProgramWriter) Len() int {
	return len(pw.program)
}

// Build returns a copy of the program image.
func (pw *ProgramWriter) Build() []byte {
	return slices.Clone(pw.program)
}
