package cpu

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Instruction is the microcode for a single opcode.
type Instruction struct {
	Name     string    // Assembler mnemonic.
	Args     uint8     // Operand bytes following the opcode.
	MicroOps []MicroOp // Micro-ops, one per clock tick.
}

// Len is the encoded length of the instruction in bytes.
func (in Instruction) Len() int {
	return 1 + int(in.Args)
}

// String returns the instruction and its microcode.
func (in Instruction) String() string {
	ops := make([]string, len(in.MicroOps))
	for n, op := range in.MicroOps {
		ops[n] = op.String()
	}
	return fmt.Sprintf("%v/%d [%v]", in.Name, in.Args, strings.Join(ops, " "))
}

// InstructionSet maps opcodes to their microcode.
type InstructionSet map[uint8]Instruction

// Opcodes returns the opcodes of the set in ascending order.
func (is InstructionSet) Opcodes() []uint8 {
	return slices.Sorted(maps.Keys(is))
}

// Lookup finds an opcode by its mnemonic. If several opcodes share the
// mnemonic, the lowest one is returned.
func (is InstructionSet) Lookup(name string) (opcode uint8, ok bool) {
	for _, code := range is.Opcodes() {
		if is[code].Name == name {
			return code, true
		}
	}
	return
}

// InstructionBuilder accumulates the microcode of one instruction.
type InstructionBuilder struct {
	instruction Instruction
}

// Micro appends micro-ops to the instruction.
func (ib *InstructionBuilder) Micro(ops ...MicroOp) *InstructionBuilder {
	ib.instruction.MicroOps = append(ib.instruction.MicroOps, ops...)
	return ib
}

// InstructionSetBuilder assembles an InstructionSet.
type InstructionSetBuilder struct {
	opcodes  []uint8
	builders map[uint8]*InstructionBuilder
}

// NewInstructionSetBuilder creates an empty builder.
func NewInstructionSetBuilder() *InstructionSetBuilder {
	return &InstructionSetBuilder{
		builders: map[uint8]*InstructionBuilder{},
	}
}

// Add starts (or replaces) the instruction for an opcode.
func (isb *InstructionSetBuilder) Add(opcode uint8, name string, args uint8) *InstructionBuilder {
	ib := &InstructionBuilder{
		instruction: Instruction{Name: name, Args: args},
	}
	if _, ok := isb.builders[opcode]; !ok {
		isb.opcodes = append(isb.opcodes, opcode)
	}
	isb.builders[opcode] = ib
	return ib
}

// Build returns the finished instruction set.
func (isb *InstructionSetBuilder) Build() (is InstructionSet) {
	is = make(InstructionSet, len(isb.builders))
	for _, opcode := range isb.opcodes {
		in := isb.builders[opcode].instruction
		in.MicroOps = slices.Clone(in.MicroOps)
		is[opcode] = in
	}
	return
}
