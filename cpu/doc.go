// Package cpu implements a microcoded processor.
//
// Every instruction is a list of micro-ops, and every clock tick either
// fetches an opcode, runs one micro-op, or retires the instruction. The
// micro-ops move values through a single accumulator, between the
// register file, memory, and storage.
//
// Registers are byte slices of a RegisterFile, and are read and written
// as arbitrary precision Values. Comparisons set the flags register, which
// the conditional jump micro-ops test through a CondMask.
package cpu
