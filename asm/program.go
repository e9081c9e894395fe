package asm

import (
	"iter"
)

// Opcode is a single assembled line.
type Opcode struct {
	LineNo  int            // Line number of the source text.
	Address int            // Memory address of the first byte.
	Words   []string       // Source words.
	Codes   []byte         // Opcode byte and its operands, or .byte data.
	Links   map[int]string // Labels to link, by index into Codes.
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
}

// Debug locates a memory address in a program listing.
type Debug struct {
	*Opcode
	Index int // Index of the address in Opcode.Codes.
}

// Debug returns the listing entry holding an address. The Opcode of the
// result is nil when no entry holds it.
func (prog *Program) Debug(address int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if address >= op.Address && address < op.Address+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  address - op.Address,
			}
			break
		}
	}

	return
}

// LineNo returns the source line of an address, or 0 if unknown.
func (prog *Program) LineNo(address int) int {
	dbg := prog.Debug(address)
	if dbg.Opcode == nil {
		return 0
	}
	return dbg.LineNo
}

// Len is the size of the program image.
func (prog *Program) Len() (size int) {
	for _, op := range prog.Opcodes {
		size = max(size, op.Address+len(op.Codes))
	}
	return
}

// Binary returns the program image, starting at address 0.
func (prog *Program) Binary() (bins []byte) {
	bins = make([]byte, prog.Len())
	for addr, code := range prog.Codes() {
		bins[addr] = code
	}

	return
}

// Codes iterates over the bytes of the program by address.
func (prog *Program) Codes() iter.Seq2[int, byte] {
	return func(yield func(addr int, code byte) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(op.Address+n, code) {
					return
				}
			}
		}
	}
}
