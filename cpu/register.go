package cpu

import (
	"fmt"
	"iter"
)

// Reserved register names used by the engine and the standard microcode.
const (
	REG_PROGRAM_COUNTER = "program_counter"
	REG_STACK_POINTER   = "stack_pointer"
	REG_BASE_POINTER    = "base_pointer"
	REG_MEMORY_ADDRESS  = "memory_address"
	REG_FLAGS           = "flags"
	REG_A               = "reg_a"
	REG_B               = "reg_b"
	REG_C               = "reg_c"
)

// REGISTER_LIMIT is the most registers a file can hold, as ids are bytes.
const REGISTER_LIMIT = 256

// Register describes a fixed width window of the register file.
type Register struct {
	Name   string
	Size   int
	Offset int
}

// RegisterFile is a set of named registers over one backing buffer.
type RegisterFile struct {
	Data []byte // Backing buffer; len(Data) == max(Offset+Size).

	index     map[string]int
	registers []Register
}

// NewRegisterFile creates an empty register file.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{
		index: map[string]int{},
	}
}

// AddressWidth returns the bytes needed to hold any address of a memory of
// size bytes, including the size itself (the initial stack pointer).
func AddressWidth(size int) (width int) {
	width = 1
	for limit := 256; size >= limit && width < 8; limit <<= 8 {
		width++
	}
	return
}

// NewDefaultRegisterFile creates the standard register layout for a data
// width and memory size.
func NewDefaultRegisterFile(dataSize int, memorySize int) (rf *RegisterFile, err error) {
	if dataSize <= 0 {
		err = ErrDataSize
		return
	}

	aw := AddressWidth(memorySize)

	layout := []Register{
		{Name: REG_PROGRAM_COUNTER, Size: aw},
		{Name: REG_STACK_POINTER, Size: aw},
		{Name: REG_BASE_POINTER, Size: aw},
		{Name: REG_MEMORY_ADDRESS, Size: aw},
		{Name: REG_FLAGS, Size: 1},
		{Name: REG_A, Size: dataSize},
		{Name: REG_B, Size: dataSize},
		{Name: REG_C, Size: dataSize},
	}
	for n := range 4 {
		layout = append(layout, Register{Name: fmt.Sprintf("reg_%d", n), Size: dataSize})
	}
	for n := range 4 {
		layout = append(layout, Register{Name: fmt.Sprintf("instruction_temp_%d", n), Size: dataSize})
	}

	rf = NewRegisterFile()
	for _, reg := range layout {
		err = rf.Append(reg.Name, reg.Size)
		if err != nil {
			return
		}
	}

	return
}

// Add registers a new register at a given offset.
// The register id is its order of addition.
func (rf *RegisterFile) Add(name string, size int, offset int) (err error) {
	if rf.index == nil {
		rf.index = map[string]int{}
	}

	switch {
	case size <= 0:
		err = ErrRegisterZero
	case offset < 0:
		err = ErrAddressInvalid
	case len(rf.registers) >= REGISTER_LIMIT:
		err = ErrRegisterLimit
	default:
		if _, ok := rf.index[name]; ok {
			err = ErrRegisterDuplicate
		}
	}
	if err != nil {
		err = ErrRegister{Name: name, Err: err}
		return
	}

	rf.index[name] = len(rf.registers)
	rf.registers = append(rf.registers, Register{Name: name, Size: size, Offset: offset})

	if end := offset + size; end > len(rf.Data) {
		rf.Data = append(rf.Data, make([]byte, end-len(rf.Data))...)
	}

	return
}

// Append registers a new register after the end of the backing buffer.
func (rf *RegisterFile) Append(name string, size int) error {
	return rf.Add(name, size, len(rf.Data))
}

// Len is the number of registers.
func (rf *RegisterFile) Len() int {
	return len(rf.registers)
}

// Registers iterates over the register ids and descriptors, in id order.
func (rf *RegisterFile) Registers() iter.Seq2[int, Register] {
	return func(yield func(int, Register) bool) {
		for id, reg := range rf.registers {
			if !yield(id, reg) {
				return
			}
		}
	}
}

// Resolve returns the id of a named register.
func (rf *RegisterFile) Resolve(name string) (id int, err error) {
	id, ok := rf.index[name]
	if !ok {
		err = ErrRegister{Name: name, Err: ErrRegisterUnknown}
	}
	return
}

// Lookup returns the descriptor of a register id.
func (rf *RegisterFile) Lookup(id int) (reg Register, err error) {
	if id < 0 || id >= len(rf.registers) {
		err = ErrRegister{Id: id, Err: ErrRegisterUnknown}
		return
	}

	reg = rf.registers[id]
	return
}

// Read returns a copy of the bytes of a register.
func (rf *RegisterFile) Read(id int) (data []byte, err error) {
	reg, err := rf.Lookup(id)
	if err != nil {
		return
	}

	data = make([]byte, reg.Size)
	copy(data, rf.Data[reg.Offset:reg.Offset+reg.Size])
	return
}

// ReadName returns a copy of the bytes of a named register.
func (rf *RegisterFile) ReadName(name string) (data []byte, err error) {
	id, err := rf.Resolve(name)
	if err != nil {
		return
	}
	return rf.Read(id)
}

// Write replaces the bytes of a register. data must be exactly the
// register's size.
func (rf *RegisterFile) Write(id int, data []byte) (err error) {
	reg, err := rf.Lookup(id)
	if err != nil {
		return
	}

	if len(data) != reg.Size {
		err = ErrSizeMismatch{Name: reg.Name, Expected: reg.Size, Got: len(data)}
		return
	}

	copy(rf.Data[reg.Offset:], data)
	return
}

// WriteName replaces the bytes of a named register.
func (rf *RegisterFile) WriteName(name string, data []byte) (err error) {
	id, err := rf.Resolve(name)
	if err != nil {
		return
	}
	return rf.Write(id, data)
}

// Value reads a register as a Value.
func (rf *RegisterFile) Value(id int) (value Value, err error) {
	data, err := rf.Read(id)
	if err != nil {
		return
	}
	value = NewValue(data)
	return
}

// SetValue writes a Value to a register, sized to the register's width.
func (rf *RegisterFile) SetValue(id int, value Value) (err error) {
	reg, err := rf.Lookup(id)
	if err != nil {
		return
	}

	data, err := value.Bytes(reg.Size)
	if err != nil {
		err = ErrRegister{Name: reg.Name, Err: err}
		return
	}

	return rf.Write(id, data)
}

// Reset zeroes every register.
func (rf *RegisterFile) Reset() {
	clear(rf.Data)
}
