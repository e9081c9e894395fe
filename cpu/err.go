package cpu

import (
	"errors"

	"github.com/ezrec/mcpu/translate"
)

var f = translate.From

var (
	// Register file errors
	ErrRegisterUnknown   = errors.New(f("register unknown"))
	ErrRegisterDuplicate = errors.New(f("register duplicated"))
	ErrRegisterSize      = errors.New(f("register size mismatch"))
	ErrRegisterZero      = errors.New(f("register size zero"))
	ErrRegisterLimit     = errors.New(f("too many registers"))

	// Engine errors
	ErrDataSize       = errors.New(f("data size invalid"))
	ErrOpcodeUnknown  = errors.New(f("opcode unknown"))
	ErrMicroOpUnknown = errors.New(f("micro-op unknown"))
	ErrUnderflow      = errors.New(f("subtraction underflow"))
	ErrStackOverflow  = errors.New(f("stack overflow"))
	ErrStackUnderflow = errors.New(f("stack underflow"))
	ErrAddressInvalid = errors.New(f("address invalid"))
)

// ErrRegister names the register an error applies to.
type ErrRegister struct {
	Name string
	Id   int
	Err  error
}

func (err ErrRegister) Error() string {
	if len(err.Name) != 0 {
		return f("register '%v' %v", err.Name, err.Err)
	}
	return f("register #%d %v", err.Id, err.Err)
}

func (err ErrRegister) Unwrap() error {
	return err.Err
}

// ErrSizeMismatch is a register write with the wrong number of bytes.
type ErrSizeMismatch struct {
	Name     string
	Expected int
	Got      int
}

func (err ErrSizeMismatch) Error() string {
	return f("register '%v' expects %d bytes, got %d", err.Name, err.Expected, err.Got)
}

func (err ErrSizeMismatch) Unwrap() error {
	return ErrRegisterSize
}

// ErrValueOverflow is a value too wide for its destination.
type ErrValueOverflow struct {
	Value Value
	Width int
}

func (err ErrValueOverflow) Error() string {
	return f("value %v does not fit in %d bytes", err.Value, err.Width)
}

// ErrOpcode is an opcode missing from the instruction set.
type ErrOpcode uint8

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x", uint8(eo))
}

func (eo ErrOpcode) Unwrap() error {
	return ErrOpcodeUnknown
}

// ErrMicroOp locates a fatal error inside an instruction.
type ErrMicroOp struct {
	Address int     // Address of the instruction's opcode.
	Opcode  uint8   // Executing opcode.
	Step    int     // Index of the failing micro-op.
	Op      MicroOp // Failing micro-op.
	Err     error
}

func (err ErrMicroOp) Error() string {
	return f("%04x: opcode 0x%02x step %d %v: %v", err.Address, err.Opcode, err.Step, err.Op, err.Err)
}

func (err ErrMicroOp) Unwrap() error {
	return err.Err
}

// ErrFetch locates a fatal error while fetching or finishing an instruction.
type ErrFetch struct {
	Address int
	Err     error
}

func (err ErrFetch) Error() string {
	return f("%04x: fetch %v", err.Address, err.Err)
}

func (err ErrFetch) Unwrap() error {
	return err.Err
}
