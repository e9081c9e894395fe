package asm

import (
	"errors"

	"github.com/ezrec/mcpu/translate"
)

var f = translate.From

var (
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeArgs         = errors.New(f("wrong number of arguments"))
	ErrOpcodeUnknown      = errors.New(f("opcode unknown"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrOperandRange is an operand that does not fit in its byte.
type ErrOperandRange int64

func (err ErrOperandRange) Error() string {
	return f("operand %v out of range", int64(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}

// ErrArgs is an instruction with the wrong operand count.
type ErrArgs struct {
	Opcode   uint8
	Expected int
	Got      int
}

func (err ErrArgs) Error() string {
	return f("opcode 0x%02x expects %d arguments, got %d", err.Opcode, err.Expected, err.Got)
}

func (err ErrArgs) Unwrap() error {
	return ErrOpcodeArgs
}
