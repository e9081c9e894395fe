package emulator

import (
	"errors"
	"strings"

	"github.com/ezrec/mcpu/translate"
)

var f = translate.From

var (
	ErrCycleLimit     = errors.New(f("cycle limit reached"))
	ErrConfigSize     = errors.New(f("size must be positive"))
	ErrConfigRegister = errors.New(f("register invalid"))
	ErrConfigDataSize = errors.New(f("data size too small to hold an address"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrConfigKey lists keys of a machine description that are not understood.
type ErrConfigKey []string

func (err ErrConfigKey) Error() string {
	return f("unknown keys: %v", strings.Join(err, ", "))
}

// ErrConfigField is an invalid field of a machine description.
type ErrConfigField struct {
	Field string
	Err   error
}

func (err ErrConfigField) Error() string {
	return f("%v: %v", err.Field, err.Err)
}

func (err ErrConfigField) Unwrap() error {
	return err.Err
}
