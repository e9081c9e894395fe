package store

import (
	"errors"

	"github.com/ezrec/mcpu/translate"
)

var f = translate.From

var (
	ErrRange     = errors.New(f("address out of range"))
	ErrImageSize = errors.New(f("image larger than store"))
)

// ErrAddress reports the offending span of an out of range access.
type ErrAddress struct {
	Start int
	End   int
	Size  int
}

func (err ErrAddress) Error() string {
	return f("span [%d, %d) outside store of %d bytes", err.Start, err.End, err.Size)
}

func (err ErrAddress) Unwrap() error {
	return ErrRange
}
