package cpu

import (
	"fmt"
	"math/big"
)

// Value is a machine value: a big-endian unsigned integer of any width.
// Values are immutable; every operation returns a new Value.
type Value struct {
	n *big.Int
}

// NewValue interprets data as a big-endian unsigned integer.
func NewValue(data []byte) Value {
	return Value{n: new(big.Int).SetBytes(data)}
}

// ValueOf makes a Value from a small integer.
func ValueOf(u uint64) Value {
	return Value{n: new(big.Int).SetUint64(u)}
}

func (v Value) int() *big.Int {
	if v.n == nil {
		return new(big.Int)
	}
	return v.n
}

// Uint64 returns the value, if it fits in 64 bits.
func (v Value) Uint64() (u uint64, ok bool) {
	n := v.int()
	if !n.IsUint64() {
		return
	}
	return n.Uint64(), true
}

// Address returns the value as an address or count, if it fits.
func (v Value) Address() (addr int, ok bool) {
	u, ok := v.Uint64()
	if !ok || u > uint64(^uint(0)>>1) {
		ok = false
		return
	}
	return int(u), true
}

// Len is the natural length of the value in bytes. Zero has length 1.
func (v Value) Len() int {
	return max(1, (v.int().BitLen()+7)/8)
}

// Bytes returns the value as exactly width big-endian bytes.
func (v Value) Bytes(width int) (data []byte, err error) {
	n := v.int()
	if (n.BitLen()+7)/8 > width {
		err = ErrValueOverflow{Value: v, Width: width}
		return
	}

	data = make([]byte, width)
	n.FillBytes(data)
	return
}

// Add returns v + o.
func (v Value) Add(o Value) Value {
	return Value{n: new(big.Int).Add(v.int(), o.int())}
}

// Sub returns v - o, failing if o > v.
func (v Value) Sub(o Value) (diff Value, err error) {
	if v.Cmp(o) < 0 {
		err = ErrUnderflow
		return
	}

	diff = Value{n: new(big.Int).Sub(v.int(), o.int())}
	return
}

// Cmp compares the values as unsigned integers, returning -1, 0 or +1.
func (v Value) Cmp(o Value) int {
	return v.int().Cmp(o.int())
}

// Equal is true if both values are the same integer.
func (v Value) Equal(o Value) bool {
	return v.Cmp(o) == 0
}

// String formats the value in hexadecimal.
func (v Value) String() string {
	return fmt.Sprintf("%#x", v.int())
}
