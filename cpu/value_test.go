package cpu

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_Bytes(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		data  []byte
		width int
		out   []byte
		fail  bool
	}){
		{[]byte{0x05}, 1, []byte{0x05}, false},
		{[]byte{0x05}, 2, []byte{0x00, 0x05}, false},
		{[]byte{0x00, 0x00, 0x07}, 1, []byte{0x07}, false},
		{[]byte{0x01, 0x00}, 1, nil, true},
		{[]byte{}, 2, []byte{0x00, 0x00}, false},
		{[]byte{0xff, 0xff, 0xff}, 3, []byte{0xff, 0xff, 0xff}, false},
	}

	for _, entry := range table {
		name := fmt.Sprintf("%x/%d", entry.data, entry.width)
		out, err := NewValue(entry.data).Bytes(entry.width)
		if entry.fail {
			var overflow ErrValueOverflow
			assert.ErrorAs(err, &overflow, name)
			assert.Equal(entry.width, overflow.Width, name)
		} else {
			assert.NoError(err, name)
			assert.Equal(entry.out, out, name)
		}
	}
}

func TestValue_Zero(t *testing.T) {
	assert := assert.New(t)

	var v Value
	assert.Equal(1, v.Len())
	assert.Equal("0x0", v.String())

	u, ok := v.Uint64()
	assert.True(ok)
	assert.Equal(uint64(0), u)

	assert.True(v.Equal(ValueOf(0)))
}

func TestValue_Wide(t *testing.T) {
	assert := assert.New(t)

	a := NewValue([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	sum := a.Add(ValueOf(1))
	assert.Equal(10, sum.Len())

	_, ok := sum.Uint64()
	assert.False(ok)

	data, err := sum.Bytes(10)
	assert.NoError(err)
	assert.Equal([]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0}, data)
}

func TestValue_Arithmetic(t *testing.T) {
	assert := assert.New(t)

	rands := rand.New(rand.NewSource(1))
	random := func() Value {
		data := make([]byte, 1+rands.Intn(12))
		rands.Read(data)
		return NewValue(data)
	}

	for range 200 {
		a, b, c := random(), random(), random()

		// Commutative and associative.
		assert.True(a.Add(b).Equal(b.Add(a)))
		assert.True(a.Add(b).Add(c).Equal(a.Add(b.Add(c))))

		// Sub then Add is the identity when there is no underflow.
		hi, lo := a, b
		if hi.Cmp(lo) < 0 {
			hi, lo = lo, hi
		}
		diff, err := hi.Sub(lo)
		assert.NoError(err)
		assert.True(diff.Add(lo).Equal(hi))
	}
}

func TestValue_Underflow(t *testing.T) {
	assert := assert.New(t)

	_, err := ValueOf(3).Sub(ValueOf(4))
	assert.ErrorIs(err, ErrUnderflow)

	zero, err := ValueOf(4).Sub(ValueOf(4))
	assert.NoError(err)
	assert.True(zero.Equal(Value{}))
}

func TestValue_Address(t *testing.T) {
	assert := assert.New(t)

	addr, ok := NewValue([]byte{0x01, 0x02}).Address()
	assert.True(ok)
	assert.Equal(0x102, addr)

	_, ok = NewValue(make([]byte, 9)).Add(NewValue([]byte{1, 0, 0, 0, 0, 0, 0, 0, 0})).Address()
	assert.False(ok)
}
