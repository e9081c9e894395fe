package cpu

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFile(t *testing.T) {
	assert := assert.New(t)

	rf := NewRegisterFile()
	assert.NoError(rf.Add("a", 1, 0))
	assert.NoError(rf.Add("wide", 4, 1))
	assert.NoError(rf.Add("far", 2, 10))

	assert.Equal(3, rf.Len())
	assert.Equal(12, len(rf.Data))

	id, err := rf.Resolve("wide")
	assert.NoError(err)
	assert.Equal(1, id)

	reg, err := rf.Lookup(2)
	assert.NoError(err)
	assert.Equal(Register{Name: "far", Size: 2, Offset: 10}, reg)

	assert.NoError(rf.WriteName("wide", []byte{1, 2, 3, 4}))
	assert.Equal([]byte{0, 1, 2, 3, 4, 0, 0, 0, 0, 0, 0, 0}, rf.Data)

	data, err := rf.Read(1)
	assert.NoError(err)
	assert.Equal([]byte{1, 2, 3, 4}, data)

	value, err := rf.Value(1)
	assert.NoError(err)
	assert.True(value.Equal(ValueOf(0x01020304)))

	rf.Reset()
	data, _ = rf.ReadName("wide")
	assert.Equal([]byte{0, 0, 0, 0}, data)
}

func TestRegisterFile_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	rands := rand.New(rand.NewSource(7))

	rf := NewRegisterFile()
	offset := 0
	for n := range 16 {
		size := 1 + rands.Intn(8)
		assert.NoError(rf.Add(fmt.Sprintf("r%d", n), size, offset))
		offset += size
	}

	for range 100 {
		id := rands.Intn(rf.Len())
		reg, _ := rf.Lookup(id)

		data := make([]byte, reg.Size)
		rands.Read(data)
		assert.NoError(rf.Write(id, data))

		got, err := rf.ReadName(reg.Name)
		assert.NoError(err)
		assert.Equal(data, got)

		// Any other length is refused, and leaves the register alone.
		for _, size := range []int{0, reg.Size - 1, reg.Size + 1} {
			if size < 0 {
				continue
			}
			err = rf.Write(id, make([]byte, size))
			var mismatch ErrSizeMismatch
			assert.ErrorAs(err, &mismatch)
			assert.ErrorIs(err, ErrRegisterSize)
			assert.Equal(reg.Size, mismatch.Expected)
			assert.Equal(size, mismatch.Got)
		}

		got, _ = rf.Read(id)
		assert.Equal(data, got)
	}
}

func TestRegisterFile_Errors(t *testing.T) {
	assert := assert.New(t)

	rf := NewRegisterFile()
	assert.NoError(rf.Append("a", 1))

	assert.ErrorIs(rf.Append("a", 1), ErrRegisterDuplicate)
	assert.ErrorIs(rf.Append("zero", 0), ErrRegisterZero)
	assert.ErrorIs(rf.Add("neg", 1, -1), ErrAddressInvalid)

	_, err := rf.Resolve("missing")
	assert.ErrorIs(err, ErrRegisterUnknown)
	var named ErrRegister
	assert.ErrorAs(err, &named)
	assert.Equal("missing", named.Name)

	_, err = rf.Read(1)
	assert.ErrorIs(err, ErrRegisterUnknown)
	assert.ErrorIs(rf.Write(-1, nil), ErrRegisterUnknown)
	assert.ErrorIs(rf.WriteName("missing", []byte{0}), ErrRegisterUnknown)

	err = rf.SetValue(0, ValueOf(0x100))
	var overflow ErrValueOverflow
	assert.ErrorAs(err, &overflow)
}

func TestRegisterFile_Limit(t *testing.T) {
	assert := assert.New(t)

	rf := NewRegisterFile()
	for n := range REGISTER_LIMIT {
		assert.NoError(rf.Append(fmt.Sprintf("r%d", n), 1))
	}
	assert.ErrorIs(rf.Append("one_too_many", 1), ErrRegisterLimit)
}

func TestRegisterFile_Overlap(t *testing.T) {
	assert := assert.New(t)

	rf := NewRegisterFile()
	assert.NoError(rf.Add("word", 2, 0))
	assert.NoError(rf.Add("low", 1, 1))

	assert.NoError(rf.WriteName("word", []byte{0x12, 0x34}))
	data, _ := rf.ReadName("low")
	assert.Equal([]byte{0x34}, data)
}

func TestAddressWidth(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		size  int
		width int
	}{
		{0, 1}, {64, 1}, {255, 1}, {256, 2}, {65535, 2}, {65536, 3},
	}

	for _, entry := range table {
		assert.Equal(entry.width, AddressWidth(entry.size), entry.size)
	}
}

func TestNewDefaultRegisterFile(t *testing.T) {
	assert := assert.New(t)

	rf, err := NewDefaultRegisterFile(2, 256)
	assert.NoError(err)

	expected := map[string]int{
		REG_PROGRAM_COUNTER:  2,
		REG_STACK_POINTER:    2,
		REG_BASE_POINTER:     2,
		REG_MEMORY_ADDRESS:   2,
		REG_FLAGS:            1,
		REG_A:                2,
		REG_B:                2,
		REG_C:                2,
		"reg_0":              2,
		"reg_3":              2,
		"instruction_temp_0": 2,
		"instruction_temp_3": 2,
	}
	for name, size := range expected {
		id, err := rf.Resolve(name)
		assert.NoError(err, name)
		reg, _ := rf.Lookup(id)
		assert.Equal(size, reg.Size, name)
	}

	id, _ := rf.Resolve(REG_PROGRAM_COUNTER)
	assert.Equal(0, id)
	assert.Equal(16, rf.Len())

	_, err = NewDefaultRegisterFile(0, 256)
	assert.ErrorIs(err, ErrDataSize)
}
