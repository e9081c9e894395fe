// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package store implements the flat addressable byte stores used for
// both the memory and the storage of the machine.
package store

import (
	"io"
)

// Store is a fixed size, byte addressable buffer.
type Store struct {
	data []byte
}

// New creates a zero filled store of size bytes.
func New(size int) (st *Store) {
	st = &Store{
		data: make([]byte, size),
	}

	return
}

// Size of the store in bytes.
func (st *Store) Size() int {
	return len(st.data)
}

// check verifies that [start, end) lies within the store.
func (st *Store) check(start, end int) (err error) {
	if start < 0 || end < start || end > len(st.data) {
		err = ErrAddress{Start: start, End: end, Size: len(st.data)}
	}
	return
}

// Read a single byte.
func (st *Store) Read(addr int) (value byte, err error) {
	err = st.check(addr, addr+1)
	if err != nil {
		return
	}

	value = st.data[addr]
	return
}

// Write a single byte.
func (st *Store) Write(addr int, value byte) (err error) {
	err = st.check(addr, addr+1)
	if err != nil {
		return
	}

	st.data[addr] = value
	return
}

// ReadRange returns a copy of the bytes in [start, end).
func (st *Store) ReadRange(start, end int) (data []byte, err error) {
	err = st.check(start, end)
	if err != nil {
		return
	}

	data = make([]byte, end-start)
	copy(data, st.data[start:end])
	return
}

// WriteRange copies data into the store at start.
func (st *Store) WriteRange(start int, data []byte) (err error) {
	err = st.check(start, start+len(data))
	if err != nil {
		return
	}

	copy(st.data[start:], data)
	return
}

// ClearRange zero fills [start, end).
func (st *Store) ClearRange(start, end int) (err error) {
	err = st.check(start, end)
	if err != nil {
		return
	}

	clear(st.data[start:end])
	return
}

// Unmarshal loads an image from a reader at address 0.
// The remainder of the store is left untouched.
func (st *Store) Unmarshal(file io.Reader) (err error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return
	}

	if len(data) > len(st.data) {
		err = ErrImageSize
		return
	}

	copy(st.data, data)

	return
}

// Marshal writes the whole store to a writer.
func (st *Store) Marshal(file io.Writer) (err error) {
	_, err = file.Write(st.data)

	return
}
