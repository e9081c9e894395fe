package cpu

// LoadToMemory copies one byte from storage to memory.
func (cpu *Cpu) LoadToMemory(storageAddress int, memoryAddress int) (err error) {
	value, err := cpu.Storage.Read(storageAddress)
	if err != nil {
		return
	}

	return cpu.Memory.Write(memoryAddress, value)
}

// LoadChunkToMemory copies storage [start, end) to the same addresses in memory.
func (cpu *Cpu) LoadChunkToMemory(start int, end int) (err error) {
	chunk, err := cpu.Storage.ReadRange(start, end)
	if err != nil {
		return
	}

	return cpu.Memory.WriteRange(start, chunk)
}

// SaveToStorage copies one byte from memory to storage.
func (cpu *Cpu) SaveToStorage(memoryAddress int, storageAddress int) (err error) {
	value, err := cpu.Memory.Read(memoryAddress)
	if err != nil {
		return
	}

	return cpu.Storage.Write(storageAddress, value)
}

// SaveChunkToStorage copies memory [start, end) to the same addresses in storage.
func (cpu *Cpu) SaveChunkToStorage(start int, end int) (err error) {
	chunk, err := cpu.Memory.ReadRange(start, end)
	if err != nil {
		return
	}

	return cpu.Storage.WriteRange(start, chunk)
}
