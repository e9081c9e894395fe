package emulator

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/mcpu/cpu"
	"github.com/ezrec/mcpu/isa"
	"github.com/ezrec/mcpu/store"
)

const (
	DEFAULT_MEMORY_SIZE  = 256
	DEFAULT_STORAGE_SIZE = 256
	DEFAULT_DATA_SIZE    = 1
)

// RegisterConfig is an extra register, appended after the default ones.
type RegisterConfig struct {
	Name string `toml:"name"`
	Size int    `toml:"size"`
}

// Config is a machine description.
//
//	memory_size = 256
//	storage_size = 1024
//	data_size = 2
//
//	[[register]]
//	name = "counter"
//	size = 2
type Config struct {
	MemorySize  int              `toml:"memory_size"`
	StorageSize int              `toml:"storage_size"`
	DataSize    int              `toml:"data_size"`
	Register    []RegisterConfig `toml:"register"`
}

// DefaultConfig returns the default machine description.
func DefaultConfig() Config {
	return Config{
		MemorySize:  DEFAULT_MEMORY_SIZE,
		StorageSize: DEFAULT_STORAGE_SIZE,
		DataSize:    DEFAULT_DATA_SIZE,
	}
}

// LoadConfig reads a TOML machine description. Missing keys keep their
// default values.
func LoadConfig(input io.Reader) (cfg Config, err error) {
	cfg = DefaultConfig()

	md, err := toml.NewDecoder(input).Decode(&cfg)
	if err != nil {
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make(ErrConfigKey, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		err = keys
		return
	}

	err = cfg.Validate()
	return
}

// Validate checks the machine description, returning all problems found.
func (cfg Config) Validate() (err error) {
	var errs []error

	for _, field := range []struct {
		name string
		size int
	}{
		{"memory_size", cfg.MemorySize},
		{"storage_size", cfg.StorageSize},
		{"data_size", cfg.DataSize},
	} {
		if field.size <= 0 {
			errs = append(errs, ErrConfigField{Field: field.name, Err: ErrConfigSize})
		}
	}

	// Call frames push addresses into data words.
	if cfg.MemorySize > 0 && cfg.DataSize > 0 && cfg.DataSize < cpu.AddressWidth(cfg.MemorySize-1) {
		errs = append(errs, ErrConfigField{Field: "data_size", Err: ErrConfigDataSize})
	}

	for n, reg := range cfg.Register {
		name := fmt.Sprintf("register[%d]", n)
		if len(reg.Name) == 0 {
			errs = append(errs, ErrConfigField{Field: name, Err: ErrConfigRegister})
		}
		if reg.Size <= 0 {
			errs = append(errs, ErrConfigField{Field: name, Err: ErrConfigSize})
		}
	}

	return errors.Join(errs...)
}

// NewCpu builds the machine described, with the standard instruction set.
func (cfg Config) NewCpu() (machine *cpu.Cpu, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}

	regs, err := cpu.NewDefaultRegisterFile(cfg.DataSize, cfg.MemorySize)
	if err != nil {
		return
	}

	for _, reg := range cfg.Register {
		err = regs.Append(reg.Name, reg.Size)
		if err != nil {
			return
		}
	}

	is, err := isa.Build(regs)
	if err != nil {
		return
	}

	machine, err = cpu.NewCpu(regs, store.New(cfg.MemorySize), store.New(cfg.StorageSize), cfg.DataSize)
	if err != nil {
		return
	}

	machine.SetInstructionSet(is)

	return
}

// Defines returns the machine description as assembler equates.
func (cfg Config) Defines() map[string]string {
	return map[string]string{
		"MEMORY_SIZE":  fmt.Sprintf("%v", cfg.MemorySize),
		"STORAGE_SIZE": fmt.Sprintf("%v", cfg.StorageSize),
		"DATA_SIZE":    fmt.Sprintf("%v", cfg.DataSize),
	}
}
