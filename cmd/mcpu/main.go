// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/mcpu/emulator"
	"github.com/ezrec/mcpu/translate"
)

func main() {
	var machine string
	var storage string
	var save bool
	var cycles int
	var verbose bool
	var dump bool
	var lang string

	flag.StringVar(&machine, "m", "", ".toml machine description")
	flag.StringVar(&storage, "s", "", "storage image to load")
	flag.BoolVar(&save, "S", false, "Save storage back to the image after the run")
	flag.IntVar(&cycles, "n", 0, "Cycle limit per program, 0 for none")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&dump, "d", false, "Dump machine state after the run")
	flag.StringVar(&lang, "l", "", "Message language (default from the environment)")

	flag.Parse()

	if len(lang) != 0 {
		translate.Use(lang)
	}

	if flag.NArg() == 0 {
		log.Fatalf("%v: no programs given", os.Args[0])
	}

	if save && (len(storage) == 0 || flag.NArg() != 1) {
		log.Fatalf("%v: -S needs -s and exactly one program", os.Args[0])
	}

	cfg := emulator.DefaultConfig()
	if len(machine) != 0 {
		inf, err := os.Open(machine)
		if err != nil {
			log.Fatalf("%v: %v", machine, err)
		}
		cfg, err = emulator.LoadConfig(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", machine, err)
		}
	}

	var emus []*emulator.Emulator
	for _, path := range flag.Args() {
		emu, err := emulator.NewEmulator(cfg)
		if err != nil {
			log.Fatalf("%v: %v", machine, err)
		}
		emu.Verbose = verbose

		inf, err := os.Open(path)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
		prog, err := emu.Assemble(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}

		err = emu.Load(prog)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}

		if len(storage) != 0 {
			inf, err := os.Open(storage)
			if err != nil {
				log.Fatalf("%v: %v", storage, err)
			}
			err = emu.LoadStorage(inf)
			inf.Close()
			if err != nil {
				log.Fatalf("%v: %v", storage, err)
			}
		}

		emus = append(emus, emu)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := emulator.RunAll(ctx, cycles, emus...)

	if dump {
		for n, emu := range emus {
			translate.Fprintf(os.Stdout, "%v:\n%v\n", flag.Arg(n), emu)
		}
	}

	if err != nil {
		stop()
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if save {
		ouf, err := os.Create(storage)
		if err != nil {
			log.Fatalf("%v: %v", storage, err)
		}
		defer ouf.Close()

		err = emus[0].SaveStorage(ouf)
		if err != nil {
			log.Fatalf("%v: %v", storage, err)
		}
	}
}
