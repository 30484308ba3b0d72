// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/minirisc/bus"
	"github.com/ezrec/minirisc/cpu"
	"github.com/ezrec/minirisc/emulator"
)

func main() {
	var compile string
	var ramMiB uint
	var maxSteps int
	var save string
	var output string
	var verbose bool

	asm := &cpu.Assembler{}

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.UintVar(&ramMiB, "m", uint(bus.RAM_SIZE_DEFAULT>>20), "RAM size, in MiB")
	flag.IntVar(&maxSteps, "n", 0, "Maximum instructions to execute, 0 for no limit")
	flag.StringVar(&save, "s", "", "Save assembled image to file, do not execute")
	flag.StringVar(&output, "o", "-", "Console output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine an equate, as NAME=VALUE", func(define string) error {
		name, value, ok := strings.Cut(define, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("%v: expected NAME=VALUE", define)
		}
		asm.Predefine(name, value)
		return nil
	})

	flag.Parse()

	var image string
	switch {
	case flag.NArg() == 1 && len(compile) == 0:
		image = flag.Arg(0)
	case flag.NArg() == 0 && len(compile) != 0:
	default:
		log.Fatalf("%v: expected one image file, or -c source", os.Args[0])
	}

	if ramMiB == 0 || ramMiB > uint(bus.RAM_SIZE_MAX>>20) {
		log.Fatalf("%v: -m %v: %v", os.Args[0], ramMiB, bus.ErrRamSize)
	}

	emu, err := emulator.NewEmulator(uint32(ramMiB << 20))
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	emu.Verbose = verbose
	emu.MaxSteps = maxSteps
	asm.Verbose = verbose

	// Assemble a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		err = emu.Assemble(asm, inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if len(save) != 0 {
			err = os.WriteFile(save, emu.Program.Binary(), 0o644)
			if err != nil {
				log.Fatalf("%v: %v", save, err)
			}
			return
		}
	} else {
		inf, err := os.Open(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		defer inf.Close()

		_, err = emu.Load(inf)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
	}

	if output == "-" {
		emu.Console.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Console.Output = ouf
	}

	err = emu.Run()

	// Keep the shell prompt off the last line of program output.
	if output == "-" && emu.Console.Written > 0 && emu.Console.Last != '\n' &&
		term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println()
	}

	if err != nil {
		log.Fatal(err)
	}

	if emu.Cpu.Cause != nil {
		log.Printf("%v: halted: %v", os.Args[0], emu.Cpu.Cause)
		if verbose {
			log.Print(emu.Cpu)
		}
		os.Exit(1)
	}

	if verbose {
		log.Printf("%v: stopped at 0x%08x after %d instructions", os.Args[0], emu.Cpu.Pc, emu.Ticks())
	}
}
