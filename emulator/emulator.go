// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"io/fs"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/minirisc/bus"
	"github.com/ezrec/minirisc/cpu"
	"github.com/ezrec/minirisc/device"
	"github.com/ezrec/minirisc/internal"
)

const (
	STACK_RESERVE = 16 // Bytes reserved above the initial stack pointer.
)

// Emulator state. CPU + memory bus + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Bus      *bus.Bus     // Memory bus, owned by the emulator.
	Program  *cpu.Program // Currently running program listing, if assembled.
	MaxSteps int          // Step limit for Run, zero for no limit.

	Console device.Console // Console attached to the output device words.
}

// NewEmulator creates a new emulator with ramSize bytes of RAM.
func NewEmulator(ramSize uint32) (emu *Emulator, err error) {
	b, err := bus.NewBus(ramSize)
	if err != nil {
		return
	}

	emu = &Emulator{
		Bus: b,
		Cpu: cpu.NewCpu(bus.RAM_BASE, b),
	}
	b.Output = &emu.Console

	return
}

// StackTop returns the conventional initial stack pointer.
func (emu *Emulator) StackTop() uint32 {
	return bus.RAM_BASE + uint32(len(emu.Bus.Ram)) - STACK_RESERVE
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"STACK_TOP": fmt.Sprintf("%#x", emu.StackTop()),
	}

	return internal.IterSeq2Concat(maps.All(defines),
		emu.Bus.Defines(),
	)
}

// entry returns the initial program counter.
func (emu *Emulator) entry() uint32 {
	if emu.Program != nil && emu.Program.Base != 0 {
		return emu.Program.Base
	}
	return bus.RAM_BASE
}

// Load a flat binary image into RAM, replacing any prior contents,
// and reset the processor.
// A failed load leaves RAM and the processor untouched.
func (emu *Emulator) Load(r io.Reader) (size int, err error) {
	size, err = emu.Bus.Load(r)
	if err != nil {
		return
	}

	emu.Program = nil

	if emu.Verbose {
		log.Printf("emulator: loaded %d of %d bytes", size, len(emu.Bus.Ram))
	}

	emu.Reset()
	return
}

// LoadFile loads a flat binary image file.
func (emu *Emulator) LoadFile(fsys fs.FS, name string) (size int, err error) {
	inf, err := fsys.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	size, err = emu.Load(inf)
	return
}

// LoadProgram loads an assembled program into RAM, and resets the processor.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	if prog.Base < bus.RAM_BASE {
		err = &ErrRuntime{Pc: prog.Base, Err: bus.ErrUnmapped}
		return
	}

	image := make([]byte, prog.Base-bus.RAM_BASE)
	image = append(image, prog.Binary()...)

	err = emu.Bus.LoadImage(image)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Reset()
	return
}

// Assemble a source program with the emulator defines, and load it.
// Equates already predefined on the assembler take precedence.
func (emu *Emulator) Assemble(asm *cpu.Assembler, r io.Reader) (err error) {
	for name, value := range emu.Defines() {
		if _, ok := asm.Predefined(name); !ok {
			asm.Predefine(name, value)
		}
	}

	prog, err := asm.Parse(r)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: assembled %d lines at 0x%08x", len(prog.Lines), prog.Base)
	}

	err = emu.LoadProgram(prog)
	return
}

// Reset the processor to the program entry point, and clear the console.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Bus.Verbose = emu.Verbose
	emu.Console.Reset()

	pc := emu.entry()
	emu.Cpu.Reset(pc)

	if emu.Verbose {
		first, _ := emu.Bus.Read(bus.WORD, pc)
		log.Printf("emulator: first instruction at 0x%08x: %08x (%v)", pc, first, cpu.Code(first))
		log.Printf("emulator: stack top at 0x%08x", emu.StackTop())
	}
}

// Ticks returns the total retired instructions since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the instruction at the program counter.
func (emu *Emulator) Code() (code cpu.Code) {
	word, err := emu.Bus.Read(bus.WORD, emu.Cpu.Pc)
	if err != nil {
		return
	}

	code = cpu.Code(word)
	return
}

// LineNo returns the source line number for the executing instruction,
// or zero if there is no program listing.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction of the emulator.
// done is set once the processor has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU and bus verbosity
	emu.Cpu.Verbose = emu.Verbose
	emu.Bus.Verbose = emu.Verbose

	if emu.Cpu.Halted {
		done = true
		return
	}

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()

	err = emu.Cpu.Step()
	if err != nil {
		err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		done = true
		return
	}

	done = emu.Cpu.Halted
	if done && emu.Verbose {
		log.Printf("emulator: stopped after %d instructions", emu.Cpu.Ticks)
	}

	return
}

// Run the emulator until the processor halts, or the step limit is reached.
func (emu *Emulator) Run() (err error) {
	for steps := 0; ; steps++ {
		if emu.MaxSteps > 0 && steps >= emu.MaxSteps {
			err = &ErrRuntime{Pc: emu.Cpu.Pc, LineNo: emu.LineNo(), Err: ErrStepLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}
}
