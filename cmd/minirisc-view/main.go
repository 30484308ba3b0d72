// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/ezrec/minirisc/bus"
	"github.com/ezrec/minirisc/cpu"
	"github.com/ezrec/minirisc/display"
	"github.com/ezrec/minirisc/emulator"
)

const (
	CELL_WIDTH    = 7
	CELL_HEIGHT   = 13
	STATUS_HEIGHT = 16
)

var (
	textColor   = color.RGBA{0xc0, 0xc0, 0xc0, 0xff}
	statusColor = color.RGBA{0, 0, 0, 0xb4}
)

// Viewer runs the emulator from the display refresh, and renders
// the console screen.
type Viewer struct {
	Emulator      *emulator.Emulator
	Screen        *display.Screen
	StepsPerFrame int

	width, height int

	done bool
	err  error

	clipboardOnce sync.Once
	clipboardOK   bool
}

// NewViewer attaches the emulator console to a new screen.
func NewViewer(emu *emulator.Emulator, columns, rows int) (view *Viewer) {
	screen := display.NewScreen(columns, rows)
	columns, rows = screen.Size()

	emu.Console.Output = screen

	view = &Viewer{
		Emulator:      emu,
		Screen:        screen,
		StepsPerFrame: 10000,
		width:         columns * CELL_WIDTH,
		height:        rows*CELL_HEIGHT + STATUS_HEIGHT,
	}

	return
}

// Update advances the emulator by a batch of instructions.
func (view *Viewer) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		view.copyScreen()
	}

	for step := 0; step < view.StepsPerFrame && !view.done; step++ {
		view.done, view.err = view.Emulator.Tick()
		if view.err != nil {
			log.Print(view.err)
		}
	}

	return nil
}

// copyScreen places the screen text on the system clipboard.
func (view *Viewer) copyScreen() {
	view.clipboardOnce.Do(func() {
		view.clipboardOK = clipboard.Init() == nil
	})
	if !view.clipboardOK {
		return
	}

	clipboard.Write(clipboard.FmtText, []byte(view.Screen.String()))
}

// status describes the emulator state.
func (view *Viewer) status() string {
	emu := view.Emulator

	var state string
	switch {
	case view.err != nil:
		state = view.err.Error()
	case emu.Cpu.Cause != nil:
		state = fmt.Sprintf("halted: %v", emu.Cpu.Cause)
	case view.done:
		state = "stopped"
	default:
		state = "running"
	}

	return fmt.Sprintf("pc %08x  %d instructions  %s", emu.Cpu.Pc, emu.Ticks(), state)
}

func (view *Viewer) Draw(screen *ebiten.Image) {
	face := basicfont.Face7x13

	for row, line := range view.Screen.Lines() {
		if len(line) == 0 {
			continue
		}
		y := (row+1)*CELL_HEIGHT - 3
		text.Draw(screen, line, face, 0, y, textColor)
	}

	y := view.height - STATUS_HEIGHT
	ebitenutil.DrawRect(screen, 0, float64(y), float64(view.width), STATUS_HEIGHT, statusColor)
	ebitenutil.DebugPrintAt(screen, view.status(), 2, y)
}

func (view *Viewer) Layout(_, _ int) (int, int) {
	return view.width, view.height
}

func main() {
	var compile string
	var ramMiB uint
	var columns int
	var rows int
	var steps int
	var verbose bool

	asm := &cpu.Assembler{}

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.UintVar(&ramMiB, "m", uint(bus.RAM_SIZE_DEFAULT>>20), "RAM size, in MiB")
	flag.IntVar(&columns, "cols", display.COLUMNS_DEFAULT, "Screen columns")
	flag.IntVar(&rows, "rows", display.ROWS_DEFAULT, "Screen rows")
	flag.IntVar(&steps, "n", 10000, "Instructions per frame")
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

	if (flag.NArg() == 1) == (len(compile) != 0) {
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
	asm.Verbose = verbose

	name := compile
	if len(compile) == 0 {
		name = flag.Arg(0)
	}

	inf, err := os.Open(name)
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}

	if len(compile) != 0 {
		err = emu.Assemble(asm, inf)
	} else {
		_, err = emu.Load(inf)
	}
	inf.Close()
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}

	view := NewViewer(emu, columns, rows)
	view.StepsPerFrame = max(steps, 1)

	ebiten.SetWindowSize(view.width*2, view.height*2)
	ebiten.SetWindowTitle(fmt.Sprintf("minirisc: %v", name))
	ebiten.SetWindowResizable(true)

	err = ebiten.RunGame(view)
	if err != nil {
		log.Fatal(err)
	}
}
