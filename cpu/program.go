package cpu

import (
	"encoding/binary"
	"iter"
)

// Line is a single assembled source line.
type Line struct {
	LineNo    int      // Source line number.
	Addr      uint32   // Load address of the first code or data byte.
	Words     []string // Source words.
	Codes     []Code   // Instructions emitted for the line.
	Data      []byte   // Data emitted for the line, when there are no codes.
	LinkLabel string   // Label to resolve into the last code or data word.
}

// Size in bytes of the line's image.
func (line *Line) Size() int {
	return len(line.Codes)*4 + len(line.Data)
}

// Program is an assembled listing.
type Program struct {
	Base  uint32 // Load address of the image.
	Lines []Line
}

type Debug struct {
	*Line
	Index int // Index of the code within the line.
}

// Debug finds the line that emitted the code at pc.
func (prog *Program) Debug(pc uint32) (dbg Debug) {
	for n, line := range prog.Lines {
		if len(line.Codes) == 0 {
			continue
		}
		if pc >= line.Addr && pc < line.Addr+uint32(4*len(line.Codes)) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(pc-line.Addr) / 4,
			}
			break
		}
	}

	return
}

// Binary returns the flat little-endian image, to be loaded at Base.
func (prog *Program) Binary() (image []byte) {
	for _, line := range prog.Lines {
		offset := int(line.Addr - prog.Base)
		for len(image) < offset {
			image = append(image, 0)
		}
		for _, code := range line.Codes {
			image = binary.LittleEndian.AppendUint32(image, uint32(code))
		}
		image = append(image, line.Data...)
	}

	return
}

// Codes iterates over the address and instruction of every code.
func (prog *Program) Codes() iter.Seq2[uint32, Code] {
	return func(yield func(addr uint32, code Code) bool) {
		for _, line := range prog.Lines {
			for n, code := range line.Codes {
				if !yield(line.Addr+uint32(4*n), code) {
					return
				}
			}
		}
	}
}
