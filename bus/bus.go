// Package bus implements the minirisc memory bus.
//
// The bus owns a contiguous RAM region starting at RAM_BASE, and three
// write-only output device words starting at CHAROUT_BASE. Every other
// address is unmapped.
package bus

import (
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
)

// Output receives the side effects of the output device words.
type Output interface {
	// PutChar emits a single character.
	PutChar(c byte) error
	// PutInt emits a signed decimal integer.
	PutInt(value int32) error
	// PutHex emits a hexadecimal integer.
	PutHex(value uint32) error
}

// Bus is the simulation context for the memory bus.
type Bus struct {
	Verbose bool   // Set to log every fault.
	Ram     []byte // RAM contents, mapped at RAM_BASE.
	Output  Output // Device collaborator. Nil discards all output.
}

// NewBus creates a new bus with a specifically sized RAM.
func NewBus(size uint32) (b *Bus, err error) {
	if size < RAM_SIZE_MIN || size > RAM_SIZE_MAX {
		err = fmt.Errorf("%w: %d", ErrRamSize, size)
		return
	}

	b = &Bus{
		Ram: make([]byte, size),
	}

	return
}

// Defines returns the address map of the bus.
func (b *Bus) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"RAM_BASE":     fmt.Sprintf("%#x", RAM_BASE),
		"RAM_SIZE":     fmt.Sprintf("%#x", len(b.Ram)),
		"CHAROUT_BASE": fmt.Sprintf("%#x", CHAROUT_BASE),
		"INTOUT_BASE":  fmt.Sprintf("%#x", INTOUT_BASE),
		"HEXOUT_BASE":  fmt.Sprintf("%#x", HEXOUT_BASE),
	})
}

// isDevice returns true if the address is one of the device words.
func isDevice(addr uint32) bool {
	return addr == CHAROUT_BASE || addr == INTOUT_BASE || addr == HEXOUT_BASE
}

// locate checks an access against the RAM bounds and the width alignment,
// and returns the RAM offset of the access.
func (b *Bus) locate(op string, width Width, addr uint32) (offset uint32, err error) {
	defer func() {
		if err != nil {
			err = &ErrAccess{Op: op, Width: width, Addr: addr, Err: err}
			if b.Verbose {
				log.Printf("bus: %v", err)
			}
		}
	}()

	if !width.Valid() {
		err = ErrWidth
		return
	}

	end := uint64(RAM_BASE) + uint64(len(b.Ram))
	if addr < RAM_BASE || uint64(addr) >= end {
		err = ErrUnmapped
		return
	}

	if addr&(width.Size()-1) != 0 {
		err = ErrMisaligned
		return
	}

	// An aligned access may still run off the end of RAM whose size is not
	// a multiple of the width.
	if uint64(addr)+uint64(width.Size()) > end {
		err = ErrUnmapped
		return
	}

	offset = addr - RAM_BASE
	return
}

// Read reads a value from the bus.
//
// Device words always read as zero. Outside of RAM the read faults
// with ErrUnmapped. A misaligned half or word read faults with
// ErrMisaligned, which is the only recoverable bus fault.
func (b *Bus) Read(width Width, addr uint32) (value uint32, err error) {
	if isDevice(addr) {
		return
	}

	offset, err := b.locate(OP_READ, width, addr)
	if err != nil {
		return
	}

	ram := b.Ram[offset:]
	switch width {
	case BYTE:
		value = uint32(ram[0])
	case HALF:
		value = uint32(binary.LittleEndian.Uint16(ram))
	case WORD:
		value = binary.LittleEndian.Uint32(ram)
	}

	return
}

// Write writes a value, truncated to the access width, to the bus.
//
// Device words perform their output side effect. Every fault is fatal, and
// nothing is written when a fault is returned.
func (b *Bus) Write(width Width, addr uint32, value uint32) (err error) {
	if isDevice(addr) {
		return b.device(width, addr, value&width.Mask())
	}

	offset, err := b.locate(OP_WRITE, width, addr)
	if err != nil {
		return
	}

	ram := b.Ram[offset:]
	switch width {
	case BYTE:
		ram[0] = uint8(value)
	case HALF:
		binary.LittleEndian.PutUint16(ram, uint16(value))
	case WORD:
		binary.LittleEndian.PutUint32(ram, value)
	}

	return
}

// device performs the side effect of a device word write.
func (b *Bus) device(width Width, addr uint32, value uint32) (err error) {
	if !width.Valid() {
		err = &ErrAccess{Op: OP_WRITE, Width: width, Addr: addr, Err: ErrWidth}
		return
	}

	if b.Output == nil {
		return
	}

	switch addr {
	case CHAROUT_BASE:
		err = b.Output.PutChar(byte(value))
	case INTOUT_BASE:
		err = b.Output.PutInt(int32(value))
	case HEXOUT_BASE:
		err = b.Output.PutHex(value)
	}

	if err != nil {
		err = &ErrAccess{Op: OP_WRITE, Width: width, Addr: addr, Err: fmt.Errorf("%w: %w", ErrDevice, err)}
		if b.Verbose {
			log.Printf("bus: %v", err)
		}
	}

	return
}

// LoadImage copies a flat binary image to the start of RAM, and zeros
// the RAM past the image. RAM is not modified on error.
func (b *Bus) LoadImage(image []byte) (err error) {
	if len(image) > len(b.Ram) {
		err = fmt.Errorf("%w: %d > %d", ErrImageTooLarge, len(image), len(b.Ram))
		return
	}

	n := copy(b.Ram, image)
	clear(b.Ram[n:])

	return
}

// Load reads a flat binary image from a reader into the start of RAM,
// and returns the size of the image. RAM is not modified on error.
func (b *Bus) Load(input io.Reader) (size int, err error) {
	image, err := io.ReadAll(io.LimitReader(input, int64(len(b.Ram))+1))
	if err != nil {
		return
	}

	err = b.LoadImage(image)
	if err != nil {
		return
	}

	size = len(image)
	return
}
