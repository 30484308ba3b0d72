package bus

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	calls []string
}

func (rec *recorder) PutChar(c byte) error {
	rec.calls = append(rec.calls, fmt.Sprintf("char:%c", c))
	return nil
}

func (rec *recorder) PutInt(value int32) error {
	rec.calls = append(rec.calls, fmt.Sprintf("int:%d", value))
	return nil
}

func (rec *recorder) PutHex(value uint32) error {
	rec.calls = append(rec.calls, fmt.Sprintf("hex:%x", value))
	return nil
}

func TestNewBus(t *testing.T) {
	assert := assert.New(t)

	b, err := NewBus(1024)
	assert.NoError(err)
	assert.Equal(1024, len(b.Ram))
	assert.Nil(b.Output)

	_, err = NewBus(0)
	assert.ErrorIs(err, ErrRamSize)

	_, err = NewBus(RAM_SIZE_MAX + 1)
	assert.ErrorIs(err, ErrRamSize)
}

func TestBus_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	b, err := NewBus(4096)
	assert.NoError(err)

	for range 256 {
		addr := RAM_BASE + (rand.Uint32()%1024)*4
		value := rand.Uint32()
		assert.NoError(b.Write(WORD, addr, value))
		got, err := b.Read(WORD, addr)
		assert.NoError(err)
		assert.Equal(value, got, "addr 0x%08x", addr)
	}

	for _, width := range []Width{BYTE, HALF, WORD} {
		addr := RAM_BASE + 4096 - width.Size()
		assert.NoError(b.Write(width, addr, 0xa5a5a5a5))
		got, err := b.Read(width, addr)
		assert.NoError(err)
		assert.Equal(uint32(0xa5a5a5a5)&width.Mask(), got, width.String())
	}
}

func TestBus_LittleEndian(t *testing.T) {
	assert := assert.New(t)

	b, err := NewBus(64)
	assert.NoError(err)

	assert.NoError(b.Write(WORD, RAM_BASE, 0x12345678))
	assert.Equal([]byte{0x78, 0x56, 0x34, 0x12}, b.Ram[0:4])

	value, err := b.Read(HALF, RAM_BASE+2)
	assert.NoError(err)
	assert.Equal(uint32(0x1234), value)

	value, err = b.Read(BYTE, RAM_BASE+1)
	assert.NoError(err)
	assert.Equal(uint32(0x56), value)

	assert.NoError(b.Write(BYTE, RAM_BASE+3, 0xffffffaa))
	assert.NoError(b.Write(HALF, RAM_BASE, 0xffffbbcc))
	value, err = b.Read(WORD, RAM_BASE)
	assert.NoError(err)
	assert.Equal(uint32(0xaa34bbcc), value)
}

func TestBus_Unmapped(t *testing.T) {
	assert := assert.New(t)

	b, err := NewBus(4096)
	assert.NoError(err)

	table := []uint32{
		0,
		CHAROUT_BASE - 4,
		CHAROUT_BASE + 1,
		CHAROUT_BASE + 12,
		RAM_BASE - 4,
		RAM_BASE + 4096,
		RAM_BASE + 8192,
		0xfffffffc,
	}

	for _, addr := range table {
		for _, width := range []Width{BYTE, HALF, WORD} {
			value, err := b.Read(width, addr)
			assert.ErrorIs(err, ErrUnmapped, "read 0x%08x", addr)
			assert.True(IsFatal(err))
			assert.Equal(uint32(0), value)

			err = b.Write(width, addr, 0x1234)
			assert.ErrorIs(err, ErrUnmapped, "write 0x%08x", addr)
			assert.True(IsFatal(err))

			var access *ErrAccess
			assert.ErrorAs(err, &access)
			assert.Equal(addr, access.Addr)
			assert.Equal(width, access.Width)
			assert.Equal(OP_WRITE, access.Op)
		}
	}

	// Word straddling the end of RAM.
	small, err := NewBus(6)
	assert.NoError(err)
	_, err = small.Read(WORD, RAM_BASE+4)
	assert.ErrorIs(err, ErrUnmapped)
	_, err = small.Read(HALF, RAM_BASE+4)
	assert.NoError(err)
}

func TestBus_Misaligned(t *testing.T) {
	assert := assert.New(t)

	b, err := NewBus(4096)
	assert.NoError(err)
	copy(b.Ram, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	table := [](struct {
		width Width
		addr  uint32
	}){
		{HALF, RAM_BASE + 1},
		{HALF, RAM_BASE + 3},
		{WORD, RAM_BASE + 1},
		{WORD, RAM_BASE + 2},
		{WORD, RAM_BASE + 3},
		{HALF, RAM_BASE + 4095},
		{WORD, RAM_BASE + 4093},
		{WORD, RAM_BASE + 4094},
		{WORD, RAM_BASE + 4095},
	}

	for _, entry := range table {
		_, err := b.Read(entry.width, entry.addr)
		assert.ErrorIs(err, ErrMisaligned, "read %v 0x%08x", entry.width, entry.addr)
		assert.False(IsFatal(err), "read is recoverable")

		err = b.Write(entry.width, entry.addr, 0xffffffff)
		assert.ErrorIs(err, ErrMisaligned, "write %v 0x%08x", entry.width, entry.addr)
		assert.True(IsFatal(err), "write is fatal")
	}

	// Nothing was written.
	assert.Equal([]byte{1, 2, 3, 4, 5, 6, 7, 8}, b.Ram[:8])

	// Bytes have no alignment constraint.
	value, err := b.Read(BYTE, RAM_BASE+3)
	assert.NoError(err)
	assert.Equal(uint32(4), value)
}

func TestBus_Devices(t *testing.T) {
	assert := assert.New(t)

	b, err := NewBus(4096)
	assert.NoError(err)

	// Without an output, writes are discarded.
	assert.NoError(b.Write(WORD, CHAROUT_BASE, 'x'))

	rec := &recorder{}
	b.Output = rec

	assert.NoError(b.Write(WORD, CHAROUT_BASE, 'H'))
	assert.NoError(b.Write(BYTE, CHAROUT_BASE, 0x169))
	assert.NoError(b.Write(WORD, INTOUT_BASE, 0xfffffff6))
	assert.NoError(b.Write(HALF, INTOUT_BASE, 0xfffffff6))
	assert.NoError(b.Write(WORD, HEXOUT_BASE, 0xcafe))

	assert.Equal([]string{"char:H", "char:i", "int:-10", "int:65526", "hex:cafe"}, rec.calls)

	for _, addr := range []uint32{CHAROUT_BASE, INTOUT_BASE, HEXOUT_BASE} {
		for _, width := range []Width{BYTE, HALF, WORD} {
			value, err := b.Read(width, addr)
			assert.NoError(err)
			assert.Equal(uint32(0), value)
		}
	}

	// Reads have no side effects.
	assert.Equal(5, len(rec.calls))
}

func TestBus_Width(t *testing.T) {
	assert := assert.New(t)

	b, err := NewBus(64)
	assert.NoError(err)

	_, err = b.Read(Width(3), RAM_BASE)
	assert.ErrorIs(err, ErrWidth)
	err = b.Write(Width(-1), RAM_BASE, 0)
	assert.ErrorIs(err, ErrWidth)
	err = b.Write(Width(7), CHAROUT_BASE, 'a')
	assert.ErrorIs(err, ErrWidth)

	assert.Equal("byte", BYTE.String())
	assert.Equal("half", HALF.String())
	assert.Equal("word", WORD.String())
	assert.Equal("Width(9)", Width(9).String())
}

func TestBus_LoadImage(t *testing.T) {
	assert := assert.New(t)

	b, err := NewBus(16)
	assert.NoError(err)

	assert.NoError(b.LoadImage([]byte{0xde, 0xad, 0xbe, 0xef}))
	value, err := b.Read(WORD, RAM_BASE)
	assert.NoError(err)
	assert.Equal(uint32(0xefbeadde), value)

	err = b.LoadImage(make([]byte, 17))
	assert.ErrorIs(err, ErrImageTooLarge)

	size, err := b.Load(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}))
	assert.NoError(err)
	assert.Equal(16, size)
	assert.Equal(byte(16), b.Ram[15])

	_, err = b.Load(strings.NewReader(strings.Repeat("x", 17)))
	assert.ErrorIs(err, ErrImageTooLarge)
	assert.Equal(byte(16), b.Ram[15], "ram unchanged")

	// A shorter image zeros the rest of RAM.
	size, err = b.Load(bytes.NewReader([]byte{0xaa, 0xbb}))
	assert.NoError(err)
	assert.Equal(2, size)
	assert.Equal([]byte{0xaa, 0xbb}, b.Ram[:2])
	assert.Equal(make([]byte, 14), b.Ram[2:])
}

func TestBus_Defines(t *testing.T) {
	assert := assert.New(t)

	b, err := NewBus(0x1000)
	assert.NoError(err)

	defines := map[string]string{}
	for key, value := range b.Defines() {
		defines[key] = value
	}

	assert.Equal("0x80000000", defines["RAM_BASE"])
	assert.Equal("0x1000", defines["RAM_SIZE"])
	assert.Equal("0x10000000", defines["CHAROUT_BASE"])
	assert.Equal("0x10000004", defines["INTOUT_BASE"])
	assert.Equal("0x10000008", defines["HEXOUT_BASE"])
}
