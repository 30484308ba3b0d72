package device

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/minirisc/bus"
)

func TestConsole(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	con := &Console{Output: out}

	assert.NoError(con.PutChar('H'))
	assert.NoError(con.PutChar('i'))
	assert.NoError(con.PutInt(-42))
	assert.NoError(con.PutChar(' '))
	assert.NoError(con.PutHex(0xbeef))
	assert.NoError(con.PutChar('\n'))

	assert.Equal("Hi-42 0x0000beef\n", out.String())
	assert.Equal(out.Len(), con.Written)
	assert.Equal(byte('\n'), con.Last)

	con.Reset()
	assert.Equal(0, con.Written)
	assert.Equal(byte(0), con.Last)
}

func TestConsole_Discard(t *testing.T) {
	assert := assert.New(t)

	con := &Console{}
	assert.NoError(con.PutInt(2147483647))
	assert.Equal(10, con.Written)
	assert.Equal(byte('7'), con.Last)
}

type failWriter struct{}

var errFail = errors.New("fail")

func (failWriter) Write(p []byte) (int, error) {
	return 0, errFail
}

func TestConsole_OnBus(t *testing.T) {
	assert := assert.New(t)

	b, err := bus.NewBus(4096)
	assert.NoError(err)

	out := &bytes.Buffer{}
	con := &Console{Output: out}
	b.Output = con

	assert.NoError(b.Write(bus.BYTE, bus.CHAROUT_BASE, 'A'))
	assert.NoError(b.Write(bus.WORD, bus.INTOUT_BASE, 0xffffffff))
	assert.NoError(b.Write(bus.WORD, bus.HEXOUT_BASE, 0x12345678))
	assert.Equal("A-10x12345678", out.String())

	con.Output = failWriter{}
	err = b.Write(bus.BYTE, bus.CHAROUT_BASE, 'A')
	assert.ErrorIs(err, bus.ErrDevice)
	assert.ErrorIs(err, errFail)
	assert.True(bus.IsFatal(err))
}
