// Package device provides the output collaborators bound to the minirisc
// device words.
package device

import (
	"fmt"
	"io"

	"github.com/ezrec/minirisc/bus"
)

// Console writes the character, decimal and hexadecimal output of the
// device words to a byte stream.
type Console struct {
	Output io.Writer // Destination. Nil discards output.

	Written int  // Total bytes emitted.
	Last    byte // Last byte emitted.
}

var _ bus.Output = (*Console)(nil)

// write emits a string, and tracks the output statistics.
func (con *Console) write(text string) (err error) {
	if len(text) == 0 {
		return
	}

	con.Written += len(text)
	con.Last = text[len(text)-1]

	if con.Output == nil {
		return
	}

	_, err = io.WriteString(con.Output, text)

	return
}

// PutChar emits a single byte.
func (con *Console) PutChar(c byte) (err error) {
	return con.write(string([]byte{c}))
}

// PutInt emits a signed decimal value.
func (con *Console) PutInt(value int32) (err error) {
	return con.write(fmt.Sprintf("%d", value))
}

// PutHex emits a value as 0x followed by eight hex digits.
func (con *Console) PutHex(value uint32) (err error) {
	return con.write(fmt.Sprintf("0x%08x", value))
}

// Reset clears the output statistics.
func (con *Console) Reset() {
	con.Written = 0
	con.Last = 0
}
