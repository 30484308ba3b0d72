package display

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/minirisc/device"
)

func TestScreen(t *testing.T) {
	assert := assert.New(t)

	screen := NewScreen(0, 0)
	columns, rows := screen.Size()
	assert.Equal(COLUMNS_DEFAULT, columns)
	assert.Equal(ROWS_DEFAULT, rows)
	assert.Equal("", screen.String())

	n, err := screen.Write([]byte("Hello\nWorld"))
	assert.NoError(err)
	assert.Equal(11, n)
	assert.Equal("Hello\nWorld", screen.String())

	col, row := screen.Cursor()
	assert.Equal(5, col)
	assert.Equal(1, row)

	screen.Clear()
	assert.Equal("", screen.String())
}

func TestScreen_Control(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		input    string
		expected string
	}){
		{"abc\rX", "Xbc"},
		{"abc\bX", "abX"},
		{"\bX", "X"},
		{"a\tb", "a       b"},
		{"a\x07b\x7fc", "abc"},
		{"junk\fclean", "clean"},
		{"a\n\nb", "a\n\nb"},
		{"0123456789\tX", "0123456789\nX"},
	}

	for _, entry := range table {
		screen := NewScreen(12, 4)
		_, err := fmt.Fprint(screen, entry.input)
		assert.NoError(err, entry.input)
		assert.Equal(entry.expected, screen.String(), entry.input)
	}
}

func TestScreen_Wrap(t *testing.T) {
	assert := assert.New(t)

	screen := NewScreen(4, 3)
	_, err := screen.Write([]byte("abcdefgh"))
	assert.NoError(err)
	assert.Equal([]string{"abcd", "efgh", ""}, screen.Lines())

	col, row := screen.Cursor()
	assert.Equal(0, col)
	assert.Equal(2, row)
}

func TestScreen_Scroll(t *testing.T) {
	assert := assert.New(t)

	screen := NewScreen(8, 3)
	for n := range 5 {
		fmt.Fprintf(screen, "line %d\n", n)
	}

	assert.Equal([]string{"line 3", "line 4", ""}, screen.Lines())
	assert.Equal("line 3\nline 4", screen.String())
}

func TestScreen_Console(t *testing.T) {
	assert := assert.New(t)

	screen := NewScreen(20, 4)
	con := &device.Console{Output: screen}

	assert.NoError(con.PutChar('>'))
	assert.NoError(con.PutInt(-7))
	assert.NoError(con.PutChar('\n'))
	assert.NoError(con.PutHex(0xcafe))

	assert.Equal(">-7\n0x0000cafe", screen.String())
}
