// Package display keeps a scrolling text screen of console output, for
// hosts that redraw the console every frame.
package display

import (
	"strings"
	"sync"
)

const (
	COLUMNS_DEFAULT = 80
	ROWS_DEFAULT    = 25
	TAB_WIDTH       = 8
)

// Screen is a fixed size text grid. Output past the last row scrolls
// the grid up by one row.
type Screen struct {
	mutex   sync.Mutex
	columns int
	lines   [][]byte
	cursorX int
	cursorY int
}

// NewScreen creates an empty screen of columns by rows cells.
func NewScreen(columns, rows int) (screen *Screen) {
	if columns <= 0 {
		columns = COLUMNS_DEFAULT
	}
	if rows <= 0 {
		rows = ROWS_DEFAULT
	}

	screen = &Screen{
		columns: columns,
		lines:   make([][]byte, rows),
	}
	screen.clear()

	return
}

// Size returns the screen dimensions.
func (screen *Screen) Size() (columns, rows int) {
	return screen.columns, len(screen.lines)
}

// Cursor returns the output position.
func (screen *Screen) Cursor() (col, row int) {
	screen.mutex.Lock()
	defer screen.mutex.Unlock()

	return screen.cursorX, screen.cursorY
}

func (screen *Screen) clear() {
	for n := range screen.lines {
		screen.lines[n] = make([]byte, screen.columns)
	}
	screen.cursorX = 0
	screen.cursorY = 0
}

// Clear blanks the screen and homes the cursor.
func (screen *Screen) Clear() {
	screen.mutex.Lock()
	defer screen.mutex.Unlock()

	screen.clear()
}

// newline moves the cursor to the start of the next row, scrolling if needed.
func (screen *Screen) newline() {
	screen.cursorX = 0
	screen.cursorY++
	if screen.cursorY < len(screen.lines) {
		return
	}

	copy(screen.lines, screen.lines[1:])
	screen.lines[len(screen.lines)-1] = make([]byte, screen.columns)
	screen.cursorY = len(screen.lines) - 1
}

// putChar places a single byte.
func (screen *Screen) putChar(ch byte) {
	switch ch {
	case '\r':
		screen.cursorX = 0
	case '\n':
		screen.newline()
	case '\b':
		if screen.cursorX > 0 {
			screen.cursorX--
		}
	case '\t':
		next := (screen.cursorX + TAB_WIDTH) &^ (TAB_WIDTH - 1)
		if next >= screen.columns {
			screen.newline()
		} else {
			screen.cursorX = next
		}
	case '\f':
		screen.clear()
	default:
		if ch < 0x20 || ch == 0x7f {
			return
		}
		screen.lines[screen.cursorY][screen.cursorX] = ch
		screen.cursorX++
		if screen.cursorX >= screen.columns {
			screen.newline()
		}
	}
}

// Write places text on the screen. It never fails.
func (screen *Screen) Write(data []byte) (n int, err error) {
	screen.mutex.Lock()
	defer screen.mutex.Unlock()

	for _, ch := range data {
		screen.putChar(ch)
	}

	n = len(data)
	return
}

// Lines returns the rows of the screen, without trailing blanks.
func (screen *Screen) Lines() (lines []string) {
	screen.mutex.Lock()
	defer screen.mutex.Unlock()

	lines = make([]string, len(screen.lines))
	for n, line := range screen.lines {
		end := len(line)
		for end > 0 && (line[end-1] == 0 || line[end-1] == ' ') {
			end--
		}
		lines[n] = strings.ReplaceAll(string(line[:end]), "\x00", " ")
	}

	return
}

// String returns the screen text, without trailing blank rows.
func (screen *Screen) String() string {
	lines := screen.Lines()
	end := len(lines)
	for end > 0 && len(lines[end-1]) == 0 {
		end--
	}

	return strings.Join(lines[:end], "\n")
}
