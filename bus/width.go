package bus

// Width is the width of a single bus access.
type Width int

//go:generate go tool stringer -linecomment -type=Width
const (
	BYTE = Width(0) // byte
	HALF = Width(1) // half
	WORD = Width(2) // word
)

// Size returns the number of bytes moved by an access of this width.
func (w Width) Size() uint32 {
	return 1 << uint(w)
}

// Valid returns true for the three defined access widths.
func (w Width) Valid() bool {
	return w >= BYTE && w <= WORD
}

// Mask returns the bits of a value carried by an access of this width.
func (w Width) Mask() uint32 {
	if w >= WORD {
		return 0xffffffff
	}
	return (1 << (8 * w.Size())) - 1
}
