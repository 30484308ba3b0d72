package bus

const (
	RAM_BASE         = uint32(0x8000_0000) // First RAM address.
	RAM_SIZE_DEFAULT = uint32(64 << 20)    // Default RAM size, in bytes.
	RAM_SIZE_MIN     = uint32(4)           // Smallest RAM able to hold one instruction.
	RAM_SIZE_MAX     = uint32(0x8000_0000) // RAM may not wrap the address space.

	CHAROUT_BASE = uint32(0x1000_0000) // Character output.
	INTOUT_BASE  = CHAROUT_BASE + 4    // Signed decimal output.
	HEXOUT_BASE  = CHAROUT_BASE + 8    // Hexadecimal output.
)
