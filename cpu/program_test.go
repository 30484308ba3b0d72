package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/minirisc/bus"
)

func testProgram() *Program {
	base := bus.RAM_BASE
	return &Program{
		Base: base,
		Lines: []Line{
			{LineNo: 1, Addr: base, Words: []string{"li", "a0", "0x12345678"},
				Codes: []Code{MakeCodeU(OP_LUI, 10, 0x12345), MakeCodeI(OP_ADDI, 10, 10, 0x678)}},
			{LineNo: 2, Addr: base + 8, Words: []string{".word", "7"},
				Data: []byte{7, 0, 0, 0}},
			{LineNo: 4, Addr: base + 12, Words: []string{"ebreak"},
				Codes: []Code{MakeCodeSystem(OP_EBREAK)}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(bus.RAM_BASE)
	assert.NotNil(dbg.Line)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(bus.RAM_BASE + 4)
	assert.NotNil(dbg.Line)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(1, dbg.Index)
	assert.Equal(OP_ADDI, dbg.Codes[dbg.Index].Opcode())

	dbg = prog.Debug(bus.RAM_BASE + 12)
	assert.NotNil(dbg.Line)
	assert.Equal(4, dbg.LineNo)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	for _, pc := range []uint32{0, bus.RAM_BASE + 8, bus.RAM_BASE + 16} {
		dbg := prog.Debug(pc)
		assert.Nil(dbg.Line)
		assert.Equal(0, dbg.Index)
	}
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	assert.Equal([]byte{
		0x01, 0x55, 0x34, 0x12,
		0x13, 0xa5, 0x80, 0x67,
		0x07, 0x00, 0x00, 0x00,
		0x27, 0x00, 0x00, 0x00,
	}, prog.Binary())

	// Gaps are zero filled.
	prog.Lines[2].Addr += 4
	image := prog.Binary()
	assert.Equal(20, len(image))
	assert.Equal([]byte{0, 0, 0, 0}, image[12:16])
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var addrs []uint32
	var codes []Code
	for addr, code := range prog.Codes() {
		addrs = append(addrs, addr)
		codes = append(codes, code)
	}

	assert.Equal([]uint32{bus.RAM_BASE, bus.RAM_BASE + 4, bus.RAM_BASE + 12}, addrs)
	assert.Equal(OP_EBREAK, codes[2].Opcode())

	count := 0
	for range prog.Codes() {
		count++
		if count == 1 {
			break
		}
	}
	assert.Equal(1, count)

	count = 0
	for range (&Program{}).Codes() {
		count++
	}
	assert.Equal(0, count)
}

func TestProgram_Integration_ParseAndDebug(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{Base: bus.RAM_BASE + 0x100}
	program := strings.Join([]string{
		"li a0, 0x100",
		"li a1, 0x12345678",
		"add a0, a0, a1",
	}, "\n")

	prog, err := asm.Parse(strings.NewReader(program))
	assert.NoError(err)
	assert.Equal(bus.RAM_BASE+0x100, prog.Base)
	assert.Equal(16, len(prog.Binary()))

	dbg := prog.Debug(bus.RAM_BASE + 0x100)
	assert.NotNil(dbg.Line)
	assert.Equal(1, dbg.LineNo)

	dbg = prog.Debug(bus.RAM_BASE + 0x108)
	assert.NotNil(dbg.Line)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(bus.RAM_BASE + 0x10c)
	assert.NotNil(dbg.Line)
	assert.Equal(3, dbg.LineNo)
}
