package cpu

import (
	"fmt"
)

// Opcode is the 7-bit operation selector of an instruction.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_LUI    = Opcode(1)  // lui
	OP_AUIPC  = Opcode(2)  // auipc
	OP_JAL    = Opcode(3)  // jal
	OP_JALR   = Opcode(4)  // jalr
	OP_BEQ    = Opcode(5)  // beq
	OP_BNE    = Opcode(6)  // bne
	OP_BLT    = Opcode(7)  // blt
	OP_BGE    = Opcode(8)  // bge
	OP_BLTU   = Opcode(9)  // bltu
	OP_BGEU   = Opcode(10) // bgeu
	OP_LB     = Opcode(11) // lb
	OP_LH     = Opcode(12) // lh
	OP_LW     = Opcode(13) // lw
	OP_LBU    = Opcode(14) // lbu
	OP_LHU    = Opcode(15) // lhu
	OP_SB     = Opcode(16) // sb
	OP_SH     = Opcode(17) // sh
	OP_SW     = Opcode(18) // sw
	OP_ADDI   = Opcode(19) // addi
	OP_SLTI   = Opcode(20) // slti
	OP_SLTIU  = Opcode(21) // sltiu
	OP_XORI   = Opcode(22) // xori
	OP_ORI    = Opcode(23) // ori
	OP_ANDI   = Opcode(24) // andi
	OP_SLLI   = Opcode(25) // slli
	OP_SRLI   = Opcode(26) // srli
	OP_SRAI   = Opcode(27) // srai
	OP_ADD    = Opcode(28) // add
	OP_SUB    = Opcode(29) // sub
	OP_SLL    = Opcode(30) // sll
	OP_SRL    = Opcode(31) // srl
	OP_SRA    = Opcode(32) // sra
	OP_SLT    = Opcode(33) // slt
	OP_SLTU   = Opcode(34) // sltu
	OP_XOR    = Opcode(35) // xor
	OP_OR     = Opcode(36) // or
	OP_AND    = Opcode(37) // and
	OP_ECALL  = Opcode(38) // ecall
	OP_EBREAK = Opcode(39) // ebreak
	OP_MUL    = Opcode(56) // mul
	OP_MULH   = Opcode(57) // mulh
	OP_MULHSU = Opcode(58) // mulhsu
	OP_MULHU  = Opcode(59) // mulhu
	OP_DIV    = Opcode(60) // div
	OP_DIVU   = Opcode(61) // divu
	OP_REM    = Opcode(62) // rem
	OP_REMU   = Opcode(63) // remu
)

// Format is the operand layout class of an opcode.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_R      = Format(0) // r
	FORMAT_I      = Format(1) // i
	FORMAT_SHIFT  = Format(2) // shift
	FORMAT_LOAD   = Format(3) // load
	FORMAT_U      = Format(4) // u
	FORMAT_J      = Format(5) // j
	FORMAT_B      = Format(6) // b
	FORMAT_S      = Format(7) // s
	FORMAT_SYSTEM = Format(8) // system
)

// opcodeFormat is the closed set of known opcodes.
var opcodeFormat = map[Opcode]Format{
	OP_LUI:    FORMAT_U,
	OP_AUIPC:  FORMAT_U,
	OP_JAL:    FORMAT_J,
	OP_JALR:   FORMAT_I,
	OP_BEQ:    FORMAT_B,
	OP_BNE:    FORMAT_B,
	OP_BLT:    FORMAT_B,
	OP_BGE:    FORMAT_B,
	OP_BLTU:   FORMAT_B,
	OP_BGEU:   FORMAT_B,
	OP_LB:     FORMAT_LOAD,
	OP_LH:     FORMAT_LOAD,
	OP_LW:     FORMAT_LOAD,
	OP_LBU:    FORMAT_LOAD,
	OP_LHU:    FORMAT_LOAD,
	OP_SB:     FORMAT_S,
	OP_SH:     FORMAT_S,
	OP_SW:     FORMAT_S,
	OP_ADDI:   FORMAT_I,
	OP_SLTI:   FORMAT_I,
	OP_SLTIU:  FORMAT_I,
	OP_XORI:   FORMAT_I,
	OP_ORI:    FORMAT_I,
	OP_ANDI:   FORMAT_I,
	OP_SLLI:   FORMAT_SHIFT,
	OP_SRLI:   FORMAT_SHIFT,
	OP_SRAI:   FORMAT_SHIFT,
	OP_ADD:    FORMAT_R,
	OP_SUB:    FORMAT_R,
	OP_SLL:    FORMAT_R,
	OP_SRL:    FORMAT_R,
	OP_SRA:    FORMAT_R,
	OP_SLT:    FORMAT_R,
	OP_SLTU:   FORMAT_R,
	OP_XOR:    FORMAT_R,
	OP_OR:     FORMAT_R,
	OP_AND:    FORMAT_R,
	OP_ECALL:  FORMAT_SYSTEM,
	OP_EBREAK: FORMAT_SYSTEM,
	OP_MUL:    FORMAT_R,
	OP_MULH:   FORMAT_R,
	OP_MULHSU: FORMAT_R,
	OP_MULHU:  FORMAT_R,
	OP_DIV:    FORMAT_R,
	OP_DIVU:   FORMAT_R,
	OP_REM:    FORMAT_R,
	OP_REMU:   FORMAT_R,
}

// Valid returns true if the opcode is a known operation.
func (op Opcode) Valid() bool {
	_, ok := opcodeFormat[op]
	return ok
}

// Format returns the operand layout of a known opcode.
func (op Opcode) Format() (format Format, ok bool) {
	format, ok = opcodeFormat[op]
	return
}

// Code is a single raw 32-bit instruction word.
//
//	bits  0..6   opcode
//	bits  7..11  rd (second source of branches and stores)
//	bits 12..16  rs1
//	bits 17..21  rs2
//	bits 20..31  imm12
//	bits 12..31  imm20
//	bits 20..24  shamt
type Code uint32

// Opcode returns the opcode field.
func (code Code) Opcode() Opcode {
	return Opcode(code & 0x7f)
}

// Rd returns the destination register field.
func (code Code) Rd() int {
	return int((code >> 7) & 0x1f)
}

// Rs1 returns the first source register field.
func (code Code) Rs1() int {
	return int((code >> 12) & 0x1f)
}

// Rs2 returns the second source register field.
func (code Code) Rs2() int {
	return int((code >> 17) & 0x1f)
}

// Imm12 returns the raw 12-bit immediate field.
func (code Code) Imm12() uint32 {
	return uint32(code>>20) & 0xfff
}

// Imm20 returns the raw 20-bit upper immediate field.
func (code Code) Imm20() uint32 {
	return uint32(code>>12) & 0xfffff
}

// Shamt returns the 5-bit shift amount field.
func (code Code) Shamt() uint32 {
	return uint32(code>>20) & 0x1f
}

func reg(r int) uint32 {
	return uint32(r) & 0x1f
}

// MakeCodeR creates a register-register instruction.
func MakeCodeR(op Opcode, rd, rs1, rs2 int) Code {
	return Code(uint32(op)&0x7f | reg(rd)<<7 | reg(rs1)<<12 | reg(rs2)<<17)
}

// MakeCodeI creates a register-immediate, load or jalr instruction.
func MakeCodeI(op Opcode, rd, rs1 int, imm int32) Code {
	return Code(uint32(op)&0x7f | reg(rd)<<7 | reg(rs1)<<12 | (uint32(imm)&0xfff)<<20)
}

// MakeCodeShift creates a shift-by-immediate instruction.
func MakeCodeShift(op Opcode, rd, rs1 int, shamt uint32) Code {
	return Code(uint32(op)&0x7f | reg(rd)<<7 | reg(rs1)<<12 | (shamt&0x1f)<<20)
}

// MakeCodeU creates an upper immediate instruction.
func MakeCodeU(op Opcode, rd int, imm20 uint32) Code {
	return Code(uint32(op)&0x7f | reg(rd)<<7 | (imm20&0xfffff)<<12)
}

// MakeCodeJ creates a jal instruction to a byte offset from the
// instruction. Bit 0 of the offset is not encoded.
func MakeCodeJ(rd int, offset int32) Code {
	return Code(uint32(OP_JAL) | reg(rd)<<7 | ((uint32(offset)>>1)&0xfffff)<<12)
}

// MakeCodeB creates a branch comparing rs1 with rs2, to a byte offset
// from the instruction. Bit 0 of the offset is not encoded.
func MakeCodeB(op Opcode, rs1, rs2 int, offset int32) Code {
	return Code(uint32(op)&0x7f | reg(rs2)<<7 | reg(rs1)<<12 | ((uint32(offset)>>1)&0xfff)<<20)
}

// MakeCodeS creates a store of rs2 to rs1+imm.
func MakeCodeS(op Opcode, rs2, rs1 int, imm int32) Code {
	return Code(uint32(op)&0x7f | reg(rs2)<<7 | reg(rs1)<<12 | (uint32(imm)&0xfff)<<20)
}

// MakeCodeSystem creates an ecall or ebreak instruction.
func MakeCodeSystem(op Opcode) Code {
	return Code(uint32(op) & 0x7f)
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	inst, err := Decode(code)
	if err != nil {
		return fmt.Sprintf(".word 0x%08x", uint32(code))
	}

	return inst.String()
}
