package cpu

import (
	"fmt"
)

// Instruction is a decoded instruction word. The opcode is always valid.
//
// Branches and stores carry their second source register in Rs2, so the
// executor never needs to know that the encoding borrows the rd field.
type Instruction struct {
	Op  Opcode
	Rd  int
	Rs1 int
	Rs2 int
	Imm uint32 // Immediate, already extended for the format.
}

// SignExtend treats value as an n+1 bit two's complement field, with bit
// n as the sign, and replicates the sign bit into the upper bits.
func SignExtend(value uint32, n int) uint32 {
	if n < 0 || n >= 31 {
		return value
	}

	shift := 31 - n
	return uint32(int32(value<<shift) >> shift)
}

// Decode an instruction word.
func Decode(code Code) (inst Instruction, err error) {
	op := code.Opcode()
	format, ok := op.Format()
	if !ok {
		err = ErrOpcode(code)
		return
	}

	inst.Op = op
	switch format {
	case FORMAT_R:
		inst.Rd = code.Rd()
		inst.Rs1 = code.Rs1()
		inst.Rs2 = code.Rs2()
	case FORMAT_I, FORMAT_LOAD:
		inst.Rd = code.Rd()
		inst.Rs1 = code.Rs1()
		inst.Imm = SignExtend(code.Imm12(), 11)
	case FORMAT_SHIFT:
		inst.Rd = code.Rd()
		inst.Rs1 = code.Rs1()
		inst.Imm = code.Shamt()
	case FORMAT_U:
		inst.Rd = code.Rd()
		inst.Imm = code.Imm20() << 12
	case FORMAT_J:
		inst.Rd = code.Rd()
		inst.Imm = SignExtend(code.Imm20()<<1, 20)
	case FORMAT_B:
		inst.Rs1 = code.Rs1()
		inst.Rs2 = code.Rd()
		inst.Imm = SignExtend(code.Imm12()<<1, 12)
	case FORMAT_S:
		inst.Rs1 = code.Rs1()
		inst.Rs2 = code.Rd()
		inst.Imm = SignExtend(code.Imm12(), 11)
	case FORMAT_SYSTEM:
		// No operands.
	}

	return
}

// Format returns the operand layout of the instruction.
func (inst Instruction) Format() Format {
	format, _ := inst.Op.Format()
	return format
}

// Code re-encodes the instruction.
func (inst Instruction) Code() Code {
	imm := int32(inst.Imm)
	switch inst.Format() {
	case FORMAT_R:
		return MakeCodeR(inst.Op, inst.Rd, inst.Rs1, inst.Rs2)
	case FORMAT_I, FORMAT_LOAD:
		return MakeCodeI(inst.Op, inst.Rd, inst.Rs1, imm)
	case FORMAT_SHIFT:
		return MakeCodeShift(inst.Op, inst.Rd, inst.Rs1, inst.Imm)
	case FORMAT_U:
		return MakeCodeU(inst.Op, inst.Rd, inst.Imm>>12)
	case FORMAT_J:
		return MakeCodeJ(inst.Rd, imm)
	case FORMAT_B:
		return MakeCodeB(inst.Op, inst.Rs1, inst.Rs2, imm)
	case FORMAT_S:
		return MakeCodeS(inst.Op, inst.Rs2, inst.Rs1, imm)
	default:
		return MakeCodeSystem(inst.Op)
	}
}

// String returns the assembly language form of the instruction.
func (inst Instruction) String() string {
	op := inst.Op
	imm := int32(inst.Imm)
	x := func(r int) string { return fmt.Sprintf("x%d", r) }

	switch inst.Format() {
	case FORMAT_R:
		return fmt.Sprintf("%v %v, %v, %v", op, x(inst.Rd), x(inst.Rs1), x(inst.Rs2))
	case FORMAT_I:
		return fmt.Sprintf("%v %v, %v, %d", op, x(inst.Rd), x(inst.Rs1), imm)
	case FORMAT_LOAD:
		return fmt.Sprintf("%v %v, %d(%v)", op, x(inst.Rd), imm, x(inst.Rs1))
	case FORMAT_SHIFT:
		return fmt.Sprintf("%v %v, %v, %d", op, x(inst.Rd), x(inst.Rs1), inst.Imm)
	case FORMAT_U:
		return fmt.Sprintf("%v %v, 0x%x", op, x(inst.Rd), inst.Imm>>12)
	case FORMAT_J:
		return fmt.Sprintf("%v %v, %d", op, x(inst.Rd), imm)
	case FORMAT_B:
		return fmt.Sprintf("%v %v, %v, %d", op, x(inst.Rs1), x(inst.Rs2), imm)
	case FORMAT_S:
		return fmt.Sprintf("%v %v, %d(%v)", op, x(inst.Rs2), imm, x(inst.Rs1))
	default:
		return op.String()
	}
}
