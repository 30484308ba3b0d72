package cpu

import (
	"fmt"
	"log"

	"github.com/ezrec/minirisc/bus"
)

// Bus is the memory bus seen by the processor.
type Bus interface {
	Read(width bus.Width, addr uint32) (value uint32, err error)
	Write(width bus.Width, addr uint32, value uint32) (err error)
}

var _ Bus = (*bus.Bus)(nil)

// Cpu is the simulation context for the processor core.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Bus Bus // Memory bus, not owned by the processor.

	Pc       uint32            // Address of the next instruction to fetch.
	Register [REG_COUNT]uint32 // Register bank. Register 0 is always zero.
	Ir       uint32            // Most recently fetched instruction word.
	Halted   bool              // Set when execution has stopped.
	Cause    error             // Reason for the halt, nil for a breakpoint.

	Ticks int // Retired instruction counter.
}

// aluImmediate maps register-immediate operations to their register-register form.
var aluImmediate = map[Opcode]Opcode{
	OP_ADDI:  OP_ADD,
	OP_SLTI:  OP_SLT,
	OP_SLTIU: OP_SLTU,
	OP_XORI:  OP_XOR,
	OP_ORI:   OP_OR,
	OP_ANDI:  OP_AND,
	OP_SLLI:  OP_SLL,
	OP_SRLI:  OP_SRL,
	OP_SRAI:  OP_SRA,
}

var loadWidth = map[Opcode]bus.Width{
	OP_LB:  bus.BYTE,
	OP_LH:  bus.HALF,
	OP_LW:  bus.WORD,
	OP_LBU: bus.BYTE,
	OP_LHU: bus.HALF,
}

var storeWidth = map[Opcode]bus.Width{
	OP_SB: bus.BYTE,
	OP_SH: bus.HALF,
	OP_SW: bus.WORD,
}

// NewCpu creates a new processor starting at pc, attached to a memory bus.
func NewCpu(pc uint32, b Bus) (cpu *Cpu) {
	cpu = &Cpu{
		Bus: b,
		Pc:  pc,
	}

	return
}

// String returns the current processor state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("% 5s: %04x_%04x\n", "pc", cpu.Pc>>16, cpu.Pc&0xffff)
	text += fmt.Sprintf("% 5s: %04x_%04x %v\n", "ir", cpu.Ir>>16, cpu.Ir&0xffff, Code(cpu.Ir))
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %04x_%04x\n", RegisterName(n), val>>16, val&0xffff)
	}

	return
}

// Reset the processor state.
// - Clears the registers and instruction register.
// - Clears the halt condition.
// - Zeros statistics counters.
// - Sets the program counter to pc.
func (cpu *Cpu) Reset(pc uint32) {
	if cpu.Verbose {
		log.Printf("cpu: reset to 0x%08x", pc)
	}

	clear(cpu.Register[:])
	cpu.Pc = pc
	cpu.Ir = 0
	cpu.Halted = false
	cpu.Cause = nil
	cpu.Ticks = 0
}

// setRegister is the only register write path; writes to x0 are discarded.
func (cpu *Cpu) setRegister(r int, value uint32) {
	if r == REG_ZERO {
		return
	}
	cpu.Register[r] = value
}

// halt stops the processor with a cause.
func (cpu *Cpu) halt(cause error) {
	if cpu.Verbose {
		if cause == nil {
			log.Printf("cpu: halt at 0x%08x", cpu.Pc)
		} else {
			log.Printf("cpu: halt at 0x%08x: %v", cpu.Pc, cause)
		}
	}

	cpu.Halted = true
	cpu.Cause = cause
}

// fault halts the processor on a fatal error.
func (cpu *Cpu) fault(err error) error {
	err = &ErrFault{Pc: cpu.Pc, Ir: cpu.Ir, Err: err}
	cpu.halt(err)
	return err
}

// Fetch reads the instruction word at the program counter.
// Every bus fault during fetch is fatal.
func (cpu *Cpu) Fetch() (err error) {
	word, err := cpu.Bus.Read(bus.WORD, cpu.Pc)
	if err != nil {
		err = cpu.fault(err)
		return
	}

	cpu.Ir = word
	return
}

// Step fetches and executes a single instruction.
func (cpu *Cpu) Step() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	err = cpu.Fetch()
	if err != nil {
		return
	}

	err = cpu.Execute(cpu.Ir)
	return
}

// Run steps the processor until it halts.
// Returns the fatal fault that stopped it, or nil for a clean halt.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		err = cpu.Step()
		if err != nil {
			return
		}
	}

	return
}

// retire commits the next program counter.
func (cpu *Cpu) retire(next uint32) {
	cpu.Pc = next
	cpu.Ticks++
}

// Execute executes a single fetched instruction word.
//
// A misaligned load halts the processor, recording the fault in Cause,
// without an error return. All other faults are fatal, and are returned.
func (cpu *Cpu) Execute(word uint32) (err error) {
	cpu.Ir = word

	inst, err := Decode(Code(word))
	if err != nil {
		err = cpu.fault(err)
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %08x: %v", cpu.Pc, inst)
	}

	pc := cpu.Pc
	next := pc + 4

	rs1 := cpu.Register[inst.Rs1]
	rs2 := cpu.Register[inst.Rs2]
	imm := inst.Imm

	switch op := inst.Op; inst.Format() {
	case FORMAT_U:
		if op == OP_AUIPC {
			imm += pc
		}
		cpu.setRegister(inst.Rd, imm)
	case FORMAT_J:
		cpu.setRegister(inst.Rd, next)
		next = pc + imm
	case FORMAT_B:
		if branch(op, rs1, rs2) {
			next = pc + imm
		}
	case FORMAT_LOAD:
		var value uint32
		value, err = cpu.load(op, rs1+imm)
		if err != nil {
			if bus.IsFatal(err) {
				err = cpu.fault(err)
				return
			}
			cpu.halt(err)
			err = nil
			return
		}
		cpu.setRegister(inst.Rd, value)
	case FORMAT_S:
		err = cpu.Bus.Write(storeWidth[op], rs1+imm, rs2)
		if err != nil {
			err = cpu.fault(err)
			return
		}
	case FORMAT_I, FORMAT_SHIFT:
		if op == OP_JALR {
			target := (rs1 + imm) &^ 1
			cpu.setRegister(inst.Rd, next)
			next = target
			break
		}
		cpu.setRegister(inst.Rd, doAlu(aluImmediate[op], rs1, imm))
	case FORMAT_R:
		cpu.setRegister(inst.Rd, doAlu(op, rs1, rs2))
	case FORMAT_SYSTEM:
		switch op {
		case OP_ECALL:
			cpu.setRegister(REG_A0, 0xffffffff)
		case OP_EBREAK:
			cpu.retire(next)
			cpu.halt(nil)
			return
		}
	}

	cpu.retire(next)
	return
}

// load reads and extends a value from the bus.
func (cpu *Cpu) load(op Opcode, addr uint32) (value uint32, err error) {
	value, err = cpu.Bus.Read(loadWidth[op], addr)
	if err != nil {
		return
	}

	switch op {
	case OP_LB:
		value = SignExtend(value, 7)
	case OP_LH:
		value = SignExtend(value, 15)
	}

	return
}

// branch evaluates a branch condition.
func branch(op Opcode, a, b uint32) bool {
	switch op {
	case OP_BEQ:
		return a == b
	case OP_BNE:
		return a != b
	case OP_BLT:
		return int32(a) < int32(b)
	case OP_BGE:
		return int32(a) >= int32(b)
	case OP_BLTU:
		return a < b
	case OP_BGEU:
		return a >= b
	}
	return false
}

// doAlu performs a register-register operation.
func doAlu(op Opcode, a, b uint32) (value uint32) {
	switch op {
	case OP_ADD:
		value = a + b
	case OP_SUB:
		value = a - b
	case OP_SLL:
		value = a << (b & 0x1f)
	case OP_SRL:
		value = a >> (b & 0x1f)
	case OP_SRA:
		value = uint32(int32(a) >> (b & 0x1f))
	case OP_SLT:
		if int32(a) < int32(b) {
			value = 1
		}
	case OP_SLTU:
		if a < b {
			value = 1
		}
	case OP_XOR:
		value = a ^ b
	case OP_OR:
		value = a | b
	case OP_AND:
		value = a & b
	case OP_MUL:
		value = a * b
	case OP_MULH:
		value = uint32(uint64(int64(int32(a))*int64(int32(b))) >> 32)
	case OP_MULHSU:
		value = uint32(uint64(int64(int32(a))*int64(b)) >> 32)
	case OP_MULHU:
		value = uint32((uint64(a) * uint64(b)) >> 32)
	case OP_DIV:
		switch {
		case b == 0:
			value = 0xffffffff
		case a == 0x8000_0000 && b == 0xffffffff:
			value = a
		default:
			value = uint32(int32(a) / int32(b))
		}
	case OP_DIVU:
		if b == 0 {
			value = 0xffffffff
		} else {
			value = a / b
		}
	case OP_REM:
		switch {
		case b == 0:
			value = a
		case a == 0x8000_0000 && b == 0xffffffff:
			value = 0
		default:
			value = uint32(int32(a) % int32(b))
		}
	case OP_REMU:
		if b == 0 {
			value = a
		} else {
			value = a % b
		}
	}

	return
}
