// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/minirisc/bus"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":       "0",
	"RAM_BASE":     fmt.Sprintf("%#x", bus.RAM_BASE),
	"CHAROUT_BASE": fmt.Sprintf("%#x", bus.CHAROUT_BASE),
	"INTOUT_BASE":  fmt.Sprintf("%#x", bus.INTOUT_BASE),
	"HEXOUT_BASE":  fmt.Sprintf("%#x", bus.HEXOUT_BASE),
}

// Assembler is a single pass macro assembler for minirisc.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Base    uint32 // Load address of the program; RAM_BASE if zero.
	Lines   []Line // List of generated lines.

	predefine map[string]string   // Predefines
	expansion int                 // Macro expansion counter, for local labels.
	Label     map[string]uint32   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// Predefined returns the value of a predefined equate.
func (asm *Assembler) Predefined(equ string) (value string, ok bool) {
	value, ok = asm.predefine[equ]
	return
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}

	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil || v64 > 0xffffffff || v64 < -int64(0x80000000) {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)
	if invert {
		value = ^value
	}

	return
}

// immediate parses a signed immediate that must fit in bits.
func (asm *Assembler) immediate(word string, bits int) (imm int32, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}

	imm = int32(value)
	limit := int32(1) << (bits - 1)
	if imm < -limit || imm >= limit {
		err = ErrImmediateRange
		return
	}

	return
}

// register parses a register name.
func (asm *Assembler) register(word string) (r int, err error) {
	r, ok := ParseRegister(word)
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

var reOffset = regexp.MustCompile(`^(.*)\(([^()]+)\)$`)

// offset parses an 'imm(reg)' memory operand.
func (asm *Assembler) offset(word string) (imm int32, r int, err error) {
	match := reOffset.FindStringSubmatch(word)
	if match == nil {
		err = ErrTargetInvalid
		return
	}

	r, err = asm.register(match[2])
	if err != nil {
		return
	}

	if len(match[1]) != 0 {
		imm, err = asm.immediate(match[1], 12)
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeUint(uint(value32))
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeUint(uint(addr))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// stripComment removes ';' and '#' comments outside of quotes.
func stripComment(text string) string {
	var quote rune
	for n, c := range text {
		switch {
		case quote != 0 && c == '\\':
			// Escapes are resolved later; a quote after one is not a terminator.
		case quote != 0 && c == quote && (n == 0 || text[n-1] != '\\'):
			quote = 0
		case quote != 0:
		case c == '"' || c == '\'':
			quote = c
		case c == ';' || c == '#':
			return text[:n]
		}
	}

	return text
}

// splitWords splits on whitespace and commas, keeping "..." strings whole.
func splitWords(line string) (words []string) {
	var word strings.Builder
	inString := false
	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for n := 0; n < len(line); n++ {
		c := line[n]
		switch {
		case inString && c == '\\' && n+1 < len(line):
			word.WriteByte(c)
			n++
			word.WriteByte(line[n])
		case inString && c == '"':
			word.WriteByte(c)
			inString = false
			flush()
		case inString:
			word.WriteByte(c)
		case c == '"':
			flush()
			word.WriteByte(c)
			inString = true
		case c == ' ' || c == '\t' || c == ',':
			flush()
		default:
			word.WriteByte(c)
		}
	}
	flush()

	return
}

var reChar = regexp.MustCompile(`'\\?[^']'`)
var reParen = regexp.MustCompile(`\$\([^\$]*\)`)

// parseLine parses a single line into words, handling labels,
// equates and macro expansion.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reChar.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "'":
				str = "'"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\x00"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = splitWords(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
			continue
		}

		// Equates in 'imm(reg)' operands.
		match := reOffset.FindStringSubmatch(word)
		if match != nil {
			imm, reg := match[1], match[2]
			if equate, ok := asm.Equate[imm]; ok {
				imm = equate
			}
			if equate, ok := asm.Equate[reg]; ok {
				reg = equate
			}
			words[n] = imm + "(" + reg + ")"
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint32, 16)
		}
		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		asm.expansion++
		local := fmt.Sprintf("%v_%v_", name, asm.expansion)
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentAddr gets the address of the next emitted line.
func (asm *Assembler) currentAddr() uint32 {
	if len(asm.Lines) == 0 {
		return asm.base()
	}

	last := asm.Lines[len(asm.Lines)-1]

	return last.Addr + uint32(last.Size())
}

func (asm *Assembler) base() uint32 {
	if asm.Base == 0 {
		return bus.RAM_BASE
	}
	return asm.Base
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.expansion = 0
	asm.Lines = asm.Lines[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))
		words := splitWords(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Lines {
		op := &asm.Lines[n]

		if len(op.LinkLabel) == 0 {
			continue
		}

		err = asm.link(op)
		if err != nil {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			return
		}
	}

	prog = &Program{
		Base:  asm.base(),
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// link resolves the label reference of a line.
func (asm *Assembler) link(op *Line) (err error) {
	label := op.LinkLabel
	target, ok := asm.Label[label]
	if !ok {
		err = ErrLabelMissing(label)
		return
	}

	if len(op.Codes) == 0 {
		// .word LABEL
		if len(op.Data) < 4 {
			err = fmt.Errorf("%w: %v", ErrTargetInvalid, label)
			return
		}
		binary.LittleEndian.PutUint32(op.Data, target)
		return
	}

	index := len(op.Codes) - 1
	linked := &op.Codes[index]
	here := op.Addr + uint32(4*index)
	offset := int32(target - here)

	switch format, _ := linked.Opcode().Format(); format {
	case FORMAT_J:
		if offset < -(1<<20) || offset >= (1<<20) {
			err = ErrTargetInvalid
			return
		}
		*linked = MakeCodeJ(linked.Rd(), offset)
	case FORMAT_B:
		if offset < -(1<<12) || offset >= (1<<12) {
			err = ErrTargetInvalid
			return
		}
		*linked = MakeCodeB(linked.Opcode(), linked.Rs1(), linked.Rd(), offset)
	case FORMAT_I:
		// la RD, LABEL => lui RD, hi; addi RD, RD, lo
		if index < 1 || op.Codes[index-1].Opcode() != OP_LUI {
			err = fmt.Errorf("%w: %v", ErrTargetInvalid, label)
			return
		}
		hi, lo := splitHiLo(target)
		op.Codes[index-1] = MakeCodeU(OP_LUI, linked.Rd(), hi)
		*linked = MakeCodeI(OP_ADDI, linked.Rd(), linked.Rs1(), lo)
	default:
		err = fmt.Errorf("%w: %v", ErrTargetInvalid, label)
		return
	}

	return
}

// splitHiLo splits a value for a lui/addi pair.
func splitHiLo(value uint32) (hi uint32, lo int32) {
	hi = ((value + 0x800) >> 12) & 0xfffff
	lo = int32(value<<20) >> 20
	return
}

// isNumber returns true if the word is a literal value rather than a label.
func (asm *Assembler) isNumber(word string) bool {
	_, err := asm.valueOf(word)
	return err == nil
}

// target parses a branch or jump target, returning either an offset or a label.
func (asm *Assembler) target(word string, bits int) (offset int32, label string, err error) {
	if !asm.isNumber(word) {
		label = word
		return
	}

	offset, err = asm.immediate(word, bits)
	if err != nil {
		return
	}
	if offset&1 != 0 {
		err = ErrTargetMisaligned
		return
	}
	return
}

// pad extends data to a multiple of align bytes.
func pad(data []byte, align int) []byte {
	for len(data)%align != 0 {
		data = append(data, 0)
	}
	return data
}

// argCount checks the number of arguments.
func argCount(args []string, count int) (err error) {
	switch {
	case len(args) < count:
		err = ErrOpcodeMissingArgs
	case len(args) > count:
		err = ErrOpcodeExtraArgs
	}
	return
}

// opcodeMap maps mnemonics to opcodes.
var opcodeMap = func() map[string]Opcode {
	ops := make(map[string]Opcode, len(opcodeFormat))
	for op := range opcodeFormat {
		ops[op.String()] = op
	}
	return ops
}()

// branchZero maps pseudo-instruction compare-with-zero branches.
var branchZero = map[string]Opcode{
	"beqz": OP_BEQ,
	"bnez": OP_BNE,
	"bltz": OP_BLT,
	"bgez": OP_BGE,
}

// parseDirective evaluates data directives.
func (asm *Assembler) parseDirective(words []string) (data []byte, label string, err error) {
	args := words[1:]
	switch words[0] {
	case ".word":
		if len(args) == 0 {
			err = ErrOpcodeMissingArgs
			return
		}
		for _, arg := range args {
			var value uint32
			if !asm.isNumber(arg) && len(args) == 1 {
				label = arg
			} else {
				value, err = asm.valueOf(arg)
				if err != nil {
					return
				}
			}
			data = binary.LittleEndian.AppendUint32(data, value)
		}
	case ".ascii", ".asciz":
		if len(args) == 0 {
			err = ErrOpcodeMissingArgs
			return
		}
		for _, arg := range args {
			var str string
			str, err = strconv.Unquote(arg)
			if err != nil || !strings.HasPrefix(arg, `"`) {
				err = ErrStringInvalid
				return
			}
			data = append(data, str...)
			if words[0] == ".asciz" {
				data = append(data, 0)
			}
		}
		data = pad(data, 4)
	case ".space":
		err = argCount(args, 1)
		if err != nil {
			return
		}
		var size uint32
		size, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		if size > bus.RAM_SIZE_DEFAULT {
			err = ErrImmediateRange
			return
		}
		data = pad(make([]byte, size), 4)
	case ".align":
		err = argCount(args, 1)
		if err != nil {
			return
		}
		var align uint32
		align, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		if align == 0 || align&(align-1) != 0 || align > 0x1000 {
			err = ErrImmediateRange
			return
		}
		here := asm.currentAddr()
		for (here+uint32(len(data)))%align != 0 {
			data = append(data, 0)
		}
	default:
		err = ErrDirectiveInvalid
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []Code
	var data []byte
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || (len(codes) == 0 && len(data) == 0) {
			return
		}
		line := Line{LineNo: lineno, Addr: asm.currentAddr(), Words: initial_words, Codes: codes, Data: data, LinkLabel: label}
		asm.Lines = append(asm.Lines, line)
	}()

	if strings.HasPrefix(words[0], ".") {
		data, label, err = asm.parseDirective(words)
		return
	}

	name := strings.ToLower(words[0])
	args := words[1:]

	// Pseudo-instruction substitutions
	switch {
	case name == "nop" && len(args) == 0:
		name, args = "addi", []string{"x0", "x0", "0"}
	case name == "mv" && len(args) == 2:
		name, args = "addi", []string{args[0], args[1], "0"}
	case name == "not" && len(args) == 2:
		name, args = "xori", []string{args[0], args[1], "-1"}
	case name == "neg" && len(args) == 2:
		name, args = "sub", []string{args[0], "x0", args[1]}
	case name == "seqz" && len(args) == 2:
		name, args = "sltiu", []string{args[0], args[1], "1"}
	case name == "snez" && len(args) == 2:
		name, args = "sltu", []string{args[0], "x0", args[1]}
	case name == "j" && len(args) == 1:
		name, args = "jal", []string{"x0", args[0]}
	case name == "call" && len(args) == 1:
		name, args = "jal", []string{"ra", args[0]}
	case name == "jal" && len(args) == 1:
		args = []string{"ra", args[0]}
	case name == "jr" && len(args) == 1:
		name, args = "jalr", []string{"x0", args[0], "0"}
	case name == "ret" && len(args) == 0:
		name, args = "jalr", []string{"x0", "ra", "0"}
	case name == "halt" && len(args) == 0:
		name = "ebreak"
	case branchZero[name] != 0 && len(args) == 2:
		name, args = branchZero[name].String(), []string{args[0], "x0", args[1]}
	case name == "bgt" || name == "ble" || name == "bgtu" || name == "bleu":
		// Swapped operand forms.
		if len(args) == 3 {
			args = []string{args[1], args[0], args[2]}
		}
		name = map[string]string{"bgt": "blt", "ble": "bge", "bgtu": "bltu", "bleu": "bgeu"}[name]
	}

	switch name {
	case "li":
		err = argCount(args, 2)
		if err != nil {
			return
		}
		var rd int
		rd, err = asm.register(args[0])
		if err != nil {
			return
		}
		var value uint32
		value, err = asm.valueOf(args[1])
		if err != nil {
			return
		}
		imm := int32(value)
		if imm >= -2048 && imm < 2048 {
			codes = append(codes, MakeCodeI(OP_ADDI, rd, REG_ZERO, imm))
			return
		}
		hi, lo := splitHiLo(value)
		codes = append(codes, MakeCodeU(OP_LUI, rd, hi))
		if lo != 0 {
			codes = append(codes, MakeCodeI(OP_ADDI, rd, rd, lo))
		}
		return
	case "la":
		err = argCount(args, 2)
		if err != nil {
			return
		}
		var rd int
		rd, err = asm.register(args[0])
		if err != nil {
			return
		}
		var addr uint32
		if asm.isNumber(args[1]) {
			addr, err = asm.valueOf(args[1])
			if err != nil {
				return
			}
		} else {
			label = args[1]
		}
		hi, lo := splitHiLo(addr)
		codes = append(codes,
			MakeCodeU(OP_LUI, rd, hi),
			MakeCodeI(OP_ADDI, rd, rd, lo),
		)
		return
	}

	op, ok := opcodeMap[name]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	format, _ := op.Format()
	switch format {
	case FORMAT_R:
		err = argCount(args, 3)
		if err != nil {
			return
		}
		var rd, rs1, rs2 int
		rd, err = asm.register(args[0])
		if err == nil {
			rs1, err = asm.register(args[1])
		}
		if err == nil {
			rs2, err = asm.register(args[2])
		}
		if err != nil {
			return
		}
		codes = append(codes, MakeCodeR(op, rd, rs1, rs2))
	case FORMAT_I, FORMAT_LOAD:
		// op rd, rs1, imm or op rd, imm(rs1)
		if len(args) < 2 {
			err = ErrOpcodeMissingArgs
			return
		}
		var rd, rs1 int
		var imm int32
		rd, err = asm.register(args[0])
		if err != nil {
			return
		}
		switch {
		case len(args) == 2:
			imm, rs1, err = asm.offset(args[1])
		case format == FORMAT_LOAD:
			err = ErrOpcodeExtraArgs
		default:
			err = argCount(args, 3)
			if err == nil {
				rs1, err = asm.register(args[1])
			}
			if err == nil {
				imm, err = asm.immediate(args[2], 12)
			}
		}
		if err != nil {
			return
		}
		codes = append(codes, MakeCodeI(op, rd, rs1, imm))
	case FORMAT_SHIFT:
		err = argCount(args, 3)
		if err != nil {
			return
		}
		var rd, rs1 int
		var shamt uint32
		rd, err = asm.register(args[0])
		if err == nil {
			rs1, err = asm.register(args[1])
		}
		if err == nil {
			shamt, err = asm.valueOf(args[2])
		}
		if err != nil {
			return
		}
		if shamt > 31 {
			err = ErrImmediateRange
			return
		}
		codes = append(codes, MakeCodeShift(op, rd, rs1, shamt))
	case FORMAT_U:
		err = argCount(args, 2)
		if err != nil {
			return
		}
		var rd int
		var imm20 uint32
		rd, err = asm.register(args[0])
		if err == nil {
			imm20, err = asm.valueOf(args[1])
		}
		if err != nil {
			return
		}
		if imm20 > 0xfffff {
			err = ErrImmediateRange
			return
		}
		codes = append(codes, MakeCodeU(op, rd, imm20))
	case FORMAT_J:
		err = argCount(args, 2)
		if err != nil {
			return
		}
		var rd int
		var offset int32
		rd, err = asm.register(args[0])
		if err == nil {
			offset, label, err = asm.target(args[1], 21)
		}
		if err != nil {
			return
		}
		codes = append(codes, MakeCodeJ(rd, offset))
	case FORMAT_B:
		err = argCount(args, 3)
		if err != nil {
			return
		}
		var rs1, rs2 int
		var offset int32
		rs1, err = asm.register(args[0])
		if err == nil {
			rs2, err = asm.register(args[1])
		}
		if err == nil {
			offset, label, err = asm.target(args[2], 13)
		}
		if err != nil {
			return
		}
		codes = append(codes, MakeCodeB(op, rs1, rs2, offset))
	case FORMAT_S:
		err = argCount(args, 2)
		if err != nil {
			return
		}
		var rs1, rs2 int
		var imm int32
		rs2, err = asm.register(args[0])
		if err == nil {
			imm, rs1, err = asm.offset(args[1])
		}
		if err != nil {
			return
		}
		codes = append(codes, MakeCodeS(op, rs2, rs1, imm))
	case FORMAT_SYSTEM:
		err = argCount(args, 0)
		if err != nil {
			return
		}
		codes = append(codes, MakeCodeSystem(op))
	}

	return
}
