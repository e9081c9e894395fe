// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/mcpu/cpu"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel      = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
)

// Assembler is a single pass macro assembler for a byte coded instruction set.
//
// A line is an optional set of 'label:' definitions, followed by either a
// mnemonic of the instruction set and its operands, or a directive:
//
//	.equ NAME VALUE
//	.byte VALUE...
//	.macro NAME ARG...
//	.endm
//
// Operands are separated by spaces or commas, and are numbers, 'c'
// characters, $(...) expressions, equates, or labels. Each operand is a
// single byte. Comments start with ';'.
type Assembler struct {
	Verbose      bool               // If set, verbosely logs the assembler actions.
	Instructions cpu.InstructionSet // Instruction set to assemble for.
	Opcode       []Opcode           // List of generated opcodes.

	predefine  map[string]string   // Predefines
	expansions int                 // Count of macro expansions.
	Label      map[string]int      // Map of labels to addresses.
	Equate     map[string]string   // Map of equates.
	Macro      map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate, for all
// subsequent calls to Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a numeric word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// operand encodes a word as an operand byte, or as a label to link.
func (asm *Assembler) operand(word string) (code byte, label string, err error) {
	if reLabel.MatchString(word) {
		label = word
		return
	}

	value, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if value < 0 || value > 0xff {
		err = ErrOperandRange(value)
		return
	}

	code = byte(value)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value int64
		value, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(value)
	}
	for key, addr := range asm.Label {
		if reLabel.MatchString(key) && !strings.Contains(key, ".") {
			pred[key] = starlark.MakeInt(addr)
		}
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
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// stripComment removes a ';' comment, ignoring ';' inside 'c' literals.
func stripComment(text string) string {
	quoted := false
	for n := 0; n < len(text); n++ {
		switch text[n] {
		case '\\':
			if quoted {
				n++
			}
		case '\'':
			quoted = !quoted
		case ';':
			if !quoted {
				return text[:n]
			}
		}
	}
	return text
}

// splitWords splits a line at spaces and commas.
func splitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
}

// parseLine parses a single line into words, handling equates, labels and
// macro expansion.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\000"
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
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
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
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reLabel.MatchString(label) {
			err = ErrInstructionInvalid
			return
		}

		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentAddress()
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
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		// '@' is a prefix unique to this expansion.
		asm.expansions++
		prefix := fmt.Sprintf("%v_%v_", name, asm.expansions)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", prefix)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentAddress gets the address of the next opcode.
func (asm *Assembler) currentAddress() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Address + len(last.Codes)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = map[string]int{}
	asm.Opcode = asm.Opcode[:0]
	asm.Macro = map[string](*Macro){}
	asm.expansions = 0
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v", lineno, text)
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
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		for index, label := range op.Links {
			addr, ok := asm.Label[label]
			if !ok {
				lineno, line = op.LineNo, strings.Join(op.Words, " ")
				err = ErrLabelMissing(label)
				return
			}
			if addr > 0xff {
				lineno, line = op.LineNo, strings.Join(op.Words, " ")
				err = ErrOperandRange(addr)
				return
			}
			op.Codes[index] = byte(addr)
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []byte
	var links map[int]string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := slices.Clone(words)

	defer func() {
		if err != nil || len(codes) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Address: asm.currentAddress(), Words: initial_words, Codes: codes, Links: links}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	operands := func(words []string) (err error) {
		for _, word := range words {
			var code byte
			var label string
			code, label, err = asm.operand(word)
			if err != nil {
				return
			}
			if len(label) != 0 {
				if links == nil {
					links = map[int]string{}
				}
				links[len(codes)] = label
			}
			codes = append(codes, code)
		}
		return
	}

	if words[0] == ".byte" {
		if len(words) < 2 {
			err = ErrOpcodeArgs
			return
		}
		err = operands(words[1:])
		return
	}

	opcode, ok := asm.Instructions.Lookup(words[0])
	if !ok {
		err = ErrOpcodeUnknown
		return
	}

	in := asm.Instructions[opcode]
	args := words[1:]
	if len(args) != int(in.Args) {
		err = ErrArgs{Opcode: opcode, Expected: int(in.Args), Got: len(args)}
		return
	}

	codes = append(codes, opcode)
	err = operands(args)

	return
}
