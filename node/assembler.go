// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package node

import (
	"bufio"
	"io"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// labelClass is the set of characters a label may contain. A label is
// accepted if any one of its characters is in the set.
var labelClass = regexp.MustCompile("[A-Za-z0-9~`$%^&*()_\\-+={}\\[\\]|\\\\;'\"<>,.?/ ]")

// Assembler translates node source text into a Program.
type Assembler struct {
	Verbose     bool           // If set, logs each source line as it is assembled.
	Instruction []Instruction  // Instructions assembled so far.
	Label       map[string]int // Map of jump labels to instruction indexes.
}

// validateLabel checks a label token.
func validateLabel(label string) (err error) {
	if !labelClass.MatchString(label) {
		err = ErrLabelInvalid(label)
	}
	return
}

// parseArg parses a single operand of the given kind.
func (asm *Assembler) parseArg(kind ArgKind, word string) (arg Arg, err error) {
	reg, is_reg := regMap[word]

	switch kind {
	case ARG_SRC:
		if is_reg {
			arg.Register = reg
			return
		}
		var value int
		value, err = strconv.Atoi(word)
		if err != nil {
			err = ErrParseValue(word)
			return
		}
		if value < VALUE_MIN || value > VALUE_MAX {
			err = ErrValueRange(value)
			return
		}
		arg.Literal = true
		arg.Value = value
	case ARG_DST:
		if !is_reg {
			err = ErrTargetInvalid
			return
		}
		arg.Register = reg
	case ARG_LABEL:
		err = validateLabel(word)
		if err != nil {
			return
		}
		arg.Label = word
	default:
		err = ErrInstructionInvalid
	}

	return
}

// parseLine assembles a single comment-free line of source.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	label, rest, found := strings.Cut(line, ":")
	if found {
		label = strings.TrimSpace(label)
		if len(label) != 0 {
			err = validateLabel(label)
			if err != nil {
				return
			}
			// A redefined label moves to its latest position.
			asm.Label[label] = len(asm.Instruction)
		}
		line = rest
	}

	words := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(words) == 0 {
		return
	}

	op, ok := opMap[words[0]]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	schema := op.Schema()
	args := words[1:]
	if len(args) < len(schema) {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > len(schema) {
		err = ErrOpcodeExtraArgs
		return
	}

	inst := Instruction{LineNo: lineno, Op: op}
	for n, kind := range schema {
		var arg Arg
		arg, err = asm.parseArg(kind, args[n])
		if err != nil {
			return
		}
		inst.Args = append(inst.Args, arg)
	}

	// NOP is ADD NIL, as NIL always reads zero.
	if op == OP_NOP {
		inst.Op = OP_ADD
		inst.Args = []Arg{{Register: REG_NIL}}
		inst.Nop = true
	}

	asm.Instruction = append(asm.Instruction, inst)

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var source []string

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.Label == nil {
		asm.Label = make(map[string]int, 8)
	}
	clear(asm.Label)
	asm.Instruction = asm.Instruction[:0]

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1
		source = append(source, text)

		if asm.Verbose {
			zap.L().Debug("assemble", zap.Int("line", lineno), zap.String("text", text))
		}

		line, _, _ = strings.Cut(strings.TrimSpace(text), "#")

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of jump labels.
	for n := range asm.Instruction {
		inst := &asm.Instruction[n]
		for a := range inst.Args {
			arg := &inst.Args[a]
			if len(arg.Label) == 0 {
				continue
			}
			target, ok := asm.Label[arg.Label]
			if !ok {
				lineno = inst.LineNo
				line = source[lineno-1]
				err = ErrLabelMissing(arg.Label)
				return
			}
			arg.Value = target
		}
	}

	prog = &Program{
		Instructions: slices.Clone(asm.Instruction),
		Label:        maps.Clone(asm.Label),
		Source:       source,
	}

	return
}
