// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package node

import (
	"strconv"
	"strings"
)

// Op is an instruction mnemonic.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_NOP = Op(0)  // NOP
	OP_MOV = Op(1)  // MOV
	OP_SWP = Op(2)  // SWP
	OP_SAV = Op(3)  // SAV
	OP_ADD = Op(4)  // ADD
	OP_SUB = Op(5)  // SUB
	OP_NEG = Op(6)  // NEG
	OP_JMP = Op(7)  // JMP
	OP_JEZ = Op(8)  // JEZ
	OP_JNZ = Op(9)  // JNZ
	OP_JGZ = Op(10) // JGZ
	OP_JLZ = Op(11) // JLZ
	OP_JRO = Op(12) // JRO
	OP_HCF = Op(13) // HCF
)

// ArgKind is the kind of operand an opcode expects.
type ArgKind int

const (
	ARG_SRC   = ArgKind(0) // Register or integer literal.
	ARG_DST   = ArgKind(1) // Register.
	ARG_LABEL = ArgKind(2) // Jump target.
)

// opSchema is the operand list of every opcode.
var opSchema = map[Op][]ArgKind{
	OP_NOP: nil,
	OP_MOV: {ARG_SRC, ARG_DST},
	OP_SWP: nil,
	OP_SAV: nil,
	OP_ADD: {ARG_SRC},
	OP_SUB: {ARG_SRC},
	OP_NEG: nil,
	OP_JMP: {ARG_LABEL},
	OP_JEZ: {ARG_LABEL},
	OP_JNZ: {ARG_LABEL},
	OP_JGZ: {ARG_LABEL},
	OP_JLZ: {ARG_LABEL},
	OP_JRO: {ARG_SRC},
	OP_HCF: nil,
}

// opMap maps mnemonics to opcodes.
var opMap = func() map[string]Op {
	ops := make(map[string]Op, len(opSchema))
	for op := range opSchema {
		ops[op.String()] = op
	}
	return ops
}()

// Schema returns the operand kinds the opcode takes.
func (op Op) Schema() []ArgKind {
	return opSchema[op]
}

// Reads returns true if the opcode's first operand is a source.
func (op Op) Reads() bool {
	schema := op.Schema()
	return len(schema) > 0 && schema[0] == ARG_SRC
}

// Arg is an assembled operand.
type Arg struct {
	Register Register // Register operand, when neither Literal nor Label is set.
	Literal  bool     // Value is an integer literal.
	Value    int      // Literal value, or the resolved jump target.
	Label    string   // Jump target name.
}

// String returns the operand as it would be written in source.
func (arg Arg) String() string {
	switch {
	case len(arg.Label) != 0:
		return arg.Label
	case arg.Literal:
		return strconv.Itoa(arg.Value)
	default:
		return arg.Register.String()
	}
}

// Instruction is a single assembled line of source.
type Instruction struct {
	LineNo int   // Source line, starting at 1.
	Op     Op    // Opcode.
	Args   []Arg // Operands, one per Op.Schema() entry.
	Nop    bool  // Lowered from NOP.
}

// String returns the instruction in source form.
func (inst Instruction) String() string {
	if inst.Nop {
		return OP_NOP.String()
	}

	if len(inst.Args) == 0 {
		return inst.Op.String()
	}

	args := make([]string, len(inst.Args))
	for n, arg := range inst.Args {
		args[n] = arg.String()
	}

	return inst.Op.String() + " " + strings.Join(args, ", ")
}
