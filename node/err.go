// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package node

import (
	"errors"

	"github.com/ezrec/tis/translate"
)

var f = translate.From

var (
	// Runtime errors
	ErrHalt            = errors.New(f("halt and catch fire"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrRegisterInvalid = errors.New(f("register invalid"))

	// Assembler errors
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrTargetInvalid      = errors.New(f("target invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrLabelInvalid string

func (el ErrLabelInvalid) Error() string {
	return f("'%v' is not a label", string(el))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or register", string(err))
}

type ErrValueRange int

func (err ErrValueRange) Error() string {
	return f("%d is outside of %d..%d", int(err), VALUE_MIN, VALUE_MAX)
}

type ErrDirectionInvalid string

func (err ErrDirectionInvalid) Error() string {
	return f("'%v' is not a direction", string(err))
}

// ErrOpcode reports the instruction that failed at runtime.
type ErrOpcode Instruction

func (eo ErrOpcode) Error() string {
	return f("line %d '%v'", eo.LineNo, Instruction(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrSyntax locates an assembly error in the source.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
