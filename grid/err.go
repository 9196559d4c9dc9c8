// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package grid

import (
	"errors"

	"github.com/ezrec/tis/translate"
)

var f = translate.From

var (
	ErrDeadlock    = errors.New(f("all nodes blocked"))
	ErrLayoutEmpty = errors.New(f("layout empty"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Tick   int
	At     Coord
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("tick %d cell %v line %d %v", err.Tick, err.At, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrCellShared reports a cell placed at more than one position.
type ErrCellShared struct {
	At    Coord
	Prior Coord
}

func (err *ErrCellShared) Error() string {
	return f("cell at %v already placed at %v", err.At, err.Prior)
}
