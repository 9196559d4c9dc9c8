// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package layout

import (
	"errors"

	"github.com/ezrec/tis/translate"
)

var f = translate.From

var (
	ErrCellUnknown = errors.New(f("cell not defined"))
	ErrInputShared = errors.New(f("only one source may read the input stream"))
)

type ErrFormat string

func (err ErrFormat) Error() string {
	return f("'%v' is not a known layout format", string(err))
}

type ErrTopology string

func (err ErrTopology) Error() string {
	return f("'%v' is not a topology", string(err))
}

type ErrKind string

func (err ErrKind) Error() string {
	return f("'%v' is not a cell kind", string(err))
}

// ErrValue reports a layout value of the wrong type.
type ErrValue struct {
	Name string
	Want string
}

func (err *ErrValue) Error() string {
	return f("%v must be %v", err.Name, err.Want)
}

// ErrCell locates an error in a named cell.
type ErrCell struct {
	Name string
	Err  error
}

func (err *ErrCell) Error() string {
	return f("cell %v: %v", err.Name, err.Err)
}

func (err *ErrCell) Unwrap() error {
	return err.Err
}
