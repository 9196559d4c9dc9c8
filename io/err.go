// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"github.com/ezrec/tis/translate"
)

var f = translate.From

// ErrParseInput reports a word on a source's input that is not an integer.
type ErrParseInput string

func (err ErrParseInput) Error() string {
	return f("input '%v' is not a number", string(err))
}
