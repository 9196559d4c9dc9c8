// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package io provides the cells that connect the tis fabric to the outside
// world: a Source feeding integers in through one side, and a Sink that
// collects whatever its neighbors send it.
package io

import (
	"bufio"
	"io"
	"strconv"

	"github.com/ezrec/tis/node"
)

// Source offers a sequence of integers, one at a time, to the neighbor on
// Side. Values are taken from Values if set, otherwise read as whitespace
// separated decimal words from Input.
type Source struct {
	Side   node.Direction
	Values []int
	Input  io.Reader

	index   int
	scanner *bufio.Scanner
	out     *node.Transfer
	blocked bool
}

var _ node.Cell = (*Source)(nil)

// next returns the next input value.
func (sc *Source) next() (value int, ok bool, err error) {
	if sc.Values != nil || sc.Input == nil {
		if sc.index >= len(sc.Values) {
			return
		}
		value = sc.Values[sc.index]
		sc.index++
		return value, true, nil
	}

	if sc.scanner == nil {
		sc.scanner = bufio.NewScanner(sc.Input)
		sc.scanner.Split(bufio.ScanWords)
	}

	if !sc.scanner.Scan() {
		err = sc.scanner.Err()
		return
	}

	word := sc.scanner.Text()
	value, err = strconv.Atoi(word)
	if err != nil {
		err = ErrParseInput(word)
		return
	}

	return value, true, nil
}

// Remaining returns the number of listed values not yet offered.
func (sc *Source) Remaining() int {
	return max(0, len(sc.Values)-sc.index)
}

// Step stages the next value once the previous one has been claimed.
func (sc *Source) Step(ports node.Ports) (progress bool, err error) {
	sc.blocked = sc.out != nil
	if sc.out != nil {
		return
	}

	if ports.Neighbor(sc.Side) == nil {
		sc.blocked = true
		return
	}

	value, ok, err := sc.next()
	if err != nil || !ok {
		return
	}

	sc.out = &node.Transfer{Side: sc.Side, Value: node.Clamp(value)}
	progress = true

	return
}

// Reset restarts listed values. Values read from Input cannot be rewound.
func (sc *Source) Reset() {
	sc.index = 0
	sc.out = nil
	sc.blocked = false
}

func (sc *Source) Blocked() bool {
	return sc.blocked
}

func (sc *Source) Passive() bool {
	return true
}

func (sc *Source) Pending() (xfer node.Transfer, ok bool) {
	if sc.out == nil {
		return
	}

	return *sc.out, true
}

func (sc *Source) Claim() (value int) {
	if sc.out == nil {
		return
	}

	value = sc.out.Value
	sc.out = nil

	return
}

// Accepts returns false; a source never reads.
func (sc *Source) Accepts(side node.Direction) bool {
	return false
}
