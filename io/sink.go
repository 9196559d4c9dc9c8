// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"fmt"
	"io"
	"slices"

	"github.com/ezrec/tis/node"
)

// Sink claims every value its neighbors send it, recording each one and
// writing it to Output as a decimal line.
type Sink struct {
	Output io.Writer

	values  []int
	blocked bool
}

var _ node.Cell = (*Sink)(nil)

// Values returns the values received so far.
func (sk *Sink) Values() []int {
	return slices.Clone(sk.values)
}

// Step receives at most one value per tick.
func (sk *Sink) Step(ports node.Ports) (progress bool, err error) {
	value, _, ok := node.Receive(ports, node.ReadOrder...)
	sk.blocked = !ok
	if !ok {
		return
	}

	sk.values = append(sk.values, value)
	progress = true

	if sk.Output != nil {
		_, err = fmt.Fprintln(sk.Output, value)
	}

	return
}

func (sk *Sink) Reset() {
	sk.values = nil
	sk.blocked = false
}

func (sk *Sink) Blocked() bool {
	return sk.blocked
}

func (sk *Sink) Passive() bool {
	return true
}

// Pending returns false; a sink never writes.
func (sk *Sink) Pending() (xfer node.Transfer, ok bool) {
	return
}

func (sk *Sink) Claim() (value int) {
	return
}

// Accepts returns true; a sink is always ready to read.
func (sk *Sink) Accepts(side node.Direction) bool {
	return true
}
