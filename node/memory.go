// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package node

import (
	"fmt"
	"slices"
)

// Memory is a programless cell that buffers values on a bounded stack.
//
// Each step it first pulls one value from any neighbor that has one staged
// for it, then offers the top of the stack to the first neighbor ready to
// read. The offered value leaves the stack when it is staged, and still
// counts against STACK_LIMIT until it is claimed.
type Memory struct {
	Stack Stack

	blocked bool
	out     *Transfer
}

var _ Cell = (*Memory)(nil)

// NewMemory creates an empty memory node.
func NewMemory() *Memory {
	return &Memory{}
}

// held is the number of values stored, including one in flight.
func (m *Memory) held() (count int) {
	count = m.Stack.Len()
	if m.out != nil {
		count++
	}
	return
}

// Values returns the stack contents, bottom first.
func (m *Memory) Values() []int {
	return slices.Clone(m.Stack.Data)
}

func (m *Memory) Reset() {
	m.Stack.Reset()
	m.out = nil
	m.blocked = false
}

func (m *Memory) Blocked() bool {
	return m.blocked
}

// Passive returns true; a memory node never holds up stall detection.
func (m *Memory) Passive() bool {
	return true
}

func (m *Memory) Pending() (xfer Transfer, ok bool) {
	if m.out == nil {
		return
	}

	return *m.out, true
}

func (m *Memory) Claim() (value int) {
	if m.out == nil {
		return
	}

	value = m.out.Value
	m.out = nil

	return
}

// Accepts returns true while there is room on the stack.
func (m *Memory) Accepts(side Direction) bool {
	return m.held() < STACK_LIMIT
}

func (m *Memory) Step(ports Ports) (progress bool, err error) {
	if m.held() < STACK_LIMIT {
		value, _, ok := Receive(ports, ReadOrder...)
		if ok {
			m.Stack.Push(value)
			progress = true
		}
	}

	if m.out == nil && !m.Stack.Empty() {
		to, ok := Acceptor(ports, WriteOrder...)
		if ok {
			value, _ := m.Stack.Pop()
			m.out = &Transfer{Side: to, Value: value}
			progress = true
		}
	}

	m.blocked = !progress

	return
}

func (m *Memory) String() string {
	text := fmt.Sprintf("stack: %v\n", m.Stack.Data)
	if m.out != nil {
		text += fmt.Sprintf("  out: %d %v\n", m.out.Value, m.out.Side)
	}
	return text
}
