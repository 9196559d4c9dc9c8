// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package node

import (
	"maps"
	"slices"
	"strings"
)

// Program is an assembled node program.
type Program struct {
	Instructions []Instruction // Instruction stream, jump targets resolved.
	Label        map[string]int
	Source       []string // Source text, one entry per line.
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}

	return len(prog.Instructions)
}

// At returns the instruction at a program counter.
func (prog *Program) At(pc int) (inst *Instruction, ok bool) {
	if pc < 0 || pc >= prog.Len() {
		return
	}

	return &prog.Instructions[pc], true
}

// Line returns the source text of a line number.
func (prog *Program) Line(lineno int) (text string) {
	if prog == nil || lineno < 1 || lineno > len(prog.Source) {
		return
	}

	return prog.Source[lineno-1]
}

// Listing re-serializes the program, one label or instruction per line.
// Labels are emitted ahead of the instruction they name.
func (prog *Program) Listing() (lines []string) {
	if prog == nil {
		return
	}

	at := make(map[int][]string, len(prog.Label))
	for _, label := range slices.Sorted(maps.Keys(prog.Label)) {
		index := prog.Label[label]
		at[index] = append(at[index], label)
	}

	for n := 0; n <= len(prog.Instructions); n++ {
		for _, label := range at[n] {
			lines = append(lines, label+":")
		}
		if n < len(prog.Instructions) {
			lines = append(lines, "  "+prog.Instructions[n].String())
		}
	}

	return
}

// String returns the listing as text.
func (prog *Program) String() string {
	return strings.Join(prog.Listing(), "\n")
}
