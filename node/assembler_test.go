// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package node

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var parityProgram = []string{
	"START:",
	"  MOV LEFT, ACC  # fetch",
	"  SAV",
	"CHECK:",
	"  SUB 2",
	"  JLZ START",
	"  JEZ EVEN",
	"  JMP CHECK",
	"",
	"EVEN:",
	"  SWP",
	"  MOV ACC, DOWN",
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, prog.Len())
	assert.Empty(prog.Label)
}

func TestAssemblerProgram(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(strings.Join(parityProgram, "\n")))
	require.NoError(t, err)

	assert.Equal(8, prog.Len())
	assert.Equal(map[string]int{"START": 0, "CHECK": 2, "EVEN": 6}, prog.Label)
	assert.Equal(len(parityProgram), len(prog.Source))

	expected := []Instruction{
		{2, OP_MOV, []Arg{{Register: REG_LEFT}, {Register: REG_ACC}}, false},
		{3, OP_SAV, nil, false},
		{5, OP_SUB, []Arg{{Literal: true, Value: 2}}, false},
		{6, OP_JLZ, []Arg{{Label: "START", Value: 0}}, false},
		{7, OP_JEZ, []Arg{{Label: "EVEN", Value: 6}}, false},
		{8, OP_JMP, []Arg{{Label: "CHECK", Value: 2}}, false},
		{11, OP_SWP, nil, false},
		{12, OP_MOV, []Arg{{Register: REG_ACC}, {Register: REG_DOWN}}, false},
	}

	if diff := cmp.Diff(expected, prog.Instructions); diff != "" {
		t.Errorf("instructions (-want +got):\n%s", diff)
	}

	assert.Equal("  MOV LEFT, ACC  # fetch", prog.Line(2))
	assert.Equal("", prog.Line(0))
	assert.Equal("", prog.Line(100))
}

func TestAssemblerSyntax(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		source string
		ok     bool
	}{
		{"MOV LEFT,ACC", true},
		{"MOV\tLEFT ACC", true},
		{"  add 1", false},
		{"top: NOP\nJMP top", true},
		{"X: Y: NOP", false},
		{"NOP # comment: not a label", true},
		{"# only a comment", true},
		{"END:", true},
		{"MOV -999, ACC", true},
		{"MOV +5, ACC", true},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(entry.source))
		if entry.ok {
			assert.NoError(err, entry.source)
		} else {
			assert.Error(err, entry.source)
		}
	}
}

func TestAssemblerNop(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("NOP"))
	require.NoError(t, err)

	inst := prog.Instructions[0]
	assert.Equal(OP_ADD, inst.Op)
	assert.Equal([]Arg{{Register: REG_NIL}}, inst.Args)
	assert.True(inst.Nop)
	assert.Equal("NOP", inst.String())
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		source string
		lineno int
		err    error
	}{
		{"FOO", 1, ErrInstructionInvalid},
		{"NOP\nmov 1, ACC", 2, ErrInstructionInvalid},
		{"MOV 1", 1, ErrOpcodeValueMissing},
		{"ADD 1, 2", 1, ErrOpcodeExtraArgs},
		{"SWP ACC", 1, ErrOpcodeExtraArgs},
		{"MOV 1, 2", 1, ErrTargetInvalid},
		{"ADD 1000", 1, ErrValueRange(1000)},
		{"ADD -1000", 1, ErrValueRange(-1000)},
		{"ADD x1", 1, ErrParseValue("x1")},
		{"ADD 0x10", 1, ErrParseValue("0x10")},
		{"NOP\n\nJMP NOWHERE", 3, ErrLabelMissing("NOWHERE")},
		{"@@: NOP", 1, ErrLabelInvalid("@@")},
		{"JMP @", 1, ErrLabelInvalid("@")},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(entry.source))
		assert.ErrorIs(err, entry.err, entry.source)

		var es *ErrSyntax
		if assert.True(errors.As(err, &es), entry.source) {
			assert.Equal(entry.lineno, es.LineNo, entry.source)
		}
	}
}

func TestAssemblerReuse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	first, err := asm.Parse(strings.NewReader("A: NOP\nJMP A"))
	require.NoError(t, err)

	second, err := asm.Parse(strings.NewReader("B: SWP"))
	require.NoError(t, err)

	assert.Equal(2, first.Len())
	assert.Equal(map[string]int{"A": 0}, first.Label)
	assert.Equal(1, second.Len())
	assert.Equal(map[string]int{"B": 0}, second.Label)
}

func TestAssemblerLabelRedefined(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("A: NOP\nA: SWP\nJMP A"))
	require.NoError(t, err)

	assert.Equal(map[string]int{"A": 1}, prog.Label)
	assert.Equal(1, prog.Instructions[2].Args[0].Value)
}

func TestProgramListing(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(parityProgram, "\n")))
	require.NoError(t, err)

	listing := []string{
		"START:",
		"  MOV LEFT, ACC",
		"  SAV",
		"CHECK:",
		"  SUB 2",
		"  JLZ START",
		"  JEZ EVEN",
		"  JMP CHECK",
		"EVEN:",
		"  SWP",
		"  MOV ACC, DOWN",
	}
	assert.Equal(listing, prog.Listing())

	again, err := asm.Parse(strings.NewReader(prog.String()))
	require.NoError(t, err)

	ignoreLine := cmpopts.IgnoreFields(Instruction{}, "LineNo")
	if diff := cmp.Diff(prog.Instructions, again.Instructions, ignoreLine); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
	assert.Equal(prog.Label, again.Label)
}

func TestProgramListing_Labels(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("B: A: NOP\nJRO -1\nEND:"))
	assert.Error(err, "only one label per line")

	prog, err = asm.Parse(strings.NewReader("B:\nA: NOP\nJRO -1\nEND:"))
	require.NoError(t, err)

	assert.Equal([]string{
		"A:",
		"B:",
		"  NOP",
		"  JRO -1",
		"END:",
	}, prog.Listing())

	var empty *Program
	assert.Nil(empty.Listing())
	assert.Equal(0, empty.Len())
}
