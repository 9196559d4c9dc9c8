// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package grid

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	tisio "github.com/ezrec/tis/io"
	"github.com/ezrec/tis/node"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func compile(t *testing.T, program ...string) *node.Node {
	n, err := node.Compile(strings.Join(program, "\n"))
	require.NoError(t, err)
	return n
}

func TestGrid_New(t *testing.T) {
	assert := assert.New(t)

	_, err := NewGrid(nil)
	assert.ErrorIs(err, ErrLayoutEmpty)

	_, err = NewGrid([][]node.Cell{{}, {}})
	assert.ErrorIs(err, ErrLayoutEmpty)

	_, err = NewGrid([][]node.Cell{{nil, nil}})
	assert.ErrorIs(err, ErrLayoutEmpty)

	a := node.NewMemory()
	b := node.NewMemory()
	c := node.NewMemory()

	g, err := NewGrid([][]node.Cell{{a}, {b, c}})
	require.NoError(t, err)
	assert.Equal(2, g.Rows)
	assert.Equal(2, g.Cols)
	assert.False(g.Torus())
	assert.Nil(g.At(Coord{0, 1}))
	assert.Nil(g.At(Coord{5, 5}))
	assert.Equal(c, g.At(Coord{1, 1}))

	var order []Coord
	for at := range g.All() {
		order = append(order, at)
	}
	assert.Equal([]Coord{{0, 0}, {1, 0}, {1, 1}}, order)

	_, err = NewGrid([][]node.Cell{{a, a}})
	var shared *ErrCellShared
	if assert.True(errors.As(err, &shared)) {
		assert.Equal(Coord{0, 1}, shared.At)
		assert.Equal(Coord{0, 0}, shared.Prior)
	}
}

func TestGrid_Generator(t *testing.T) {
	assert := assert.New(t)

	sink := &tisio.Sink{}
	g, err := NewGrid([][]node.Cell{{
		compile(t, "ADD 1", "MOV ACC, RIGHT"),
		sink,
	}})
	require.NoError(t, err)

	ticks, err := g.Run(10)
	assert.NoError(err)
	assert.Equal(10, ticks)
	assert.Equal(10, g.Ticks())
	assert.Equal([]int{1, 2, 3, 4, 5}, sink.Values())
}

func TestGrid_Streams(t *testing.T) {
	assert := assert.New(t)

	values := []int{1, 2, 3, 4, 5}

	// Only passive cells: every tick stalls, but values still move.
	sink := &tisio.Sink{}
	g, err := NewGrid([][]node.Cell{{
		&tisio.Source{Side: node.DIR_RIGHT, Values: values},
		sink,
	}})
	require.NoError(t, err)

	stalled, err := g.Tick()
	assert.NoError(err)
	assert.True(stalled)
	assert.True(g.Moved())

	_, err = g.Run(0)
	assert.ErrorIs(err, ErrDeadlock)
	assert.Equal(values, sink.Values())
	assert.False(g.Moved())

	sink = &tisio.Sink{}
	g, err = NewGrid([][]node.Cell{
		{&tisio.Source{Side: node.DIR_DOWN, Values: values}},
		{node.NewMemory()},
		{sink},
	})
	require.NoError(t, err)

	_, err = g.Run(0)
	assert.ErrorIs(err, ErrDeadlock)
	assert.Equal(values, sink.Values())
}

func TestGrid_Parity(t *testing.T) {
	assert := assert.New(t)

	mem := node.NewMemory()
	g, err := NewGrid([][]node.Cell{
		{
			&tisio.Source{Side: node.DIR_RIGHT, Values: []int{1, 2, 3, 4}},
			compile(t,
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
			),
		},
		{nil, mem},
	})
	require.NoError(t, err)

	_, err = g.Run(0)
	assert.ErrorIs(err, ErrDeadlock)
	assert.Equal([]int{2, 4}, mem.Values())
}

func TestGrid_MemoryDrain(t *testing.T) {
	assert := assert.New(t)

	values := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	mem := node.NewMemory()
	sink := &tisio.Sink{}

	g, err := NewGrid([][]node.Cell{
		{&tisio.Source{Side: node.DIR_DOWN, Values: values}},
		{mem},
		{compile(t,
			"  MOV 30, ACC",
			"WAIT:",
			"  SUB 1",
			"  JGZ WAIT",
			"DRAIN:",
			"  MOV UP, DOWN",
			"  JMP DRAIN",
		)},
		{sink},
	})
	require.NoError(t, err)

	_, err = g.Run(40)
	assert.NoError(err)
	assert.Equal(values[:node.STACK_LIMIT], mem.Values())
	assert.Empty(sink.Values())

	_, err = g.Run(0)
	assert.ErrorIs(err, ErrDeadlock)
	assert.Equal([]int{10, 11, 12, 9, 8, 7, 6, 5, 4, 3, 2, 1}, sink.Values())
	assert.Empty(mem.Values())
}

func TestGrid_Halt(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGrid([][]node.Cell{{compile(t, "HCF")}})
	require.NoError(t, err)

	_, err = g.Tick()
	assert.ErrorIs(err, node.ErrHalt)

	var er *ErrRuntime
	if assert.True(errors.As(err, &er)) {
		assert.Equal(1, er.Tick)
		assert.Equal(Coord{0, 0}, er.At)
		assert.Equal(1, er.LineNo)
	}
}

func TestGrid_Order(t *testing.T) {
	assert := assert.New(t)

	// A writer stepped before its reader delivers in the same tick.
	reader := compile(t, "MOV LEFT, ACC")
	g, err := NewGrid([][]node.Cell{{compile(t, "MOV 1, RIGHT"), reader}})
	require.NoError(t, err)

	_, err = g.Tick()
	assert.NoError(err)
	assert.Equal(1, reader.Acc())

	// A writer stepped after its reader delivers on the next tick.
	reader = compile(t, "MOV RIGHT, ACC")
	g, err = NewGrid([][]node.Cell{{reader, compile(t, "MOV 1, LEFT")}})
	require.NoError(t, err)

	_, err = g.Tick()
	assert.NoError(err)
	assert.Equal(0, reader.Acc())
	assert.True(reader.Blocked())

	_, err = g.Tick()
	assert.NoError(err)
	assert.Equal(1, reader.Acc())
}

func TestGrid_Torus(t *testing.T) {
	assert := assert.New(t)

	build := func(torus bool) (*Grid, *node.Node) {
		reader := compile(t, "MOV RIGHT, ACC")
		rows := [][]node.Cell{{compile(t, "MOV 5, LEFT"), nil, reader}}
		var g *Grid
		var err error
		if torus {
			g, err = NewTorus(rows)
		} else {
			g, err = NewGrid(rows)
		}
		require.NoError(t, err)
		return g, reader
	}

	g, reader := build(true)
	assert.True(g.Torus())
	_, err := g.Tick()
	assert.NoError(err)
	assert.Equal(5, reader.Acc())

	g, reader = build(false)
	ticks, err := g.Run(0)
	assert.ErrorIs(err, ErrDeadlock)
	assert.Equal(2, ticks)
	assert.Equal(0, reader.Acc())
}

func TestGrid_Reset(t *testing.T) {
	assert := assert.New(t)

	n := compile(t, "ADD 1")
	g, err := NewGrid([][]node.Cell{{n}})
	require.NoError(t, err)

	var traced int
	g.Trace = func(grid *Grid) {
		traced++
		assert.Equal(traced, grid.Ticks())
	}

	_, err = g.Run(3)
	assert.NoError(err)
	assert.Equal(3, n.Acc())
	assert.Equal(3, traced)

	g.Reset()
	assert.Equal(0, g.Ticks())
	assert.Equal(0, n.Acc())
}

func TestGrid_Verbose(t *testing.T) {
	assert := assert.New(t)

	core, logs := observer.New(zap.DebugLevel)
	defer zap.ReplaceGlobals(zap.New(core))()

	g, err := NewGrid([][]node.Cell{{compile(t, "NOP"), nil, &tisio.Sink{}}})
	require.NoError(t, err)

	_, err = g.Tick()
	assert.NoError(err)
	assert.Equal(0, logs.Len())

	g.Verbose = true
	_, err = g.Tick()
	assert.NoError(err)
	assert.Equal(2, logs.FilterMessage("step").Len())
}
