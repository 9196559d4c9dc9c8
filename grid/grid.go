// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package grid

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/ezrec/tis/internal"
	"github.com/ezrec/tis/node"
)

// Coord is a grid position.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

// Grid is a rectangular arena of cells, wired to their neighbors once at
// construction time.
type Grid struct {
	Verbose bool             // If set, logs every cell step.
	Trace   func(grid *Grid) // If set, called after every completed tick.

	Rows int // Number of rows.
	Cols int // Number of columns.

	torus bool
	cells []node.Cell // Row-major, nil for absent cells.
	links [][4]int    // Neighbor index per direction, -1 if none.
	ticks int
	moved bool // Any cell made progress in the last tick.
}

// ports is a cell's view of its neighbors.
type ports struct {
	grid  *Grid
	index int
}

func (p ports) Neighbor(side node.Direction) node.Cell {
	if side < node.DIR_UP || side > node.DIR_RIGHT {
		return nil
	}

	link := p.grid.links[p.index][side]
	if link < 0 {
		return nil
	}

	return p.grid.cells[link]
}

// NewGrid wires rows of cells into a mesh. Grid edges and nil cells are
// unavailable neighbors. Short rows are padded with nil cells.
func NewGrid(rows [][]node.Cell) (grid *Grid, err error) {
	return newGrid(rows, false)
}

// NewTorus wires rows of cells into a mesh whose edges wrap around to the
// opposite side.
func NewTorus(rows [][]node.Cell) (grid *Grid, err error) {
	return newGrid(rows, true)
}

func newGrid(rows [][]node.Cell, torus bool) (grid *Grid, err error) {
	var cols int
	for _, row := range rows {
		cols = max(cols, len(row))
	}

	if len(rows) == 0 || cols == 0 {
		err = ErrLayoutEmpty
		return
	}

	g := &Grid{
		Rows:  len(rows),
		Cols:  cols,
		torus: torus,
		cells: make([]node.Cell, len(rows)*cols),
		links: make([][4]int, len(rows)*cols),
	}

	placed := make(map[node.Cell]Coord)
	for r, row := range rows {
		for c, cell := range row {
			if cell == nil {
				continue
			}
			at := Coord{Row: r, Col: c}
			prior, ok := placed[cell]
			if ok {
				err = &ErrCellShared{At: at, Prior: prior}
				return
			}
			placed[cell] = at
			g.cells[g.index(at)] = cell
		}
	}

	if len(placed) == 0 {
		err = ErrLayoutEmpty
		return
	}

	for index := range g.cells {
		at := g.coord(index)
		for _, dir := range node.Directions {
			g.links[index][dir] = g.neighbor(at, dir)
		}
	}

	grid = g

	return
}

// index converts a position to an arena index.
func (g *Grid) index(at Coord) int {
	return at.Row*g.Cols + at.Col
}

// coord converts an arena index to a position.
func (g *Grid) coord(index int) Coord {
	return Coord{Row: index / g.Cols, Col: index % g.Cols}
}

// neighbor returns the arena index of the cell on side of at, or -1.
func (g *Grid) neighbor(at Coord, side node.Direction) int {
	drow, dcol := side.Delta()
	row, col := at.Row+drow, at.Col+dcol

	if g.torus {
		row = (row + g.Rows) % g.Rows
		col = (col + g.Cols) % g.Cols
	} else if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return -1
	}

	index := g.index(Coord{Row: row, Col: col})
	if g.cells[index] == nil {
		return -1
	}

	return index
}

// Torus returns true if the grid edges wrap around.
func (g *Grid) Torus() bool {
	return g.torus
}

// Moved returns true if any cell, passive or not, made progress in the
// last tick.
func (g *Grid) Moved() bool {
	return g.moved
}

// Ticks returns the number of ticks since construction or the last reset.
func (g *Grid) Ticks() int {
	return g.ticks
}

// At returns the cell at a position, or nil.
func (g *Grid) At(at Coord) node.Cell {
	if at.Row < 0 || at.Row >= g.Rows || at.Col < 0 || at.Col >= g.Cols {
		return nil
	}

	return g.cells[g.index(at)]
}

// All iterates over the present cells in row-major order, the order in
// which a tick steps them.
func (g *Grid) All() iter.Seq2[Coord, node.Cell] {
	rows := make([]iter.Seq2[Coord, node.Cell], g.Rows)
	for r := range g.Rows {
		cells := g.cells[r*g.Cols : (r+1)*g.Cols]
		rows[r] = internal.IterSeq2Filter(
			internal.IterSlice2(cells, func(c int) Coord { return Coord{Row: r, Col: c} }),
			func(_ Coord, cell node.Cell) bool { return cell != nil },
		)
	}

	return internal.IterSeq2Concat(rows...)
}

// Reset every cell, and the tick counter.
func (g *Grid) Reset() {
	g.ticks = 0
	g.moved = false
	for _, cell := range g.All() {
		cell.Reset()
	}
}

// lineNo returns the source line a cell is executing, if it has one.
func lineNo(cell node.Cell) int {
	if src, ok := cell.(interface{ LineNo() int }); ok {
		return src.LineNo()
	}

	return 0
}

// Tick steps every cell once, in row-major order. A cell may observe a
// transfer staged earlier in the same tick by a cell stepped before it.
//
// stalled is true if no program-bearing cell made progress. An error from
// any cell stops the tick.
func (g *Grid) Tick() (stalled bool, err error) {
	g.ticks++
	g.moved = false
	stalled = true

	for at, cell := range g.All() {
		var progress bool
		progress, err = cell.Step(ports{grid: g, index: g.index(at)})

		if g.Verbose {
			zap.L().Debug("step",
				zap.Int("tick", g.ticks),
				zap.Stringer("at", at),
				zap.Int("line", lineNo(cell)),
				zap.Bool("progress", progress),
				zap.Bool("blocked", cell.Blocked()),
			)
		}

		if err != nil {
			err = &ErrRuntime{Tick: g.ticks, At: at, LineNo: lineNo(cell), Err: err}
			return
		}

		if progress {
			g.moved = true
			if !cell.Passive() {
				stalled = false
			}
		}
	}

	if g.Trace != nil {
		g.Trace(g)
	}

	return
}

// Run ticks the grid until limit ticks have run, or until two consecutive
// ticks stall with no cell at all moving a value (ErrDeadlock). A limit of
// zero runs until deadlock or error.
func (g *Grid) Run(limit int) (ticks int, err error) {
	var last bool

	for limit <= 0 || ticks < limit {
		var stalled bool
		stalled, err = g.Tick()
		ticks++
		if err != nil {
			return
		}
		stalled = stalled && !g.moved
		if stalled && last {
			if g.Verbose {
				zap.L().Info("deadlock", zap.Int("tick", g.ticks))
			}
			err = ErrDeadlock
			return
		}
		last = stalled
	}

	return
}
