// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ezrec/tis/grid"
	tisio "github.com/ezrec/tis/io"
	"github.com/ezrec/tis/node"
)

// sinkTail is the number of received values shown in a sink box.
const sinkTail = 8

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	runningStyle = boxStyle.BorderForeground(lipgloss.Color("#8BC34A"))
	blockedStyle = boxStyle.BorderForeground(lipgloss.Color("#e53935"))
	passiveStyle = boxStyle.BorderForeground(lipgloss.Color("#2196F3"))
	absentStyle  = boxStyle.BorderStyle(lipgloss.HiddenBorder())

	titleStyle = lipgloss.NewStyle().Bold(true)
	pcStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
)

// cellLines describes a cell's state, one line per entry.
func cellLines(cell node.Cell) (lines []string) {
	switch c := cell.(type) {
	case *node.Node:
		lines = append(lines, titleStyle.Render("NODE"))
		prog := c.Program()
		for pc := 0; pc < prog.Len(); pc++ {
			inst, _ := prog.At(pc)
			if pc == c.Pc() {
				lines = append(lines, pcStyle.Render("> "+inst.String()))
			} else {
				lines = append(lines, "  "+inst.String())
			}
		}
		lines = append(lines, fmt.Sprintf("ACC %d  BAK %d", c.Acc(), c.Bak()))
	case *node.Memory:
		lines = append(lines, titleStyle.Render("STACK"))
		values := c.Values()
		for n := len(values) - 1; n >= 0; n-- {
			lines = append(lines, fmt.Sprintf("%4d", values[n]))
		}
		if xfer, ok := c.Pending(); ok {
			lines = append(lines, fmt.Sprintf("%v %d", xfer.Side, xfer.Value))
		}
	case *tisio.Source:
		lines = append(lines, titleStyle.Render("IN "+c.Side.String()))
		if xfer, ok := c.Pending(); ok {
			lines = append(lines, fmt.Sprintf("> %d", xfer.Value))
		}
	case *tisio.Sink:
		lines = append(lines, titleStyle.Render("OUT"))
		values := c.Values()
		if len(values) > sinkTail {
			values = values[len(values)-sinkTail:]
		}
		for _, value := range values {
			lines = append(lines, fmt.Sprintf("%4d", value))
		}
	default:
		lines = append(lines, fmt.Sprintf("%T", cell))
	}

	return
}

// renderCell draws one cell as a box colored by its state.
func renderCell(cell node.Cell) string {
	if cell == nil {
		return absentStyle.Render("")
	}

	style := runningStyle
	switch {
	case cell.Passive():
		style = passiveStyle
	case cell.Blocked():
		style = blockedStyle
	}

	return style.Render(strings.Join(cellLines(cell), "\n"))
}

// Render draws the grid state.
func Render(g *grid.Grid) string {
	rows := []string{fmt.Sprintf("tick %d", g.Ticks())}

	for r := 0; r < g.Rows; r++ {
		boxes := make([]string, g.Cols)
		for c := 0; c < g.Cols; c++ {
			boxes[c] = renderCell(g.At(grid.Coord{Row: r, Col: c}))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
