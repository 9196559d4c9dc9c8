// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package layout describes a tis grid in a configuration file and builds it.
//
// A layout names cell templates and arranges them in rows:
//
//	topology: mesh
//	grid:
//	  - [in,   filter]
//	  - [null, stack]
//	cells:
//	  in:     {kind: source, side: RIGHT, values: [1, 2, 3, 4]}
//	  filter: {program: "MOV LEFT, DOWN"}
//	  stack:  {kind: memory}
//
// Each grid position naming a template gets its own cell. Empty, null, "."
// and "-" positions are absent cells.
package layout

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/tis/grid"
	tisio "github.com/ezrec/tis/io"
	"github.com/ezrec/tis/node"
)

const (
	KIND_NODE   = "node"   // Programmable node (default).
	KIND_MEMORY = "memory" // Stack memory node.
	KIND_SOURCE = "source" // Input stream.
	KIND_SINK   = "sink"   // Output stream.

	TOPOLOGY_MESH  = "mesh"  // Edges are unavailable neighbors (default).
	TOPOLOGY_TORUS = "torus" // Edges wrap around.
)

// Cell is a cell template.
type Cell struct {
	Kind    string `yaml:"kind"`
	Program string `yaml:"program"` // node: source text.
	Values  []int  `yaml:"values"`  // source: values to offer, instead of the input stream.
	Side    string `yaml:"side"`    // source: side to offer values on, default DOWN.
}

// Row is one row of grid positions, each a cell template name.
type Row []string

// UnmarshalYAML decodes a row, keeping null entries as absent positions.
func (row *Row) UnmarshalYAML(value *yaml.Node) (err error) {
	if value.Kind != yaml.SequenceNode {
		return &ErrValue{Name: "grid row", Want: "a list"}
	}

	names := make(Row, len(value.Content))
	for n, item := range value.Content {
		if item.ShortTag() == "!!null" {
			continue
		}
		err = item.Decode(&names[n])
		if err != nil {
			return
		}
	}

	*row = names

	return
}

// Layout is a grid description.
type Layout struct {
	Topology string          `yaml:"topology"`
	Grid     []Row           `yaml:"grid"`
	Cells    map[string]Cell `yaml:"cells"`
}

// Load reads a layout file, choosing the format by extension.
func Load(path string) (l *Layout, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return LoadYAML(data)
	case ".star":
		return LoadStarlark(path, data)
	default:
		err = ErrFormat(ext)
	}

	return
}

// LoadYAML parses a YAML layout.
func LoadYAML(data []byte) (l *Layout, err error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	l = &Layout{}
	err = dec.Decode(l)
	if err != nil {
		l = nil
	}

	return
}

// absent returns true if a grid entry names no cell.
func absent(name string) bool {
	switch strings.TrimSpace(name) {
	case "", ".", "-":
		return true
	}

	return false
}

// build creates a cell from its template.
func (tmpl Cell) build(in io.Reader, out io.Writer) (cell node.Cell, err error) {
	switch strings.ToLower(tmpl.Kind) {
	case "", KIND_NODE:
		return node.Compile(tmpl.Program)
	case KIND_MEMORY:
		return node.NewMemory(), nil
	case KIND_SOURCE:
		side := node.DIR_DOWN
		if len(tmpl.Side) != 0 {
			side, err = node.ParseDirection(tmpl.Side)
			if err != nil {
				return
			}
		}
		source := &tisio.Source{Side: side, Values: tmpl.Values}
		if tmpl.Values == nil {
			source.Input = in
		}
		return source, nil
	case KIND_SINK:
		return &tisio.Sink{Output: out}, nil
	}

	err = ErrKind(tmpl.Kind)

	return
}

// Build creates the grid. Sources without listed values read from in, and
// sinks write to out. At most one source may be without listed values.
func (l *Layout) Build(in io.Reader, out io.Writer) (g *grid.Grid, err error) {
	var readers int

	rows := make([][]node.Cell, len(l.Grid))
	for r, row := range l.Grid {
		rows[r] = make([]node.Cell, len(row))
		for c, name := range row {
			if absent(name) {
				continue
			}
			name = strings.TrimSpace(name)
			tmpl, ok := l.Cells[name]
			if !ok {
				err = &ErrCell{Name: name, Err: ErrCellUnknown}
				return
			}
			var cell node.Cell
			cell, err = tmpl.build(in, out)
			if err != nil {
				err = &ErrCell{Name: name, Err: err}
				return
			}
			if source, ok := cell.(*tisio.Source); ok && source.Values == nil {
				readers++
				if readers > 1 {
					err = &ErrCell{Name: name, Err: ErrInputShared}
					return
				}
			}
			rows[r][c] = cell
		}
	}

	switch strings.ToLower(l.Topology) {
	case "", TOPOLOGY_MESH:
		return grid.NewGrid(rows)
	case TOPOLOGY_TORUS:
		return grid.NewTorus(rows)
	}

	err = ErrTopology(l.Topology)

	return
}
