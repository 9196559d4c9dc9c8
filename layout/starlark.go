// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package layout

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// LoadStarlark executes a Starlark layout script. The script defines the
// globals `topology` (string), `grid` (list of lists of names or None) and
// `cells` (dict of name to dict of template fields).
func LoadStarlark(filename string, src []byte) (l *Layout, err error) {
	thread := starlark.Thread{Name: "layout"}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, &thread, filename, src, nil)
	if err != nil {
		return
	}

	ly := &Layout{}

	if value, ok := globals["topology"]; ok {
		ly.Topology, err = asString("topology", value)
		if err != nil {
			return
		}
	}

	if value, ok := globals["grid"]; ok {
		ly.Grid, err = asGrid(value)
		if err != nil {
			return
		}
	}

	if value, ok := globals["cells"]; ok {
		ly.Cells, err = asCells(value)
		if err != nil {
			return
		}
	}

	l = ly

	return
}

// each calls fn for each element of a Starlark iterable.
func each(name string, value starlark.Value, fn func(elem starlark.Value) error) (err error) {
	it := starlark.Iterate(value)
	if it == nil {
		return &ErrValue{Name: name, Want: "a list"}
	}
	defer it.Done()

	var elem starlark.Value
	for it.Next(&elem) {
		err = fn(elem)
		if err != nil {
			return
		}
	}

	return
}

func asString(name string, value starlark.Value) (text string, err error) {
	text, ok := starlark.AsString(value)
	if !ok {
		err = &ErrValue{Name: name, Want: "a string"}
	}
	return
}

func asGrid(value starlark.Value) (rows []Row, err error) {
	err = each("grid", value, func(row starlark.Value) error {
		var names Row
		err := each("grid row", row, func(cell starlark.Value) error {
			if cell == starlark.None {
				names = append(names, "")
				return nil
			}
			name, err := asString("grid cell", cell)
			names = append(names, name)
			return err
		})
		rows = append(rows, names)
		return err
	})

	return
}

func asCells(value starlark.Value) (cells map[string]Cell, err error) {
	dict, ok := value.(*starlark.Dict)
	if !ok {
		err = &ErrValue{Name: "cells", Want: "a dict"}
		return
	}

	cells = make(map[string]Cell, dict.Len())
	for _, item := range dict.Items() {
		var name string
		name, err = asString("cell name", item[0])
		if err != nil {
			return
		}
		fields, ok := item[1].(*starlark.Dict)
		if !ok {
			err = &ErrValue{Name: name, Want: "a dict"}
			return
		}
		var cell Cell
		cell, err = asCell(name, fields)
		if err != nil {
			return
		}
		cells[name] = cell
	}

	return
}

func asCell(name string, fields *starlark.Dict) (cell Cell, err error) {
	for _, item := range fields.Items() {
		var key string
		key, err = asString(name+" field", item[0])
		if err != nil {
			return
		}
		field := name + "." + key
		switch key {
		case "kind":
			cell.Kind, err = asString(field, item[1])
		case "program":
			cell.Program, err = asString(field, item[1])
		case "side":
			cell.Side, err = asString(field, item[1])
		case "values":
			cell.Values = []int{}
			err = each(field, item[1], func(elem starlark.Value) error {
				v, err := starlark.AsInt32(elem)
				if err != nil {
					return &ErrValue{Name: field, Want: "a list of integers"}
				}
				cell.Values = append(cell.Values, v)
				return nil
			})
		default:
			err = &ErrValue{Name: field, Want: "one of kind, program, side, values"}
		}
		if err != nil {
			return
		}
	}

	return
}
