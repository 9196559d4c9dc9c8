// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package node

import (
	"strings"
)

// Register is a readable or writable operand name.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_ACC   = Register(0) // ACC
	REG_NIL   = Register(1) // NIL
	REG_UP    = Register(2) // UP
	REG_DOWN  = Register(3) // DOWN
	REG_LEFT  = Register(4) // LEFT
	REG_RIGHT = Register(5) // RIGHT
	REG_ANY   = Register(6) // ANY
	REG_LAST  = Register(7) // LAST
)

// regMap maps register names to registers.
var regMap = map[string]Register{
	"ACC":   REG_ACC,
	"NIL":   REG_NIL,
	"UP":    REG_UP,
	"DOWN":  REG_DOWN,
	"LEFT":  REG_LEFT,
	"RIGHT": REG_RIGHT,
	"ANY":   REG_ANY,
	"LAST":  REG_LAST,
}

// Port returns true if the register names a port, including ANY and LAST.
func (reg Register) Port() bool {
	return reg >= REG_UP && reg <= REG_LAST
}

// Direction returns the side named by a directional register.
func (reg Register) Direction() (dir Direction, ok bool) {
	if reg < REG_UP || reg > REG_RIGHT {
		return DIR_NONE, false
	}

	return Direction(reg - REG_UP), true
}

// Direction is one side of a cell.
type Direction int

const (
	DIR_NONE  = Direction(-1) // Unresolved.
	DIR_UP    = Direction(0)
	DIR_DOWN  = Direction(1)
	DIR_LEFT  = Direction(2)
	DIR_RIGHT = Direction(3)
)

// Directions lists the four sides in register order.
var Directions = [...]Direction{DIR_UP, DIR_DOWN, DIR_LEFT, DIR_RIGHT}

// ParseDirection parses a side name, ignoring case.
func ParseDirection(name string) (dir Direction, err error) {
	reg, ok := regMap[strings.ToUpper(name)]
	if ok {
		dir, ok = reg.Direction()
	}
	if !ok {
		err = ErrDirectionInvalid(name)
		return
	}

	return
}

// Opposite returns the side facing this one on the neighbor.
func (dir Direction) Opposite() Direction {
	switch dir {
	case DIR_UP:
		return DIR_DOWN
	case DIR_DOWN:
		return DIR_UP
	case DIR_LEFT:
		return DIR_RIGHT
	case DIR_RIGHT:
		return DIR_LEFT
	}

	return DIR_NONE
}

// Delta returns the row and column offset of the neighbor on this side.
func (dir Direction) Delta() (drow, dcol int) {
	switch dir {
	case DIR_UP:
		drow = -1
	case DIR_DOWN:
		drow = 1
	case DIR_LEFT:
		dcol = -1
	case DIR_RIGHT:
		dcol = 1
	}

	return
}

// Register returns the register naming this side.
func (dir Direction) Register() Register {
	return REG_UP + Register(dir)
}

func (dir Direction) String() string {
	if dir < DIR_UP || dir > DIR_RIGHT {
		return "-"
	}

	return dir.Register().String()
}
