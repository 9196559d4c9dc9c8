// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package node

const (
	VALUE_MIN = -999 // Smallest value a register or port can hold.
	VALUE_MAX = 999  // Largest value a register or port can hold.
)

// Clamp limits a value to the range a register can hold.
func Clamp(value int) int {
	return max(VALUE_MIN, min(VALUE_MAX, value))
}

// Probe orders used when resolving ANY.
var (
	ReadOrder  = []Direction{DIR_LEFT, DIR_RIGHT, DIR_UP, DIR_DOWN}
	WriteOrder = []Direction{DIR_UP, DIR_LEFT, DIR_RIGHT, DIR_DOWN}
)

// Transfer is a value staged by a cell for the neighbor on Side.
type Transfer struct {
	Side  Direction
	Value int
}

// Ports resolves the neighbors of a single cell.
type Ports interface {
	// Neighbor returns the cell attached on side, or nil if there is none.
	Neighbor(side Direction) Cell
}

// Cell is anything that can occupy a grid position.
//
// A cell owns at most one pending Transfer. Only the neighbor the transfer
// is addressed to may Claim it, and claiming is the only way the slot is
// cleared.
type Cell interface {
	// Step attempts one unit of work for the current tick.
	Step(ports Ports) (progress bool, err error)
	// Blocked returns true if the last Step could not complete.
	Blocked() bool
	// Passive cells are ignored when deciding whether the grid is stalled.
	Passive() bool
	// Pending returns the staged outbound transfer, if any.
	Pending() (xfer Transfer, ok bool)
	// Claim consumes the staged transfer on behalf of its reader.
	Claim() (value int)
	// Accepts returns true if the cell is ready to read from side.
	Accepts(side Direction) bool
	// Reset restores the power-on state.
	Reset()
}

// Offered returns the value the neighbor on side has staged for the caller.
func Offered(ports Ports, side Direction) (value int, ok bool) {
	nb := ports.Neighbor(side)
	if nb == nil {
		return
	}

	xfer, ok := nb.Pending()
	if !ok || xfer.Side != side.Opposite() {
		return 0, false
	}

	return xfer.Value, true
}

// Receive claims the first transfer addressed to the caller, probing sides
// in the order given.
func Receive(ports Ports, sides ...Direction) (value int, from Direction, ok bool) {
	from = DIR_NONE
	for _, side := range sides {
		if _, ok = Offered(ports, side); ok {
			value = ports.Neighbor(side).Claim()
			from = side
			return
		}
	}

	return
}

// Acceptor returns the first side, in the order given, whose neighbor is
// ready to read from the caller.
func Acceptor(ports Ports, sides ...Direction) (to Direction, ok bool) {
	for _, side := range sides {
		nb := ports.Neighbor(side)
		if nb != nil && nb.Accepts(side.Opposite()) {
			return side, true
		}
	}

	return DIR_NONE, false
}
