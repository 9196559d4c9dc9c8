// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package node

import (
	"errors"
	"fmt"
	"strings"
)

// Node is a programmable cell with an accumulator and a backup register.
type Node struct {
	program *Program

	pc      int  // Program counter.
	acc     int  // Accumulator.
	bak     int  // Backup register.
	lineNo  int  // Source line of the last fetched instruction.
	blocked bool // Last step could not complete.

	out       *Transfer // Staged write, cleared by the reader.
	lastRead  Direction // Side the last ANY read resolved to.
	lastWrite Direction // Side the last ANY write resolved to.
}

var _ Cell = (*Node)(nil)

// NewNode creates a node running an assembled program.
func NewNode(prog *Program) (n *Node) {
	n = &Node{
		program: prog,
	}

	n.Reset()

	return
}

// Compile assembles source text and creates a node running it.
func Compile(source string) (n *Node, err error) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	n = NewNode(prog)

	return
}

// Reset the node to its power-on state.
func (n *Node) Reset() {
	n.pc = 0
	n.acc = 0
	n.bak = 0
	n.blocked = false
	n.out = nil
	n.lastRead = DIR_NONE
	n.lastWrite = DIR_NONE
	n.lineNo = 0
	if inst, ok := n.program.At(0); ok {
		n.lineNo = inst.LineNo
	}
}

// Program returns the program the node runs.
func (n *Node) Program() *Program {
	return n.program
}

// Acc returns the accumulator.
func (n *Node) Acc() int {
	return n.acc
}

// Bak returns the backup register.
func (n *Node) Bak() int {
	return n.bak
}

// Pc returns the program counter.
func (n *Node) Pc() int {
	return n.pc
}

// LineNo returns the source line of the current instruction.
func (n *Node) LineNo() int {
	return n.lineNo
}

func (n *Node) Blocked() bool {
	return n.blocked
}

func (n *Node) Passive() bool {
	return false
}

func (n *Node) Pending() (xfer Transfer, ok bool) {
	if n.out == nil {
		return
	}

	return *n.out, true
}

// Claim hands the staged value to the reader and moves the node past its
// write instruction.
func (n *Node) Claim() (value int) {
	if n.out == nil {
		return
	}

	value = n.out.Value
	n.out = nil
	n.pc++
	n.normalize()

	return
}

// Accepts returns true if the current instruction reads from side.
func (n *Node) Accepts(side Direction) bool {
	inst, ok := n.current()
	if !ok || !inst.Op.Reads() || len(inst.Args) == 0 {
		return false
	}

	src := inst.Args[0]
	if src.Literal || len(src.Label) != 0 {
		return false
	}

	switch src.Register {
	case REG_ANY:
		return true
	case REG_LAST:
		return n.lastRead == side
	}

	dir, ok := src.Register.Direction()

	return ok && dir == side
}

// String returns the register state as text.
func (n *Node) String() (text string) {
	regs := []string{"pc", "acc", "bak", "last", "out"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%d (line %d)", n.pc, n.lineNo)
		case "acc":
			strval = fmt.Sprintf("%d", n.acc)
		case "bak":
			strval = fmt.Sprintf("%d", n.bak)
		case "last":
			strval = fmt.Sprintf("%v/%v", n.lastRead, n.lastWrite)
		case "out":
			strval = "-"
			if n.out != nil {
				strval = fmt.Sprintf("%d %v", n.out.Value, n.out.Side)
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// normalize wraps an out of range program counter to the top.
func (n *Node) normalize() {
	if n.pc < 0 || n.pc >= n.program.Len() {
		n.pc = 0
	}
}

// current returns the instruction the next Step will execute.
func (n *Node) current() (inst *Instruction, ok bool) {
	if n.program.Len() == 0 {
		return
	}

	pc := n.pc
	if pc < 0 || pc >= n.program.Len() {
		pc = 0
	}

	return n.program.At(pc)
}

// read fetches a source operand. A port with nothing pending is not ready,
// and nothing is consumed.
func (n *Node) read(src Arg, ports Ports) (value int, ready bool, err error) {
	if len(src.Label) != 0 {
		err = ErrRegisterInvalid
		return
	}

	if src.Literal {
		return src.Value, true, nil
	}

	switch src.Register {
	case REG_ACC:
		return n.acc, true, nil
	case REG_NIL:
		return 0, true, nil
	case REG_ANY:
		var from Direction
		value, from, ready = Receive(ports, ReadOrder...)
		if ready {
			n.lastRead = from
		}
	case REG_LAST:
		if n.lastRead == DIR_NONE {
			return
		}
		value, _, ready = Receive(ports, n.lastRead)
	case REG_UP, REG_DOWN, REG_LEFT, REG_RIGHT:
		dir, _ := src.Register.Direction()
		value, _, ready = Receive(ports, dir)
	default:
		err = ErrRegisterInvalid
	}

	return
}

// target resolves the side a port write would go to.
func (n *Node) target(dst Register, ports Ports) (side Direction, ok bool) {
	switch dst {
	case REG_ANY:
		return Acceptor(ports, WriteOrder...)
	case REG_LAST:
		side = n.lastWrite
	default:
		side, _ = dst.Direction()
	}

	if side == DIR_NONE || ports.Neighbor(side) == nil {
		return DIR_NONE, false
	}

	return side, true
}

// Step executes the current instruction. If it cannot complete this tick
// the node is left exactly as it was, and the instruction is retried on
// the next step.
func (n *Node) Step(ports Ports) (progress bool, err error) {
	if n.program.Len() == 0 {
		n.blocked = false
		return
	}

	n.normalize()
	inst := &n.program.Instructions[n.pc]
	n.lineNo = inst.LineNo
	n.blocked = true

	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(*inst), err)
		}
	}()

	// Wait for the reader to claim the staged write.
	if n.out != nil {
		return
	}

	if len(inst.Args) != len(inst.Op.Schema()) {
		err = ErrOpcodeInvalid
		return
	}

	next := n.pc + 1

	switch inst.Op {
	case OP_MOV:
		dst := inst.Args[1]
		if dst.Literal || len(dst.Label) != 0 {
			err = ErrRegisterInvalid
			return
		}
		// Resolve the destination first, so an undeliverable write
		// never consumes its input.
		to := DIR_NONE
		if dst.Register.Port() {
			var ok bool
			to, ok = n.target(dst.Register, ports)
			if !ok {
				return
			}
		}
		var value int
		var ready bool
		value, ready, err = n.read(inst.Args[0], ports)
		if err != nil || !ready {
			return
		}
		value = Clamp(value)
		switch dst.Register {
		case REG_ACC:
			n.acc = value
		case REG_NIL:
			// drop-on-floor
		default:
			if dst.Register == REG_ANY {
				n.lastWrite = to
			}
			// The reader advances the program counter. Staging moves
			// data, so it is progress even though the node stays
			// blocked until the claim.
			n.out = &Transfer{Side: to, Value: value}
			progress = true
			return
		}
	case OP_SWP:
		n.acc, n.bak = n.bak, n.acc
	case OP_SAV:
		n.bak = n.acc
	case OP_ADD, OP_SUB:
		var value int
		var ready bool
		value, ready, err = n.read(inst.Args[0], ports)
		if err != nil || !ready {
			return
		}
		if inst.Op == OP_SUB {
			value = -value
		}
		n.acc = Clamp(n.acc + value)
	case OP_NEG:
		n.acc = -n.acc
	case OP_JMP:
		next = inst.Args[0].Value
	case OP_JEZ:
		if n.acc == 0 {
			next = inst.Args[0].Value
		}
	case OP_JNZ:
		if n.acc != 0 {
			next = inst.Args[0].Value
		}
	case OP_JGZ:
		if n.acc > 0 {
			next = inst.Args[0].Value
		}
	case OP_JLZ:
		if n.acc < 0 {
			next = inst.Args[0].Value
		}
	case OP_JRO:
		var value int
		var ready bool
		value, ready, err = n.read(inst.Args[0], ports)
		if err != nil || !ready {
			return
		}
		next = min(n.pc+value, n.program.Len()-1)
	case OP_HCF:
		err = ErrHalt
		return
	default:
		err = ErrOpcodeInvalid
		return
	}

	n.pc = next
	n.normalize()
	n.blocked = false
	progress = true

	return
}
