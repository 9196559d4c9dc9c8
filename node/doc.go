// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package node implements the programmable cells of the tis fabric and the
// assembler for their instruction set.
//
// A node holds an accumulator (ACC), a backup register (BAK) and a program
// counter, and talks to its four neighbors only through directional ports.
// A write stages a single outbound transfer that stays pending until the
// neighbor on that side reads it; the read clears the transfer and advances
// the writer past its write instruction. Reads of a port with nothing pending
// are not errors: the instruction is simply retried on the next tick.
//
// The memory node is a programless cell that pushes whatever its neighbors
// send it onto a ten entry stack and offers the top of the stack back out.
package node
