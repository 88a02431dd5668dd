// Package cpu implements the register machine simulator.
//
// The CPU consists of eight general-purpose registers (Ra-Rh), an
// instruction pointer (IP), a reserved stack pointer (SP), and a flat
// memory of 1024 integer cells. Programs are immutable sequences of
// instructions addressed by IP.
//
// Each tick fetches the instruction at IP, advances IP, and executes the
// instruction. Jumps overwrite IP with an absolute address. A run ends
// when a HALT instruction executes, or when an instruction faults.
package cpu
