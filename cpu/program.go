package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Program is an immutable sequence of instructions, addressed by IP.
type Program struct {
	codes []Code
}

// NewProgram creates a program from a copy of the codes.
func NewProgram(codes ...Code) (prog *Program) {
	prog = &Program{
		codes: make([]Code, len(codes)),
	}

	for n, code := range codes {
		prog.codes[n] = code.Clone()
	}

	return
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.codes)
}

// Code returns a copy of the instruction at ip.
func (prog *Program) Code(ip int64) (code Code, ok bool) {
	if ip < 0 || ip >= int64(prog.Len()) {
		return
	}

	return prog.codes[ip].Clone(), true
}

// Codes iterates over each ip and a copy of its instruction.
func (prog *Program) Codes() iter.Seq2[int64, Code] {
	return func(yield func(ip int64, code Code) bool) {
		for n := range prog.Len() {
			if !yield(int64(n), prog.codes[n].Clone()) {
				return
			}
		}
	}
}

// String returns the listing of the program, one instruction per line.
func (prog *Program) String() string {
	var lines []string
	for ip, code := range prog.Codes() {
		lines = append(lines, fmt.Sprintf("%03d: %v", ip, code))
	}

	return strings.Join(lines, "\n")
}
