package cpu

import (
	"fmt"
	"iter"
)

// Register identifies a slot of the register file.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_RA = Register(0) // Ra
	REG_RB = Register(1) // Rb
	REG_RC = Register(2) // Rc
	REG_RD = Register(3) // Rd
	REG_RE = Register(4) // Re
	REG_RF = Register(5) // Rf
	REG_RG = Register(6) // Rg
	REG_RH = Register(7) // Rh
	REG_IP = Register(8) // IP
	REG_SP = Register(9) // SP
)

const (
	GENERAL_COUNT  = 8  // General purpose registers, Ra to Rh.
	REGISTER_COUNT = 10 // All registers, including IP and SP.
)

// Valid returns true if the register is part of the register file.
func (reg Register) Valid() bool {
	return reg >= 0 && reg < REGISTER_COUNT
}

// General returns true for the general purpose registers.
func (reg Register) General() bool {
	return reg >= 0 && reg < GENERAL_COUNT
}

var _register_names = func() map[string]Register {
	names := make(map[string]Register, REGISTER_COUNT)
	for reg := range Register(REGISTER_COUNT) {
		names[reg.String()] = reg
	}
	return names
}()

// RegisterByName looks up a register by its name, ie "Ra" or "IP".
func RegisterByName(name string) (reg Register, ok bool) {
	reg, ok = _register_names[name]
	return
}

// RegisterFile is the fixed set of cpu registers.
type RegisterFile struct {
	Value [REGISTER_COUNT]int64
}

// Read returns the value of a register.
func (rf *RegisterFile) Read(reg Register) (value int64, err error) {
	if !reg.Valid() {
		err = ErrUnknownRegister(reg)
		return
	}

	value = rf.Value[reg]
	return
}

// Write sets the value of a register.
func (rf *RegisterFile) Write(reg Register, value int64) (err error) {
	if !reg.Valid() {
		err = ErrUnknownRegister(reg)
		return
	}

	rf.Value[reg] = value
	return
}

// Reset zeros all registers.
func (rf *RegisterFile) Reset() {
	clear(rf.Value[:])
}

// All iterates over every register and its value, in register order.
func (rf *RegisterFile) All() iter.Seq2[Register, int64] {
	return func(yield func(reg Register, value int64) bool) {
		for n, value := range rf.Value {
			if !yield(Register(n), value) {
				return
			}
		}
	}
}

// String returns the register file as one 'name: value' line per register.
func (rf *RegisterFile) String() (text string) {
	for reg, value := range rf.All() {
		text += fmt.Sprintf("% 5s: %d\n", reg.String(), value)
	}

	return
}
