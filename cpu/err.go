package cpu

import (
	"errors"
	"strconv"

	"github.com/ezrec/regcpu/translate"
)

var f = translate.From

// itoa formats addresses and ids for messages; the message printer would
// group their digits.
func itoa(value int64) string {
	return strconv.FormatInt(value, 10)
}

const (
	// Cpu errors
	ErrDivisionByZero  = translate.Error("division by zero")
	ErrDivisionInexact = translate.Error("division has a remainder")
	ErrOverflow        = translate.Error("integer overflow")
	ErrNotRunning      = translate.Error("cpu not running")

	// Instruction decode errors
	ErrOpcodeArgs = translate.Error("operand count")
)

// ErrUnknownRegister is returned when an operand names a register outside
// of the register file.
type ErrUnknownRegister Register

func (er ErrUnknownRegister) Error() string {
	return f("unknown register %v", itoa(int64(er)))
}

func (er ErrUnknownRegister) Is(err error) (ok bool) {
	_, ok = err.(ErrUnknownRegister)
	return
}

// ErrOutOfBounds is returned for a memory access outside of memory.
type ErrOutOfBounds int64

func (eb ErrOutOfBounds) Error() string {
	return f("address %v out of bounds [0, %v)", itoa(int64(eb)), itoa(MEMORY_SIZE))
}

func (eb ErrOutOfBounds) Is(err error) (ok bool) {
	_, ok = err.(ErrOutOfBounds)
	return
}

// ErrUnsupportedOperator is returned by CMP for an unknown comparison.
type ErrUnsupportedOperator CodeCmp

func (eo ErrUnsupportedOperator) Error() string {
	return f("unsupported operator %v", CodeCmp(eo).String())
}

func (eo ErrUnsupportedOperator) Is(err error) (ok bool) {
	_, ok = err.(ErrUnsupportedOperator)
	return
}

// ErrUnsupportedInstruction is returned when dispatching an unknown opcode.
type ErrUnsupportedInstruction Opcode

func (ei ErrUnsupportedInstruction) Error() string {
	return f("unsupported instruction %v", Opcode(ei).String())
}

func (ei ErrUnsupportedInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrUnsupportedInstruction)
	return
}

// ErrIpRange is returned when the instruction pointer does not address an
// instruction of the running program.
type ErrIpRange int64

func (ei ErrIpRange) Error() string {
	return f("ip %v out of program range", itoa(int64(ei)))
}

func (ei ErrIpRange) Is(err error) (ok bool) {
	_, ok = err.(ErrIpRange)
	return
}

// Fault is the terminal error of a run. Ip is the address of the faulting
// instruction, or the out of range ip when the fetch itself failed.
type Fault struct {
	Ip   int64
	Code Code
	Err  error
}

func (err *Fault) Error() string {
	var ipRange ErrIpRange
	if errors.As(err.Err, &ipRange) && int64(ipRange) == err.Ip {
		return f("fault: %v", err.Err)
	}
	return f("fault at ip %v (%v): %v", itoa(err.Ip), err.Code.String(), err.Err.Error())
}

func (err *Fault) Unwrap() error {
	return err.Err
}
