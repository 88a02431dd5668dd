package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the operation of an instruction.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADD   = Opcode(0)  // ADD
	OP_SUB   = Opcode(1)  // SUB
	OP_MUL   = Opcode(2)  // MUL
	OP_DIV   = Opcode(3)  // DIV
	OP_INC   = Opcode(4)  // INC
	OP_DEC   = Opcode(5)  // DEC
	OP_CMP   = Opcode(6)  // CMP
	OP_CONST = Opcode(7)  // CONST
	OP_LOAD  = Opcode(8)  // LOAD
	OP_STORE = Opcode(9)  // STORE
	OP_JMP   = Opcode(10) // JMP
	OP_JZ    = Opcode(11) // JZ
	OP_HALT  = Opcode(12) // HALT
)

// OPCODE_COUNT is the size of the instruction set.
const OPCODE_COUNT = 13

// Valid returns true if the opcode is a member of the instruction set.
func (op Opcode) Valid() bool {
	return op >= 0 && op < OPCODE_COUNT
}

// Arity returns the number of operands the opcode takes, or -1 for an
// opcode outside of the instruction set.
func (op Opcode) Arity() int {
	switch op {
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV:
		return 3
	case OP_INC, OP_DEC:
		return 1
	case OP_CMP:
		return 4
	case OP_CONST:
		return 2
	case OP_LOAD, OP_STORE:
		return 3
	case OP_JMP, OP_JZ:
		return 2
	case OP_HALT:
		return 0
	}

	return -1
}

// CodeCmp is a CMP comparison operator.
type CodeCmp int

//go:generate go tool stringer -linecomment -type=CodeCmp
const (
	CMP_LT = CodeCmp(0) // <
	CMP_GT = CodeCmp(1) // >
	CMP_LE = CodeCmp(2) // <=
	CMP_GE = CodeCmp(3) // >=
	CMP_EQ = CodeCmp(4) // ==
	CMP_NE = CodeCmp(5) // !=
)

// CMP_COUNT is the number of comparison operators.
const CMP_COUNT = 6

// Valid returns true if the operator is one of the six comparisons.
func (cmp CodeCmp) Valid() bool {
	return cmp >= 0 && cmp < CMP_COUNT
}

var _cmp_names = func() map[string]CodeCmp {
	names := make(map[string]CodeCmp, CMP_COUNT)
	for cmp := range CodeCmp(CMP_COUNT) {
		names[cmp.String()] = cmp
	}
	return names
}()

// CmpByName looks up a comparison operator by its symbol, ie "<=".
func CmpByName(name string) (cmp CodeCmp, ok bool) {
	cmp, ok = _cmp_names[name]
	return
}

// Code is a single instruction: an opcode and its operands.
//
// Register operands hold the value of a Register, the CMP operator holds
// the value of a CodeCmp, and immediates and offsets are held as-is.
type Code struct {
	Op   Opcode
	Args []int64
}

func makeCode(op Opcode, args ...int64) Code {
	return Code{
		Op:   op,
		Args: args,
	}
}

// MakeCodeAlu creates an ADD, SUB, MUL or DIV instruction.
func MakeCodeAlu(op Opcode, a, b, dst Register) Code {
	return makeCode(op, int64(a), int64(b), int64(dst))
}

// MakeCodeAdd creates an instruction for dst = a + b.
func MakeCodeAdd(a, b, dst Register) Code {
	return MakeCodeAlu(OP_ADD, a, b, dst)
}

// MakeCodeSub creates an instruction for dst = a - b.
func MakeCodeSub(a, b, dst Register) Code {
	return MakeCodeAlu(OP_SUB, a, b, dst)
}

// MakeCodeMul creates an instruction for dst = a * b.
func MakeCodeMul(a, b, dst Register) Code {
	return MakeCodeAlu(OP_MUL, a, b, dst)
}

// MakeCodeDiv creates an instruction for dst = a / b.
func MakeCodeDiv(a, b, dst Register) Code {
	return MakeCodeAlu(OP_DIV, a, b, dst)
}

// MakeCodeInc creates an instruction incrementing a register.
func MakeCodeInc(a Register) Code {
	return makeCode(OP_INC, int64(a))
}

// MakeCodeDec creates an instruction decrementing a register.
func MakeCodeDec(a Register) Code {
	return makeCode(OP_DEC, int64(a))
}

// MakeCodeCmp creates an instruction setting dst to 1 if 'a cmp b', else 0.
func MakeCodeCmp(cmp CodeCmp, a, b, dst Register) Code {
	return makeCode(OP_CMP, int64(cmp), int64(a), int64(b), int64(dst))
}

// MakeCodeConst creates an instruction loading an immediate into dst.
func MakeCodeConst(value int64, dst Register) Code {
	return makeCode(OP_CONST, value, int64(dst))
}

// MakeCodeLoad creates an instruction for rd = memory[rs + offset].
func MakeCodeLoad(rs, rd Register, offset int64) Code {
	return makeCode(OP_LOAD, int64(rs), int64(rd), offset)
}

// MakeCodeStore creates an instruction for memory[rs + offset] = rd.
func MakeCodeStore(rs, rd Register, offset int64) Code {
	return makeCode(OP_STORE, int64(rs), int64(rd), offset)
}

// MakeCodeJmp creates an instruction setting IP to reg + offset.
func MakeCodeJmp(reg Register, offset int64) Code {
	return makeCode(OP_JMP, int64(reg), offset)
}

// MakeCodeJz creates an instruction setting IP to target when test is zero.
func MakeCodeJz(target, test Register) Code {
	return makeCode(OP_JZ, int64(target), int64(test))
}

// MakeCodeHalt creates an instruction stopping the cpu.
func MakeCodeHalt() Code {
	return makeCode(OP_HALT)
}

// Clone returns a copy of the instruction that shares no storage.
func (code Code) Clone() Code {
	return Code{
		Op:   code.Op,
		Args: append([]int64(nil), code.Args...),
	}
}

// Equal returns true if both instructions have the same opcode and operands.
func (code Code) Equal(other Code) bool {
	if code.Op != other.Op || len(code.Args) != len(other.Args) {
		return false
	}
	for n, arg := range code.Args {
		if other.Args[n] != arg {
			return false
		}
	}
	return true
}

// Operands returns the kind of each operand of the opcode:
// 'r' is a register, 'c' a comparison operator, 'i' an immediate or offset.
func (op Opcode) Operands() string {
	switch op {
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV:
		return "rrr"
	case OP_INC, OP_DEC:
		return "r"
	case OP_CMP:
		return "crrr"
	case OP_CONST:
		return "ir"
	case OP_LOAD, OP_STORE:
		return "rri"
	case OP_JMP:
		return "ri"
	case OP_JZ:
		return "rr"
	}

	return ""
}

// String returns the instruction in 'OP arg arg ...' form.
func (code Code) String() (out string) {
	words := []string{code.Op.String()}

	kinds := code.Op.Operands()
	for n, arg := range code.Args {
		kind := byte('i')
		if n < len(kinds) {
			kind = kinds[n]
		}
		switch kind {
		case 'r':
			words = append(words, Register(arg).String())
		case 'c':
			words = append(words, CodeCmp(arg).String())
		default:
			words = append(words, fmt.Sprintf("%d", arg))
		}
	}

	out = strings.Join(words, " ")

	return
}
