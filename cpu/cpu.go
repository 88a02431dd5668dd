package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"math"
)

// State is the execution state of the cpu.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
	STATE_FAULTED = State(2) // faulted
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%d", MEMORY_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
	"GENERAL_COUNT":  fmt.Sprintf("%d", GENERAL_COUNT),
}

// Snapshot is a copy of the cpu registers and memory.
type Snapshot struct {
	Register RegisterFile
	Memory   Memory
	Ticks    int
}

// Cpu is the simulation context for the register machine.
type Cpu struct {
	Verbose bool   // Set to enable verbose logging.
	Tracer  Tracer // If set, receives an event per executed instruction.

	Program  *Program     // Program being executed.
	Register RegisterFile // Register file, including IP and SP.
	Memory   Memory       // Data memory.
	State    State        // Execution state.
	Fault    *Fault       // Fault that stopped the cpu, if any.

	Ticks int // Instructions executed since the last reset.

	writes []RegisterWrite // Register writes of the current instruction.
	stores []MemoryWrite   // Memory writes of the current instruction.
}

// NewCpu creates a new cpu, ready to run.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current cpu state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("% 5s: %v\n", "state", cpu.State)
	text += fmt.Sprintf("% 5s: %d\n", "ticks", cpu.Ticks)
	text += cpu.Register.String()

	return
}

// Reset the cpu state.
// - Clears the registers and memory; IP is 0.
// - Zeros the tick counter.
// - Sets the state to running.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Register.Reset()
	cpu.Memory.Reset()
	cpu.State = STATE_RUNNING
	cpu.Fault = nil
	cpu.Ticks = 0
}

// Load resets the cpu and installs a program to run.
func (cpu *Cpu) Load(prog *Program) {
	cpu.Reset()
	cpu.Program = prog

	if cpu.Verbose {
		log.Printf("cpu: loaded %d instructions", prog.Len())
	}
}

// Snapshot returns a copy of the registers and memory.
func (cpu *Cpu) Snapshot() Snapshot {
	return Snapshot{
		Register: cpu.Register,
		Memory:   cpu.Memory,
		Ticks:    cpu.Ticks,
	}
}

// Run loads the program and executes it until it halts or faults.
// A halted run returns a nil error; a faulted run returns a *Fault.
// In both cases the snapshot holds the final registers and memory.
func (cpu *Cpu) Run(prog *Program) (snapshot Snapshot, err error) {
	cpu.Load(prog)

	for cpu.State == STATE_RUNNING {
		err = cpu.Tick()
		if err != nil {
			break
		}
	}

	snapshot = cpu.Snapshot()

	return
}

// fault moves the cpu into the faulted state.
func (cpu *Cpu) fault(ip int64, code Code, kind error) (err *Fault) {
	err = &Fault{Ip: ip, Code: code, Err: kind}

	cpu.State = STATE_FAULTED
	cpu.Fault = err

	if cpu.Verbose {
		log.Printf("cpu: %v", err)
	}

	return
}

// Tick fetches, decodes and executes a single instruction.
func (cpu *Cpu) Tick() (err error) {
	if cpu.State != STATE_RUNNING {
		err = ErrNotRunning
		return
	}

	ip := cpu.Register.Value[REG_IP]
	code, ok := cpu.Program.Code(ip)
	if !ok {
		err = cpu.fault(ip, Code{}, ErrIpRange(ip))
		return
	}

	// IP is advanced before dispatch, jumps overwrite it.
	cpu.Register.Value[REG_IP] = ip + 1
	cpu.Ticks++

	if cpu.Verbose {
		log.Printf("cpu: %03d: %v", ip, code)
	}

	kind := cpu.Execute(code)
	if kind != nil {
		err = cpu.fault(ip, code, kind)
	}

	if cpu.Tracer != nil {
		cpu.Tracer.Trace(TraceEvent{
			Ip:     ip,
			Code:   code,
			Writes: cpu.writes,
			Stores: cpu.stores,
			State:  cpu.State,
			Err:    kind,
		})
	}

	return
}

// Execute executes a single decoded instruction against the current
// registers and memory. It does not advance IP, and it returns the fault
// kind without changing the cpu state, except for HALT.
func (cpu *Cpu) Execute(code Code) (err error) {
	cpu.writes = nil
	cpu.stores = nil

	if !code.Op.Valid() {
		err = ErrUnsupportedInstruction(code.Op)
		return
	}

	if len(code.Args) != code.Op.Arity() {
		err = ErrOpcodeArgs
		return
	}

	args := code.Args

	switch code.Op {
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV:
		var a, b int64
		a, err = cpu.getValue(args[0])
		if err != nil {
			return
		}
		b, err = cpu.getValue(args[1])
		if err != nil {
			return
		}
		var value int64
		value, err = doAlu(code.Op, a, b)
		if err != nil {
			return
		}
		err = cpu.setValue(args[2], value)
	case OP_INC, OP_DEC:
		var a int64
		a, err = cpu.getValue(args[0])
		if err != nil {
			return
		}
		delta := int64(1)
		if code.Op == OP_DEC {
			delta = -1
		}
		var ok bool
		a, ok = addInt64(a, delta)
		if !ok {
			err = ErrOverflow
			return
		}
		err = cpu.setValue(args[0], a)
	case OP_CMP:
		cmp := CodeCmp(args[0])
		if !cmp.Valid() {
			err = ErrUnsupportedOperator(cmp)
			return
		}
		var a, b int64
		a, err = cpu.getValue(args[1])
		if err != nil {
			return
		}
		b, err = cpu.getValue(args[2])
		if err != nil {
			return
		}
		var value int64
		if doCmp(cmp, a, b) {
			value = 1
		}
		err = cpu.setValue(args[3], value)
	case OP_CONST:
		err = cpu.setValue(args[1], args[0])
	case OP_LOAD:
		var base, value int64
		base, err = cpu.getValue(args[0])
		if err != nil {
			return
		}
		// Validate the destination before touching memory.
		_, err = cpu.getValue(args[1])
		if err != nil {
			return
		}
		var address int64
		address, err = effectiveAddress(base, args[2])
		if err != nil {
			return
		}
		value, err = cpu.Memory.Read(address)
		if err != nil {
			return
		}
		err = cpu.setValue(args[1], value)
	case OP_STORE:
		var base, value int64
		base, err = cpu.getValue(args[0])
		if err != nil {
			return
		}
		value, err = cpu.getValue(args[1])
		if err != nil {
			return
		}
		var address int64
		address, err = effectiveAddress(base, args[2])
		if err != nil {
			return
		}
		err = cpu.Memory.Write(address, value)
		if err != nil {
			return
		}
		cpu.stores = append(cpu.stores, MemoryWrite{Address: address, Value: value})
	case OP_JMP:
		var target int64
		target, err = cpu.getValue(args[0])
		if err != nil {
			return
		}
		ip, ok := addInt64(target, args[1])
		if !ok {
			err = ErrIpRange(saturate(args[1]))
			return
		}
		err = cpu.setValue(int64(REG_IP), ip)
	case OP_JZ:
		var target, test int64
		target, err = cpu.getValue(args[0])
		if err != nil {
			return
		}
		test, err = cpu.getValue(args[1])
		if err != nil {
			return
		}
		if test == 0 {
			err = cpu.setValue(int64(REG_IP), target)
		}
	case OP_HALT:
		cpu.State = STATE_HALTED
		if cpu.Verbose {
			log.Printf("cpu: halted after %d ticks", cpu.Ticks)
		}
	default:
		err = ErrUnsupportedInstruction(code.Op)
	}

	return
}

// getValue reads the register named by a register operand.
func (cpu *Cpu) getValue(arg int64) (value int64, err error) {
	return cpu.Register.Read(Register(arg))
}

// setValue writes the register named by a register operand.
func (cpu *Cpu) setValue(arg int64, value int64) (err error) {
	reg := Register(arg)
	err = cpu.Register.Write(reg, value)
	if err != nil {
		return
	}

	cpu.writes = append(cpu.writes, RegisterWrite{Register: reg, Value: value})
	return
}

// doAlu performs the requested arithmetic, and returns the output value.
// Results that do not fit a cell are ErrOverflow, and a quotient that is
// not a whole number is ErrDivisionInexact.
func doAlu(op Opcode, a, b int64) (output int64, err error) {
	ok := true

	switch op {
	case OP_ADD:
		output, ok = addInt64(a, b)
	case OP_SUB:
		output, ok = subInt64(a, b)
	case OP_MUL:
		output, ok = mulInt64(a, b)
	case OP_DIV:
		switch {
		case b == 0:
			err = ErrDivisionByZero
		case a == math.MinInt64 && b == -1:
			ok = false
		case a%b != 0:
			err = ErrDivisionInexact
		default:
			output = a / b
		}
	default:
		err = ErrUnsupportedInstruction(op)
	}

	if err == nil && !ok {
		err = ErrOverflow
	}

	return
}

// addInt64 returns a + b, and false if the sum overflows.
func addInt64(a, b int64) (sum int64, ok bool) {
	sum = a + b
	ok = (sum > a) == (b > 0)
	return
}

// subInt64 returns a - b, and false if the difference overflows.
func subInt64(a, b int64) (diff int64, ok bool) {
	diff = a - b
	ok = (diff < a) == (b > 0)
	return
}

// mulInt64 returns a * b, and false if the product overflows.
func mulInt64(a, b int64) (product int64, ok bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	product = a * b
	ok = product/b == a && !(a == math.MinInt64 && b == -1)
	return
}

// saturate is the int64 limit an overflowing sum with delta ran past.
func saturate(delta int64) int64 {
	if delta < 0 {
		return math.MinInt64
	}
	return math.MaxInt64
}

// effectiveAddress returns base + offset, or ErrOutOfBounds if the sum
// does not fit a cell.
func effectiveAddress(base, offset int64) (address int64, err error) {
	address, ok := addInt64(base, offset)
	if !ok {
		address = saturate(offset)
		err = ErrOutOfBounds(address)
	}
	return
}

// doCmp evaluates 'a cmp b'.
func doCmp(cmp CodeCmp, a, b int64) bool {
	switch cmp {
	case CMP_LT:
		return a < b
	case CMP_GT:
		return a > b
	case CMP_LE:
		return a <= b
	case CMP_GE:
		return a >= b
	case CMP_EQ:
		return a == b
	case CMP_NE:
		return a != b
	}

	return false
}
