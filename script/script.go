// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script builds cpu programs from Starlark scripts.
//
// Every opcode is a builtin that appends one instruction to the program
// and returns its address:
//
//	CONST(10, Ra)
//	CONST(20, Rb)
//	ADD(Ra, Rb, Rc)
//	HALT()
//
// Registers are the strings "Ra" to "Rh", "IP" and "SP", which are also
// predeclared as globals of the same name. CMP takes its operator as a
// string, ie CMP("<=", Ra, Rb, Rc). here() returns the address of the next
// instruction. Jumps are absolute, so a loop adding 1 to Rc three times is:
//
//	CONST(3, Ra)
//	CONST(0, Rf)
//	top = INC(Rc)
//	DEC(Ra)
//	CONST(here() + 3, Re)
//	JZ(Re, Ra)
//	JMP(Rf, top)
//	HALT()
package script

import (
	"fmt"
	"io"
	"log"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/regcpu/cpu"
)

const (
	MAX_STEPS = 1 << 24 // Default Starlark execution step limit.
)

// Builder is a Starlark program builder for the cpu.
type Builder struct {
	Verbose  bool      // If set, verbosely logs each generated instruction.
	MaxSteps uint64    // Starlark execution step limit; 0 for MAX_STEPS.
	Output   io.Writer // Destination of print(); the log if nil.

	predefine map[string]string // Predefines
	codes     []cpu.Code        // Instructions of the current build.
}

// Predefine defines a global integer for the scripts, ie MEMORY_SIZE.
// Values that are not integers are ignored at build time.
func (bld *Builder) Predefine(name string, value string) {
	if bld.predefine == nil {
		bld.predefine = map[string]string{name: value}
	} else {
		bld.predefine[name] = value
	}
}

// predeclared returns the globals visible to a script.
func (bld *Builder) predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	for key, str := range bld.predefine {
		value, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Ignore non-integer predefines.
			continue
		}
		pred[key] = starlark.MakeInt64(value)
	}

	for reg := range cpu.Register(cpu.REGISTER_COUNT) {
		name := reg.String()
		pred[name] = starlark.String(name)
	}

	for op := range cpu.Opcode(cpu.OPCODE_COUNT) {
		pred[op.String()] = bld.opcode(op)
	}

	pred["here"] = starlark.NewBuiltin("here", bld.here)

	return
}

// Build executes a Starlark script, and returns the program it describes.
// src may be a string, []byte or io.Reader; if nil, filename is read.
func (bld *Builder) Build(filename string, src any) (prog *cpu.Program, err error) {
	bld.codes = nil

	steps := bld.MaxSteps
	if steps == 0 {
		steps = MAX_STEPS
	}

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			if bld.Output != nil {
				fmt.Fprintln(bld.Output, msg)
			} else {
				log.Printf("script: %v", msg)
			}
		},
	}
	thread.SetMaxExecutionSteps(steps)

	opts := syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}

	_, err = starlark.ExecFileOptions(&opts, thread, filename, src, bld.predeclared())
	if err != nil {
		return
	}

	if len(bld.codes) == 0 {
		err = ErrEmpty
		return
	}

	if bld.Verbose {
		log.Printf("script: %v: %d instructions", filename, len(bld.codes))
	}

	prog = cpu.NewProgram(bld.codes...)
	bld.codes = nil

	return
}

// here returns the address of the next instruction.
func (bld *Builder) here(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}

	return starlark.MakeInt(len(bld.codes)), nil
}

// opcode returns the builtin that appends an instruction.
func (bld *Builder) opcode(op cpu.Opcode) *starlark.Builtin {
	kinds := op.Operands()

	return starlark.NewBuiltin(op.String(), func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		defer func() {
			if err != nil {
				err = ErrScript{
					Pos:  thread.CallFrame(1).Pos.String(),
					Call: fn.Name(),
					Err:  err,
				}
			}
		}()

		if len(kwargs) != 0 {
			err = ErrKeyword
			return
		}

		if len(args) != len(kinds) {
			err = fmt.Errorf("%w: %v", ErrArgument, f("got %d arguments, want %d", len(args), len(kinds)))
			return
		}

		code := cpu.Code{Op: op, Args: make([]int64, len(kinds))}
		for n, arg := range args {
			code.Args[n], err = operand(kinds[n], arg)
			if err != nil {
				return
			}
		}

		ip := len(bld.codes)
		bld.codes = append(bld.codes, code)

		if bld.Verbose {
			log.Printf("script: %03d: %v", ip, code)
		}

		value = starlark.MakeInt(ip)
		return
	})
}

// operand converts a Starlark value into an instruction operand.
func operand(kind byte, arg starlark.Value) (value int64, err error) {
	switch kind {
	case 'r':
		name, ok := starlark.AsString(arg)
		if !ok {
			err = fmt.Errorf("%w: %v", ErrArgument, f("register must be a string, not %v", arg.Type()))
			return
		}
		reg, ok := cpu.RegisterByName(name)
		if !ok {
			err = ErrRegisterInvalid(name)
			return
		}
		value = int64(reg)
	case 'c':
		name, ok := starlark.AsString(arg)
		if !ok {
			err = fmt.Errorf("%w: %v", ErrArgument, f("operator must be a string, not %v", arg.Type()))
			return
		}
		cmp, ok := cpu.CmpByName(name)
		if !ok {
			err = ErrOperatorInvalid(name)
			return
		}
		value = int64(cmp)
	default:
		num, ok := arg.(starlark.Int)
		if !ok {
			err = fmt.Errorf("%w: %v", ErrArgument, f("value must be an int, not %v", arg.Type()))
			return
		}
		value, ok = num.Int64()
		if !ok {
			err = fmt.Errorf("%w: %v", ErrArgument, f("value %v out of range", num))
			return
		}
	}

	return
}
