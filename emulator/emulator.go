// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives a cpu through a program with caller imposed
// bounds: a tick limit and context cancellation.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/regcpu/cpu"
	"github.com/ezrec/regcpu/internal"
)

const (
	MAX_TICKS = 1 << 20 // Default tick limit of a new emulator.
)

var _emulator_defines = map[string]string{
	"MAX_TICKS": fmt.Sprintf("%v", MAX_TICKS),
}

// Emulator state. CPU + program + run limits.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program.
	MaxTicks int          // Abort a run after this many ticks; 0 for no limit.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:      cpu.NewCpu(),
		Program:  cpu.NewProgram(),
		MaxTicks: MAX_TICKS,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset the cpu, and load the program.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Load(emu.Program)
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int64 {
	return emu.Cpu.Register.Value[cpu.REG_IP]
}

// Code returns the instruction at the current instruction pointer.
func (emu *Emulator) Code() cpu.Code {
	code, _ := emu.Program.Code(emu.Ip())
	return code
}

// Done returns true once the cpu has halted or faulted.
func (emu *Emulator) Done() bool {
	return emu.Cpu.State != cpu.STATE_RUNNING
}

// Tick performs a single tick of the emulator.
// done is set once the cpu halts; a fault returns an *ErrRuntime.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	tick := emu.Ticks()
	ip := emu.Ip()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Tick: tick, Ip: ip, Err: err}
		}
	}()

	if emu.MaxTicks > 0 && tick >= emu.MaxTicks {
		err = ErrTickLimit
		return
	}

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Done()

	return
}

// Run resets the emulator and ticks until the program halts, faults, the
// tick limit is reached, or the context is done.
func (emu *Emulator) Run(ctx context.Context) (snapshot cpu.Snapshot, err error) {
	emu.Reset()

	for done := false; !done; {
		select {
		case <-ctx.Done():
			err = &ErrRuntime{Tick: emu.Ticks(), Ip: emu.Ip(), Err: ctx.Err()}
		default:
			done, err = emu.Tick()
		}
		if err != nil {
			break
		}
	}

	if emu.Verbose {
		if err != nil {
			log.Printf("emulator: stopped: %v", err)
		} else {
			log.Printf("emulator: halted after %d ticks", emu.Ticks())
		}
	}

	snapshot = emu.Cpu.Snapshot()

	return
}

// Aborted returns true if a run error was caused by the caller's bounds,
// rather than a cpu fault.
func Aborted(err error) bool {
	return errors.Is(err, ErrTickLimit) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
