package cpu

import (
	"fmt"
	"log"
	"strings"
)

// RegisterWrite is a register update made by an instruction.
type RegisterWrite struct {
	Register Register
	Value    int64
}

// MemoryWrite is a memory update made by an instruction.
type MemoryWrite struct {
	Address int64
	Value   int64
}

// TraceEvent describes one executed instruction and its results.
type TraceEvent struct {
	Ip     int64           // Address of the instruction.
	Code   Code            // Instruction executed.
	Writes []RegisterWrite // Register writes, excluding the IP increment.
	Stores []MemoryWrite   // Memory writes.
	State  State           // Cpu state after the instruction.
	Err    error           // Fault kind, if the instruction faulted.
}

// String returns the event in a single log line.
func (ev TraceEvent) String() string {
	var parts []string
	for _, wr := range ev.Writes {
		parts = append(parts, fmt.Sprintf("%v=%d", wr.Register, wr.Value))
	}
	for _, st := range ev.Stores {
		parts = append(parts, fmt.Sprintf("[%d]=%d", st.Address, st.Value))
	}

	text := fmt.Sprintf("%03d: %v", ev.Ip, ev.Code)
	if len(parts) > 0 {
		text += " => " + strings.Join(parts, " ")
	}
	if ev.Err != nil {
		text += fmt.Sprintf(" !! %v", ev.Err)
	} else if ev.State != STATE_RUNNING {
		text += fmt.Sprintf(" (%v)", ev.State)
	}

	return text
}

// Tracer observes each instruction executed by the cpu.
type Tracer interface {
	Trace(event TraceEvent)
}

// TracerFunc adapts a function into a Tracer.
type TracerFunc func(event TraceEvent)

func (fn TracerFunc) Trace(event TraceEvent) {
	fn(event)
}

// LogTracer writes each event to a logger, or the standard logger if nil.
type LogTracer struct {
	Logger *log.Logger
}

func (lt *LogTracer) Trace(event TraceEvent) {
	if lt.Logger == nil {
		log.Printf("cpu: %v", event)
		return
	}
	lt.Logger.Printf("cpu: %v", event)
}

// Recorder keeps every traced event.
type Recorder struct {
	Events []TraceEvent
}

func (rec *Recorder) Trace(event TraceEvent) {
	rec.Events = append(rec.Events, event)
}

// Reset drops all recorded events.
func (rec *Recorder) Reset() {
	if len(rec.Events) > 0 {
		rec.Events = rec.Events[:0]
	}
}
