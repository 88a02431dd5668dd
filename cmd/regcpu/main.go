// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/ezrec/regcpu/cpu"
	"github.com/ezrec/regcpu/emulator"
	"github.com/ezrec/regcpu/internal"
	"github.com/ezrec/regcpu/script"
	"github.com/ezrec/regcpu/translate"
)

const ErrWindow = translate.Error("memory window must be 'from:to'")

// parseWindow parses a 'from:to' memory window.
func parseWindow(text string) (from, to int, err error) {
	first, last, ok := strings.Cut(text, ":")
	if !ok {
		err = ErrWindow
		return
	}

	from, err = strconv.Atoi(first)
	if err != nil {
		err = errors.Join(ErrWindow, err)
		return
	}

	to, err = strconv.Atoi(last)
	if err != nil {
		err = errors.Join(ErrWindow, err)
		return
	}

	if from < 0 || to < from {
		err = ErrWindow
		return
	}

	return
}

// dump writes the final registers, and the memory window if any.
func dump(out io.Writer, snap cpu.Snapshot, from, to int) {
	fmt.Fprintf(out, "% 5s: %d\n", "ticks", snap.Ticks)
	fmt.Fprint(out, snap.Register.String())

	for n, value := range snap.Memory.Slice(from, to) {
		fmt.Fprintf(out, "[%04d]: %d\n", from+n, value)
	}
}

func main() {
	var compile string
	var ticks int
	var trace bool
	var verbose bool
	var window string
	var lang string
	var defines bool

	flag.StringVar(&compile, "c", "", ".star program to run")
	flag.IntVar(&ticks, "n", emulator.MAX_TICKS, "Tick limit, 0 for none")
	flag.BoolVar(&trace, "t", false, "Trace each instruction")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&window, "m", "", "Memory window 'from:to' to print")
	flag.StringVar(&lang, "l", "", "Message language, ie en-US")
	flag.BoolVar(&defines, "D", false, "List the predefined script globals")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.SetLanguage(lang)
	}

	var from, to int
	if len(window) != 0 {
		var err error
		from, to, err = parseWindow(window)
		if err != nil {
			log.Fatalf("%v: -m %v: %v", os.Args[0], window, err)
		}
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.MaxTicks = ticks
	if trace {
		emu.Cpu.Tracer = &cpu.LogTracer{Logger: log.New(os.Stderr, "", 0)}
	}

	if defines {
		for key, value := range internal.IterSeq2Sorted(emu.Defines()) {
			fmt.Printf("%v = %v\n", key, value)
		}
		return
	}

	if len(compile) == 0 {
		log.Fatalf("%v: -c program required", os.Args[0])
	}

	bld := &script.Builder{Verbose: verbose}
	for key, value := range emu.Defines() {
		bld.Predefine(key, value)
	}

	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	prog, err := bld.Build(compile, inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	emu.Program = prog

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	snap, err := emu.Run(ctx)
	dump(os.Stdout, snap, from, to)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
}
