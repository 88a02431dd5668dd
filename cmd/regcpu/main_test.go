package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ezrec/regcpu/cpu"
	"github.com/ezrec/regcpu/translate"
)

func TestParseWindow(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text     string
		from, to int
		ok       bool
	}){
		{"0:16", 0, 16, true},
		{"100:101", 100, 101, true},
		{"5:5", 5, 5, true},
		{"16", 0, 0, false},
		{"a:b", 0, 0, false},
		{"8:4", 0, 0, false},
		{"-1:4", 0, 0, false},
	}

	for _, entry := range table {
		from, to, err := parseWindow(entry.text)
		if entry.ok {
			assert.NoError(err, entry.text)
			assert.Equal(entry.from, from, entry.text)
			assert.Equal(entry.to, to, entry.text)
		} else {
			assert.ErrorIs(err, ErrWindow, entry.text)
		}
	}
}

func TestDump(t *testing.T) {
	assert := assert.New(t)

	c := cpu.NewCpu()
	snap, err := c.Run(cpu.NewProgram(
		cpu.MakeCodeConst(42, cpu.REG_RA),
		cpu.MakeCodeStore(cpu.REG_RB, cpu.REG_RA, 1),
		cpu.MakeCodeHalt(),
	))
	assert.NoError(err)

	out := &bytes.Buffer{}
	dump(out, snap, 0, 2)

	text := out.String()
	assert.Contains(text, "ticks: 3\n")
	assert.Contains(text, "   Ra: 42\n")
	assert.Contains(text, "   IP: 3\n")
	assert.Contains(text, "[0000]: 0\n[0001]: 42\n")
}

func TestWindowError(t *testing.T) {
	assert := assert.New(t)

	defer translate.SetLanguage(translate.Language().String())

	message.SetString(language.German, string(ErrWindow), "Speicherfenster muss 'von:bis' sein")

	_, _, err := parseWindow("16")

	translate.SetLanguage("en-US")
	assert.Equal("memory window must be 'from:to'", err.Error())

	translate.SetLanguage("de-DE")
	assert.Equal("Speicherfenster muss 'von:bis' sein", err.Error())
}
