package script

import (
	"github.com/ezrec/regcpu/translate"
)

var f = translate.From

const (
	// Builder errors
	ErrArgument = translate.Error("argument")
	ErrKeyword  = translate.Error("keyword arguments not supported")
	ErrEmpty    = translate.Error("no instructions")
)

// ErrRegisterInvalid is returned for an unknown register name.
type ErrRegisterInvalid string

func (er ErrRegisterInvalid) Error() string {
	return f("register '%v' invalid", string(er))
}

func (er ErrRegisterInvalid) Is(err error) (ok bool) {
	_, ok = err.(ErrRegisterInvalid)
	return
}

// ErrOperatorInvalid is returned for an unknown CMP operator.
type ErrOperatorInvalid string

func (eo ErrOperatorInvalid) Error() string {
	return f("operator '%v' invalid", string(eo))
}

func (eo ErrOperatorInvalid) Is(err error) (ok bool) {
	_, ok = err.(ErrOperatorInvalid)
	return
}

// ErrScript locates an error in the program script.
type ErrScript struct {
	Pos  string
	Call string
	Err  error
}

func (err ErrScript) Error() string {
	return f("%v: %v: %v", err.Pos, err.Call, err.Err)
}

func (err ErrScript) Unwrap() error {
	return err.Err
}
