package emulator

import (
	"strconv"

	"github.com/ezrec/regcpu/translate"
)

var f = translate.From

const (
	// Run limit errors
	ErrTickLimit = translate.Error("tick limit reached")
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Tick int
	Ip   int64
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("tick %v ip %v %v", strconv.Itoa(err.Tick), strconv.FormatInt(err.Ip, 10), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
