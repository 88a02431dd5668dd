// Package translate formats user visible messages for the current locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	mutex   sync.RWMutex
	printer *message.Printer
	tag     language.Tag
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("regcpu: locale: %v", err)
	}

	SetLanguage(locales...)
}

// SetLanguage selects the first parsable BCP 47 locale.
// With no usable locale, en-US is used.
func SetLanguage(locales ...string) {
	selected := language.AmericanEnglish
	for _, name := range locales {
		parsed, err := language.Parse(name)
		if err == nil {
			selected = parsed
			break
		}
	}

	mutex.Lock()
	defer mutex.Unlock()

	tag = selected
	printer = message.NewPrinter(tag)
}

// Language returns the selected language.
func Language() language.Tag {
	mutex.RLock()
	defer mutex.RUnlock()

	return tag
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	mutex.RLock()
	defer mutex.RUnlock()

	return printer.Sprintf(key, args...)
}

// Error is a sentinel error whose en-US message is translated each time it
// is read, so it follows later calls to SetLanguage.
type Error string

func (err Error) Error() string {
	return From(string(err))
}
