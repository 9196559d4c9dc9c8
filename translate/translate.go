// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate renders user-facing messages for the current locale.
package translate

import (
	"log"
	"slices"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var (
	printer *message.Printer
	locales []string
)

func init() {
	var err error
	locales, err = locale.GetLocales()
	if err != nil {
		log.Printf("tis: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// Locales returns the user's preferred locales, most preferred first.
func Locales() []string {
	return slices.Clone(locales)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
