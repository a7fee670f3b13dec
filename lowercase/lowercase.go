// Package lowercase provides the default query.Lowercaser implementation.
// Biscuit's core treats lowercasing as an external collaborator so that a
// host database can plug in its own locale rules; this package is the
// batteries-included default used by cmd/biscuitctl and by tests, built on
// golang.org/x/text/cases rather than a hand-rolled ASCII-only fold.
package lowercase

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Default is a locale-independent (language.Und) full Unicode lowercaser
// (cases.Lower, not case folding) — correct for multi-script column data
// like "café"/"CAFÉ".
type Default struct {
	caser cases.Caser
}

// NewDefault returns the default Lowercaser.
func NewDefault() Default {
	return Default{caser: cases.Lower(language.Und)}
}

// ToLower implements query.Lowercaser.
func (d Default) ToLower(b []byte) []byte {
	return d.caser.Bytes(b)
}
