// Package biserr defines the structured fault type used for "log and skip"
// sites in the index engine, and the resource-exhaustion error wrapping used
// on the build/load path.
package biserr

import "fmt"

// Kind classifies a Fault.
type Kind int

const (
	// KindInvariant marks an impossible-in-theory bitmap state, e.g. a
	// negative sort offset outside the supported range.
	KindInvariant Kind = iota
	// KindUnsupported marks a rejected-at-creation-time feature, e.g. an
	// expression index.
	KindUnsupported
)

// Fault carries the offending metadata for a single "internal invariant
// violation" or "unsupported feature" site, so the caller can decide to log
// and skip or to propagate.
type Fault struct {
	Kind      Kind
	Component string
	Detail    string
	Err       error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Component, f.Detail, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Component, f.Detail)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// New builds an invariant-violation Fault.
func New(component, detail string) *Fault {
	return &Fault{Kind: KindInvariant, Component: component, Detail: detail}
}

// Unsupported builds a rejected-feature Fault for index creation time.
func Unsupported(component, detail string) *Fault {
	return &Fault{Kind: KindUnsupported, Component: component, Detail: detail}
}

// LogAndSkip logs the fault at warn level and reports that the caller
// should skip the offending element rather than abort. It returns true to
// make call sites read naturally: `if biserr.LogAndSkip(f) { continue }`.
func LogAndSkip(f *Fault) bool {
	logWarn(f)
	return true
}
