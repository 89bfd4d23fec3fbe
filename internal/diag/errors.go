package diag

import (
	"errors"
	"fmt"
)

// Failure carries a recoverable, user-facing diagnostic out of a phase.
// Phase drivers report it and apply the fatal-threshold policy.
type Failure struct {
	Diag Diagnostic
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Diag.Code.ID(), f.Diag.Message)
}

// Fail wraps d as an error.
func Fail(d Diagnostic) error {
	return &Failure{Diag: d}
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// InternalKind classifies programmer errors.
type InternalKind uint8

const (
	// Unhandled marks a case the code does not cover.
	Unhandled InternalKind = iota + 1
	// NotImplemented marks a known gap.
	NotImplemented
)

func (k InternalKind) String() string {
	switch k {
	case Unhandled:
		return "unhandled case"
	case NotImplemented:
		return "not implemented"
	}
	return "internal"
}

// InternalError is a programmer error. It is never subject to the
// skip/abort policy: every phase stops and returns it unchanged.
type InternalError struct {
	Kind InternalKind
	Msg  string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error (%s): %s", e.Kind, e.Msg)
}

// Internalf builds an *InternalError of kind Unhandled.
func Internalf(format string, args ...any) error {
	return &InternalError{Kind: Unhandled, Msg: fmt.Sprintf(format, args...)}
}

// Unimplemented builds an *InternalError of kind NotImplemented.
func Unimplemented(format string, args ...any) error {
	return &InternalError{Kind: NotImplemented, Msg: fmt.Sprintf(format, args...)}
}

// IsInternal reports whether err wraps an *InternalError.
func IsInternal(err error) bool {
	var ie *InternalError
	return errors.As(err, &ie)
}
