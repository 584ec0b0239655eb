// Package apperr defines the error values surfaced to pomo users
package apperr

import (
	"errors"
	"fmt"
)

// Error is a user-facing error. Message may contain fmt verbs which are
// filled in through Fmt.
type Error struct {
	Cause   error
	Message string
	Context []any
}

func (e *Error) Error() string {
	msg := e.Message
	if len(e.Context) > 0 {
		msg = fmt.Sprintf(e.Message, e.Context...)
	}

	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}

	return msg
}

// Fmt returns a copy of the error with its message arguments set.
func (e *Error) Fmt(args ...any) *Error {
	cp := *e
	cp.Context = args

	return &cp
}

// Wrap returns a copy of the error that wraps err.
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Cause = err

	return &cp
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same message template so
// that formatted and wrapped copies still match the original value.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Message == e.Message
}
