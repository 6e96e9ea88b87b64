package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error describes a failed runtime operation with its status code, the
// operation that failed and an optional underlying cause.
//
//nolint:errname // public API name, keep for compatibility.
type Error struct {
	Err     error
	Op      string
	Message string
	Status  Status
}

// Error formats the failure for display, including status, operation and cause.
func (e *Error) Error() string {
	if e == nil {
		return "error <nil>"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Status))
	if e.Op != "" {
		b.WriteString(" " + e.Op)
		if e.Message != "" {
			b.WriteString(":")
		}
	}
	if e.Message != "" {
		b.WriteString(" " + e.Message)
	}
	if e.Err != nil {
		b.WriteString(fmt.Sprintf(" (%v)", e.Err))
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target carries the same status.
// Both a bare Status and another *Error are accepted as targets.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch t := target.(type) {
	case Status:
		return e.Status == t
	case *Error:
		return t != nil && e.Status == t.Status
	default:
		return false
	}
}

// New builds an *Error with a status, failing operation and message.
func New(status Status, op, msg string) *Error {
	return &Error{Status: status, Op: op, Message: msg}
}

// Newf formats a message and builds an *Error.
func Newf(status Status, op, format string, args ...any) *Error {
	return New(status, op, fmt.Sprintf(format, args...))
}

// Wrap builds an *Error that records err as its cause.
func Wrap(status Status, op string, err error) *Error {
	return &Error{Status: status, Op: op, Err: err}
}

// StatusOf extracts the status carried by err.
// A nil error reports StatusSuccess; an error without a status reports
// StatusEnvironmentFailed.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Status
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return StatusEnvironmentFailed
}

// AsError extracts the *Error carried by err.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}
