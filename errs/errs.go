// Package errs defines the flat error-kind taxonomy shared by every
// package in this module, along with a small wrapped-error type that
// carries a Kind alongside its underlying cause.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is a fixed, integer-coded failure category. Every fallible
// operation in this module resolves to exactly one Kind.
type Kind int

const (
	OK Kind = iota
	NOMEM
	INVAL
	OPEN
	CLOSE
	READ
	WRITE
	READWRITE
	PARSE
	TIMEOUT
	LOCKED
	FAILURE
	UNSUPPORTED
	UNIMPLEMENTED
	PERM
	FULL
	EMPTY
	AGAIN
	NOENT
	CORRUPTED
	OVERFLOW
)

var kindStrings = [...]string{
	OK:            "ok",
	NOMEM:         "out of memory",
	INVAL:         "invalid argument",
	OPEN:          "open failed",
	CLOSE:         "close failed",
	READ:          "read failed",
	WRITE:         "write failed",
	READWRITE:     "read/write failed",
	PARSE:         "parse error",
	TIMEOUT:       "timed out",
	LOCKED:        "locked",
	FAILURE:       "operation failed",
	UNSUPPORTED:   "unsupported",
	UNIMPLEMENTED: "not implemented",
	PERM:          "permission denied",
	FULL:          "full",
	EMPTY:         "empty",
	AGAIN:         "try again",
	NOENT:         "no such entry",
	CORRUPTED:     "corrupted data",
	OVERFLOW:      "numeric overflow",
}

// String returns the fixed human-readable string for k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindStrings) {
		return "unknown error"
	}
	return kindStrings[k]
}

// Error is the error type returned by every fallible operation in this
// module. It carries a Kind for programmatic branching and an optional
// wrapped cause for diagnostics.
type Error struct {
	Kind  Kind
	cause error
}

// New creates an *Error of the given kind with a formatted message.
func New(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, cause: errors.Errorf(format, args...)}
}

// Wrap attaches k to an existing cause, preserving it for errors.Is/As.
func Wrap(k Kind, cause error, format string, args ...any) *Error {
	if cause == nil {
		return New(k, format, args...)
	}
	return &Error{Kind: k, cause: errors.Wrapf(cause, format, args...)}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.cause)
	}
	return e.Kind.String()
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is an *Error with the same Kind.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

// Of returns the Kind carried by err, or OK if err is nil, or FAILURE
// if err is a non-*Error value.
func Of(err error) Kind {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return FAILURE
}
