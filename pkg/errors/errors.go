// Package errors defines the coded errors labelkit returns at its
// boundaries: data and config loading, action scripts, the pipeline and the
// preview server.
//
// A [Code] is stable and machine readable; the preview server maps it to an
// HTTP status and the CLI prints it in front of the message.
//
//	if errors.Is(err, errors.ErrCodeInvalidOrder) {
//	    // the order was not a permutation of the section keys
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error.
type Code string

const (
	// ErrCodeInvalidInput is malformed label data or request bodies.
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	// ErrCodeInvalidFormat is an unknown output format or a bad scale.
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	// ErrCodeInvalidSection is an unknown section key or a bad height.
	ErrCodeInvalidSection Code = "INVALID_SECTION"
	// ErrCodeInvalidField is an unknown field key or a bad font size.
	ErrCodeInvalidField Code = "INVALID_FIELD"
	// ErrCodeInvalidOrder is a section order that is not a permutation of
	// the fixed key set.
	ErrCodeInvalidOrder  Code = "INVALID_ORDER"
	ErrCodeInvalidScript Code = "INVALID_SCRIPT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

// Error carries a Code, a message for people and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message and cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// outermost returns the first *Error in err's chain.
func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := outermost(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns err's message without the code prefix.
func UserMessage(err error) string {
	if e, ok := outermost(err); ok {
		return e.Message
	}
	return err.Error()
}
