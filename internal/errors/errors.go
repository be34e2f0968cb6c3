// Package errors provides the coded error types returned by the packing
// engine and its collaborators.
//
// Every failure the engine can report is fatal for the call that produced it:
// there is no partial output. The code tells the caller which kind of failure
// occurred so it can decide on a higher-level fallback (for example re-running
// with a larger preferred sheet size).
//
//	err := errors.New(errors.ErrCodeInvalidPacker, "unknown packer %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidPacker) {
//	    // report configuration problem
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Configuration errors: the caller asked for something that does not exist
	// or handed in malformed input.
	ErrCodeInvalidPacker Code = "INVALID_PACKER"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"

	// A packer produced a placement set that violates its own guarantees.
	ErrCodeGeometry Code = "GEOMETRY_INVARIANT"

	// Packing yielded no sheets where at least one was expected.
	ErrCodeEmptyResult Code = "EMPTY_RESULT"

	// Reading or writing files in the outer collaborators failed.
	ErrCodeIO Code = "IO_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix for *Error values,
// and the plain error string otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsConfiguration reports whether err is one of the configuration kinds:
// an unknown packer, an unknown format or malformed input.
func IsConfiguration(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidPacker, ErrCodeInvalidFormat, ErrCodeInvalidInput:
		return true
	}
	return false
}
