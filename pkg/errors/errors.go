// Package errors provides structured error types for Patchboard Atlas.
//
// Every named failure in the application carries a machine-readable [Code]
// so callers can branch on the kind of failure without matching strings:
//
//	if errors.Is(err, errors.ErrCodeStackUnderflow) {
//	    // pop with nothing saved
//	}
//
// # Error Codes
//
// Coordinate machine failures:
//   - UNKNOWN_SOURCE, UNKNOWN_DESTINATION: a load/store token outside the fixed set
//   - WRONG_SPACE: a World-only destination received Canvas coordinates
//   - INVALID_TRANSITION: projection between tags other than World and Canvas
//   - STACK_UNDERFLOW, WRONG_SNAPSHOT_KIND: snapshot stack misuse
//
// Application failures:
//   - INVALID_*: input validation failures (cards, config, flags)
//   - NOT_FOUND: unknown entity or card
//   - INTERNAL_ERROR: unexpected internal errors
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Coordinate machine errors
	ErrCodeUnknownSource      Code = "UNKNOWN_SOURCE"
	ErrCodeUnknownDestination Code = "UNKNOWN_DESTINATION"
	ErrCodeWrongSpace         Code = "WRONG_SPACE"
	ErrCodeInvalidTransition  Code = "INVALID_TRANSITION"
	ErrCodeStackUnderflow     Code = "STACK_UNDERFLOW"
	ErrCodeWrongSnapshotKind  Code = "WRONG_SNAPSHOT_KIND"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidCard   Code = "INVALID_CARD"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeAlreadyPlaced Code = "ALREADY_PLACED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
