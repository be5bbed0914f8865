// Package errors provides coded errors shared by the wheel, the CLI and the
// HTTP API.
//
// An [Error] carries a machine-readable [Code], a message for people and an
// optional cause. Codes group as:
//   - INVALID_*: configuration and input validation failures
//   - *_NOT_FOUND, SESSION_EXPIRED: missing resources
//   - OVERSIZE_ITEM, INVARIANT_VIOLATION: layout failures that break a wheel
//   - UNAVAILABLE, INTERNAL_ERROR, UNSUPPORTED: host side failures
//
// The HTTP server maps codes to status codes; the CLI prints [UserMessage].
//
//	err := errors.New(errors.ErrCodeInvalidRadius, "radius must be positive, got %d", r)
//	if errors.Is(err, errors.ErrCodeInvalidRadius) {
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input and configuration errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidRadius    Code = "INVALID_RADIUS"
	ErrCodeInvalidQuadrants Code = "INVALID_QUADRANTS"
	ErrCodeInvalidStrategy  Code = "INVALID_STRATEGY"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidViewport  Code = "INVALID_VIEWPORT"
	ErrCodeInvalidLabel     Code = "INVALID_LABEL"

	// Layout failures
	ErrCodeOversizeItem       Code = "OVERSIZE_ITEM"
	ErrCodeInvariantViolation Code = "INVARIANT_VIOLATION"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"
	ErrCodeSessionExpired  Code = "SESSION_EXPIRED"

	// Capacity errors
	ErrCodeUnavailable Code = "UNAVAILABLE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
		return e.Message
	}
	return err.Error()
}

// Fatal reports whether err, or any coded error in its cause chain, is a
// layout failure that leaves a wheel unusable. Hosts discard the wheel.
func Fatal(err error) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		switch e.Code {
		case ErrCodeOversizeItem, ErrCodeInvariantViolation, ErrCodeInvalidRadius:
			return true
		}
		err = e.Cause
	}
	return false
}
