// Package errors provides coded errors for fcblocks.
//
// Every failure that reaches the CLI carries a [Code], so callers can tell a
// design with an unsupported piece (UNKNOWN_BLOCK_TYPE) from a damaged
// document (MALFORMED_FIELD, INVALID_DOCUMENT) or an unreachable level
// service (NETWORK_ERROR) without matching on message text.
//
// Codes survive fmt.Errorf("%w") wrapping:
//
//	_, err := blocks.Classify("Balloon", false)
//	err = fmt.Errorf("player block 3: %w", err)
//	errors.Is(err, errors.ErrCodeUnknownBlockType) // true
//	errors.UserMessage(err)                        // unknown block type "Balloon"
//
// Wrap attaches a code to a lower-level error:
//
//	errors.Wrap(errors.ErrCodeNetwork, err, "post %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidID       Code = "INVALID_ID"
	ErrCodeInvalidPrefix   Code = "INVALID_PREFIX"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"

	// Block conversion errors
	ErrCodeUnknownBlockType Code = "UNKNOWN_BLOCK_TYPE"
	ErrCodeMalformedField   Code = "MALFORMED_FIELD"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

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
		return e.Message
	}
	return err.Error()
}
