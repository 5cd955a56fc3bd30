// Package errors provides structured error types for netdraw.
//
// Every failure the diagram pipeline can report carries a machine-readable
// [Code] so that the CLI and the HTTP API can map it to an exit status, a
// response code, or a user-facing message without string matching.
//
// # Error Codes
//
// Codes are grouped by where the failure originates:
//   - Structural: NO_ROOT, CYCLE, UNDEFINED_PARENT, DUPLICATE_ID, NO_DATA
//   - Input validation: INVALID_*
//   - Input lookup: FILE_NOT_FOUND, SHEET_NOT_FOUND, UNSUPPORTED_SOURCE
//   - Output: SERIALIZATION_IO
//   - Misc: NETWORK_ERROR, INTERNAL_ERROR
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoRoot, "no root nodes among %d nodes", n)
//	if errors.Is(err, errors.ErrCodeNoRoot) {
//	    // Abort the run
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSerializationIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Structural errors in the node set
	ErrCodeNoRoot          Code = "NO_ROOT"
	ErrCodeCycle           Code = "CYCLE"
	ErrCodeUndefinedParent Code = "UNDEFINED_PARENT"
	ErrCodeDuplicateID     Code = "DUPLICATE_ID"
	ErrCodeNoData          Code = "NO_DATA"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidOptions Code = "INVALID_OPTIONS"

	// Input lookup errors
	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"
	ErrCodeSheetNotFound     Code = "SHEET_NOT_FOUND"
	ErrCodeUnsupportedSource Code = "UNSUPPORTED_SOURCE"

	// Output errors
	ErrCodeSerializationIO Code = "SERIALIZATION_IO"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

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

// IsStructural reports whether err describes a defect in the node set itself
// (as opposed to an I/O or option problem). Structural errors are caused by
// the input data and are fixed by editing it.
func IsStructural(err error) bool {
	switch GetCode(err) {
	case ErrCodeNoRoot, ErrCodeCycle, ErrCodeUndefinedParent, ErrCodeDuplicateID, ErrCodeNoData:
		return true
	}
	return false
}
