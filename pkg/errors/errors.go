// Package errors provides structured error types for the Helmboard application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_DETECTED / UNKNOWN_*: Data-integrity failures in the dependency graph
//   - STORE_* / CACHE_*: Collaborator failures (transient, retryable)
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidStatus, "unknown status: %s", raw)
//	if errors.Is(err, errors.ErrCodeInvalidStatus) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStoreUnavailable, origErr, "snapshot fetch failed")
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
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidStatus    Code = "INVALID_STATUS"
	ErrCodeInvalidSubsystem Code = "INVALID_SUBSYSTEM"
	ErrCodeInvalidSnapshot  Code = "INVALID_SNAPSHOT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Graph data-integrity errors. Fatal to the computation pass, never
	// retried and never downgraded to fallback output.
	ErrCodeUnknownDependency Code = "UNKNOWN_DEPENDENCY"
	ErrCodeSelfDependency    Code = "SELF_DEPENDENCY"
	ErrCodeCycleDetected     Code = "CYCLE_DETECTED"

	// Collaborator errors (transient)
	ErrCodeStoreUnavailable Code = "STORE_UNAVAILABLE"
	ErrCodeCacheUnavailable Code = "CACHE_UNAVAILABLE"
	ErrCodeNotFound         Code = "NOT_FOUND"

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

// IsDataIntegrity reports whether the error is one of the graph
// data-integrity codes. These are fatal to the computation pass: the caller
// must reject the edit that introduced them or display a persistent error
// state, never retry or substitute defaults.
func IsDataIntegrity(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnknownDependency, ErrCodeSelfDependency, ErrCodeCycleDetected:
		return true
	}
	return false
}
