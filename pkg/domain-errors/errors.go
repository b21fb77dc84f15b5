// Package derrors provides coded domain errors shared across modules.
//
// Services and models return these so transport layers can map them to HTTP
// status codes without inspecting error strings. Infrastructure facts
// (not found, unavailable) live in pkg/platform/sentinel; stores return
// sentinels and services translate them into coded domain errors.
package derrors

import (
	"errors"
	"fmt"
)

// Code identifies the class of a domain error.
type Code string

const (
	CodeValidation         Code = "validation"
	CodeInvalidInput       Code = "invalid_input"
	CodeBadRequest         Code = "bad_request"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeTimeout            Code = "timeout"
	CodeUnavailable        Code = "unavailable"
	CodeInternal           Code = "internal"
	CodeInvariantViolation Code = "invariant_violation"
)

// Error is a domain error with a machine-readable code and optional
// field-keyed details for validation failures.
type Error struct {
	Code    Code
	Message string
	// Fields carries field-keyed validation messages when Code is
	// CodeValidation. Nil otherwise.
	Fields map[string]string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error, preserving the
// cause for errors.Is / errors.As chains.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// NewValidation creates a validation error carrying field-keyed messages.
func NewValidation(message string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

// HasCode reports whether err (or any error in its chain) is a domain error
// with the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is a readability alias for HasCode used at call sites that branch on
// error class.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf extracts the code from err, or CodeInternal when err is not a
// domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
