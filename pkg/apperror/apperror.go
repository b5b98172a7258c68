// Package apperror is the single error type returned by every store-facing operation.
package apperror

import (
	"errors"
	"fmt"
)

// Code classifies an Error. Handlers map codes to HTTP status.
type Code string

const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeInvalidInput      Code = "INVALID_INPUT"
	CodeValidation        Code = "VALIDATION_FAILED"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeAlreadyExists     Code = "ALREADY_EXISTS"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeForbidden         Code = "FORBIDDEN"
	CodeStorage           Code = "STORAGE"
	CodeInternal          Code = "INTERNAL"
)

// Error carries a code, a user-facing message and the underlying cause.
// Fields is set for validation failures (field -> message).
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error.
func New(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func NotFound(message string) *Error { return New(CodeNotFound, message, nil) }

func InvalidInput(message string) *Error { return New(CodeInvalidInput, message, nil) }

func Unauthorized(message string) *Error { return New(CodeUnauthorized, message, nil) }

func Forbidden(message string) *Error { return New(CodeForbidden, message, nil) }

func Internal(message string, err error) *Error { return New(CodeInternal, message, err) }

func Storage(message string, err error) *Error { return New(CodeStorage, message, err) }

// Validation wraps field-keyed messages.
func Validation(fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: "validation failed", Fields: fields}
}

// CodeOf returns the code of err, or CodeInternal for foreign errors.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Is reports whether err is an *Error with the given code.
func Is(err error, code Code) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}
