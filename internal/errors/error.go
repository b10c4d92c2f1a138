package errors

import (
	"errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryAccess   Category = "access"
	CategoryProtocol Category = "protocol"
	CategoryConfig   Category = "config"
)

// TetherError is a structured error with a registry code, explanation and fix hint.
type TetherError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (access, protocol, config).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *TetherError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *TetherError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a TetherError with the same code.
func (e *TetherError) Is(target error) bool {
	t, ok := target.(*TetherError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *TetherError) WithSuggestion(s string) *TetherError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the registry explanation.
func (e *TetherError) WithDetail(d string) *TetherError {
	e.Detail = d
	return e
}

// WithDetailf replaces the registry explanation with a formatted one.
func (e *TetherError) WithDetailf(format string, args ...any) *TetherError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *TetherError) Wrap(err error) *TetherError {
	e.Wrapped = err
	return e
}

// New creates a TetherError from a registered error code.
func New(code string) *TetherError {
	template, ok := registry[code]
	if !ok {
		return &TetherError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &TetherError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Code returns the registry code carried by err, or "" when err is not a
// TetherError. Panic values recovered from the runtime can be passed directly.
func Code(v any) string {
	err, ok := v.(error)
	if !ok {
		return ""
	}
	var te *TetherError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}
