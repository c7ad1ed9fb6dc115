package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime Category = "runtime"
	CategoryRender  Category = "render"
	CategoryRouting Category = "routing"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
	CategoryDev     Category = "dev"
	CategoryDeploy  Category = "deploy"
)

// VeldError is a structured error with a stable code, a suggestion and a
// documentation link.
type VeldError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (runtime, routing, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *VeldError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *VeldError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *VeldError) WithSuggestion(s string) *VeldError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *VeldError) WithDetail(d string) *VeldError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *VeldError) Wrap(err error) *VeldError {
	e.Wrapped = err
	return e
}

// New creates a VeldError from a registered error code.
func New(code string) *VeldError {
	template, ok := registry[code]
	if !ok {
		return &VeldError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &VeldError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
		DocURL:     template.DocURL,
	}
}

// Newf creates a new VeldError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *VeldError {
	return &VeldError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a VeldError.
func FromError(err error, code string) *VeldError {
	if err == nil {
		return nil
	}
	if ve, ok := err.(*VeldError); ok {
		return ve
	}
	return New(code).Wrap(err)
}
