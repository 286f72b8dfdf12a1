package errors

import (
	"fmt"
)

// PeekError is the structured error type for userpeek.
// It provides context for error handling, logging, and user presentation.
type PeekError struct {
	// Code is the unique error code (e.g., "ERR_302_SEARCH_STATUS").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Network, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error
}

// Error implements the error interface.
func (e *PeekError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *PeekError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with PeekError.
func (e *PeekError) Is(target error) bool {
	if t, ok := target.(*PeekError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *PeekError) WithDetail(key, value string) *PeekError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new PeekError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *PeekError {
	return &PeekError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a PeekError from an existing error.
// The error's message becomes the PeekError message.
func Wrap(code string, err error) *PeekError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *PeekError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// SearchError creates an error for a failed search request.
func SearchError(message string, cause error) *PeekError {
	return New(ErrCodeSearchRequest, message, cause)
}

// ThumbnailError creates an error for a failed thumbnail fetch.
// Thumbnail errors carry warning severity: callers degrade to the
// placeholder avatar instead of surfacing them.
func ThumbnailError(message string, cause error) *PeekError {
	return New(ErrCodeThumbnailRequest, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *PeekError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *PeekError {
	return New(ErrCodeInternal, message, cause)
}

// IsWarning checks if an error has warning severity.
// Warning errors degrade output but never abort the widget.
func IsWarning(err error) bool {
	if err == nil {
		return false
	}
	if pe, ok := err.(*PeekError); ok {
		return pe.Severity == SeverityWarning
	}
	return false
}

// IsFatal checks if an error has fatal severity.
// Fatal errors should abort the current operation.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if pe, ok := err.(*PeekError); ok {
		return pe.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a PeekError.
// Returns empty string if not a PeekError.
func GetCode(err error) string {
	if pe, ok := err.(*PeekError); ok {
		return pe.Code
	}
	return ""
}

// GetCategory extracts the category from a PeekError.
// Returns empty string if not a PeekError.
func GetCategory(err error) Category {
	if pe, ok := err.(*PeekError); ok {
		return pe.Category
	}
	return ""
}
