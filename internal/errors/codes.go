// Package errors provides structured error handling for userpeek.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 3XX: Network errors
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryNetwork indicates network-related errors.
	CategoryNetwork Category = "NETWORK"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// Network errors (300-399)
	ErrCodeSearchRequest    = "ERR_301_SEARCH_REQUEST"
	ErrCodeSearchStatus     = "ERR_302_SEARCH_STATUS"
	ErrCodeThumbnailRequest = "ERR_303_THUMBNAIL_REQUEST"
	ErrCodeThumbnailStatus  = "ERR_304_THUMBNAIL_STATUS"

	// Validation errors (400-499)
	ErrCodeInvalidInput = "ERR_401_INVALID_INPUT"
	ErrCodeInvalidID    = "ERR_402_INVALID_ID"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract the leading digit of the numeric portion
	// (e.g., "1" from "ERR_101_CONFIG_NOT_FOUND").
	switch code[4] {
	case '1':
		return CategoryConfig
	case '3':
		return CategoryNetwork
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode derives severity from error code.
// Thumbnail failures degrade to placeholder imagery, so they are
// warnings; everything else defaults to error severity.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeThumbnailRequest, ErrCodeThumbnailStatus:
		return SeverityWarning
	case ErrCodeConfigNotFound, ErrCodeConfigInvalid:
		return SeverityFatal
	default:
		return SeverityError
	}
}
