// Package apperrors holds the sentinel errors shared across the analyzer.
// Callers wrap them with fmt.Errorf("...: %w", err) and test with errors.Is.
package apperrors

import "errors"

// Configuration errors.
var (
	// ErrMissingCredential indicates a mandatory API credential is not configured.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidConfig indicates a configuration value failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Table errors.
var (
	// ErrMissingColumn indicates a stage received a table without a column it requires.
	ErrMissingColumn = errors.New("missing column")

	// ErrLengthMismatch indicates a column does not have one value per row.
	ErrLengthMismatch = errors.New("column length does not match row count")
)

// Provider errors.
var (
	// ErrEmptyResponse indicates an external provider answered without usable content.
	ErrEmptyResponse = errors.New("empty response")

	// ErrUnexpectedStatus indicates an HTTP provider returned a non-success status.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrUnknownProvider indicates the configured provider name is not supported.
	ErrUnknownProvider = errors.New("unknown provider")
)

// Session errors.
var (
	// ErrNoAnalysis indicates no pipeline run has completed yet.
	ErrNoAnalysis = errors.New("no analysis available")
)
