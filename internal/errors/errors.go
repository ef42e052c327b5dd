package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between strategies.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
// It allows for the creation of configuration-specific errors with dynamic
// content.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// AggregationError encapsulates an aggregation error while preserving the
// original cause. This allows for structured error handling and inspection
// of what went wrong during the duplicate-symbol aggregation.
type AggregationError struct {
	// Cause is the underlying error that triggered this aggregation error.
	Cause error
}

// Error returns the error message from the underlying cause.
//
// Returns:
//   - string: The error message string from the wrapped error.
func (e AggregationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
//
// Returns:
//   - error: The underlying cause of the AggregationError.
func (e AggregationError) Unwrap() error { return e.Cause }

// InvalidRangeError reports a chunk descriptor that violates the partition
// contract (0 <= start <= end <= length). It always indicates a partitioning
// bug: ranges of this kind must never reach a worker.
type InvalidRangeError struct {
	// Start is the offending range start index.
	Start int
	// End is the offending range end index.
	End int
	// Length is the length of the input sequence being partitioned.
	Length int
}

// Error returns a formatted message describing the invalid range.
//
// Returns:
//   - string: The error message string.
func (e InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid chunk range [%d, %d) for input length %d", e.Start, e.End, e.Length)
}

// TaskExecutionError represents the consolidated failure of a parallel
// aggregation: one or more chunk tasks failed, the remaining tasks were
// drained, and no partial result is published. Callers receive exactly one
// such error per failed aggregation.
type TaskExecutionError struct {
	// Completed is the number of chunk tasks that finished successfully.
	Completed int
	// Total is the number of chunk tasks that were dispatched.
	Total int
	// Cause is the first task failure observed.
	Cause error
}

// Error returns a formatted message describing the task failure.
//
// Returns:
//   - string: The error message string.
func (e TaskExecutionError) Error() string {
	return fmt.Sprintf("aggregation failed: %d/%d chunk tasks completed: %v", e.Completed, e.Total, e.Cause)
}

// Unwrap returns the first task failure, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
//
// Returns:
//   - error: The underlying cause of the TaskExecutionError.
func (e TaskExecutionError) Unwrap() error { return e.Cause }

// MismatchError reports that two strategies produced different duplicate
// sets for the same input. It identifies both strategies so the divergence
// can be investigated.
type MismatchError struct {
	// Baseline is the name of the strategy taken as the reference.
	Baseline string
	// Deviant is the name of the strategy that disagreed with the baseline.
	Deviant string
}

// Error returns a formatted message describing the mismatch.
//
// Returns:
//   - string: The error message string.
func (e MismatchError) Error() string {
	return fmt.Sprintf("result mismatch: strategy %q disagrees with %q", e.Deviant, e.Baseline)
}

// TimeoutError represents a scan timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
//
// Returns:
//   - string: The error message string.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
//
// Returns:
//   - string: The error message string.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError represents a memory limit exceeded condition. It captures the
// requested, available, and limit memory values for diagnostic purposes.
type MemoryError struct {
	// Requested is the number of bytes the operation needed.
	Requested uint64
	// Available is the number of bytes currently available.
	Available uint64
	// Limit is the configured memory limit in bytes.
	Limit uint64
}

// Error returns a formatted message describing the memory error.
//
// Returns:
//   - string: The error message string.
func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d bytes, available %d bytes (limit: %d)", e.Requested, e.Available, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps a terminal error to the process exit code the application
// should return. Context cancellation is distinguished from deadline
// expiry so that Ctrl-C and -timeout report differently.
//
// Parameters:
//   - err: The terminal error, or nil on success.
//
// Returns:
//   - int: The corresponding exit code.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	}
	var timeoutErr TimeoutError
	if errors.As(err, &timeoutErr) {
		return ExitErrorTimeout
	}
	var mismatchErr MismatchError
	if errors.As(err, &mismatchErr) {
		return ExitErrorMismatch
	}
	var configErr ConfigError
	if errors.As(err, &configErr) {
		return ExitErrorConfig
	}
	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}
