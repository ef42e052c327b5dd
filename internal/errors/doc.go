// Package apperrors defines the structured error types of the application,
// separating error classes (configuration, validation, aggregation, ...)
// while carrying the underlying cause.
//
// Errors wrap with fmt.Errorf and %w; every type here implements Unwrap so
// errors.Is and errors.As traverse the chain.
package apperrors
