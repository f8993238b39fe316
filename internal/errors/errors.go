package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes.
const (
	ExitSuccess           = 0
	ExitErrorGeneric      = 1
	ExitErrorTimeout      = 2
	ExitErrorMismatch     = 3 // strategies disagreed on a value
	ExitErrorConfig       = 4
	ExitErrorInvalidIndex = 5
	ExitErrorCanceled     = 130 // SIGINT
)

// ErrInvalidIndex is the sentinel matched by every InvalidIndexError.
var ErrInvalidIndex = errors.New("invalid index")

// ConfigError reports a bad flag, environment value or env file.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError builds a ConfigError from a format string.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// InvalidIndexError is returned when a Fibonacci value is requested for a
// negative index. The recurrence is undefined there, so no value is produced.
type InvalidIndexError struct {
	// Index is the rejected index.
	Index int64
}

// Error returns a formatted message describing the rejected index.
func (e InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid index %d: fibonacci index must be non-negative", e.Index)
}

// Unwrap returns ErrInvalidIndex so callers can test with errors.Is.
func (e InvalidIndexError) Unwrap() error { return ErrInvalidIndex }

// CalculationError marks a failure raised while generating values.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

func (e CalculationError) Unwrap() error { return e.Cause }

// RecursionLimitError is returned by a recursive strategy asked for an index
// too far beyond what it has already computed.
type RecursionLimitError struct {
	Index  int64
	Cached int64
	Limit  int64
}

func (e RecursionLimitError) Error() string {
	return fmt.Sprintf("index %d needs a recursion depth of %d, over the limit of %d; use the iterative strategy for large indices",
		e.Index, e.Index-e.Cached, e.Limit)
}

// TimeoutError names an operation that exceeded its time limit. It matches
// context.DeadlineExceeded under errors.Is.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError reports an input that failed a field-level check.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError prefixes err with a formatted context message, keeping the chain
// intact. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from cancellation or a deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
