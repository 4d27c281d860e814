package domain

import (
	"errors"
	"fmt"
)

// Operation failure kinds. They are recoverable: the equation is left untouched.
var (
	ErrDivisionByZero       = errors.New("division by zero")
	ErrNonIntegralResult    = errors.New("non-integral result")
	ErrInsufficientXTerms   = errors.New("insufficient x terms")
	ErrInvalidMagnitude     = errors.New("invalid magnitude")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrCoefficientOverflow  = errors.New("coefficient overflow")
)

// ErrUnknownOperation is returned when an operation name cannot be parsed.
var ErrUnknownOperation = errors.New("unknown operation")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrPuzzleNotFound is returned when a catalog has no puzzle with the given ID.
var ErrPuzzleNotFound = errors.New("puzzle not found")

// ErrNoPuzzleLoaded is returned when a session is used before any puzzle was loaded.
var ErrNoPuzzleLoaded = errors.New("no puzzle loaded")

// OperationError describes why an operation was refused.
// Error returns the learner-facing reason; errors.Is matches Kind.
type OperationError struct {
	Kind      error
	Operation Operation
	Magnitude int
	Reason    string
}

func (e *OperationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.Operation != "" {
		return fmt.Sprintf("%s %d: %v", e.Operation, e.Magnitude, e.Kind)
	}
	return e.Kind.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Kind
}

// KindName returns a stable identifier for the failure kind, used in APIs and metrics.
func (e *OperationError) KindName() string {
	return ErrorKindName(e.Kind)
}

// ErrorKindName maps an error to its stable kind identifier.
func ErrorKindName(err error) string {
	switch {
	case errors.Is(err, ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, ErrNonIntegralResult):
		return "non_integral_result"
	case errors.Is(err, ErrInsufficientXTerms):
		return "insufficient_x_terms"
	case errors.Is(err, ErrInvalidMagnitude):
		return "invalid_magnitude"
	case errors.Is(err, ErrUnsupportedOperation):
		return "unsupported_operation"
	case errors.Is(err, ErrCoefficientOverflow):
		return "coefficient_overflow"
	case errors.Is(err, ErrUnknownOperation):
		return "unknown_operation"
	default:
		return "internal"
	}
}
