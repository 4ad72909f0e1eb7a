package engine

import (
	"errors"
	"fmt"
)

// FailureKind classifies the terminal failures that cross the engine
// boundary. Numeric edge cases never surface as errors; they are resolved
// by the indicator library's documented defaults.
type FailureKind string

const (
	// FailDataUnavailable: the data-source collaborator is unreachable or
	// does not know the symbol. Not retried inside the engine.
	FailDataUnavailable FailureKind = "data_unavailable"

	// FailInsufficientHistory: fewer than the absolute minimum bars were
	// obtainable even after the reduced-budget retry.
	FailInsufficientHistory FailureKind = "insufficient_history"

	// FailComputation: catch-all for unexpected failures during assembly.
	// Carries a generic message, never a stack trace.
	FailComputation FailureKind = "computation_failed"
)

// Error is the typed failure returned by ComputeReport.
type Error struct {
	Kind    FailureKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is match on kind via the sentinel helpers below.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

// Kind extracts the failure kind from an error, or "" for nil/foreign errors.
func Kind(err error) FailureKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func failDataUnavailable(format string, args ...any) *Error {
	return &Error{Kind: FailDataUnavailable, Message: fmt.Sprintf(format, args...)}
}

func failInsufficientHistory(format string, args ...any) *Error {
	return &Error{Kind: FailInsufficientHistory, Message: fmt.Sprintf(format, args...)}
}

func failComputation(format string, args ...any) *Error {
	return &Error{Kind: FailComputation, Message: fmt.Sprintf(format, args...)}
}
