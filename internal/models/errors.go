package models

import (
	"errors"
	"fmt"
)

// InvalidInputError reports an input value the engine cannot work with
// (non-positive price, non-positive cash invested, malformed config).
// It always names the offending field and is never retried.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// IsInvalidInput reports whether err is (or wraps) an InvalidInputError.
func IsInvalidInput(err error) bool {
	var iie *InvalidInputError
	return errors.As(err, &iie)
}

// ComputationError reports genuinely undefined math, e.g. a zero-length
// amortization term. Guarded proactively where possible.
type ComputationError struct {
	Op     string
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation error in %s: %s", e.Op, e.Reason)
}

// IsComputationError reports whether err is (or wraps) a ComputationError.
func IsComputationError(err error) bool {
	var ce *ComputationError
	return errors.As(err, &ce)
}
