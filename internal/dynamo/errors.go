package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation parameters.
var (
	// ErrNonPositiveHorizon indicates a time horizon T <= 0 (or not finite).
	ErrNonPositiveHorizon = errors.New("dynamo: horizon must be positive")

	// ErrNonPositiveSteps indicates a step count N <= 0.
	ErrNonPositiveSteps = errors.New("dynamo: number of steps must be positive")

	// ErrNonPositiveSamples indicates an ensemble size M <= 0.
	ErrNonPositiveSamples = errors.New("dynamo: ensemble size must be positive")

	// ErrInvalidStride indicates a coarsening stride <= 0.
	ErrInvalidStride = errors.New("dynamo: stride must be positive")

	// ErrStrideNotDivisor indicates a stride that does not divide the step count.
	ErrStrideNotDivisor = errors.New("dynamo: stride does not divide number of steps")

	// ErrDuplicateStride indicates a stride listed twice in one convergence run.
	ErrDuplicateStride = errors.New("dynamo: duplicate stride")

	// ErrEmptyEnsemble indicates a missing or zero-sized ensemble.
	ErrEmptyEnsemble = errors.New("dynamo: empty ensemble")

	// ErrLengthMismatch indicates paired sample slices of different length.
	ErrLengthMismatch = errors.New("dynamo: sample length mismatch")

	// ErrNilIntegrand indicates a missing integrand function.
	ErrNilIntegrand = errors.New("dynamo: nil integrand")
)

// ParamError wraps a validation error with the offending parameter.
type ParamError struct {
	Param   string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s=%g: %v", e.Param, e.Value, e.Wrapped)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
