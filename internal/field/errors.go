package field

import "errors"

// Domain errors for solver operations.
var (
	// ErrUnsupportedOrder indicates an approximation order with no
	// verified stencil derivation.
	ErrUnsupportedOrder = errors.New("condsim: unsupported approximation order")

	// ErrShapeMismatch indicates banded storage inconsistent with its
	// declared bandwidth, or mismatched operator/vector dimensions.
	ErrShapeMismatch = errors.New("condsim: banded shape mismatch")

	// ErrDegenerateReservoir indicates reservoir coefficients that allow
	// a vanishing denominator in the reservoir relation.
	ErrDegenerateReservoir = errors.New("condsim: degenerate reservoir coefficients")

	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("condsim: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates a state whose length disagrees with
	// the configured grid.
	ErrDimensionMismatch = errors.New("condsim: dimension mismatch between state and grid")
)

// SolveError wraps an error with integration context.
type SolveError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SolveError) Error() string {
	return e.Wrapped.Error()
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
