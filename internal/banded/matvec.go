package banded

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/avolkov/condsim/internal/field"
)

// MulAdd computes u <- u + sign*A*x, delegating the banded
// multiply-accumulate to blas64.Gbmv (alpha=sign, beta=1, no transpose,
// unit increments). Shapes are checked before delegation; the BLAS
// routine itself has no tolerance for a storage/bandwidth mismatch.
func (a *Matrix) MulAdd(u, x []float64, sign float64) error {
	if err := a.validate(); err != nil {
		return err
	}
	n := a.mat.Rows
	if len(x) != n || len(u) != n {
		return fmt.Errorf("%w: operator is %dx%d, len(x)=%d len(u)=%d",
			field.ErrShapeMismatch, n, n, len(x), len(u))
	}
	if sign != 1 && sign != -1 {
		return fmt.Errorf("%w: sign must be +1 or -1, got %v", field.ErrShapeMismatch, sign)
	}
	blas64.Gbmv(blas.NoTrans, sign, a.mat,
		blas64.Vector{N: n, Data: x, Inc: 1},
		1,
		blas64.Vector{N: n, Data: u, Inc: 1})
	return nil
}

// MulVec computes dst = A*x into a fresh slice. Convenience wrapper for
// tests and diagnostics; the hot path uses MulAdd with caller-owned
// buffers.
func (a *Matrix) MulVec(x []float64) ([]float64, error) {
	dst := make([]float64, a.mat.Rows)
	if err := a.MulAdd(dst, x, 1); err != nil {
		return nil, err
	}
	return dst, nil
}
