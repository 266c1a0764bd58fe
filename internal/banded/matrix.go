// Package banded provides compact general-band matrix storage and the
// banded matrix-vector primitive used by the radial Laplacian.
//
// Storage follows the gonum blas64.Band convention: row i keeps its
// 2k+1 band entries at Data[i*Stride+(j-i+k)] for columns j in
// [i-k, i+k]. Within a row the entries therefore appear in stencil
// offset order, x[i-k] first. Matrices are mutable while an operator is
// being assembled and treated as read-only afterwards; a built operator
// may be shared across concurrent solves.
package banded

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"

	"github.com/avolkov/condsim/internal/field"
)

// Matrix is a square general-band matrix with equal numbers of sub- and
// superdiagonals (half-bandwidth k).
type Matrix struct {
	mat blas64.Band
}

// New returns an n x n zero matrix with half-bandwidth k.
func New(n, k int) (*Matrix, error) {
	if n <= 0 || k < 0 || k >= n {
		return nil, fmt.Errorf("%w: n=%d k=%d", field.ErrShapeMismatch, n, k)
	}
	stride := 2*k + 1
	return &Matrix{mat: blas64.Band{
		Rows:   n,
		Cols:   n,
		KL:     k,
		KU:     k,
		Stride: stride,
		Data:   make([]float64, n*stride),
	}}, nil
}

// FromStencil replicates an odd-length stencil into every row of a new
// n x n band matrix. stencil is in offset order: stencil[k+d] multiplies
// x[i+d]. Rows nearer either edge keep only the entries whose columns
// fall inside the domain; the truncated corner slots are zero-filled.
// This is purely a memory-layout operation, with no boundary-condition
// semantics.
func FromStencil(stencil []float64, n int) (*Matrix, error) {
	m := len(stencil)
	if m%2 == 0 {
		return nil, fmt.Errorf("%w: stencil length %d is even", field.ErrShapeMismatch, m)
	}
	if m > n {
		return nil, fmt.Errorf("%w: stencil length %d exceeds %d nodes", field.ErrShapeMismatch, m, n)
	}
	k := (m - 1) / 2
	a, err := New(n, k)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		row := a.mat.Data[i*a.mat.Stride : (i+1)*a.mat.Stride]
		for d := -k; d <= k; d++ {
			j := i + d
			if j < 0 || j >= n {
				row[k+d] = 0
				continue
			}
			row[k+d] = stencil[k+d]
		}
	}
	return a, nil
}

// N returns the matrix dimension.
func (a *Matrix) N() int { return a.mat.Rows }

// Bandwidth returns the half-bandwidth k.
func (a *Matrix) Bandwidth() int { return a.mat.KL }

// At returns the element at (i, j), zero outside the band.
func (a *Matrix) At(i, j int) float64 {
	if i < 0 || i >= a.mat.Rows || j < 0 || j >= a.mat.Cols {
		return 0
	}
	d := j - i
	if d < -a.mat.KL || d > a.mat.KU {
		return 0
	}
	return a.mat.Data[i*a.mat.Stride+a.mat.KL+d]
}

// SetBand sets the element at (i, j). Positions outside the band panic:
// assembly code never writes there.
func (a *Matrix) SetBand(i, j int, v float64) {
	d := j - i
	if i < 0 || i >= a.mat.Rows || d < -a.mat.KL || d > a.mat.KU {
		panic("banded: set outside band")
	}
	a.mat.Data[i*a.mat.Stride+a.mat.KL+d] = v
}

// AddBand adds v to the element at (i, j) inside the band.
func (a *Matrix) AddBand(i, j int, v float64) {
	d := j - i
	if i < 0 || i >= a.mat.Rows || d < -a.mat.KL || d > a.mat.KU {
		panic("banded: add outside band")
	}
	a.mat.Data[i*a.mat.Stride+a.mat.KL+d] += v
}

// ScaleRow multiplies every band entry of row i by f.
func (a *Matrix) ScaleRow(i int, f float64) {
	row := a.mat.Data[i*a.mat.Stride : (i+1)*a.mat.Stride]
	for d := range row {
		row[d] *= f
	}
}

// Add accumulates b into a elementwise. The matrices must share
// dimension and bandwidth.
func (a *Matrix) Add(b *Matrix) error {
	if a.mat.Rows != b.mat.Rows || a.mat.KL != b.mat.KL {
		return fmt.Errorf("%w: add %dx%d(k=%d) to %dx%d(k=%d)",
			field.ErrShapeMismatch, b.mat.Rows, b.mat.Cols, b.mat.KL,
			a.mat.Rows, a.mat.Cols, a.mat.KL)
	}
	for i, v := range b.mat.Data {
		a.mat.Data[i] += v
	}
	return nil
}

// RawBand returns the underlying blas64.Band. Mutating the returned
// descriptor fields does not affect the matrix; mutating Data does.
func (a *Matrix) RawBand() blas64.Band {
	return a.mat
}

// validate checks the storage invariants before handing the matrix to
// the BLAS primitive, which treats violations as undefined behavior.
func (a *Matrix) validate() error {
	if a.mat.Rows != a.mat.Cols {
		return fmt.Errorf("%w: %dx%d not square", field.ErrShapeMismatch, a.mat.Rows, a.mat.Cols)
	}
	if a.mat.KL != a.mat.KU {
		return fmt.Errorf("%w: kl=%d ku=%d", field.ErrShapeMismatch, a.mat.KL, a.mat.KU)
	}
	if a.mat.Stride != 2*a.mat.KL+1 {
		return fmt.Errorf("%w: stride %d, bandwidth wants %d",
			field.ErrShapeMismatch, a.mat.Stride, 2*a.mat.KL+1)
	}
	if len(a.mat.Data) != a.mat.Rows*a.mat.Stride {
		return fmt.Errorf("%w: %d data entries for %d rows of stride %d",
			field.ErrShapeMismatch, len(a.mat.Data), a.mat.Rows, a.mat.Stride)
	}
	return nil
}
