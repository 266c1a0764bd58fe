package model

import (
	"fmt"

	"github.com/avolkov/condsim/internal/banded"
	"github.com/avolkov/condsim/internal/field"
)

// Hamiltonian is the right-hand side of the condensate equation,
// i du/dt = [nabla^2 + nonlinear terms] u, expressed on the packed
// real/imaginary state. It holds the prebuilt Laplacian operator
// read-only and scratch buffers for the derived densities, so a single
// Hamiltonian serves one solve at a time; independent solves may share
// the operator but construct their own Hamiltonian.
type Hamiltonian struct {
	op      *banded.Matrix
	pumping []float64
	par     Params
	n       int

	density   []float64
	reservoir []float64
}

// NewHamiltonian validates shapes and coefficients once so that the
// per-step evaluation can run unchecked.
func NewHamiltonian(op *banded.Matrix, pumping []float64, par Params) (*Hamiltonian, error) {
	n := op.N()
	if len(pumping) != n {
		return nil, fmt.Errorf("%w: operator is %dx%d, pumping has %d nodes",
			field.ErrDimensionMismatch, n, n, len(pumping))
	}
	if err := par.Validate(); err != nil {
		return nil, err
	}
	// Surface any banded-storage inconsistency now rather than mid-step.
	if err := op.MulAdd(make([]float64, n), make([]float64, n), 1); err != nil {
		return nil, err
	}
	return &Hamiltonian{
		op:        op,
		pumping:   pumping,
		par:       par,
		n:         n,
		density:   make([]float64, n),
		reservoir: make([]float64, n),
	}, nil
}

// Dim returns the packed state length 2n.
func (h *Hamiltonian) Dim() int { return 2 * h.n }

// Params returns the coefficients the Hamiltonian was built with.
func (h *Hamiltonian) Params() Params { return h.par }

// Operator returns the prebuilt banded Laplacian.
func (h *Hamiltonian) Operator() *banded.Matrix { return h.op }

// ReservoirDensity evaluates the reservoir for the given state into a
// fresh slice, for reporting and export.
func (h *Hamiltonian) ReservoirDensity(x field.State) []float64 {
	den := x.Density(make([]float64, h.n))
	return Reservoir(nil, h.pumping, den, h.par)
}

// Derive computes dU/dt at the given field value:
//
//	vRe = (Gain*n - Loss)*uRe + (Kerr*|u|^2 + ResInteraction*n)*uIm - A*uIm
//	vIm = (Gain*n - Loss)*uIm - (Kerr*|u|^2 + ResInteraction*n)*uRe + A*uRe
//
// with n the reservoir density of the instantaneous field. The equation
// is autonomous; t is tracked by the integrator for bookkeeping only.
func (h *Hamiltonian) Derive(x field.State, t float64) field.State {
	n := h.n
	den := x.Density(h.density)
	res := Reservoir(h.reservoir, h.pumping, den, h.par)

	v := make(field.State, 2*n)
	xRe, xIm := x.Re(), x.Im()
	vRe, vIm := v.Re(), v.Im()
	for i := 0; i < n; i++ {
		gain := h.par.Gain*res[i] - h.par.Loss
		shift := h.par.Kerr*den[i] + h.par.ResInteraction*res[i]
		vRe[i] = gain*xRe[i] + shift*xIm[i]
		vIm[i] = gain*xIm[i] - shift*xRe[i]
	}

	// Laplacian coupling of the two halves; shapes were validated at
	// construction, a failure here is a broken invariant.
	if err := h.op.MulAdd(vRe, xIm, -1); err != nil {
		panic(err)
	}
	if err := h.op.MulAdd(vIm, xRe, +1); err != nil {
		panic(err)
	}
	return v
}
