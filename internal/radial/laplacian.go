package radial

import (
	"fmt"

	"github.com/avolkov/condsim/internal/banded"
	"github.com/avolkov/condsim/internal/field"
)

// Order selects the finite-difference approximation order of the radial
// Laplacian. The set is closed; only Order5 has a verified derivation.
type Order int

const (
	Order3 Order = 3
	Order5 Order = 5
	Order7 Order = 7
)

// Bandwidth returns the half-bandwidth (order-1)/2 of the banded
// operator this order produces.
func (o Order) Bandwidth() int {
	return (int(o) - 1) / 2
}

func (o Order) String() string {
	return fmt.Sprintf("order-%d", int(o))
}

// Laplacian builds the banded operator approximating the axially
// symmetric Laplacian d_rr + (1/r) d_r on g. Orders 3 and 7 are part of
// the dispatch set but have no verified stencil derivation and are
// rejected rather than silently returning a degenerate matrix.
func Laplacian(g Grid, order Order) (*banded.Matrix, error) {
	switch order {
	case Order5:
		return laplacianOrder5(g)
	case Order3, Order7:
		return nil, fmt.Errorf("%w: %v not implemented", field.ErrUnsupportedOrder, order)
	default:
		return nil, fmt.Errorf("%w: %d", field.ErrUnsupportedOrder, int(order))
	}
}

// laplacianOrder5 assembles the 5-point operator. Stencils are written
// in offset order, x[i-2] first:
//
//	d_r:  ( 1, -8, 0, 8, -1) / 12h
//	d_rr: (-1, 16, -30, 16, -1) / 12h^2
//
// Interior rows are 4th-order central differences. The two rows nearest
// the axis fold their out-of-domain entries back using the symmetry
// u(-r) = u(r): the ghost at r=-h mirrors node 0, and the value at the
// axis itself comes from the even quadratic through the first two
// nodes, u(0) = (4u_1 - u_2)/3. The outer edge keeps the builder's
// zero-filled truncation (field vanishes beyond the domain).
func laplacianOrder5(g Grid) (*banded.Matrix, error) {
	n := g.N
	h := g.H
	if h <= 0 {
		return nil, fmt.Errorf("%w: spacing %v", field.ErrShapeMismatch, h)
	}

	c1 := 1.0 / (12.0 * h)
	c2 := 1.0 / (12.0 * h * h)
	d1Stencil := []float64{1 * c1, -8 * c1, 0, 8 * c1, -1 * c1}
	d2Stencil := []float64{-1 * c2, 16 * c2, -30 * c2, 16 * c2, -1 * c2}

	d1, err := banded.FromStencil(d1Stencil, n)
	if err != nil {
		return nil, err
	}
	d2, err := banded.FromStencil(d2Stencil, n)
	if err != nil {
		return nil, err
	}

	foldAxis(d1, d1Stencil)
	foldAxis(d2, d2Stencil)

	// Cylindrical (1/r) d_r: each first-derivative row scales by the
	// radius of its own node.
	for i := 0; i < n; i++ {
		d1.ScaleRow(i, 1.0/g.R(i))
	}

	if err := d2.Add(d1); err != nil {
		return nil, err
	}
	return d2, nil
}

// foldAxis redistributes the stencil entries that fell off the axis end
// of the domain. The builder already zeroed those band slots; here their
// weight is added back onto in-domain columns:
//
//	ghost at index -2 (r=-h): mirror of node 0
//	ghost at index -1 (r= 0): (4/3)*node0 - (1/3)*node1
func foldAxis(a *banded.Matrix, stencil []float64) {
	k := (len(stencil) - 1) / 2
	for i := 0; i < k; i++ {
		for d := -k; i+d < 0; d++ {
			v := stencil[k+d]
			switch ghost := i + d; ghost {
			case -1:
				a.AddBand(i, 0, v*4.0/3.0)
				a.AddBand(i, 1, -v/3.0)
			default:
				a.AddBand(i, -2-ghost, v)
			}
		}
	}
}
