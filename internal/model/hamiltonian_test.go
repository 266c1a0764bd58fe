package model

import (
	"errors"
	"math"
	"testing"

	"github.com/avolkov/condsim/internal/field"
	"github.com/avolkov/condsim/internal/radial"
)

func TestNewHamiltonian_DimensionMismatch(t *testing.T) {
	op, err := radial.Laplacian(radial.Grid{N: 10, H: 0.1}, radial.Order5)
	if err != nil {
		t.Fatalf("Laplacian: %v", err)
	}
	p := Params{ResDecay: 1}
	if _, err := NewHamiltonian(op, make([]float64, 7), p); !errors.Is(err, field.ErrDimensionMismatch) {
		t.Errorf("err = %v, want ErrDimensionMismatch", err)
	}
	if _, err := NewHamiltonian(op, make([]float64, 10), Params{}); !errors.Is(err, field.ErrDegenerateReservoir) {
		t.Errorf("err = %v, want ErrDegenerateReservoir", err)
	}
}

// With the nonlinear and pumping terms switched off, the RHS must reduce
// to pure Laplacian coupling minus linear loss: v = iAu - loss*u.
// Verified against a direct dense multiplication.
func TestHamiltonian_LinearTermAgainstDense(t *testing.T) {
	g := radial.Grid{N: 8, H: 0.25}
	op, err := radial.Laplacian(g, radial.Order5)
	if err != nil {
		t.Fatalf("Laplacian: %v", err)
	}

	const loss = 0.37
	par := Params{Loss: loss, ResDecay: 1}
	h, err := NewHamiltonian(op, make([]float64, g.N), par)
	if err != nil {
		t.Fatalf("NewHamiltonian: %v", err)
	}

	u := make(field.Field, g.N)
	for i := range u {
		r := g.R(i)
		u[i] = complex(math.Sin(r), math.Cos(2*r))
	}
	x := u.Pack()
	v := h.Derive(x, 0)

	for i := 0; i < g.N; i++ {
		var lapRe, lapIm float64
		for j := 0; j < g.N; j++ {
			lapRe += op.At(i, j) * real(u[j])
			lapIm += op.At(i, j) * imag(u[j])
		}
		wantRe := -loss*real(u[i]) - lapIm
		wantIm := -loss*imag(u[i]) + lapRe

		if math.Abs(v.Re()[i]-wantRe) > 1e-10 {
			t.Errorf("node %d: vRe = %v, want %v", i, v.Re()[i], wantRe)
		}
		if math.Abs(v.Im()[i]-wantIm) > 1e-10 {
			t.Errorf("node %d: vIm = %v, want %v", i, v.Im()[i], wantIm)
		}
	}
}

// The RHS of the zero field under zero pumping is exactly zero; the
// trivial solution is a fixed point with no numerical drift.
func TestHamiltonian_ZeroFixedPoint(t *testing.T) {
	g := radial.Grid{N: 16, H: 0.1}
	op, err := radial.Laplacian(g, radial.Order5)
	if err != nil {
		t.Fatalf("Laplacian: %v", err)
	}
	par := Originals{R: 0.05, Gamma: 0.566, G: 1e-3, TildeG: 0.011, GammaR: 10}.Derive()
	h, err := NewHamiltonian(op, make([]float64, g.N), par)
	if err != nil {
		t.Fatalf("NewHamiltonian: %v", err)
	}

	v := h.Derive(make(field.State, 2*g.N), 0)
	for i, val := range v {
		if val != 0 {
			t.Fatalf("component %d: RHS of zero field = %v, want exactly 0", i, val)
		}
	}
}

func TestHamiltonian_ReservoirFeedsGain(t *testing.T) {
	g := radial.Grid{N: 8, H: 0.2}
	op, err := radial.Laplacian(g, radial.Order5)
	if err != nil {
		t.Fatalf("Laplacian: %v", err)
	}

	pumping := SamplePumping(GaussianPumping{Power: 3.0, Variation: 6.84931506849}, g)
	par := Params{Gain: 2.0, PumpRate: 1.0, ResDecay: 1.0, ResSaturation: 1.0}
	h, err := NewHamiltonian(op, pumping, par)
	if err != nil {
		t.Fatalf("NewHamiltonian: %v", err)
	}

	// A real uniform field under central pumping must grow fastest at
	// the axis, where the reservoir density peaks.
	x := field.Uniform(g.N, complex(0.1, 0)).Pack()
	v := h.Derive(x, 0)

	res := h.ReservoirDensity(x)
	for i := 1; i < g.N; i++ {
		if res[i] > res[i-1] {
			t.Errorf("reservoir not decreasing away from axis at node %d", i)
		}
	}
	if v.Re()[0] <= 0 {
		t.Errorf("axis growth rate %v, want positive under strong pumping", v.Re()[0])
	}
}

func TestSamplePumping_Profiles(t *testing.T) {
	g := radial.Grid{N: 50, H: 0.2}

	gauss := SamplePumping(GaussianPumping{Power: 3, Variation: 2}, g)
	if gauss[0] < gauss[10] {
		t.Error("gaussian pumping should peak near the axis")
	}

	flat := SamplePumping(UniformPumping{Power: 1.5}, g)
	for i, v := range flat {
		if v != 1.5 {
			t.Fatalf("uniform pumping node %d = %v", i, v)
		}
	}

	ring := SamplePumping(RingPumping{Power: 2, Radius: 5, Width: 1}, g)
	peak := 0
	for i, v := range ring {
		if v > ring[peak] {
			peak = i
		}
	}
	if r := g.R(peak); math.Abs(r-5) > 0.25 {
		t.Errorf("ring pumping peaks at r=%v, want ~5", r)
	}
}
