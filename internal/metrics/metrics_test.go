package metrics

import (
	"math"
	"testing"

	"github.com/avolkov/condsim/internal/field"
	"github.com/avolkov/condsim/internal/model"
	"github.com/avolkov/condsim/internal/radial"
)

func TestParticleNumber_Uniform(t *testing.T) {
	n := 100
	g := radial.Grid{N: n, H: 0.1}
	x := field.Uniform(n, 0.5).Pack()

	m := NewParticleNumber(g)
	m.Observe(x, 0)

	// For a uniform field the integral is a Riemann sum of
	// 2*pi*|u|^2 * r dr over [h, n*h].
	want := 0.0
	for i := 0; i < n; i++ {
		want += 0.25 * g.R(i)
	}
	want *= 2 * math.Pi * g.H

	if got := m.Value(); math.Abs(got-want) > 1e-12 {
		t.Errorf("particle number = %v, want %v", got, want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("Reset did not clear the value")
	}
}

func TestReservoirPopulation_TracksPump(t *testing.T) {
	n := 32
	g := radial.Grid{N: n, H: 0.1}
	op, err := radial.Laplacian(g, radial.Order5)
	if err != nil {
		t.Fatalf("Laplacian: %v", err)
	}
	par := model.Params{PumpRate: 0.002, ResDecay: 1, ResSaturation: 5, Gain: 1, Loss: 0.3, Kerr: 1, ResInteraction: 1}

	pumping := model.SamplePumping(model.GaussianPumping{Power: 3, Variation: 6.85}, g)
	ham, err := model.NewHamiltonian(op, pumping, par)
	if err != nil {
		t.Fatalf("NewHamiltonian: %v", err)
	}

	m := NewReservoirPopulation(g, ham)

	// Empty condensate: reservoir is pumpRate*p/decay, strictly positive.
	m.Observe(make(field.State, 2*n), 0)
	empty := m.Value()
	if empty <= 0 {
		t.Fatalf("pumped reservoir population = %v, want > 0", empty)
	}

	// A dense condensate saturates the reservoir below the empty level.
	m.Observe(field.Uniform(n, 1.0).Pack(), 1)
	if got := m.Value(); got >= empty {
		t.Errorf("saturated population %v not below empty-field population %v", got, empty)
	}
}

func TestPeakDensity_TracksMaximum(t *testing.T) {
	n := 4
	m := NewPeakDensity()

	x := make(field.State, 2*n)
	x[1] = 3.0
	x[n+1] = 4.0 // density 25 at node 1
	m.Observe(x, 0)

	x2 := make(field.State, 2*n)
	x2[0] = 2.0
	m.Observe(x2, 1)

	if got := m.Value(); got != 25.0 {
		t.Errorf("peak density = %v, want 25", got)
	}
}

func TestStability_CountsViolations(t *testing.T) {
	n := 4
	m := NewStability(1.0)

	ok := make(field.State, 2*n)
	bad := make(field.State, 2*n)
	bad[2] = 1.5

	m.Observe(ok, 0)
	m.Observe(bad, 1)
	m.Observe(ok, 2)
	m.Observe(bad, 3)

	if got := m.Value(); got != 0.5 {
		t.Errorf("stability = %v, want 0.5", got)
	}

	m.Reset()
	if m.Value() != 1.0 {
		t.Errorf("stability after reset = %v, want 1.0", m.Value())
	}
}

func TestGrowthRate_ExponentialField(t *testing.T) {
	n := 8
	m := NewGrowthRate()

	// |u(t)| = exp(0.3 t) should report a rate of 0.3.
	for _, tm := range []float64{0, 0.5, 1.0, 2.0} {
		x := field.Uniform(n, complex(math.Exp(0.3*tm), 0)).Pack()
		m.Observe(x, tm)
	}

	if got := m.Value(); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("growth rate = %v, want 0.3", got)
	}
}

func TestGrowthRate_Degenerate(t *testing.T) {
	m := NewGrowthRate()
	if m.Value() != 0 {
		t.Error("empty metric should report 0")
	}
	m.Observe(make(field.State, 4), 0)
	m.Observe(make(field.State, 4), 1)
	if m.Value() != 0 {
		t.Error("zero-norm field should report 0, not -Inf")
	}
}
