package integrators

import (
	"math"
	"testing"

	"github.com/avolkov/condsim/internal/field"
)

// rotation is du/dt = iu on a single packed node: the packed halves obey
// x' = -y, y' = x, with solution (cos t, sin t) from (1, 0).
type rotation struct{}

func (rotation) Derive(x field.State, t float64) field.State {
	return field.State{-x[1], x[0]}
}

func (rotation) Dim() int { return 2 }

// decay is du/dt = -lambda*u componentwise.
type decay struct{ lambda float64 }

func (d decay) Derive(x field.State, t float64) field.State {
	out := make(field.State, len(x))
	for i, v := range x {
		out[i] = -d.lambda * v
	}
	return out
}

func (d decay) Dim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()

	x := field.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(rotation{}, x, float64(i)*dt, dt)
	}

	expectedRe := math.Cos(float64(steps) * dt)
	expectedIm := math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedRe) > 1e-6 {
		t.Errorf("real part error too large: got %.8f, expected %.8f", x[0], expectedRe)
	}
	if math.Abs(x[1]-expectedIm) > 1e-6 {
		t.Errorf("imag part error too large: got %.8f, expected %.8f", x[1], expectedIm)
	}
}

func decayError(dt float64, steps int) float64 {
	integ := NewRK4()
	sys := decay{lambda: 1.3}

	x := field.State{1.0, 0.5}
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, float64(i)*dt, dt)
	}

	tEnd := float64(steps) * dt
	exact := math.Exp(-1.3 * tEnd)
	return math.Abs(x[0] - exact)
}

// Halving dt must cut the global error by ~2^4.
func TestRK4_FourthOrderConvergence(t *testing.T) {
	errCoarse := decayError(0.1, 10)
	errFine := decayError(0.05, 20)

	if errFine <= 0 || errCoarse <= 0 {
		t.Skip("error at machine precision, nothing to compare")
	}
	ratio := errCoarse / errFine
	if ratio < 10 || ratio > 24 {
		t.Errorf("dt halving reduced error by %.1fx, want ~16x", ratio)
	}
}

func TestEuler_FirstOrder(t *testing.T) {
	integ := NewEuler()
	sys := decay{lambda: 1.0}

	x := field.State{1.0, 1.0}
	dt := 0.001
	steps := 1000
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, float64(i)*dt, dt)
	}

	exact := math.Exp(-1.0)
	if math.Abs(x[0]-exact) > 1e-3 {
		t.Errorf("euler error %v too large for dt=%v", math.Abs(x[0]-exact), dt)
	}
}
