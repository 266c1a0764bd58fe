// Package integrators provides fixed-step time integrators for packed
// field states. The condensate solve uses RK4 exclusively; Euler exists
// as a cheap cross-check for convergence comparisons.
package integrators

import "github.com/avolkov/condsim/internal/field"

// RK4 is the classical 4-stage Runge-Kutta scheme. Stage buffers are
// preallocated and reused across steps, so a value must not be shared
// between concurrent solves.
type RK4 struct {
	k1, k2, k3, k4 field.State
	scratch        field.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(field.State, n)
		r.k2 = make(field.State, n)
		r.k3 = make(field.State, n)
		r.k4 = make(field.State, n)
		r.scratch = make(field.State, n)
	}
}

func (r *RK4) Step(sys field.System, x field.State, t, dt float64) field.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(x, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, sys.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, sys.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	copy(r.k4, sys.Derive(r.scratch, t+dt))

	result := make(field.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
