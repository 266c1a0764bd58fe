package integrators

import "github.com/avolkov/condsim/internal/field"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys field.System, x field.State, t, dt float64) field.State {
	dx := sys.Derive(x, t)
	result := make(field.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
