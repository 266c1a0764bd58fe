// Package metrics provides run-long observables collected by the
// solver at every step.
package metrics

import (
	"math"

	"github.com/avolkov/condsim/internal/field"
	"github.com/avolkov/condsim/internal/radial"
)

// ParticleNumber integrates the condensate density over the plane,
// N = 2*pi*h * sum_i |u_i|^2 * r_i. Value reports the last sample.
type ParticleNumber struct {
	name string
	grid radial.Grid
	last float64
}

func NewParticleNumber(g radial.Grid) *ParticleNumber {
	return &ParticleNumber{name: "particles", grid: g}
}

func (p *ParticleNumber) Name() string { return p.name }

func (p *ParticleNumber) Observe(x field.State, t float64) {
	n := x.Nodes()
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += (x[i]*x[i] + x[n+i]*x[n+i]) * p.grid.R(i)
	}
	p.last = 2 * math.Pi * p.grid.H * sum
}

func (p *ParticleNumber) Value() float64 { return p.last }

func (p *ParticleNumber) Reset() { p.last = 0 }

// PeakDensity tracks the largest |u_i|^2 seen over the whole run.
type PeakDensity struct {
	name string
	max  float64
}

func NewPeakDensity() *PeakDensity {
	return &PeakDensity{name: "peak_density"}
}

func (p *PeakDensity) Name() string { return p.name }

func (p *PeakDensity) Observe(x field.State, t float64) {
	n := x.Nodes()
	for i := 0; i < n; i++ {
		if d := x[i]*x[i] + x[n+i]*x[n+i]; d > p.max {
			p.max = d
		}
	}
}

func (p *PeakDensity) Value() float64 { return p.max }

func (p *PeakDensity) Reset() { p.max = 0 }
