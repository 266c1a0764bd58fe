package model

import (
	"math"

	"github.com/avolkov/condsim/internal/radial"
)

// Pumping is a radial energy-injection profile. Profiles are sampled
// once onto the grid before a solve and stay constant throughout it.
type Pumping interface {
	At(r float64) float64
}

// GaussianPumping is a spot pump centered on the axis,
// p(r) = power * exp(-r^2 / (2*variation)).
type GaussianPumping struct {
	Power     float64
	Variation float64
}

func (p GaussianPumping) At(r float64) float64 {
	return p.Power * math.Exp(-r*r/(2.0*p.Variation))
}

// UniformPumping injects the same power at every radius.
type UniformPumping struct {
	Power float64
}

func (p UniformPumping) At(r float64) float64 {
	return p.Power
}

// RingPumping is an annular pump centered at Radius with Gaussian
// cross-section of the given Width.
type RingPumping struct {
	Power  float64
	Radius float64
	Width  float64
}

func (p RingPumping) At(r float64) float64 {
	d := r - p.Radius
	return p.Power * math.Exp(-d*d/(2.0*p.Width*p.Width))
}

// SamplePumping evaluates a profile at every grid node.
func SamplePumping(p Pumping, g radial.Grid) []float64 {
	out := make([]float64, g.N)
	for i := range out {
		out[i] = p.At(g.R(i))
	}
	return out
}
