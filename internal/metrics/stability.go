package metrics

import (
	"math"

	"github.com/avolkov/condsim/internal/field"
)

// Stability reports the fraction of steps on which every field
// component stayed below the threshold. 1.0 means a fully bounded run.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{name: "stability", threshold: threshold}
}

func (s *Stability) Name() string { return s.name }

func (s *Stability) Observe(x field.State, t float64) {
	s.samples++
	for _, v := range x {
		if math.Abs(v) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// GrowthRate estimates the exponential rate of the field norm between
// the first and last observed step, log(|u(T)|/|u(0)|)/T. Positive
// values indicate condensation above threshold pumping, negative ones
// a decaying field.
type GrowthRate struct {
	name      string
	firstNorm float64
	firstTime float64
	lastNorm  float64
	lastTime  float64
	samples   int
}

func NewGrowthRate() *GrowthRate {
	return &GrowthRate{name: "growth_rate"}
}

func (g *GrowthRate) Name() string { return g.name }

func (g *GrowthRate) Observe(x field.State, t float64) {
	norm := x.Norm()
	if g.samples == 0 {
		g.firstNorm, g.firstTime = norm, t
	}
	g.lastNorm, g.lastTime = norm, t
	g.samples++
}

func (g *GrowthRate) Value() float64 {
	if g.samples < 2 || g.firstNorm == 0 || g.lastNorm == 0 {
		return 0
	}
	dt := g.lastTime - g.firstTime
	if dt == 0 {
		return 0
	}
	return math.Log(g.lastNorm/g.firstNorm) / dt
}

func (g *GrowthRate) Reset() {
	g.firstNorm, g.firstTime = 0, 0
	g.lastNorm, g.lastTime = 0, 0
	g.samples = 0
}
