package metrics

import (
	"math"

	"github.com/avolkov/condsim/internal/field"
	"github.com/avolkov/condsim/internal/model"
	"github.com/avolkov/condsim/internal/radial"
)

// ReservoirPopulation integrates the derived reservoir density over the
// plane, 2*pi*h * sum_i n_i * r_i. Value reports the last sample.
type ReservoirPopulation struct {
	name string
	grid radial.Grid
	ham  *model.Hamiltonian
	last float64
}

func NewReservoirPopulation(g radial.Grid, ham *model.Hamiltonian) *ReservoirPopulation {
	return &ReservoirPopulation{name: "reservoir", grid: g, ham: ham}
}

func (p *ReservoirPopulation) Name() string { return p.name }

func (p *ReservoirPopulation) Observe(x field.State, t float64) {
	res := p.ham.ReservoirDensity(x)
	sum := 0.0
	for i, v := range res {
		sum += v * p.grid.R(i)
	}
	p.last = 2 * math.Pi * p.grid.H * sum
}

func (p *ReservoirPopulation) Value() float64 { return p.last }

func (p *ReservoirPopulation) Reset() { p.last = 0 }
