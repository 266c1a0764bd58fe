package solver

import (
	"context"
	"sync"

	"github.com/avolkov/condsim/internal/banded"
	"github.com/avolkov/condsim/internal/field"
	"github.com/avolkov/condsim/internal/integrators"
	"github.com/avolkov/condsim/internal/model"
	"github.com/avolkov/condsim/internal/radial"
)

// Ensemble runs one solve per pumping power over a shared grid and
// operator. Solves are independent, so they run on separate goroutines;
// the banded operator is built once and read concurrently, while each
// member gets its own Hamiltonian for the mutable scratch.
type Ensemble struct {
	Grid    radial.Grid
	Op      *banded.Matrix
	Par     model.Params
	Profile func(power float64) model.Pumping
	Initial field.Field
	Cfg     Config
}

// MemberResult pairs one sweep point with its outcome. Err is set when
// that member failed; other members are unaffected.
type MemberResult struct {
	Power  float64
	Result *Result
	Err    error
}

// Sweep solves the ensemble at each power and returns results in input
// order. Context cancellation stops all members at their next step.
func (e *Ensemble) Sweep(ctx context.Context, powers []float64) []MemberResult {
	results := make([]MemberResult, len(powers))

	var wg sync.WaitGroup
	for i, power := range powers {
		wg.Add(1)
		go func(i int, power float64) {
			defer wg.Done()
			results[i] = MemberResult{Power: power}
			results[i].Result, results[i].Err = e.runMember(ctx, power)
		}(i, power)
	}
	wg.Wait()

	return results
}

func (e *Ensemble) runMember(ctx context.Context, power float64) (*Result, error) {
	pumping := model.SamplePumping(e.Profile(power), e.Grid)
	h, err := model.NewHamiltonian(e.Op, pumping, e.Par)
	if err != nil {
		return nil, err
	}
	s := New(h, integrators.NewRK4())
	return s.Run(ctx, e.Initial.Pack(), e.Cfg)
}
