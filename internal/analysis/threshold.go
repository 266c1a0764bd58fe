package analysis

import (
	"context"

	"github.com/avolkov/condsim/internal/metrics"
	"github.com/avolkov/condsim/internal/solver"
)

// ThresholdPoint records the late-time state reached at one pump power.
type ThresholdPoint struct {
	Power     float64
	Particles float64
	// PeakDensity is the largest |u|^2 of the final profile.
	PeakDensity float64
	Err         error
}

// ThresholdScan sweeps the pump power and records the condensate that
// each power sustains, tracing out the condensation threshold: below it
// the seed field decays, above it a finite population survives.
func ThresholdScan(ctx context.Context, e *solver.Ensemble, powers []float64) []ThresholdPoint {
	results := e.Sweep(ctx, powers)

	points := make([]ThresholdPoint, len(results))
	for i, mr := range results {
		points[i] = ThresholdPoint{Power: mr.Power, Err: mr.Err}
		if mr.Err != nil {
			continue
		}
		x := mr.Result.Final.Pack()

		particles := metrics.NewParticleNumber(e.Grid)
		particles.Observe(x, 0)
		points[i].Particles = particles.Value()

		peak := metrics.NewPeakDensity()
		peak.Observe(x, 0)
		points[i].PeakDensity = peak.Value()
	}
	return points
}
