// Package solver drives a condensate integration end to end: it builds
// the banded radial Laplacian once, wraps the Hamiltonian as the RHS,
// and advances the field a fixed number of RK4 steps.
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/avolkov/condsim/internal/field"
	"github.com/avolkov/condsim/internal/integrators"
	"github.com/avolkov/condsim/internal/model"
	"github.com/avolkov/condsim/internal/radial"
)

type Config struct {
	Dt            float64
	Steps         int
	SnapshotEvery int  // 0 disables intermediate snapshots
	ValidateState bool // NaN/Inf check after every step
}

// Snapshot is an intermediate field state recorded during a run.
type Snapshot struct {
	Step  int
	Time  float64
	State field.State
}

type Result struct {
	// Final is the field after the last step.
	Final field.Field
	// Snapshots holds intermediate states at the configured stride,
	// ending with the final state.
	Snapshots []Snapshot
	// CenterDensity traces |u|^2 at the innermost node, one sample per
	// step, for spectral analysis of the transient.
	CenterDensity []float64
	Metrics       map[string]float64
	StepsTaken    int
	Elapsed       time.Duration
}

// Solver advances one system with one integrator. Not safe for
// concurrent use; independent solves construct their own Solver (they
// may still share the prebuilt operator, which no solve mutates).
type Solver struct {
	sys       field.System
	integ     field.Integrator
	metrics   []field.Metric
	observers []field.Observer
}

func New(sys field.System, integ field.Integrator) *Solver {
	return &Solver{
		sys:       sys,
		integ:     integ,
		metrics:   make([]field.Metric, 0),
		observers: make([]field.Observer, 0),
	}
}

func (s *Solver) AddMetric(m field.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Solver) AddObserver(o field.Observer) { s.observers = append(s.observers, o) }

func (s *Solver) validateConfig(cfg Config, x0 field.State) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("condsim: dt must be positive, got %v", cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("condsim: step count must be positive, got %d", cfg.Steps)
	}
	if len(x0) != s.sys.Dim() {
		return fmt.Errorf("%w: state has %d components, system wants %d",
			field.ErrDimensionMismatch, len(x0), s.sys.Dim())
	}
	return nil
}

// Run advances x0 through exactly cfg.Steps fixed steps. There is no
// adaptivity and no early termination besides context cancellation and
// state blow-up; a valid run always takes the full step count.
func (s *Solver) Run(ctx context.Context, x0 field.State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg, x0); err != nil {
		return nil, err
	}

	result := &Result{
		CenterDensity: make([]float64, 0, cfg.Steps),
		Metrics:       make(map[string]float64),
	}
	if cfg.SnapshotEvery > 0 {
		result.Snapshots = make([]Snapshot, 0, cfg.Steps/cfg.SnapshotEvery+2)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	start := time.Now()

	record := func(step int) {
		if cfg.SnapshotEvery > 0 && (step%cfg.SnapshotEvery == 0 || step == cfg.Steps) {
			result.Snapshots = append(result.Snapshots, Snapshot{Step: step, Time: t, State: x.Clone()})
		}
	}
	record(0)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			result.Elapsed = time.Since(start)
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		x = s.integ.Step(s.sys, x, t, cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		n := x.Nodes()
		result.CenterDensity = append(result.CenterDensity, x[0]*x[0]+x[n]*x[n])

		if cfg.ValidateState && !x.IsValid() {
			result.Elapsed = time.Since(start)
			result.Final = field.Unpack(x)
			return result, &field.SolveError{Step: i, Time: t, Wrapped: field.ErrInvalidState}
		}

		record(i + 1)
	}

	for _, m := range s.metrics {
		m.Observe(x, t)
		result.Metrics[m.Name()] = m.Value()
	}

	result.Final = field.Unpack(x)
	result.Elapsed = time.Since(start)
	return result, nil
}

// Problem carries the complete input of a solve in flat interop form:
// grid and time parameters, sampled pumping, the 23-slot coefficient
// vector, and the initial field.
type Problem struct {
	Dt      float64
	Dx      float64
	Nodes   int
	Order   radial.Order
	Steps   int
	Pumping []float64
	Coeffs  []float64
	Initial field.Field
}

// Solve is the top-level driver: it builds the banded operator once,
// assembles the Hamiltonian, and returns only the final field. The
// operator's half-bandwidth follows from the configured order; nothing
// downstream assumes a particular order.
func Solve(ctx context.Context, p Problem) (field.Field, error) {
	if len(p.Pumping) != p.Nodes {
		return nil, fmt.Errorf("%w: pumping has %d nodes, grid has %d",
			field.ErrDimensionMismatch, len(p.Pumping), p.Nodes)
	}
	if len(p.Initial) != p.Nodes {
		return nil, fmt.Errorf("%w: initial field has %d nodes, grid has %d",
			field.ErrDimensionMismatch, len(p.Initial), p.Nodes)
	}
	par, err := model.ParamsFromVector(p.Coeffs)
	if err != nil {
		return nil, err
	}

	g := radial.Grid{N: p.Nodes, H: p.Dx}
	op, err := radial.Laplacian(g, p.Order)
	if err != nil {
		return nil, err
	}
	h, err := model.NewHamiltonian(op, p.Pumping, par)
	if err != nil {
		return nil, err
	}

	s := New(h, integrators.NewRK4())
	res, err := s.Run(ctx, p.Initial.Pack(), Config{Dt: p.Dt, Steps: p.Steps, ValidateState: true})
	if err != nil {
		return nil, err
	}
	return res.Final, nil
}
