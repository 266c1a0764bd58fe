// Package optim searches pump and grid parameters for the run that
// minimizes a chosen metric.
package optim

import (
	"context"
	"math"

	"github.com/avolkov/condsim/internal/solver"
)

// Runner builds and executes one solve for a parameter assignment.
type Runner func(ctx context.Context, params map[string]float64) (*solver.Result, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch sweeps the cartesian product of the given ranges, one
// range per named parameter.
func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every grid point and returns the assignment with the
// smallest value of the named metric. Failed runs are skipped.
func (g *GridSearch) Search(ctx context.Context, run Runner, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), run, metricName, &best, &bestParams)

	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	run Runner,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}
	if depth == len(g.paramNames) {
		result, err := run(ctx, current)
		if err != nil {
			return
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		g.searchRecursive(ctx, depth+1, next, run, metricName, best, bestParams)
	}
}
