// Package automation runs scripted sequences of condensate solves
// described in a YAML scenario file, optionally saving each step.
package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avolkov/condsim/internal/config"
	"github.com/avolkov/condsim/internal/field"
	"github.com/avolkov/condsim/internal/integrators"
	"github.com/avolkov/condsim/internal/model"
	"github.com/avolkov/condsim/internal/radial"
	"github.com/avolkov/condsim/internal/solver"
	"github.com/avolkov/condsim/internal/storage"
)

// Scenario is an ordered list of solves.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one solve. Its config starts from the defaults, so a
// step only needs to spell out what differs.
type ScenarioStep struct {
	Name   string
	SaveAs string
	Config *config.Config
}

func (s *ScenarioStep) UnmarshalYAML(node *yaml.Node) error {
	var aux struct {
		Name   string    `yaml:"name"`
		SaveAs string    `yaml:"save_as"`
		Config yaml.Node `yaml:"config"`
	}
	if err := node.Decode(&aux); err != nil {
		return err
	}
	s.Name = aux.Name
	s.SaveAs = aux.SaveAs
	s.Config = config.DefaultConfig()
	if aux.Config.Kind != 0 {
		if err := aux.Config.Decode(s.Config); err != nil {
			return err
		}
	}
	return nil
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// StepResult pairs a step with its outcome and, when the step was
// saved, the run ID in the store.
type StepResult struct {
	Name   string
	RunID  string
	Result *solver.Result
}

// RunScenario executes all steps in order. The store may be nil when
// nothing asks to be saved; a failing step aborts the rest.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Printf("running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Name)

		cfg := step.Config
		if err := cfg.Validate(); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		g := cfg.Radial()
		op, err := radial.Laplacian(g, radial.Order(cfg.Grid.Order))
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		pump, err := cfg.BuildPumping()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		par := cfg.Originals.Derive()
		pumping := model.SamplePumping(pump, g)
		ham, err := model.NewHamiltonian(op, pumping, par)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		s := solver.New(ham, integrators.NewRK4())
		initial := field.Uniform(g.N, complex(cfg.Seed, 0))
		result, err := s.Run(ctx, initial.Pack(), solver.Config{
			Dt:            cfg.Time.Dt,
			Steps:         cfg.Time.Steps,
			SnapshotEvery: cfg.Time.SnapshotEvery,
			ValidateState: true,
		})
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: step.Name, Result: result}
		if step.SaveAs != "" && st != nil {
			reservoir := ham.ReservoirDensity(result.Final.Pack())
			runID, err := st.Save(step.SaveAs, g, radial.Order(cfg.Grid.Order), cfg.Time.Dt,
				par, pumping, reservoir, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = runID
		}
		results = append(results, sr)
	}

	return results, nil
}
