package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avolkov/condsim/internal/model"
	"github.com/avolkov/condsim/internal/radial"
)

const (
	DefaultDx        = 0.1
	DefaultNodes     = 1000
	DefaultOrder     = 5
	DefaultDt        = 1e-3
	DefaultSteps     = 100000
	DefaultSeed      = 0.1
	DefaultPower     = 3.0
	DefaultVariation = 6.84931506849
)

type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Time    TimeConfig    `yaml:"time"`
	Pumping PumpingConfig `yaml:"pumping"`
	// Originals are the laboratory parameters the solver coefficients
	// are derived from.
	Originals model.Originals `yaml:"originals"`
	// Seed is the uniform amplitude of the initial field.
	Seed float64 `yaml:"seed"`
}

type GridConfig struct {
	Dx    float64 `yaml:"dx"`
	Nodes int     `yaml:"nodes"`
	Order int     `yaml:"order"`
}

type TimeConfig struct {
	Dt            float64 `yaml:"dt"`
	Steps         int     `yaml:"steps"`
	SnapshotEvery int     `yaml:"snapshot_every"`
}

type PumpingConfig struct {
	Profile   string  `yaml:"profile"` // gaussian, uniform, ring
	Power     float64 `yaml:"power"`
	Variation float64 `yaml:"variation"`
	Radius    float64 `yaml:"radius"`
	Width     float64 `yaml:"width"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{Dx: DefaultDx, Nodes: DefaultNodes, Order: DefaultOrder},
		Time: TimeConfig{Dt: DefaultDt, Steps: DefaultSteps},
		Pumping: PumpingConfig{
			Profile:   "gaussian",
			Power:     DefaultPower,
			Variation: DefaultVariation,
		},
		Originals: model.Originals{
			R:      0.05,
			Gamma:  0.566,
			G:      1e-3,
			TildeG: 0.011,
			GammaR: 10,
		},
		Seed: DefaultSeed,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Radial returns the grid the config describes.
func (c *Config) Radial() radial.Grid {
	return radial.Grid{N: c.Grid.Nodes, H: c.Grid.Dx}
}

// BuildPumping resolves the profile name to an evaluable pump shape.
func (c *Config) BuildPumping() (model.Pumping, error) {
	switch c.Pumping.Profile {
	case "gaussian", "":
		return model.GaussianPumping{Power: c.Pumping.Power, Variation: c.Pumping.Variation}, nil
	case "uniform":
		return model.UniformPumping{Power: c.Pumping.Power}, nil
	case "ring":
		return model.RingPumping{Power: c.Pumping.Power, Radius: c.Pumping.Radius, Width: c.Pumping.Width}, nil
	default:
		return nil, fmt.Errorf("condsim: unknown pumping profile %q", c.Pumping.Profile)
	}
}

func (c *Config) Validate() error {
	if c.Grid.Dx <= 0 {
		return fmt.Errorf("condsim: grid dx must be positive, got %v", c.Grid.Dx)
	}
	if c.Grid.Nodes <= 0 {
		return fmt.Errorf("condsim: grid must have at least one node, got %d", c.Grid.Nodes)
	}
	if c.Time.Dt <= 0 {
		return fmt.Errorf("condsim: dt must be positive, got %v", c.Time.Dt)
	}
	if c.Time.Steps <= 0 {
		return fmt.Errorf("condsim: step count must be positive, got %d", c.Time.Steps)
	}
	if _, err := c.BuildPumping(); err != nil {
		return err
	}
	return nil
}
