package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avolkov/condsim/internal/model"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Grid.Dx != 0.1 || cfg.Grid.Nodes != 1000 || cfg.Grid.Order != 5 {
		t.Errorf("unexpected default grid: %+v", cfg.Grid)
	}
	if cfg.Time.Dt != 1e-3 || cfg.Time.Steps != 100000 {
		t.Errorf("unexpected default time stepping: %+v", cfg.Time)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Pumping = PumpingConfig{Profile: "ring", Power: 5.0, Radius: 10.0, Width: 2.0}
	cfg.Originals.GammaR = 12.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Pumping.Profile != "ring" || loaded.Pumping.Radius != 10.0 {
		t.Errorf("pumping round-tripped to %+v", loaded.Pumping)
	}
	if loaded.Originals.GammaR != 12.5 {
		t.Errorf("gamma_R round-tripped to %v", loaded.Originals.GammaR)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("time:\n  steps: 500\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Time.Steps != 500 {
		t.Errorf("steps = %d, want 500", cfg.Time.Steps)
	}
	if cfg.Grid.Nodes != DefaultNodes {
		t.Errorf("nodes = %d, want default %d", cfg.Grid.Nodes, DefaultNodes)
	}
}

func TestBuildPumping(t *testing.T) {
	cfg := DefaultConfig()
	p, err := cfg.BuildPumping()
	if err != nil {
		t.Fatalf("BuildPumping: %v", err)
	}
	if _, ok := p.(model.GaussianPumping); !ok {
		t.Errorf("default profile built %T, want GaussianPumping", p)
	}

	cfg.Pumping.Profile = "vortex"
	if _, err := cfg.BuildPumping(); err == nil {
		t.Error("unknown profile accepted")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"zero dx", func(c *Config) { c.Grid.Dx = 0 }},
		{"no nodes", func(c *Config) { c.Grid.Nodes = 0 }},
		{"zero dt", func(c *Config) { c.Time.Dt = 0 }},
		{"no steps", func(c *Config) { c.Time.Steps = 0 }},
		{"bad profile", func(c *Config) { c.Pumping.Profile = "nope" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("gaussian", "quick")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Time.Steps != 5000 {
		t.Errorf("quick preset has %d steps, want 5000", cfg.Time.Steps)
	}

	if GetPreset("gaussian", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "default") != nil {
		t.Error("expected nil for nonexistent profile")
	}
}

func TestListPresets(t *testing.T) {
	if names := ListPresets("ring"); len(names) != 2 {
		t.Errorf("ring has %d presets, want 2", len(names))
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent profile")
	}
}
