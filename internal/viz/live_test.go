package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avolkov/condsim/internal/field"
	"github.com/avolkov/condsim/internal/model"
	"github.com/avolkov/condsim/internal/radial"
)

func testModel(t *testing.T) Model {
	t.Helper()
	n := 32
	g := radial.Grid{N: n, H: 0.1}
	op, err := radial.Laplacian(g, radial.Order5)
	if err != nil {
		t.Fatalf("Laplacian: %v", err)
	}
	par := model.Originals{R: 0.05, Gamma: 0.566, G: 1e-3, TildeG: 0.011, GammaR: 10}.Derive()
	m, err := NewModel(g, op, par,
		func(power float64) model.Pumping {
			return model.GaussianPumping{Power: power, Variation: 6.85}
		},
		3.0, field.Uniform(n, 0.1), 1e-3, 5)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func TestModel_TickAdvances(t *testing.T) {
	m := testModel(t)

	updated, _ := m.Update(TickMsg{})
	m = updated.(Model)

	if m.step != 5 {
		t.Errorf("one frame advanced %d steps, want 5", m.step)
	}
	if len(m.history) != 1 {
		t.Errorf("history has %d samples, want 1", len(m.history))
	}
}

func TestModel_PauseAndReset(t *testing.T) {
	m := testModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)
	if m.running {
		t.Fatal("space did not pause")
	}

	updated, _ = m.Update(TickMsg{})
	m = updated.(Model)
	if m.step != 0 {
		t.Error("paused model advanced")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(Model)
	if m.step != 0 || m.t != 0 {
		t.Error("reset did not restore the initial state")
	}
}

func TestModel_PumpAdjust(t *testing.T) {
	m := testModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	if m.power <= 3.0 {
		t.Errorf("up arrow left power at %v", m.power)
	}
	if m.err != nil {
		t.Errorf("rebuild after adjustment failed: %v", m.err)
	}
}

func TestModel_ViewRenders(t *testing.T) {
	m := testModel(t)
	updated, _ := m.Update(TickMsg{})
	m = updated.(Model)

	out := m.View()
	if !strings.Contains(out, "pump power") {
		t.Error("view is missing the stats panel")
	}
	if !strings.Contains(out, "density") {
		t.Error("view is missing the chart caption")
	}
}

func TestDownsample(t *testing.T) {
	data := make([]float64, 100)
	data[57] = 9.0

	out := downsample(data, 10)
	if len(out) != 10 {
		t.Fatalf("got %d points, want 10", len(out))
	}
	if out[5] != 9.0 {
		t.Errorf("peak lost in downsampling: bucket 5 = %v", out[5])
	}

	short := []float64{1, 2, 3}
	if got := downsample(short, 10); len(got) != 3 {
		t.Errorf("short input should pass through, got %d points", len(got))
	}
}
