// Package viz renders a running condensate in the terminal: the radial
// density profile as an ASCII chart, live observables alongside, and
// keyboard control over the pump while the solve advances.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/avolkov/condsim/internal/banded"
	"github.com/avolkov/condsim/internal/field"
	"github.com/avolkov/condsim/internal/integrators"
	"github.com/avolkov/condsim/internal/metrics"
	"github.com/avolkov/condsim/internal/model"
	"github.com/avolkov/condsim/internal/radial"
)

const (
	graphWidth      = 70
	graphHeight     = 12
	historyCapacity = 600
)

type view int

const (
	viewDensity view = iota
	viewReservoir
	viewPumping
	viewHistory
	viewCount
)

func (v view) String() string {
	switch v {
	case viewDensity:
		return "density |u|^2"
	case viewReservoir:
		return "reservoir n(r)"
	case viewPumping:
		return "pumping p(r)"
	case viewHistory:
		return "particle number over time"
	}
	return "?"
}

type TickMsg time.Time

// Model steps the condensate between frames and draws the selected
// radial profile. Pump power is adjustable mid-run; each adjustment
// rebuilds the Hamiltonian over the same prebuilt operator.
type Model struct {
	grid    radial.Grid
	op      *banded.Matrix
	par     model.Params
	profile func(power float64) model.Pumping
	power   float64

	ham   *model.Hamiltonian
	integ field.Integrator
	x     field.State
	x0    field.State
	t     float64
	dt    float64
	step  int

	stepsPerFrame int
	running       bool
	view          view
	history       []float64
	particles     *metrics.ParticleNumber
	err           error
}

func NewModel(g radial.Grid, op *banded.Matrix, par model.Params,
	profile func(power float64) model.Pumping, power float64,
	initial field.Field, dt float64, stepsPerFrame int) (Model, error) {

	m := Model{
		grid:          g,
		op:            op,
		par:           par,
		profile:       profile,
		power:         power,
		integ:         integrators.NewRK4(),
		x:             initial.Pack(),
		x0:            initial.Pack(),
		dt:            dt,
		stepsPerFrame: stepsPerFrame,
		running:       true,
		history:       make([]float64, 0, historyCapacity),
		particles:     metrics.NewParticleNumber(g),
	}
	if err := m.rebuild(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) rebuild() error {
	pumping := model.SamplePumping(m.profile(m.power), m.grid)
	ham, err := model.NewHamiltonian(m.op, pumping, m.par)
	if err != nil {
		return err
	}
	m.ham = ham
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.x = m.x0.Clone()
			m.t = 0
			m.step = 0
			m.history = m.history[:0]
			m.err = nil
		case "tab":
			m.view = (m.view + 1) % viewCount
		case "up", "k":
			m.power *= 1.05
			m.err = m.rebuild()
		case "down", "j":
			m.power *= 0.95
			m.err = m.rebuild()
		}
		return m, nil

	case TickMsg:
		if m.running && m.err == nil {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.x = m.integ.Step(m.ham, m.x, m.t, m.dt)
				m.t += m.dt
				m.step++
			}
			if !m.x.IsValid() {
				m.err = field.ErrInvalidState
				m.running = false
			}
			m.particles.Observe(m.x, m.t)
			m.history = append(m.history, m.particles.Value())
			if len(m.history) > historyCapacity {
				m.history = m.history[len(m.history)-historyCapacity:]
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	series := m.series()
	chart := "waiting for data"
	if len(series) >= 2 {
		chart = asciigraph.Plot(series,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(m.view.String()),
		)
	}

	left := graphStyle.Render(chart)
	right := statsStyle.Render(m.stats())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	help := helpStyle.Render("space pause  r reset  tab view  up/down pump power  q quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}

func (m Model) series() []float64 {
	n := m.grid.N
	switch m.view {
	case viewDensity:
		return downsample(m.x.Density(make([]float64, n)), graphWidth)
	case viewReservoir:
		return downsample(m.ham.ReservoirDensity(m.x), graphWidth)
	case viewPumping:
		return downsample(model.SamplePumping(m.profile(m.power), m.grid), graphWidth)
	case viewHistory:
		return m.history
	}
	return nil
}

func (m Model) stats() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("condensate"))
	sb.WriteString("\n")

	row := func(label string, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteString("\n")
	}
	row("time", fmt.Sprintf("%.4f", m.t))
	row("steps", fmt.Sprintf("%d", m.step))
	row("pump power", fmt.Sprintf("%.4f", m.power))
	row("particles", fmt.Sprintf("%.6g", m.particles.Value()))
	row("grid", fmt.Sprintf("%d nodes, h=%.3g", m.grid.N, m.grid.H))

	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(pausedStyle.Render(fmt.Sprintf("stopped: %v", m.err)))
	} else if !m.running {
		sb.WriteString("\n")
		sb.WriteString(pausedStyle.Render("paused"))
	}
	return sb.String()
}

// downsample reduces a profile to at most width points by taking the
// maximum over each bucket, so narrow peaks stay visible.
func downsample(data []float64, width int) []float64 {
	if len(data) <= width {
		return data
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		lo := i * len(data) / width
		hi := (i + 1) * len(data) / width
		max := data[lo]
		for _, v := range data[lo+1 : hi] {
			if v > max {
				max = v
			}
		}
		out[i] = max
	}
	return out
}
