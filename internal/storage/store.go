// Package storage persists finished runs: metadata.json with the run
// configuration and metrics, profile.csv with the final radial profile.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/avolkov/condsim/internal/field"
	"github.com/avolkov/condsim/internal/model"
	"github.com/avolkov/condsim/internal/radial"
	"github.com/avolkov/condsim/internal/solver"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Pumping   string             `json:"pumping"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Dx        float64            `json:"dx"`
	Nodes     int                `json:"nodes"`
	Order     int                `json:"order"`
	Steps     int                `json:"steps"`
	Params    model.Params       `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Profile is the final radial profile of a run, column per column as it
// is written to profile.csv.
type Profile struct {
	R         []float64
	Pumping   []float64
	Re        []float64
	Im        []float64
	Density   []float64
	Reservoir []float64
}

// Save writes one run directory under the base dir and returns its ID.
// The pumping and reservoir columns come from the caller because the
// result itself carries only the field.
func (s *Store) Save(pumpingName string, g radial.Grid, order radial.Order, dt float64,
	par model.Params, pumping, reservoir []float64, result *solver.Result) (string, error) {

	runID := fmt.Sprintf("%s_%d", pumpingName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Pumping:   pumpingName,
		Timestamp: time.Now(),
		Dt:        dt,
		Dx:        g.H,
		Nodes:     g.N,
		Order:     int(order),
		Steps:     result.StepsTaken,
		Params:    par,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "profile.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"r", "pumping", "re", "im", "density", "reservoir"}); err != nil {
		return "", err
	}

	x := result.Final.Pack()
	n := x.Nodes()
	den := x.Density(make([]float64, n))
	for i := 0; i < n; i++ {
		row := []string{
			formatFloat(g.R(i)),
			formatFloat(at(pumping, i)),
			formatFloat(x[i]),
			formatFloat(x[n+i]),
			formatFloat(den[i]),
			formatFloat(at(reservoir, i)),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	if len(result.CenterDensity) > 0 {
		if err := s.saveSeries(runDir, dt, result.CenterDensity); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// saveSeries writes the per-step center density as series.csv so the
// transient can be analyzed after the run.
func (s *Store) saveSeries(runDir string, dt float64, series []float64) error {
	f, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "center_density"}); err != nil {
		return err
	}
	for i, v := range series {
		row := []string{formatFloat(float64(i+1) * dt), formatFloat(v)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// LoadSeries reads the center-density trace of a saved run.
func (s *Store) LoadSeries(runID string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := make([]float64, 0, len(records))
	for _, record := range records[1:] {
		if len(record) != 2 {
			continue
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		series = append(series, v)
	}
	return series, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}

func at(v []float64, i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadProfile reads a saved profile.csv back into columns.
func (s *Store) LoadProfile(runID string) (*Profile, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "profile.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return &Profile{}, nil
	}

	p := &Profile{}
	for _, record := range records[1:] {
		if len(record) != 6 {
			continue
		}
		vals := make([]float64, 6)
		ok := true
		for j, s := range record {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		p.R = append(p.R, vals[0])
		p.Pumping = append(p.Pumping, vals[1])
		p.Re = append(p.Re, vals[2])
		p.Im = append(p.Im, vals[3])
		p.Density = append(p.Density, vals[4])
		p.Reservoir = append(p.Reservoir, vals[5])
	}

	return p, nil
}

// Field reconstructs the complex field from a loaded profile.
func (p *Profile) Field() field.Field {
	f := make(field.Field, len(p.Re))
	for i := range f {
		f[i] = complex(p.Re[i], p.Im[i])
	}
	return f
}
