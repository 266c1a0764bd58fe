package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/avolkov/condsim/internal/analysis"
	"github.com/avolkov/condsim/internal/banded"
	"github.com/avolkov/condsim/internal/config"
	"github.com/avolkov/condsim/internal/field"
	"github.com/avolkov/condsim/internal/integrators"
	"github.com/avolkov/condsim/internal/metrics"
	"github.com/avolkov/condsim/internal/model"
	"github.com/avolkov/condsim/internal/radial"
	"github.com/avolkov/condsim/internal/solver"
	"github.com/avolkov/condsim/internal/storage"
	"github.com/avolkov/condsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	dx    float64
	nodes int
	order int

	dt            float64
	steps         int
	snapshotEvery int

	profile   string
	power     float64
	variation float64
	radius    float64
	ringWidth float64

	seed float64

	// threshold sweep
	powerMin   float64
	powerMax   float64
	powerCount int

	// live view
	stepsPerFrame int

	// svg export
	svgOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "condsim",
		Short: "polariton condensate solver on a radial grid",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".condsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a condensate simulation",
		RunE:  runSimulation,
	}
	addModelFlags(runCmd)
	runCmd.Flags().IntVar(&snapshotEvery, "snapshot-every", 0, "record intermediate profiles every N steps")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the saved radial profile",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the density profile as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "power spectrum of the center density",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the solver over grid sizes",
		RunE:  benchSolver,
	}

	thresholdCmd := &cobra.Command{
		Use:   "threshold",
		Short: "sweep pump power and report the sustained condensate",
		RunE:  runThreshold,
	}
	addModelFlags(thresholdCmd)
	thresholdCmd.Flags().Float64Var(&powerMin, "min", 0.0, "lowest pump power")
	thresholdCmd.Flags().Float64Var(&powerMax, "max", 10.0, "highest pump power")
	thresholdCmd.Flags().IntVar(&powerCount, "count", 11, "number of sweep points")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 50, "solver steps per rendered frame")

	presetsCmd := &cobra.Command{
		Use:   "presets [profile]",
		Short: "list available presets for a pumping profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for profile: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportSVGCmd, analyzeCmd, benchCmd, thresholdCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dx, "dx", config.DefaultDx, "grid spacing")
	cmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "number of radial nodes")
	cmd.Flags().IntVar(&order, "order", config.DefaultOrder, "finite-difference order")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().StringVar(&profile, "profile", "gaussian", "pumping profile (gaussian, uniform, ring)")
	cmd.Flags().Float64Var(&power, "power", config.DefaultPower, "pump power")
	cmd.Flags().Float64Var(&variation, "variation", config.DefaultVariation, "gaussian pump variation")
	cmd.Flags().Float64Var(&radius, "radius", 10.0, "ring pump radius")
	cmd.Flags().Float64Var(&ringWidth, "width", 2.0, "ring pump width")
	cmd.Flags().Float64Var(&seed, "seed", config.DefaultSeed, "initial uniform field amplitude")
}

// resolveConfig merges preset, config file, and flags, flags winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(profile, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(profile))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dx") {
		cfg.Grid.Dx = dx
	}
	if cmd.Flags().Changed("nodes") {
		cfg.Grid.Nodes = nodes
	}
	if cmd.Flags().Changed("order") {
		cfg.Grid.Order = order
	}
	if cmd.Flags().Changed("dt") {
		cfg.Time.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Time.Steps = steps
	}
	if cmd.Flags().Changed("snapshot-every") {
		cfg.Time.SnapshotEvery = snapshotEvery
	}
	if cmd.Flags().Changed("profile") {
		cfg.Pumping.Profile = profile
	}
	if cmd.Flags().Changed("power") {
		cfg.Pumping.Power = power
	}
	if cmd.Flags().Changed("variation") {
		cfg.Pumping.Variation = variation
	}
	if cmd.Flags().Changed("radius") {
		cfg.Pumping.Radius = radius
	}
	if cmd.Flags().Changed("width") {
		cfg.Pumping.Width = ringWidth
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type run struct {
	cfg     *config.Config
	grid    radial.Grid
	op      *banded.Matrix
	par     model.Params
	pumping model.Pumping
	ham     *model.Hamiltonian
	initial field.Field
}

func buildRun(cfg *config.Config) (*run, error) {
	g := cfg.Radial()
	op, err := radial.Laplacian(g, radial.Order(cfg.Grid.Order))
	if err != nil {
		return nil, err
	}

	pump, err := cfg.BuildPumping()
	if err != nil {
		return nil, err
	}

	par := cfg.Originals.Derive()
	ham, err := model.NewHamiltonian(op, model.SamplePumping(pump, g), par)
	if err != nil {
		return nil, err
	}

	return &run{
		cfg:     cfg,
		grid:    g,
		op:      op,
		par:     par,
		pumping: pump,
		ham:     ham,
		initial: field.Uniform(g.N, complex(cfg.Seed, 0)),
	}, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	r, err := buildRun(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := solver.New(r.ham, integrators.NewRK4())
	s.AddMetric(metrics.NewParticleNumber(r.grid))
	s.AddMetric(metrics.NewPeakDensity())
	s.AddMetric(metrics.NewStability(1e6))
	s.AddMetric(metrics.NewGrowthRate())
	s.AddMetric(metrics.NewReservoirPopulation(r.grid, r.ham))

	fmt.Printf("running %s pump, %d nodes, %d steps...\n", cfg.Pumping.Profile, r.grid.N, cfg.Time.Steps)

	result, err := s.Run(context.Background(), r.initial.Pack(), solver.Config{
		Dt:            cfg.Time.Dt,
		Steps:         cfg.Time.Steps,
		SnapshotEvery: cfg.Time.SnapshotEvery,
		ValidateState: true,
	})
	if err != nil {
		return err
	}

	reservoir := r.ham.ReservoirDensity(result.Final.Pack())
	runID, err := st.Save(cfg.Pumping.Profile, r.grid, radial.Order(cfg.Grid.Order), cfg.Time.Dt,
		r.par, model.SamplePumping(r.pumping, r.grid), reservoir, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPUMPING\tTIME\tNODES\tORDER\tDT\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.2g\t%d\n",
			run.ID,
			run.Pumping,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Nodes,
			run.Order,
			run.Dt,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	profile, err := st.LoadProfile(runID)
	if err != nil {
		return err
	}
	if len(profile.R) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("pumping: %s\n", meta.Pumping)
	fmt.Printf("nodes: %d\n\n", len(profile.R))

	columns := []struct {
		caption string
		data    []float64
	}{
		{"density |u|^2 vs r", profile.Density},
		{"reservoir n(r)", profile.Reservoir},
		{"pumping p(r)", profile.Pumping},
	}
	for _, col := range columns {
		graph := asciigraph.Plot(col.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	profile, err := st.LoadProfile(runID)
	if err != nil {
		return err
	}
	if len(profile.R) < 2 {
		return fmt.Errorf("no data to export")
	}

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}

	svg := storage.ProfileSVG(profile.R, profile.Density, 800, 400, "#00ff00")
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	spectrum, err := analysis.PowerSpectrum(series, meta.Dt)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(series))

	plotData := spectrum.Power
	if len(plotData) > 4 {
		plotData = plotData[:len(plotData)/4]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (center density)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := spectrum.DominantFrequency()
	fmt.Printf("dominant frequency: %.4g\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.4g\n", 1.0/freq)
	}

	return nil
}

func benchSolver(cmd *cobra.Command, args []string) error {
	gridSizes := []int{100, 500, 1000}
	dts := []float64{1e-3, 1e-2}
	benchSteps := 1000

	fmt.Println("benchmarking solver")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NODES\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range gridSizes {
		for _, benchDt := range dts {
			cfg := config.DefaultConfig()
			cfg.Grid.Nodes = n
			cfg.Time.Dt = benchDt
			cfg.Time.Steps = benchSteps

			r, err := buildRun(cfg)
			if err != nil {
				return err
			}

			s := solver.New(r.ham, integrators.NewRK4())
			start := time.Now()
			result, err := s.Run(context.Background(), r.initial.Pack(), solver.Config{
				Dt:    benchDt,
				Steps: benchSteps,
			})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%.4g\t%d\t%v\t%.0f\n",
				n, benchDt, result.StepsTaken, elapsed,
				float64(result.StepsTaken)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func runThreshold(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	r, err := buildRun(cfg)
	if err != nil {
		return err
	}

	if powerCount < 2 {
		return fmt.Errorf("need at least 2 sweep points, got %d", powerCount)
	}
	powers := make([]float64, powerCount)
	for i := range powers {
		powers[i] = powerMin + float64(i)*(powerMax-powerMin)/float64(powerCount-1)
	}

	e := &solver.Ensemble{
		Grid: r.grid,
		Op:   r.op,
		Par:  r.par,
		Profile: func(p float64) model.Pumping {
			c := *cfg
			c.Pumping.Power = p
			pump, _ := c.BuildPumping()
			return pump
		},
		Initial: r.initial,
		Cfg: solver.Config{
			Dt:            cfg.Time.Dt,
			Steps:         cfg.Time.Steps,
			ValidateState: true,
		},
	}

	fmt.Printf("sweeping %d pump powers over [%.3g, %.3g]...\n\n", powerCount, powerMin, powerMax)
	points := analysis.ThresholdScan(context.Background(), e, powers)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POWER\tPARTICLES\tPEAK DENSITY")
	for _, p := range points {
		if p.Err != nil {
			fmt.Fprintf(w, "%.4g\tfailed: %v\t\n", p.Power, p.Err)
			continue
		}
		fmt.Fprintf(w, "%.4g\t%.6g\t%.6g\n", p.Power, p.Particles, p.PeakDensity)
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	r, err := buildRun(cfg)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(r.grid, r.op, r.par,
		func(p float64) model.Pumping {
			c := *cfg
			c.Pumping.Power = p
			pump, _ := c.BuildPumping()
			return pump
		},
		cfg.Pumping.Power, r.initial, cfg.Time.Dt, stepsPerFrame)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
