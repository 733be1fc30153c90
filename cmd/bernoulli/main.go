package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/san-kum/bernoulli/internal/config"
	"github.com/san-kum/bernoulli/internal/export"
	"github.com/san-kum/bernoulli/internal/fluid"
	"github.com/san-kum/bernoulli/internal/metrics"
	"github.com/san-kum/bernoulli/internal/solver"
	"github.com/san-kum/bernoulli/internal/storage"
	"github.com/san-kum/bernoulli/internal/tui"
	"github.com/san-kum/bernoulli/internal/viz"
)

var (
	dataDir string
	verbose bool

	p1  float64
	p2  float64
	rho float64
	g   float64
	h1  float64
	h2  float64
	v1  float64

	x0      float64
	x1      float64
	tol     float64
	maxIter int

	configFile string
	preset     string
	noSave     bool

	chartOut string

	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bernoulli",
		Short: "bernoulli exit-velocity solver lab",
		Long: `Solves Bernoulli's equation for the unknown exit velocity v2,
analytically and with a guarded secant root-finder. Running without a
subcommand starts the interactive terminal app.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(
				tint.NewHandler(os.Stderr, &tint.Options{
					Level:      level,
					TimeFormat: time.Kitchen,
				}),
			))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bernoulli", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve for the exit velocity",
		RunE:  runSolve,
	}
	solveCmd.Flags().Float64Var(&p1, "p1", 101325.0, "pressure at point 1 [Pa]")
	solveCmd.Flags().Float64Var(&p2, "p2", 101325.0, "pressure at point 2 [Pa]")
	solveCmd.Flags().Float64Var(&rho, "rho", 1000.0, "fluid density [kg/m³]")
	solveCmd.Flags().Float64Var(&g, "g", 9.81, "gravitational acceleration [m/s²]")
	solveCmd.Flags().Float64Var(&h1, "h1", 0.0, "height at point 1 [m]")
	solveCmd.Flags().Float64Var(&h2, "h2", 1.0, "height at point 2 [m]")
	solveCmd.Flags().Float64Var(&v1, "v1", 2.0, "velocity at point 1 [m/s]")
	solveCmd.Flags().Float64Var(&x0, "x0", 0, "first initial guess [m/s] (0 = suggest)")
	solveCmd.Flags().Float64Var(&x1, "x1", 0, "second initial guess [m/s] (0 = suggest)")
	solveCmd.Flags().Float64Var(&tol, "tol", config.DefaultTolerance, "residual tolerance")
	solveCmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "iteration budget")
	solveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
	solveCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot convergence history of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the iteration trace as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	chartCmd := &cobra.Command{
		Use:   "chart [run_id]",
		Short: "render the convergence history to an image file",
		Args:  cobra.ExactArgs(1),
		RunE:  chartRun,
	}
	chartCmd.Flags().StringVar(&chartOut, "out", "convergence.png", "output file (.png, .svg, .pdf)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "sweep one parameter and plot the analytical exit velocity",
		Long: `Sweeps one of p1, p2, rho, h1, h2, v1 over a range and plots the
analytical v2 at each grid point. Points without a real solution are
reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "range start")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "range end")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 40, "grid points")
	sweepCmd.Flags().Float64Var(&p1, "p1", 101325.0, "pressure at point 1 [Pa]")
	sweepCmd.Flags().Float64Var(&p2, "p2", 101325.0, "pressure at point 2 [Pa]")
	sweepCmd.Flags().Float64Var(&rho, "rho", 1000.0, "fluid density [kg/m³]")
	sweepCmd.Flags().Float64Var(&g, "g", 9.81, "gravitational acceleration [m/s²]")
	sweepCmd.Flags().Float64Var(&h1, "h1", 0.0, "height at point 1 [m]")
	sweepCmd.Flags().Float64Var(&h2, "h2", 1.0, "height at point 2 [m]")
	sweepCmd.Flags().Float64Var(&v1, "v1", 2.0, "velocity at point 1 [m/s]")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(solveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, chartCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges preset, config file, and flags in ascending
// precedence, mirroring how flags override files.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
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

	setIfChanged := func(flag string, dst *float64, val float64) {
		if cmd.Flags().Changed(flag) {
			*dst = val
		}
	}
	setIfChanged("p1", &cfg.Scenario.P1, p1)
	setIfChanged("p2", &cfg.Scenario.P2, p2)
	setIfChanged("rho", &cfg.Scenario.Rho, rho)
	setIfChanged("g", &cfg.Scenario.G, g)
	setIfChanged("h1", &cfg.Scenario.H1, h1)
	setIfChanged("h2", &cfg.Scenario.H2, h2)
	setIfChanged("v1", &cfg.Scenario.V1, v1)
	setIfChanged("x0", &cfg.Guesses.X0, x0)
	setIfChanged("x1", &cfg.Guesses.X1, x1)
	setIfChanged("tol", &cfg.Solver.Tolerance, tol)
	if cmd.Flags().Changed("max-iter") {
		cfg.Solver.MaxIterations = maxIter
	}

	return cfg, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	params := cfg.Params()
	if err := fluid.Validate(params); err != nil {
		return err
	}

	guess0, guess1 := cfg.InitialGuesses()
	opts := cfg.SolverOptions()

	slog.Debug("solving", "p1", params.P1, "p2", params.P2, "rho", params.Rho,
		"h1", params.H1, "h2", params.H2, "v1", params.V1,
		"x0", guess0, "x1", guess1)

	analytical, analyticalErr := fluid.Analytical(params)
	if analyticalErr != nil {
		slog.Debug("analytical path failed", "err", analyticalErr)
	}

	f := func(v2 float64) float64 { return fluid.Residual(v2, params) }

	start := time.Now()
	out, err := solver.Secant(f, guess0, guess1, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, it := range out.Trace {
		slog.Debug("iteration", "i", it.Index, "v2", it.Candidate, "residual", it.Residual)
	}

	fmt.Printf("completed in %v (%d iterations, %s)\n\n", elapsed, len(out.Trace), out.Status)

	if root, ok := out.Solution(); ok {
		confirm := ""
		if !out.Converged {
			confirm = "  (unconfirmed)"
		}
		fmt.Printf("numerical:   v2 = %.4f m/s%s\n", root, confirm)
	}
	if analyticalErr == nil {
		fmt.Printf("analytical:  v2 = %.4f m/s\n", analytical)
		if root, ok := out.Solution(); ok && analytical != 0 {
			fmt.Printf("difference:  %.6f%%\n", math.Abs(analytical-root)/analytical*100)
		}
	} else {
		fmt.Printf("analytical:  %v\n", analyticalErr)
	}

	if len(out.Trace) >= 2 {
		fmt.Printf("reduction:   %.3gx residual per iteration\n", metrics.ReductionFactor(out.Trace))
	}

	if !out.Converged {
		fmt.Println("\nthe search did not converge; try guesses near the expected")
		fmt.Println("answer or check that the inputs are physically reasonable.")
	}

	if len(out.Trace) > 0 {
		fmt.Println()
		fmt.Println(viz.ConvergencePlot(out.Trace, 70, 10))
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(params, guess0, guess1, opts, analytical, analyticalErr == nil, out)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)

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
	fmt.Fprintln(w, "ID\tTIME\tSTATUS\tV2\tITER\tTOL")

	for _, run := range runs {
		root := "-"
		if run.Converged || run.Status == solver.StatusExhausted.String() {
			root = fmt.Sprintf("%.4f", run.Root)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.0e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Status,
			root,
			run.Iterations,
			run.Tolerance,
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

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(trace) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("status: %s\n", meta.Status)
	fmt.Printf("iterations: %d\n\n", len(trace))

	fmt.Println(viz.ConvergencePlot(trace, 80, 10))
	fmt.Println()
	fmt.Println(viz.CandidatePlot(trace, 80, 10))

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

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"iteration", "candidate", "residual"}); err != nil {
		return err
	}
	for _, it := range trace {
		row := []string{
			strconv.Itoa(it.Index),
			strconv.FormatFloat(it.Candidate, 'g', -1, 64),
			strconv.FormatFloat(it.Residual, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func chartRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	if err := export.ConvergenceChart(trace, chartOut); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", chartOut)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	name := args[0]

	base := fluid.Params{P1: p1, P2: p2, Rho: rho, G: g, H1: h1, H2: h2, V1: v1}
	if err := fluid.Validate(base); err != nil {
		return err
	}
	if sweepSteps < 2 {
		return fmt.Errorf("steps must be at least 2")
	}

	set, err := paramSetter(name)
	if err != nil {
		return err
	}

	data := make([]float64, 0, sweepSteps)
	skipped := 0
	for i := 0; i < sweepSteps; i++ {
		val := sweepFrom + (sweepTo-sweepFrom)*float64(i)/float64(sweepSteps-1)
		p := base
		set(&p, val)

		v2, err := fluid.Analytical(p)
		if err != nil {
			skipped++
			continue
		}
		data = append(data, v2)
	}

	if len(data) == 0 {
		return fmt.Errorf("no real solution anywhere on the grid")
	}

	fmt.Printf("sweep %s from %g to %g (%d points", name, sweepFrom, sweepTo, sweepSteps)
	if skipped > 0 {
		fmt.Printf(", %d without a real solution", skipped)
	}
	fmt.Println(")")
	fmt.Println()

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("analytical v2 [m/s] vs %s", name)),
	)
	fmt.Println(graph)

	return nil
}

func paramSetter(name string) (func(*fluid.Params, float64), error) {
	switch name {
	case "p1":
		return func(p *fluid.Params, v float64) { p.P1 = v }, nil
	case "p2":
		return func(p *fluid.Params, v float64) { p.P2 = v }, nil
	case "rho":
		return func(p *fluid.Params, v float64) { p.Rho = v }, nil
	case "h1":
		return func(p *fluid.Params, v float64) { p.H1 = v }, nil
	case "h2":
		return func(p *fluid.Params, v float64) { p.H2 = v }, nil
	case "v1":
		return func(p *fluid.Params, v float64) { p.V1 = v }, nil
	default:
		return nil, fmt.Errorf("unknown parameter: %s (use p1, p2, rho, h1, h2, v1)", name)
	}
}
