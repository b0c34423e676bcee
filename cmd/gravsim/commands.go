package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/automation"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/scene"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

// loadConfig resolves the effective configuration: defaults, then the
// preset, then the config file, then any flag set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("bodies") {
		cfg.Particles.Count = numBodies
	}
	if flags.Changed("seed") {
		cfg.Particles.Seed = seed
	}
	if flags.Changed("layout") {
		cfg.Particles.Layout = layout
	}
	if flags.Changed("g") {
		cfg.Physics.G = gravity
	}
	if flags.Changed("restitution") {
		cfg.Physics.Restitution = restitution
	}
	if flags.Changed("fps") {
		cfg.Timing.FPS = frameRate
	}
	if flags.Changed("speed") {
		cfg.Timing.Speed = speed
	}
	if flags.Changed("time") {
		cfg.Timing.Duration = duration
	}

	if cfg.Particles.Seed == 0 {
		cfg.Particles.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup builds the physics parameters and the initial particle set.
func setup(cfg *config.Config) (dynamo.Params, dynamo.State, error) {
	params, err := cfg.Params()
	if err != nil {
		return dynamo.Params{}, nil, err
	}

	spec := scene.Spec{
		Count:    cfg.Particles.Count,
		MassMin:  cfg.Particles.MassMin,
		MassMax:  cfg.Particles.MassMax,
		SpeedMax: cfg.Particles.SpeedMax,
	}
	x0, err := scene.NewRegistry().Generate(cfg.Particles.Layout, spec, params, cfg.Particles.Seed)
	if err != nil {
		return dynamo.Params{}, nil, err
	}
	return params, x0, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params, x0, err := setup(cfg)
	if err != nil {
		return err
	}

	if debug {
		f, err := tea.LogToFile(logFile, "gravsim")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	log.Printf("live: layout=%s bodies=%d seed=%d dt=%.5f", cfg.Particles.Layout, len(x0), cfg.Particles.Seed, params.Dt)

	title := cfg.Particles.Layout
	if preset != "" {
		title = preset
	}

	m := viz.NewModel(sim.New(params, x0), x0, viz.Options{
		FPS:       cfg.Timing.FPS,
		ShowField: cfg.Field.Enabled,
		Theme:     cfg.View.Theme,
		Title:     title,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params, x0, err := setup(cfg)
	if err != nil {
		return err
	}

	s := sim.New(params, x0)
	for _, m := range metrics.Defaults(params) {
		s.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	steps := cfg.Steps()
	runCfg := sim.Config{
		Steps:         steps,
		SampleEvery:   max(1, steps/200),
		ValidateState: true,
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "layout %s, %d particles, seed %d\n", cfg.Particles.Layout, len(x0), cfg.Particles.Seed)
	fmt.Fprintf(out, "running %d steps (dt=%.5f, %.2fs simulated)\n", steps, params.Dt, cfg.Timing.Duration)

	start := time.Now()
	result, err := s.Run(ctx, runCfg)
	elapsed := time.Since(start)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		warnf(cmd, "interrupted after %d steps\n", result.StepsTaken)
	}

	fmt.Fprintf(out, "\ncompleted in %v\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "steps: %d\n", result.StepsTaken)
	fmt.Fprintf(out, "collisions: %d\n", result.Collisions)
	fmt.Fprintf(out, "wall contacts: %d\n", result.WallContacts)
	fmt.Fprintf(out, "energy drift: %.4e\n", result.EnergyDrift)

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(out, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.6f\n", name, result.Metrics[name])
	}

	for _, e := range result.Errors {
		fmt.Fprintf(out, "error: %v\n", e)
	}

	if len(result.Energies) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(result.Energies,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("total energy"),
		))
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(result.Momenta,
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption("|momentum|"),
		))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tLAYOUT\tBODIES\tG\tRESTITUTION\tDURATION")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%g\t%gs\n",
			name, cfg.Particles.Layout, cfg.Particles.Count, cfg.Physics.G, cfg.Physics.Restitution, cfg.Timing.Duration)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		if err := config.Save(args[0], cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func fieldSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params, x0, err := setup(cfg)
	if err != nil {
		return err
	}
	if params.FieldSpacing <= 0 {
		params.FieldSpacing = config.DefaultFieldSpacing
		params.FieldLength = config.DefaultFieldLength
	}

	lines := physics.Field(x0, params)
	out := cmd.OutOrStdout()
	if len(lines) == 0 {
		fmt.Fprintln(out, "no field samples")
		return nil
	}

	cols := int(params.Width / params.FieldSpacing)
	rows := int(params.Height / params.FieldSpacing)
	rowSum := make([]float64, rows)
	rowCount := make([]int, rows)

	minS, maxS, sum := math.Inf(1), 0.0, 0.0
	var strongest r2.Vec
	for _, l := range lines {
		sum += l.Strength
		minS = math.Min(minS, l.Strength)
		if l.Strength > maxS {
			maxS = l.Strength
			strongest = l.From
		}
		if r := int(l.From.Y / params.FieldSpacing); r >= 0 && r < rows {
			rowSum[r] += l.Strength
			rowCount[r]++
		}
	}

	fmt.Fprintf(out, "grid %dx%d (spacing %g), %d samples from %d particles\n", cols, rows, params.FieldSpacing, len(lines), len(x0))
	fmt.Fprintf(out, "strength min %.4e  mean %.4e  max %.4e\n", minS, sum/float64(len(lines)), maxS)
	fmt.Fprintf(out, "strongest at (%.1f, %.1f)\n", strongest.X, strongest.Y)
	com := physics.CenterOfMass(x0)
	fmt.Fprintf(out, "center of mass (%.1f, %.1f), total mass %.2f\n", com.X, com.Y, x0.TotalMass())

	means := make([]float64, 0, rows)
	for r := range rowSum {
		if rowCount[r] > 0 {
			means = append(means, rowSum[r]/float64(rowCount[r]))
		}
	}
	if len(means) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(means,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("mean field strength by row"),
		))
	}
	return nil
}

func benchStep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if benchSteps <= 0 {
		return dynamo.BoundsError("steps", float64(benchSteps), "> 0")
	}

	counts := []int{10, 25, 50, 100, 200}
	if cmd.Flags().Changed("bodies") {
		counts = []int{cfg.Particles.Count}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %s layout, %d steps per run\n\n", cfg.Particles.Layout, benchSteps)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tSTEPS\tTIME\tSTEPS/SEC\tCOLLISIONS")

	for _, n := range counts {
		cfg.Particles.Count = n
		params, x0, err := setup(cfg)
		if err != nil {
			return err
		}

		s := sim.New(params, x0)
		start := time.Now()
		result, err := s.Run(cmd.Context(), sim.Config{Steps: benchSteps, SampleEvery: benchSteps})
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		rate := float64(result.StepsTaken) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%d\n", n, result.StepsTaken, elapsed.Round(time.Microsecond), rate, result.Collisions)
	}
	return w.Flush()
}

func writeSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params, x0, err := setup(cfg)
	if err != nil {
		return err
	}

	s := sim.New(params, x0)
	opts := export.Options{Scale: svgScale, Field: params.FieldSpacing > 0}

	record := func(dynamo.State, float64) bool { return true }
	if trailEvery > 0 {
		rec := export.NewRecorder(trailEvery)
		rec.Start(x0)
		record = rec.Record
		opts.Trails = rec.Trails
	}

	if steps := cfg.Steps(); steps > 0 {
		if err := s.RunWithCallback(cmd.Context(), steps, record); err != nil {
			return err
		}
	}

	if err := os.WriteFile(args[0], []byte(export.FrameSVG(s.State(), params, opts)), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (t=%.2fs, %d steps)\n", args[0], s.Time(), s.Steps())
	return nil
}

func printOutcomes(w io.Writer, first string, rows []automation.Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tSTEPS\tCOLLISIONS\tWALLS\tENERGY DRIFT\tCONTAINMENT\n", first)
	for _, o := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.4e\t%.3f\n",
			o.Label, o.Steps, o.Collisions, o.WallContacts, o.EnergyDrift, o.Metrics["containment"])
	}
	return tw.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if sc.Name != "" {
		fmt.Fprintf(out, "scenario %s\n", sc.Name)
	}
	outcomes, err := automation.RunScenario(cmd.Context(), sc, out)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	return printOutcomes(out, "STEP", outcomes)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:      cfg,
		ParamName: args[0],
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepPoints,
	}, out)
	if err != nil {
		return err
	}

	rows := make([]automation.Outcome, len(results))
	drift := make([]float64, len(results))
	for i, r := range results {
		rows[i] = r.Outcome
		drift[i] = r.EnergyDrift
	}
	fmt.Fprintln(out)
	if err := printOutcomes(out, "VALUE", rows); err != nil {
		return err
	}
	if len(drift) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(drift,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("energy drift by "+args[0]),
		))
	}
	return nil
}
