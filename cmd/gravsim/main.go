package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile  string
	preset      string
	numBodies   int
	seed        int64
	layout      string
	gravity     float64
	restitution float64
	frameRate   int
	speed       float64
	duration    float64
	// Live view
	debug   bool
	logFile string
	// Bench
	benchSteps int
	// Snapshot
	svgScale   float64
	trailEvery int
	// Sweep
	sweepMin    float64
	sweepMax    float64
	sweepPoints int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Flags are bound to the package-level
// variables, so each call also resets them to their defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "2D n-body gravity simulator",
		Long:  "gravsim simulates circular particles under mutual gravity with elastic collisions inside a walled box.",
		RunE:  runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&numBodies, "bodies", 0, "number of particles")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.StringVar(&layout, "layout", "", "initial layout (random, ring, binary)")
	pf.Float64Var(&gravity, "g", 0, "gravitational constant")
	pf.Float64Var(&restitution, "restitution", 0, "collision restitution in [0, 1]")
	pf.IntVar(&frameRate, "fps", 0, "frames per second")
	pf.Float64Var(&speed, "speed", 0, "simulated seconds per wall second")
	pf.Float64Var(&duration, "time", 0, "simulated duration for headless runs")

	liveFlags := func(c *cobra.Command) {
		c.Flags().BoolVar(&debug, "debug", false, "write a debug log while the view is open")
		c.Flags().StringVar(&logFile, "log-file", "gravsim-debug.log", "debug log path")
	}
	liveFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "Run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveFlags(liveCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation headless and report diagnostics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "List available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "Write the effective configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "Summarize the gravitational field of the initial frame",
		Args:  cobra.NoArgs,
		RunE:  fieldSummary,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark steps per second across particle counts",
		Args:  cobra.NoArgs,
		RunE:  benchStep,
	}
	benchCmd.Flags().IntVar(&benchSteps, "steps", 600, "steps per measurement")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot <path.svg>",
		Short: "Run headless for --time seconds and write the final frame as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  writeSnapshot,
	}
	snapshotCmd.Flags().Float64Var(&svgScale, "scale", 1, "svg pixels per world unit")
	snapshotCmd.Flags().IntVar(&trailEvery, "trail-every", 10, "steps between trail samples (0 disables trails)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario <file.yaml>",
		Short: "Run a scripted sequence of headless simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep <param>",
		Short: "Sweep one parameter over a range and compare runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 5, "number of values")

	rootCmd.AddCommand(liveCmd, runCmd, presetsCmd, configCmd, fieldCmd, benchCmd, snapshotCmd, scenarioCmd, sweepCmd)
	return rootCmd
}

func init() {
	cobra.EnableCommandSorting = false
}

func warnf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
}
