// Package automation runs batches of headless simulations: scripted
// scenarios loaded from yaml and one-parameter sweeps.
package automation

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/scene"
	"github.com/san-kum/gravsim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. It starts from Preset (or the defaults) and
// applies Params on top.
type ScenarioStep struct {
	Name   string             `yaml:"name"`
	Preset string             `yaml:"preset"`
	Layout string             `yaml:"layout"`
	Bodies int                `yaml:"bodies"`
	Seed   int64              `yaml:"seed"`
	Params map[string]float64 `yaml:"params"`
}

// Outcome summarizes one headless run.
type Outcome struct {
	Label        string
	Steps        int
	Collisions   int
	WallContacts int
	EnergyDrift  float64
	Metrics      map[string]float64
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &scenario, nil
}

// setters maps tunable parameter names onto config fields.
var setters = map[string]func(*config.Config, float64){
	"g":           func(c *config.Config, v float64) { c.Physics.G = v },
	"restitution": func(c *config.Config, v float64) { c.Physics.Restitution = v },
	"min_dist_sq": func(c *config.Config, v float64) { c.Physics.MinDistSq = v },
	"speed":       func(c *config.Config, v float64) { c.Timing.Speed = v },
	"duration":    func(c *config.Config, v float64) { c.Timing.Duration = v },
	"mass_min":    func(c *config.Config, v float64) { c.Particles.MassMin = v },
	"mass_max":    func(c *config.Config, v float64) { c.Particles.MassMax = v },
	"speed_max":   func(c *config.Config, v float64) { c.Particles.SpeedMax = v },
}

// ParamNames lists the parameters a scenario step or sweep may set.
func ParamNames() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set applies a named parameter to cfg.
func Set(cfg *config.Config, name string, value float64) error {
	set, ok := setters[name]
	if !ok {
		return fmt.Errorf("unknown parameter %q (available: %v)", name, ParamNames())
	}
	set(cfg, value)
	return nil
}

func (step ScenarioStep) config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if step.Preset != "" {
		p, err := config.GetPreset(step.Preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if step.Layout != "" {
		cfg.Particles.Layout = step.Layout
	}
	if step.Bodies > 0 {
		cfg.Particles.Count = step.Bodies
	}
	if step.Seed != 0 {
		cfg.Particles.Seed = step.Seed
	}
	for k, v := range step.Params {
		if err := Set(cfg, k, v); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Execute runs cfg headless with the default diagnostics attached.
func Execute(ctx context.Context, cfg *config.Config) (*sim.Result, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}

	spec := scene.Spec{
		Count:    cfg.Particles.Count,
		MassMin:  cfg.Particles.MassMin,
		MassMax:  cfg.Particles.MassMax,
		SpeedMax: cfg.Particles.SpeedMax,
	}
	x0, err := scene.NewRegistry().Generate(cfg.Particles.Layout, spec, params, cfg.Particles.Seed)
	if err != nil {
		return nil, err
	}

	s := sim.New(params, x0)
	for _, m := range metrics.Defaults(params) {
		s.AddMetric(m)
	}

	steps := cfg.Steps()
	return s.Run(ctx, sim.Config{Steps: steps, SampleEvery: max(1, steps), ValidateState: true})
}

func outcome(label string, r *sim.Result) Outcome {
	return Outcome{
		Label:        label,
		Steps:        r.StepsTaken,
		Collisions:   r.Collisions,
		WallContacts: r.WallContacts,
		EnergyDrift:  r.EnergyDrift,
		Metrics:      r.Metrics,
	}
}

// RunScenario executes all steps in a scenario and writes progress to w.
func RunScenario(ctx context.Context, scenario *Scenario, w io.Writer) ([]Outcome, error) {
	results := make([]Outcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		label := step.Name
		if label == "" {
			label = fmt.Sprintf("step-%d", i+1)
		}
		fmt.Fprintf(w, "Running step %d/%d: %s\n", i+1, len(scenario.Steps), label)

		cfg, err := step.config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := Execute(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, outcome(label, result))
	}

	return results, nil
}

// ParameterSweep runs the base configuration across evenly spaced values
// of one parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	Outcome
}

// RunSweep executes a parameter sweep. Every run uses the base seed, so
// only the swept parameter differs between runs.
func RunSweep(ctx context.Context, sweep *ParameterSweep, w io.Writer) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, dynamo.BoundsError("points", float64(sweep.NumSteps), ">= 1")
	}
	if _, ok := setters[sweep.ParamName]; !ok {
		return nil, fmt.Errorf("unknown parameter %q (available: %v)", sweep.ParamName, ParamNames())
	}

	base := sweep.Base
	if base == nil {
		base = config.DefaultConfig()
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := *base
		if err := Set(&cfg, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		result, err := Execute(ctx, &cfg)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		label := fmt.Sprintf("%s=%.4g", sweep.ParamName, paramVal)
		results = append(results, SweepResult{ParamValue: paramVal, Outcome: outcome(label, result)})

		fmt.Fprintf(w, "Sweep %d/%d: %s\n", i+1, sweep.NumSteps, label)
	}

	return results, nil
}
