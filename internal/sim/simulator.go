package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Simulator is the frame driver. It owns the particle state and steps it in
// place; renderers read State between steps.
type Simulator struct {
	params         dynamo.Params
	state          dynamo.State
	t              float64
	steps          int
	phase          Phase
	metrics        []Metric
	observers      []Observer
	phaseObservers []PhaseObserver
}

// New returns a simulator over a copy of x0.
func New(params dynamo.Params, x0 dynamo.State) *Simulator {
	return &Simulator{
		params:         params,
		state:          x0.Clone(),
		metrics:        make([]Metric, 0),
		observers:      make([]Observer, 0),
		phaseObservers: make([]PhaseObserver, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)               { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)           { s.observers = append(s.observers, o) }
func (s *Simulator) AddPhaseObserver(o PhaseObserver) { s.phaseObservers = append(s.phaseObservers, o) }

func (s *Simulator) Params() dynamo.Params { return s.params }
func (s *Simulator) State() dynamo.State   { return s.state }
func (s *Simulator) Time() float64         { return s.t }
func (s *Simulator) Steps() int            { return s.steps }
func (s *Simulator) Phase() Phase          { return s.phase }

// Reset replaces the state with a copy of x0 and rewinds the clock.
func (s *Simulator) Reset(x0 dynamo.State) {
	s.state = x0.Clone()
	s.t = 0
	s.steps = 0
	s.phase = Idle
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Simulator) enter(p Phase) {
	s.phase = p
	for _, o := range s.phaseObservers {
		o.OnPhase(p, s.state)
	}
}

// Step advances the world by one fixed timestep. Every phase runs over the
// whole state before the next one starts.
func (s *Simulator) Step() StepStats {
	var stats StepStats

	s.enter(ComputeForces)
	physics.AccumulateForces(s.state, s.params)

	s.enter(Integrate)
	physics.Integrate(s.state, s.params)

	s.enter(ResolveCollisions)
	stats.Collisions = physics.ResolveCollisions(s.state, s.params)

	s.enter(ClampBoundaries)
	stats.WallContacts = physics.ClampBoundaries(s.state, s.params)

	s.enter(Idle)
	s.t += s.params.Dt
	s.steps++

	for _, o := range s.observers {
		o.OnStep(s.state, stats, s.t)
	}
	return stats
}

// Run steps the simulation cfg.Steps times without rendering and collects
// energy and momentum samples.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	sampleEvery := cfg.SampleEvery
	if sampleEvery <= 0 {
		sampleEvery = 1
	}

	capacity := cfg.Steps/sampleEvery + 1
	result := &Result{
		Times:    make([]float64, 0, capacity),
		Energies: make([]float64, 0, capacity),
		Momenta:  make([]float64, 0, capacity),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(s.state, s.t)
	}

	initialEnergy := physics.Energy(s.state, s.params)
	s.sample(result)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, initialEnergy)
			return result, ctx.Err()
		default:
		}

		stats := s.Step()
		result.StepsTaken++
		result.Collisions += stats.Collisions
		result.WallContacts += stats.WallContacts

		if cfg.ValidateState && !s.state.IsValid() {
			result.Errors = append(result.Errors, &dynamo.SimulationError{
				Step:    s.steps,
				Time:    s.t,
				Wrapped: dynamo.ErrInvalidState,
			})
			break
		}

		for _, m := range s.metrics {
			m.Observe(s.state, s.t)
		}
		if result.StepsTaken%sampleEvery == 0 {
			s.sample(result)
		}
	}

	s.finish(result, initialEnergy)
	return result, nil
}

// RunWithCallback hands the state to fn after every step, as a renderer
// would consume it. It stops after steps steps (0 means no limit), when fn
// returns false, or when ctx is done.
func (s *Simulator) RunWithCallback(ctx context.Context, steps int, fn func(dynamo.State, float64) bool) error {
	if err := s.params.Validate(); err != nil {
		return err
	}
	if steps < 0 {
		return dynamo.BoundsError("steps", float64(steps), ">= 0")
	}

	for i := 0; steps == 0 || i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.Step()

		if !s.state.IsValid() {
			return &dynamo.SimulationError{Step: s.steps, Time: s.t, Wrapped: dynamo.ErrInvalidState}
		}
		if !fn(s.state, s.t) {
			return nil
		}
	}
	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d: %w", cfg.Steps, dynamo.ErrParameterBounds)
	}
	return s.params.Validate()
}

func (s *Simulator) sample(result *Result) {
	result.Times = append(result.Times, s.t)
	result.Energies = append(result.Energies, physics.Energy(s.state, s.params))
	result.Momenta = append(result.Momenta, r2.Norm(physics.Momentum(s.state)))
}

func (s *Simulator) finish(result *Result, initialEnergy float64) {
	finalEnergy := physics.Energy(s.state, s.params)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
