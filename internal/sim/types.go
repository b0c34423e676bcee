package sim

import "github.com/san-kum/gravsim/internal/dynamo"

// Phase is a stage of the per-step cycle. A step always walks
// ComputeForces, Integrate, ResolveCollisions, ClampBoundaries and returns
// to Idle.
type Phase int

const (
	Idle Phase = iota
	ComputeForces
	Integrate
	ResolveCollisions
	ClampBoundaries
)

var phaseNames = [...]string{
	Idle:              "idle",
	ComputeForces:     "compute_forces",
	Integrate:         "integrate",
	ResolveCollisions: "resolve_collisions",
	ClampBoundaries:   "clamp_boundaries",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed step, before the next begins.
type Observer interface {
	OnStep(x dynamo.State, stats StepStats, t float64)
}

// PhaseObserver is notified as each phase of a step begins.
type PhaseObserver interface {
	OnPhase(p Phase, x dynamo.State)
}

// StepStats counts the contacts handled during one step.
type StepStats struct {
	Collisions   int
	WallContacts int
}

type Config struct {
	Steps         int
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Steps:         600,
		SampleEvery:   1,
		ValidateState: true,
	}
}

type Result struct {
	Times        []float64
	Energies     []float64
	Momenta      []float64
	Metrics      map[string]float64
	EnergyDrift  float64
	StepsTaken   int
	Collisions   int
	WallContacts int
	Errors       []error
}
