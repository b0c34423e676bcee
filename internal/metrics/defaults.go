package metrics

import "github.com/san-kum/gravsim/internal/dynamo"

// Metric matches sim.Metric so the defaults can be handed to a simulator.
type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}

// Defaults returns the diagnostics reported by every run.
func Defaults(p dynamo.Params) []Metric {
	return []Metric{
		NewEnergyDrift(p),
		NewMomentumDrift(),
		NewContainment(p),
	}
}
