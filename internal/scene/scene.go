// Package scene builds the initial particle set for a run.
package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/gravsim/internal/dynamo"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

// Spec describes the population to generate.
type Spec struct {
	Count    int
	MassMin  float64
	MassMax  float64
	SpeedMax float64
}

// Layout fills a state of spec.Count particles. IDs are assigned by the
// registry afterwards.
type Layout func(spec Spec, p dynamo.Params, rng *rand.Rand) dynamo.State

type Registry struct {
	layouts map[string]Layout
}

func NewRegistry() *Registry {
	r := &Registry{layouts: make(map[string]Layout)}

	r.layouts["random"] = Random
	r.layouts["ring"] = Ring
	r.layouts["binary"] = Binary

	return r
}

func (r *Registry) Register(name string, l Layout) {
	r.layouts[name] = l
}

func (r *Registry) ListLayouts() []string {
	names := make([]string, 0, len(r.layouts))
	for name := range r.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate builds the named layout with a deterministic seed.
func (r *Registry) Generate(name string, spec Spec, p dynamo.Params, seed int64) (dynamo.State, error) {
	layout, ok := r.layouts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownLayout, name, r.ListLayouts())
	}
	if spec.Count < 1 {
		return nil, dynamo.ErrEmptyState
	}

	rng := rand.New(rand.NewSource(uint64(seed)))
	s := layout(spec, p, rng)
	for i := range s {
		s[i].ID = i
		s[i].Location = keepInside(&s[i].Body, p)
	}
	return s, nil
}

// Random scatters bodies uniformly over the world with uniform masses and
// velocity components.
func Random(spec Spec, p dynamo.Params, rng *rand.Rand) dynamo.State {
	s := make(dynamo.State, spec.Count)
	for i := range s {
		s[i].Mass = between(rng, spec.MassMin, spec.MassMax)
		s[i].Location = r2.Vec{
			X: between(rng, 0, p.Width),
			Y: between(rng, 0, p.Height),
		}
		s[i].Velocity = r2.Vec{
			X: between(rng, -spec.SpeedMax, spec.SpeedMax),
			Y: between(rng, -spec.SpeedMax, spec.SpeedMax),
		}
	}
	return s
}

// Ring places bodies evenly on a circle around the world center, moving
// tangentially at roughly the speed of a circular orbit of the ring.
func Ring(spec Spec, p dynamo.Params, rng *rand.Rand) dynamo.State {
	n := spec.Count
	s := make(dynamo.State, n)
	center := r2.Vec{X: p.Width / 2, Y: p.Height / 2}
	radius := 0.35 * math.Min(p.Width, p.Height)

	mean := 0.0
	for i := range s {
		s[i].Mass = between(rng, spec.MassMin, spec.MassMax)
		mean += s[i].Mass
	}
	mean /= float64(n)

	// Net inward pull on one of n equal masses spaced on a circle.
	sum := 0.0
	for k := 1; k < n; k++ {
		sum += 1 / math.Sin(math.Pi*float64(k)/float64(n))
	}
	speed := math.Sqrt(p.G * mean * sum / (4 * radius))

	for i := range s {
		angle := float64(i) * 2 * math.Pi / float64(n)
		sin, cos := math.Sincos(angle)
		s[i].Location = r2.Add(center, r2.Vec{X: radius * cos, Y: radius * sin})
		s[i].Velocity = r2.Vec{X: -sin * speed, Y: cos * speed}
	}
	return s
}

// Binary puts two heavy bodies in a mutual circular orbit about the world
// center and scatters the rest as light, slow satellites.
func Binary(spec Spec, p dynamo.Params, rng *rand.Rand) dynamo.State {
	s := make(dynamo.State, spec.Count)
	center := r2.Vec{X: p.Width / 2, Y: p.Height / 2}
	sep := 0.15 * math.Min(p.Width, p.Height)
	heavy := 2 * spec.MassMax

	if spec.Count == 1 {
		s[0].Mass = heavy
		s[0].Location = center
		return s
	}

	speed := math.Sqrt(p.G * heavy / (4 * sep))
	s[0].Mass, s[1].Mass = heavy, heavy
	s[0].Location = r2.Add(center, r2.Vec{X: -sep})
	s[1].Location = r2.Add(center, r2.Vec{X: sep})
	s[0].Velocity = r2.Vec{Y: -speed}
	s[1].Velocity = r2.Vec{Y: speed}

	for i := 2; i < len(s); i++ {
		s[i].Mass = spec.MassMin
		s[i].Location = r2.Vec{
			X: between(rng, 0, p.Width),
			Y: between(rng, 0, p.Height),
		}
		s[i].Velocity = r2.Vec{
			X: between(rng, -spec.SpeedMax, spec.SpeedMax) / 4,
			Y: between(rng, -spec.SpeedMax, spec.SpeedMax) / 4,
		}
	}
	return s
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// keepInside pulls a generated location into the walls so the first step
// does not start with a forced bounce.
func keepInside(b *dynamo.Body, p dynamo.Params) r2.Vec {
	r := b.Mass
	if r <= 0 {
		r = 1
	}
	inset := p.WallThickness + r
	return r2.Vec{
		X: clamp(b.Location.X, inset, p.Width-inset),
		Y: clamp(b.Location.Y, inset, p.Height-inset),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
