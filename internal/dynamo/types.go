package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// MassEpsilon is the floor applied to a mass used as a divisor.
const MassEpsilon = 1e-9

type Body struct {
	Mass     float64
	Location r2.Vec
	Velocity r2.Vec
	Force    r2.Vec
}

type Particle struct {
	ID int
	Body
}

// State is the particle arena. Order is insertion order and carries no
// physical meaning.
type State []Particle

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for i := range s {
		b := &s[i].Body
		for _, v := range [...]float64{b.Location.X, b.Location.Y, b.Velocity.X, b.Velocity.Y} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// TotalMass sums the positive masses in s.
func (s State) TotalMass() float64 {
	total := 0.0
	for i := range s {
		if s[i].Mass > 0 {
			total += s[i].Mass
		}
	}
	return total
}

// Params holds the fixed global parameters of a run. It is passed by value
// into every phase and never mutated during a step.
type Params struct {
	Width         float64
	Height        float64
	WallThickness float64

	G           float64
	Dt          float64
	MinDistSq   float64
	Restitution float64

	FieldSpacing float64
	FieldLength  float64
}

func DefaultParams() Params {
	return Params{
		Width:         1000,
		Height:        1000,
		WallThickness: 5,
		G:             1,
		Dt:            1.0 / 60.0,
		MinDistSq:     25,
		Restitution:   1,
		FieldSpacing:  50,
		FieldLength:   20,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Width <= 0:
		return BoundsError("width", p.Width, "> 0")
	case p.Height <= 0:
		return BoundsError("height", p.Height, "> 0")
	case p.WallThickness < 0:
		return BoundsError("wall_thickness", p.WallThickness, ">= 0")
	case 2*p.WallThickness >= math.Min(p.Width, p.Height):
		return BoundsError("wall_thickness", p.WallThickness, "< half the smaller world extent")
	case p.G < 0:
		return BoundsError("g", p.G, ">= 0")
	case p.Dt <= 0:
		return BoundsError("dt", p.Dt, "> 0")
	case p.MinDistSq <= 0:
		return BoundsError("min_dist_sq", p.MinDistSq, "> 0")
	case p.Restitution < 0 || p.Restitution > 1:
		return BoundsError("restitution", p.Restitution, "in [0, 1]")
	case p.FieldSpacing < 0:
		return BoundsError("field.spacing", p.FieldSpacing, ">= 0")
	case p.FieldLength < 0:
		return BoundsError("field.length", p.FieldLength, ">= 0")
	}
	return nil
}
