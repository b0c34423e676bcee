package physics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// fallbackNormal is used when two centers coincide and the direction between
// them is undefined.
var fallbackNormal = r2.Vec{X: 1}

// AccumulateForces overwrites every body's force with the net gravitational
// pull of all other bodies.
func AccumulateForces(s dynamo.State, p dynamo.Params) {
	for i := range s {
		s[i].Force = r2.Vec{}
	}

	n := len(s)
	for i := 0; i < n; i++ {
		bi := &s[i].Body
		for j := i + 1; j < n; j++ {
			bj := &s[j].Body

			f := pairForce(bi, bj, p)
			bi.Force = r2.Add(bi.Force, f)
			bj.Force = r2.Sub(bj.Force, f)
		}
	}
}

// pairForce returns the force on a due to b.
func pairForce(a, b *dynamo.Body, p dynamo.Params) r2.Vec {
	d := r2.Sub(b.Location, a.Location)
	distSq := r2.Norm2(d)

	mag := p.G * a.Mass * b.Mass / math.Max(distSq, p.MinDistSq)
	return r2.Scale(mag, direction(d, distSq))
}

// direction returns the unit vector along d, or fallbackNormal when d is zero.
func direction(d r2.Vec, distSq float64) r2.Vec {
	if distSq == 0 {
		return fallbackNormal
	}
	return r2.Scale(1/math.Sqrt(distSq), d)
}
