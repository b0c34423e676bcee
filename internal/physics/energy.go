package physics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

func KineticEnergy(s dynamo.State) float64 {
	ke := 0.0
	for i := range s {
		b := &s[i].Body
		ke += 0.5 * b.Mass * r2.Norm2(b.Velocity)
	}
	return ke
}

// PotentialEnergy sums -G*m_i*m_j/r over unordered pairs, with r floored at
// sqrt(MinDistSq) to match the force law.
func PotentialEnergy(s dynamo.State, p dynamo.Params) float64 {
	pe := 0.0
	n := len(s)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			distSq := r2.Norm2(r2.Sub(s[j].Location, s[i].Location))
			r := math.Sqrt(math.Max(distSq, p.MinDistSq))
			pe -= p.G * s[i].Mass * s[j].Mass / r
		}
	}
	return pe
}

func Energy(s dynamo.State, p dynamo.Params) float64 {
	return KineticEnergy(s) + PotentialEnergy(s, p)
}

func Momentum(s dynamo.State) r2.Vec {
	var total r2.Vec
	for i := range s {
		total = r2.Add(total, r2.Scale(s[i].Mass, s[i].Velocity))
	}
	return total
}

// AngularMomentum is taken about the world origin.
func AngularMomentum(s dynamo.State) float64 {
	L := 0.0
	for i := range s {
		b := &s[i].Body
		L += b.Mass * r2.Cross(b.Location, b.Velocity)
	}
	return L
}

// CenterOfMass returns the mass-weighted mean position of bodies with
// positive mass.
func CenterOfMass(s dynamo.State) r2.Vec {
	var sum r2.Vec
	total := 0.0
	for i := range s {
		if s[i].Mass <= 0 {
			continue
		}
		sum = r2.Add(sum, r2.Scale(s[i].Mass, s[i].Location))
		total += s[i].Mass
	}
	if total == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/total, sum)
}
