package physics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Radius returns the disc radius of b, which is its mass. Malformed bodies
// with non-positive mass get radius 1.
func Radius(b *dynamo.Body) float64 {
	if b.Mass <= 0 {
		return 1
	}
	return b.Mass
}

// inverseMass clamps the mass to dynamo.MassEpsilon before inverting.
func inverseMass(b *dynamo.Body) float64 {
	return 1 / math.Max(b.Mass, dynamo.MassEpsilon)
}

// ResolveCollisions separates overlapping discs and applies an impulse to
// pairs that are still approaching. Pairs are handled one after another, so
// simultaneous contacts are resolved approximately. It returns the number of
// overlapping pairs.
func ResolveCollisions(s dynamo.State, p dynamo.Params) int {
	contacts := 0
	n := len(s)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if collide(&s[i].Body, &s[j].Body, p.Restitution) {
				contacts++
			}
		}
	}
	return contacts
}

func collide(a, b *dynamo.Body, restitution float64) bool {
	d := r2.Sub(b.Location, a.Location)
	distSq := r2.Norm2(d)
	reach := Radius(a) + Radius(b)
	if distSq >= reach*reach {
		return false
	}

	dist := math.Sqrt(distSq)
	normal := direction(d, distSq)

	// Positional correction, half the overlap each way.
	shift := r2.Scale((reach-dist)/2, normal)
	a.Location = r2.Sub(a.Location, shift)
	b.Location = r2.Add(b.Location, shift)

	vn := r2.Dot(r2.Sub(b.Velocity, a.Velocity), normal)
	if vn > 0 {
		return true
	}

	invA, invB := inverseMass(a), inverseMass(b)
	impulse := -(1 + restitution) * vn / (invA + invB)

	a.Velocity = r2.Sub(a.Velocity, r2.Scale(impulse*invA, normal))
	b.Velocity = r2.Add(b.Velocity, r2.Scale(impulse*invB, normal))
	return true
}
