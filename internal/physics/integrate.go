package physics

import (
	"github.com/san-kum/gravsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Integrate advances every body by one semi-implicit Euler step: velocity
// first from the accumulated force, then position from the new velocity.
// Bodies with non-positive mass keep their velocity.
func Integrate(s dynamo.State, p dynamo.Params) {
	for i := range s {
		b := &s[i].Body
		if b.Mass > 0 {
			b.Velocity = r2.Add(b.Velocity, r2.Scale(p.Dt/b.Mass, b.Force))
		}
		b.Location = r2.Add(b.Location, r2.Scale(p.Dt, b.Velocity))
	}
}
