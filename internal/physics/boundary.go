package physics

import (
	"github.com/san-kum/gravsim/internal/dynamo"
)

// ClampBoundaries keeps every disc inside the walls. A body past an inner
// bound is placed on it and that axis's velocity is negated. It returns the
// number of axis contacts.
func ClampBoundaries(s dynamo.State, p dynamo.Params) int {
	contacts := 0
	for i := range s {
		b := &s[i].Body
		inset := p.WallThickness + Radius(b)

		if reflect(&b.Location.X, &b.Velocity.X, inset, p.Width-inset) {
			contacts++
		}
		if reflect(&b.Location.Y, &b.Velocity.Y, inset, p.Height-inset) {
			contacts++
		}
	}
	return contacts
}

func reflect(pos, vel *float64, lo, hi float64) bool {
	switch {
	case *pos < lo:
		*pos = lo
	case *pos > hi:
		*pos = hi
	default:
		return false
	}
	*vel = -*vel
	return true
}

// Inside reports whether every disc lies within the inner bounds.
func Inside(s dynamo.State, p dynamo.Params) bool {
	for i := range s {
		b := &s[i].Body
		inset := p.WallThickness + Radius(b)
		if b.Location.X < inset || b.Location.X > p.Width-inset ||
			b.Location.Y < inset || b.Location.Y > p.Height-inset {
			return false
		}
	}
	return true
}
