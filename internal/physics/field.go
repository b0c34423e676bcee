package physics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// FieldLine is one sampled segment of the gravitational field. It starts at a
// grid node and points along the local field.
type FieldLine struct {
	From     r2.Vec
	To       r2.Vec
	Strength float64
}

// FieldAt returns the gravitational acceleration at point q, using the same
// distance floor as the force law.
func FieldAt(s dynamo.State, p dynamo.Params, q r2.Vec) r2.Vec {
	var g r2.Vec
	for i := range s {
		d := r2.Sub(s[i].Location, q)
		distSq := r2.Norm2(d)
		if distSq == 0 {
			continue
		}
		mag := p.G * s[i].Mass / math.Max(distSq, p.MinDistSq)
		g = r2.Add(g, r2.Scale(mag/math.Sqrt(distSq), d))
	}
	return g
}

// Field samples the field on a grid with pitch FieldSpacing and returns a
// segment of length FieldLength per node. Nodes with no net field are
// skipped. A non-positive spacing disables sampling.
func Field(s dynamo.State, p dynamo.Params) []FieldLine {
	if p.FieldSpacing <= 0 || len(s) == 0 {
		return nil
	}

	cols := int(p.Width / p.FieldSpacing)
	rows := int(p.Height / p.FieldSpacing)
	lines := make([]FieldLine, 0, cols*rows)

	half := p.FieldSpacing / 2
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			node := r2.Vec{
				X: float64(col)*p.FieldSpacing + half,
				Y: float64(row)*p.FieldSpacing + half,
			}
			g := FieldAt(s, p, node)
			strength := r2.Norm(g)
			if strength == 0 {
				continue
			}
			lines = append(lines, FieldLine{
				From:     node,
				To:       r2.Add(node, r2.Scale(p.FieldLength/strength, g)),
				Strength: strength,
			})
		}
	}
	return lines
}
