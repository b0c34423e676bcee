package metrics

import (
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// Containment is the fraction of observed frames in which every disc lies
// within the walls.
type Containment struct {
	name       string
	params     dynamo.Params
	violations int
	samples    int
}

func NewContainment(p dynamo.Params) *Containment {
	return &Containment{
		name:   "containment",
		params: p,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(x dynamo.State, t float64) {
	c.samples++
	if !physics.Inside(x, c.params) {
		c.violations++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
