// Package export renders simulation frames to SVG.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Options controls frame rendering. Zero colors fall back to the retro
// green palette.
type Options struct {
	Scale      float64
	Field      bool
	Trails     map[int][]r2.Vec
	Background string
	Body       string
	Wall       string
	FieldColor string
	TrailColor string
}

func (o *Options) defaults() {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Background == "" {
		o.Background = "#0a0a0a"
	}
	if o.Body == "" {
		o.Body = "#00ff00"
	}
	if o.Wall == "" {
		o.Wall = "#00cc00"
	}
	if o.FieldColor == "" {
		o.FieldColor = "#005500"
	}
	if o.TrailColor == "" {
		o.TrailColor = "#88ff88"
	}
}

// FrameSVG draws one frame in world coordinates: the walls, the optional
// field lines, particle trails and the particles as discs of radius = mass.
func FrameSVG(s dynamo.State, p dynamo.Params, opts Options) string {
	opts.defaults()
	k := opts.Scale
	width, height := p.Width*k, p.Height*k

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, opts.Background)

	// Walls are drawn as a frame whose stroke covers the wall band.
	if wt := p.WallThickness * k; wt > 0 {
		fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="%.1f"/>
`, wt/2, wt/2, width-wt, height-wt, opts.Wall, wt)
	}

	if opts.Field {
		fmt.Fprintf(&sb, "<g stroke=%q stroke-width=\"1\">\n", opts.FieldColor)
		for _, l := range physics.Field(s, p) {
			fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, l.From.X*k, l.From.Y*k, l.To.X*k, l.To.Y*k)
		}
		sb.WriteString("</g>\n")
	}

	if len(opts.Trails) > 0 {
		ids := make([]int, 0, len(opts.Trails))
		for id := range opts.Trails {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		fmt.Fprintf(&sb, "<g fill=\"none\" stroke=%q stroke-width=\"1\" stroke-opacity=\"0.6\">\n", opts.TrailColor)
		for _, id := range ids {
			sb.WriteString(trailPath(opts.Trails[id], k))
		}
		sb.WriteString("</g>\n")
	}

	fmt.Fprintf(&sb, "<g fill=%q>\n", opts.Body)
	for i := range s {
		c := s[i].Location
		fmt.Fprintf(&sb, `<circle id="p%d" cx="%.1f" cy="%.1f" r="%.1f"/>
`, s[i].ID, c.X*k, c.Y*k, physics.Radius(&s[i].Body)*k)
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func trailPath(points []r2.Vec, k float64) string {
	if len(points) < 2 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<path d="M`)
	for i, pt := range points {
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", pt.X*k, pt.Y*k)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", pt.X*k, pt.Y*k)
		}
	}
	sb.WriteString("\"/>\n")
	return sb.String()
}

// Recorder samples particle locations every Every steps. Its Record method
// has the shape of a sim.Simulator.RunWithCallback callback.
type Recorder struct {
	Every  int
	Trails map[int][]r2.Vec
	calls  int
}

func NewRecorder(every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{Every: every, Trails: make(map[int][]r2.Vec)}
}

// Record appends the current locations when the sample interval is reached.
// It always returns true.
func (r *Recorder) Record(s dynamo.State, _ float64) bool {
	r.calls++
	if r.calls%r.Every != 0 {
		return true
	}
	for i := range s {
		r.Trails[s[i].ID] = append(r.Trails[s[i].ID], s[i].Location)
	}
	return true
}

// Start seeds the trails with the initial locations.
func (r *Recorder) Start(s dynamo.State) {
	for i := range s {
		r.Trails[s[i].ID] = append(r.Trails[s[i].ID], s[i].Location)
	}
}
