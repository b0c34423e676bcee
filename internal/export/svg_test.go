package export

import (
	"strings"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

func frameState() dynamo.State {
	return dynamo.State{
		{ID: 0, Body: dynamo.Body{Mass: 10, Location: r2.Vec{X: 100, Y: 200}}},
		{ID: 1, Body: dynamo.Body{Mass: 0, Location: r2.Vec{X: 600, Y: 700}}},
	}
}

func TestFrameSVG(t *testing.T) {
	svg := FrameSVG(frameState(), dynamo.DefaultParams(), Options{Scale: 0.5})

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("not a complete svg document")
	}
	if !strings.Contains(svg, `width="500" height="500"`) {
		t.Error("canvas size should follow world size times scale")
	}
	if !strings.Contains(svg, `<circle id="p0" cx="50.0" cy="100.0" r="5.0"/>`) {
		t.Errorf("particle 0 missing or misplaced:\n%s", svg)
	}
	// Zero mass draws with unit radius.
	if !strings.Contains(svg, `<circle id="p1" cx="300.0" cy="350.0" r="0.5"/>`) {
		t.Errorf("particle 1 missing or misplaced:\n%s", svg)
	}
	if strings.Contains(svg, "<line") {
		t.Error("field lines drawn without Field option")
	}
}

func TestFrameSVGField(t *testing.T) {
	svg := FrameSVG(frameState(), dynamo.DefaultParams(), Options{Field: true})
	// 1000/50 squared grid nodes, none coincide with a particle.
	if got := strings.Count(svg, "<line"); got != 400 {
		t.Errorf("field lines = %d, want 400", got)
	}
}

func TestRecorder(t *testing.T) {
	s := frameState()
	r := NewRecorder(2)
	r.Start(s)

	for i := 0; i < 5; i++ {
		s[0].Location.X += 1
		if !r.Record(s, 0) {
			t.Fatal("Record should never stop the run")
		}
	}

	if got := len(r.Trails[0]); got != 3 {
		t.Fatalf("trail samples = %d, want 3", got)
	}
	if got := r.Trails[0][2].X; got != 104 {
		t.Errorf("last sample x = %v, want 104", got)
	}

	svg := FrameSVG(s, dynamo.DefaultParams(), Options{Trails: r.Trails})
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("trail paths = %d, want 2", got)
	}
}

func TestNewRecorderClampsInterval(t *testing.T) {
	if r := NewRecorder(0); r.Every != 1 {
		t.Errorf("Every = %d, want 1", r.Every)
	}
}
