package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(0, 0)
	c.Set(3, 7)

	if got := c.Grid[0][0]; got != blank|0x1 {
		t.Errorf("cell (0,0) = %U, want %U", got, blank|0x1)
	}
	if got := c.Grid[1][1]; got != blank|0x80 {
		t.Errorf("cell (1,1) = %U, want %U", got, blank|0x80)
	}
	if c.Filled(1, 0) || c.Filled(0, 1) {
		t.Error("untouched cells should be blank")
	}
}

func TestCanvasSetOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(4, 0)
	c.Set(0, 8)

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if c.Filled(col, row) {
				t.Fatalf("cell (%d,%d) set by out-of-range pixel", col, row)
			}
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(4, 4)
	c.DrawLine(0, 0, 7, 15)
	c.Clear()

	for row := range c.Grid {
		for col := range c.Grid[row] {
			if c.Grid[row][col] != blank {
				t.Fatalf("cell (%d,%d) not cleared", col, row)
			}
		}
	}
}

func TestCanvasDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(1, 2, 18, 17)

	if !c.Filled(0, 0) {
		t.Error("start cell not filled")
	}
	if !c.Filled(9, 4) {
		t.Error("end cell not filled")
	}
}

func TestCanvasDrawCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	cx, cy, r := 20, 20, 8
	c.DrawCircle(cx, cy, r)

	for _, pt := range [][2]int{{cx + r, cy}, {cx - r, cy}, {cx, cy + r}, {cx, cy - r}} {
		col, row := pt[0]/2, pt[1]/4
		if c.Grid[row][col]&rune(pixelMap[pt[1]%4][pt[0]%2]) == 0 {
			t.Errorf("extreme point %v not set", pt)
		}
	}
	if c.Filled(cx/2, cy/4) {
		t.Error("circle outline should leave the center empty")
	}
}

func TestCanvasDrawCircleZeroRadius(t *testing.T) {
	c := NewCanvas(4, 4)
	c.DrawCircle(3, 5, 0)

	if !c.Filled(1, 1) {
		t.Error("zero radius should draw a single dot")
	}
}

func TestCanvasDrawRect(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawRect(0, 0, 19, 19)

	corners := [][2]int{{0, 0}, {9, 0}, {0, 4}, {9, 4}}
	for _, cell := range corners {
		if !c.Filled(cell[0], cell[1]) {
			t.Errorf("corner cell %v not filled", cell)
		}
	}
	if c.Filled(5, 2) {
		t.Error("rectangle interior should be empty")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, l := range lines {
		if n := len([]rune(l)); n != 3 {
			t.Errorf("line has %d runes, want 3", n)
		}
	}
}
