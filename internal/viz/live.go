package viz

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 42
	minWidth        = 20
	minHeight       = 8
	historyCapacity = 600
)

type TickMsg time.Time

// Options configures the live view.
type Options struct {
	FPS       int
	ShowField bool
	Theme     string
	Title     string
}

// Model drives a simulator one step per frame and renders it to a braille
// canvas.
type Model struct {
	sim     *sim.Simulator
	initial dynamo.State
	fps     int
	title   string

	bodies, walls, field *Canvas

	showField bool
	showHelp  bool
	theme     int

	energyHistory []float64
	last          sim.StepStats
	collisions    int
	wallContacts  int
}

// NewModel returns a live view over s. initial is restored on reset.
func NewModel(s *sim.Simulator, initial dynamo.State, opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	title := opts.Title
	if title == "" {
		title = "gravsim"
	}

	m := Model{
		sim:           s,
		initial:       initial.Clone(),
		fps:           fps,
		title:         title,
		showField:     opts.ShowField,
		theme:         ThemeIndex(opts.Theme),
		energyHistory: make([]float64, 0, historyCapacity),
	}
	m.resize(width, height)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			log.Printf("quit at step %d", m.sim.Steps())
			return m, tea.Quit
		case "f":
			m.showField = !m.showField
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "r":
			m.reset()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width-statsWidth-4, msg.Height-2)
	case TickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(cols, rows int) {
	cols = max(cols, minWidth)
	rows = max(rows, minHeight)
	m.bodies = NewCanvas(cols, rows)
	m.walls = NewCanvas(cols, rows)
	m.field = NewCanvas(cols, rows)
}

func (m *Model) step() {
	stats := m.sim.Step()
	m.last = stats
	m.collisions += stats.Collisions
	m.wallContacts += stats.WallContacts

	p := m.sim.Params()
	energy := physics.Energy(m.sim.State(), p)
	m.energyHistory = append(m.energyHistory, energy)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	if m.sim.Steps()%m.fps == 0 {
		log.Printf("step=%d t=%.2f energy=%.4f collisions=%d walls=%d",
			m.sim.Steps(), m.sim.Time(), energy, m.collisions, m.wallContacts)
	}
}

func (m *Model) reset() {
	m.sim.Reset(m.initial)
	m.energyHistory = m.energyHistory[:0]
	m.last = sim.StepStats{}
	m.collisions = 0
	m.wallContacts = 0
	log.Printf("reset to %d particles", len(m.initial))
}

// projection maps world coordinates onto canvas sub-pixels, keeping the
// world's aspect ratio.
type projection struct {
	scale      float64
	offX, offY float64
}

func (m *Model) projection() projection {
	p := m.sim.Params()
	pw, ph := m.bodies.PixelSize()
	if p.Width <= 0 || p.Height <= 0 {
		return projection{scale: 1}
	}
	scale := math.Min(float64(pw-1)/p.Width, float64(ph-1)/p.Height)
	return projection{
		scale: scale,
		offX:  (float64(pw-1) - p.Width*scale) / 2,
		offY:  (float64(ph-1) - p.Height*scale) / 2,
	}
}

func (pr projection) point(v r2.Vec) (int, int) {
	return int(math.Round(v.X*pr.scale + pr.offX)), int(math.Round(v.Y*pr.scale + pr.offY))
}

func (pr projection) length(l float64) int {
	return int(math.Round(l * pr.scale))
}

func (m *Model) draw() {
	m.bodies.Clear()
	m.walls.Clear()
	m.field.Clear()

	p := m.sim.Params()
	pr := m.projection()

	x0, y0 := pr.point(r2.Vec{})
	x1, y1 := pr.point(r2.Vec{X: p.Width, Y: p.Height})
	m.walls.DrawRect(x0, y0, x1, y1)
	if inset := pr.length(p.WallThickness); inset > 0 {
		m.walls.DrawRect(x0+inset, y0+inset, x1-inset, y1-inset)
	}

	s := m.sim.State()
	if m.showField {
		fp := p
		if fp.FieldSpacing <= 0 {
			def := dynamo.DefaultParams()
			fp.FieldSpacing, fp.FieldLength = def.FieldSpacing, def.FieldLength
		}
		for _, l := range physics.Field(s, fp) {
			ax, ay := pr.point(l.From)
			bx, by := pr.point(l.To)
			m.field.DrawLine(ax, ay, bx, by)
		}
	}

	for i := range s {
		cx, cy := pr.point(s[i].Location)
		m.bodies.DrawCircle(cx, cy, pr.length(physics.Radius(&s[i].Body)))
	}
}

// layer pairs a canvas with the style used to render its cells.
type layer struct {
	c     *Canvas
	style lipgloss.Style
}

// compose flattens layers into one string. For each cell the first layer
// with a dot set wins; runs of cells from the same layer are styled together.
func compose(layers ...layer) string {
	if len(layers) == 0 {
		return ""
	}
	base := layers[0].c

	var b strings.Builder
	var run []rune
	for row := 0; row < base.Height; row++ {
		cur := -1
		run = run[:0]
		flush := func() {
			if len(run) == 0 {
				return
			}
			if cur < 0 {
				b.WriteString(string(run))
			} else {
				b.WriteString(layers[cur].style.Render(string(run)))
			}
			run = run[:0]
		}
		for col := 0; col < base.Width; col++ {
			idx := -1
			for i, l := range layers {
				if l.c.Filled(col, row) {
					idx = i
					break
				}
			}
			if idx != cur {
				flush()
				cur = idx
			}
			if idx < 0 {
				run = append(run, blank)
			} else {
				run = append(run, layers[idx].c.Grid[row][col])
			}
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) View() string {
	if m.showHelp {
		return helpScreen
	}

	theme := Themes[m.theme]
	st := stylesFor(theme)

	m.draw()
	canvasView := st.canvas.Render(compose(
		layer{m.bodies, st.body},
		layer{m.walls, st.wall},
		layer{m.field, st.field},
	))

	s := m.sim.State()
	p := m.sim.Params()
	ke := physics.KineticEnergy(s)
	energy := physics.Energy(s, p)
	mom := physics.Momentum(s)

	var b strings.Builder
	b.WriteString(st.header.Render(strings.ToUpper(m.title)) + "\n")
	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		b.WriteString(st.graph.Render(chart) + "\n\n")
	}
	row := func(label, value string) {
		b.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Step", fmt.Sprintf("%d", m.sim.Steps()))
	row("Time", fmt.Sprintf("%.2fs", m.sim.Time()))
	row("Particles", fmt.Sprintf("%d", len(s)))
	row("Kinetic", fmt.Sprintf("%.2f", ke))
	row("Energy", fmt.Sprintf("%.2f", energy))
	row("|P|", fmt.Sprintf("%.2f", r2.Norm(mom)))
	row("Collisions", fmt.Sprintf("%d (+%d)", m.collisions, m.last.Collisions))
	row("Walls", fmt.Sprintf("%d (+%d)", m.wallContacts, m.last.WallContacts))
	row("Theme", theme.Name)

	field := "off"
	if m.showField {
		field = "on"
	}
	row("Field", field)

	b.WriteString(st.help.Render("─────────────────────\nF:Field T:Theme R:Reset\nQ:Quit  ?:Help"))
	statsView := st.stats.Render(b.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

const helpScreen = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  F        - Toggle field lines       ║
║  T        - Cycle theme              ║
║  R        - Reset particles          ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`
