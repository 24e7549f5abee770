package timeline

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/skateday/internal/constants"
	"github.com/julianstephens/skateday/internal/engine"
	"github.com/julianstephens/skateday/internal/models"
)

// Glyphs drawn on the canvas
const (
	GlyphEmpty   = ' '
	GlyphGrid    = '┊'
	GlyphPath    = '·'
	GlyphDone    = '●'
	GlyphPending = '○'
	GlyphSkater  = '@'
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238"))

	axisStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	glyphStyles = map[rune]lipgloss.Style{
		GlyphGrid:    lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		GlyphPath:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		GlyphDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		GlyphPending: lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
		GlyphSkater:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	}

	gridLines = []float64{0, 25, 50, 75, 100}
)

// Grid is a rows x cols character canvas covering the 100x100 day square
type Grid [][]rune

// NewGrid returns a blank canvas with the hour guides drawn in
func NewGrid(cols, rows int) Grid {
	if cols < 2 {
		cols = 2
	}
	if rows < 2 {
		rows = 2
	}
	g := make(Grid, rows)
	for r := range g {
		g[r] = []rune(strings.Repeat(string(GlyphEmpty), cols))
	}
	for _, x := range gridLines {
		c := g.col(x)
		for r := range g {
			g[r][c] = GlyphGrid
		}
	}
	return g
}

func (g Grid) cols() int { return len(g[0]) }
func (g Grid) rows() int { return len(g) }

func (g Grid) col(x float64) int {
	return clampIndex(int(math.Round(x/constants.CanvasSize*float64(g.cols()-1))), g.cols())
}

func (g Grid) row(y float64) int {
	return clampIndex(int(math.Round(y/constants.CanvasSize*float64(g.rows()-1))), g.rows())
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Set draws glyph at canvas point p
func (g Grid) Set(p engine.Point, glyph rune) {
	g[g.row(p.Y)][g.col(p.X)] = glyph
}

// At returns the glyph under canvas point p
func (g Grid) At(p engine.Point) rune {
	return g[g.row(p.Y)][g.col(p.X)]
}

// Line draws the straight segment from a to b
func (g Grid) Line(a, b engine.Point) {
	dc := math.Abs(float64(g.col(b.X) - g.col(a.X)))
	dr := math.Abs(float64(g.row(b.Y) - g.row(a.Y)))
	steps := int(math.Max(dc, dr))
	if steps == 0 {
		g.Set(a, GlyphPath)
		return
	}
	for i := 0; i <= steps; i++ {
		g.Set(a.Lerp(b, float64(i)/float64(steps)), GlyphPath)
	}
}

// Lines returns the canvas rows as plain strings
func (g Grid) Lines() []string {
	out := make([]string, len(g))
	for i, r := range g {
		out[i] = string(r)
	}
	return out
}

// Draw renders a day: the path through completed habits, every habit as a
// node and the skater on top when present.
func Draw(cols, rows int, habits []models.Habit, path []engine.Point, skater *engine.Point) Grid {
	g := NewGrid(cols, rows)
	for i := 1; i < len(path); i++ {
		g.Line(path[i-1], path[i])
	}
	for _, h := range habits {
		glyph := GlyphPending
		if h.Completed {
			glyph = GlyphDone
		}
		g.Set(engine.HabitPoint(h), glyph)
	}
	if skater != nil {
		g.Set(*skater, GlyphSkater)
	}
	return g
}

// Axis returns the hour labels aligned under a canvas of the given width
func Axis(cols int) string {
	if cols < 2 {
		cols = 2
	}
	line := []rune(strings.Repeat(" ", cols))
	labels := []string{"00:00", "06:00", "12:00", "18:00", "24:00"}
	for i, x := range gridLines {
		label := []rune(labels[i])
		start := int(math.Round(x / constants.CanvasSize * float64(cols-1)))
		if start+len(label) > cols {
			start = cols - len(label)
		}
		if start < 0 {
			continue
		}
		copy(line[start:], label)
	}
	return string(line)
}

// Model displays the timeline for one day
type Model struct {
	width  int
	height int
	habits []models.Habit
	path   []engine.Point
	skater *engine.Point
}

func New(width, height int) Model {
	return Model{width: width, height: height}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetDay replaces the habits shown and recomputes the path
func (m *Model) SetDay(habits []models.Habit) {
	m.habits = habits
	m.path = engine.BuildPath(habits)
}

// Path returns the points the skater travels through
func (m Model) Path() []engine.Point {
	return m.path
}

// SetSkater moves the skater marker; ok=false hides it
func (m *Model) SetSkater(p engine.Point, ok bool) {
	if !ok {
		m.skater = nil
		return
	}
	m.skater = &p
}

func (m Model) canvasSize() (int, int) {
	// border takes two columns and two rows, the axis one more row
	return m.width - 2, m.height - 3
}

func (m Model) View() string {
	cols, rows := m.canvasSize()
	g := Draw(cols, rows, m.habits, m.path, m.skater)

	lines := make([]string, 0, g.rows())
	for _, row := range g {
		var b strings.Builder
		for _, r := range row {
			if style, ok := glyphStyles[r]; ok {
				b.WriteString(style.Render(string(r)))
				continue
			}
			b.WriteRune(r)
		}
		lines = append(lines, b.String())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		frameStyle.Render(strings.Join(lines, "\n")),
		" "+axisStyle.Render(Axis(g.cols())),
	)
}
