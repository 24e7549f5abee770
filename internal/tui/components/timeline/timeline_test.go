package timeline

import (
	"strings"
	"testing"

	"github.com/julianstephens/skateday/internal/engine"
	"github.com/julianstephens/skateday/internal/models"
)

func TestNewGridDrawsHourGuides(t *testing.T) {
	g := NewGrid(101, 5)
	for _, x := range []int{0, 25, 50, 75, 100} {
		if g[2][x] != GlyphGrid {
			t.Errorf("column %d = %q, want grid guide", x, g[2][x])
		}
	}
	if g[2][10] != GlyphEmpty {
		t.Errorf("column 10 = %q, want empty", g[2][10])
	}
}

func TestNewGridMinimumSize(t *testing.T) {
	g := NewGrid(0, -3)
	if g.rows() != 2 || g.cols() != 2 {
		t.Errorf("grid size = %dx%d, want 2x2", g.cols(), g.rows())
	}
}

func TestDrawDiagonal(t *testing.T) {
	path := []engine.Point{{X: 0, Y: 0}, {X: 100, Y: 100}}
	g := Draw(11, 11, nil, path, nil)

	for i := 1; i < 10; i++ {
		if g[i][i] != GlyphPath {
			t.Errorf("cell (%d,%d) = %q, want path", i, i, g[i][i])
		}
	}
	if g[0][10] == GlyphPath || g[10][0] == GlyphPath {
		t.Error("path leaked off the diagonal")
	}
}

func TestDrawLayersNodesAndSkater(t *testing.T) {
	habits := []models.Habit{
		{ID: 1, TimeMins: 480, Y: 30, Completed: true},
		{ID: 2, TimeMins: 615, Y: 55, Completed: true},
		{ID: 3, TimeMins: 990, Y: 70},
	}
	path := engine.BuildPath(habits)
	start := path[0]

	g := Draw(97, 21, habits, path, &start)

	if got := g.At(path[1]); got != GlyphDone {
		t.Errorf("completed node = %q, want %q", got, GlyphDone)
	}
	if got := g.At(engine.HabitPoint(habits[2])); got != GlyphPending {
		t.Errorf("pending node = %q, want %q", got, GlyphPending)
	}
	if got := g.At(start); got != GlyphSkater {
		t.Errorf("skater cell = %q, want %q", got, GlyphSkater)
	}
}

func TestDrawEmptyDay(t *testing.T) {
	g := Draw(20, 6, nil, nil, nil)
	for _, line := range g.Lines() {
		if strings.ContainsAny(line, string([]rune{GlyphPath, GlyphDone, GlyphPending, GlyphSkater})) {
			t.Errorf("empty day drew %q", line)
		}
	}
}

func TestAxis(t *testing.T) {
	axis := Axis(41)
	if len([]rune(axis)) != 41 {
		t.Fatalf("axis width = %d, want 41", len([]rune(axis)))
	}
	if !strings.HasPrefix(axis, "00:00") || !strings.HasSuffix(axis, "24:00") {
		t.Errorf("axis = %q", axis)
	}
	if !strings.Contains(axis, "12:00") {
		t.Errorf("axis missing noon: %q", axis)
	}
}

func TestModelView(t *testing.T) {
	m := New(40, 12)
	m.SetDay([]models.Habit{
		{ID: 1, TimeMins: 480, Y: 30, Completed: true},
		{ID: 2, TimeMins: 615, Y: 55, Completed: true},
	})
	if len(m.Path()) != 2 {
		t.Fatalf("path = %v", m.Path())
	}
	m.SetSkater(m.Path()[0], true)

	view := m.View()
	if !strings.Contains(view, string(GlyphSkater)) {
		t.Error("view is missing the skater")
	}
	m.SetSkater(engine.Point{}, false)
	if strings.Contains(m.View(), string(GlyphSkater)) {
		t.Error("hidden skater still drawn")
	}
}
