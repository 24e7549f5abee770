// Package engine turns a day's completed habits into a path on the timeline
// canvas and moves the skater along it.
package engine

import (
	"math"
	"sort"

	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/utils"
)

// Point is a position on the normalized 100x100 canvas. X encodes time of
// day and Y is the habit's vertical offset.
type Point struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Lerp returns the point a fraction t of the way from p to q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// HabitPoint maps a habit onto the canvas.
func HabitPoint(h models.Habit) Point {
	return Point{X: utils.MinutesToX(h.TimeMins), Y: h.Y}
}

// BuildPath returns one point per completed habit, ordered by time of day.
// Habits sharing a minute keep their input order. The input is not modified.
func BuildPath(habits []models.Habit) []Point {
	done := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if h.Completed {
			done = append(done, h)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		return done[i].TimeMins < done[j].TimeMins
	})

	points := make([]Point, len(done))
	for i, h := range done {
		points[i] = HabitPoint(h)
	}
	return points
}
