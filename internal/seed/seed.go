// Package seed holds the built-in example days and the template used to
// create a fresh day.
package seed

import (
	"math"
	"math/rand/v2"

	"github.com/julianstephens/skateday/internal/constants"
	"github.com/julianstephens/skateday/internal/models"
)

// templateHabit is a habit without its per-day offset
type templateHabit struct {
	Name      string
	TimeLabel string
	TimeMins  int
}

var template = []templateHabit{
	{Name: "Drink water", TimeLabel: "08:00", TimeMins: 8 * 60},
	{Name: "Read 10 pages", TimeLabel: "11:30", TimeMins: 11*60 + 30},
	{Name: "Stretch 5 min", TimeLabel: "15:00", TimeMins: 15 * 60},
	{Name: "Code 30 min", TimeLabel: "21:15", TimeMins: 21*60 + 15},
}

// Offset draws the vertical offset for a new habit: floor(20 + U*60).
// It is called once when a habit is created and never again.
func Offset(rng *rand.Rand) float64 {
	var u float64
	if rng == nil {
		u = rand.Float64()
	} else {
		u = rng.Float64()
	}
	return math.Floor(constants.OffsetMin + u*constants.OffsetSpan)
}

// NewDay creates a day from the default template with fresh offsets and
// nothing completed.
func NewDay(id string, rng *rand.Rand) models.Day {
	day := models.Day{ID: id, Habits: make([]models.Habit, len(template))}
	for i, t := range template {
		day.Habits[i] = models.Habit{
			ID:        i + 1,
			Name:      t.Name,
			TimeLabel: t.TimeLabel,
			TimeMins:  t.TimeMins,
			Y:         Offset(rng),
		}
	}
	return day
}

// ExampleDays returns three pre-populated days used when nothing has been
// stored yet. Offsets are fixed. Each call returns a fresh copy.
func ExampleDays() []models.Day {
	return []models.Day{
		{
			ID: "2025-11-14",
			Habits: []models.Habit{
				{ID: 1, Name: "Morning stretch", TimeLabel: "08:00", TimeMins: 8 * 60, Y: 30, Completed: true},
				{ID: 2, Name: "Read 10 pages", TimeLabel: "10:15", TimeMins: 10*60 + 15, Y: 55, Completed: true},
				{ID: 3, Name: "Skate practice", TimeLabel: "16:30", TimeMins: 16*60 + 30, Y: 70},
			},
		},
		{
			ID: "2025-11-15",
			Habits: []models.Habit{
				{ID: 1, Name: "Hydrate", TimeLabel: "09:00", TimeMins: 9 * 60, Y: 25, Completed: true},
				{ID: 2, Name: "Code 30 min", TimeLabel: "13:45", TimeMins: 13*60 + 45, Y: 60, Completed: true},
				{ID: 3, Name: "Evening walk", TimeLabel: "20:10", TimeMins: 20*60 + 10, Y: 45, Completed: true},
			},
		},
		{
			ID: "2025-11-16",
			Habits: []models.Habit{
				{ID: 1, Name: "Journal", TimeLabel: "07:30", TimeMins: 7*60 + 30, Y: 40},
				{ID: 2, Name: "Stretch 5 min", TimeLabel: "12:00", TimeMins: 12 * 60, Y: 65},
				{ID: 3, Name: "Skate clips", TimeLabel: "18:20", TimeMins: 18*60 + 20, Y: 35},
			},
		},
	}
}
