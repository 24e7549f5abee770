package models

import "sort"

// Habit is a named, timed task that can be completed within a Day
type Habit struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	TimeLabel string  `json:"timeLabel"` // HH:MM format
	TimeMins  int     `json:"timeMins"`  // minutes since midnight
	Y         float64 `json:"y"`         // vertical offset, assigned once at creation
	Completed bool    `json:"completed"`
}

// Day is a dated collection of habits
type Day struct {
	ID     string  `json:"id"` // YYYY-MM-DD format
	Habits []Habit `json:"habits"`
}

// Clone returns a deep copy of the day so callers can mutate it freely
func (d Day) Clone() Day {
	out := Day{ID: d.ID, Habits: make([]Habit, len(d.Habits))}
	copy(out.Habits, d.Habits)
	return out
}

// NextHabitID returns max(existing ids)+1, or 1 for an empty day
func (d Day) NextHabitID() int {
	next := 1
	for _, h := range d.Habits {
		if h.ID >= next {
			next = h.ID + 1
		}
	}
	return next
}

// HabitsByTime returns the habits ordered by time of day. Insertion order is
// kept for habits sharing the same minute.
func (d Day) HabitsByTime() []Habit {
	out := make([]Habit, len(d.Habits))
	copy(out, d.Habits)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeMins < out[j].TimeMins
	})
	return out
}

// CompletedCount returns the number of completed habits in the day
func (d Day) CompletedCount() int {
	n := 0
	for _, h := range d.Habits {
		if h.Completed {
			n++
		}
	}
	return n
}

// SortDays orders days by id, which for YYYY-MM-DD ids is chronological
func SortDays(days []Day) {
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].ID < days[j].ID
	})
}
