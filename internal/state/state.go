// Package state owns the in-memory collection of days and applies user
// commands to it. Apply never mutates the state it is given.
package state

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/seed"
	"github.com/julianstephens/skateday/internal/validation"
)

var (
	ErrDayNotFound   = errors.New("day not found")
	ErrHabitNotFound = errors.New("habit not found")
	ErrNoActiveDay   = errors.New("no active day")
)

// State is the application's days plus the one currently shown
type State struct {
	Days        []models.Day
	ActiveDayID string
}

// Env supplies the clock and random source used by commands. Zero values
// fall back to time.Now and the global generator.
type Env struct {
	Now  func() time.Time
	Rand *rand.Rand
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Command is a state transition requested by the user
type Command interface {
	apply(s State, env Env) (State, error)
}

// AddHabit appends a habit to the active day. An empty Time means now.
type AddHabit struct {
	Name string
	Time string
}

// ToggleHabit flips the completion flag of a habit on the active day
type ToggleHabit struct {
	ID int
}

// SelectDay switches the active day
type SelectDay struct {
	ID string
}

// ImportDays upserts days by id. Each imported day replaces the stored
// day's habits entirely; days not named in the import are left alone.
type ImportDays struct {
	Days []models.Day
}

// EnsureDay creates the day from the default template if it is missing
type EnsureDay struct {
	ID string
}

// Apply runs cmd against s and returns the resulting state. On error the
// returned state is s unchanged.
func Apply(s State, cmd Command, env Env) (State, error) {
	next, err := cmd.apply(s, env)
	if err != nil {
		return s, err
	}
	return next, nil
}

// Restore builds the starting state from whatever the store returned. A load
// error or an empty result falls back to the example days. Today is created
// if missing and becomes the active day.
func Restore(days []models.Day, loadErr error, today string, rng *rand.Rand) State {
	var s State
	if loadErr != nil || len(days) == 0 {
		s.Days = seed.ExampleDays()
	} else {
		s.Days = cloneDays(days)
	}
	s, _ = EnsureDay{ID: today}.apply(s, Env{Rand: rng})
	s.ActiveDayID = today
	return s
}

// ActiveDay returns the day currently shown, falling back to the first day
// when the active id is unknown.
func (s State) ActiveDay() (models.Day, bool) {
	if d, ok := s.Day(s.ActiveDayID); ok {
		return d, true
	}
	if len(s.Days) > 0 {
		return s.Days[0], true
	}
	return models.Day{}, false
}

// Day looks up a day by id
func (s State) Day(id string) (models.Day, bool) {
	if i := s.index(id); i >= 0 {
		return s.Days[i], true
	}
	return models.Day{}, false
}

// DayIDs returns the ids of all days in display order
func (s State) DayIDs() []string {
	ids := make([]string, len(s.Days))
	for i, d := range s.Days {
		ids[i] = d.ID
	}
	return ids
}

func (s State) index(id string) int {
	for i, d := range s.Days {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func (s State) activeIndex() int {
	if i := s.index(s.ActiveDayID); i >= 0 {
		return i
	}
	if len(s.Days) > 0 {
		return 0
	}
	return -1
}

// withDay returns a copy of s whose day at i is replaced by day
func (s State) withDay(i int, day models.Day) State {
	days := make([]models.Day, len(s.Days))
	copy(days, s.Days)
	days[i] = day
	return State{Days: days, ActiveDayID: s.ActiveDayID}
}

func (c AddHabit) apply(s State, env Env) (State, error) {
	i := s.activeIndex()
	if i < 0 {
		return s, ErrNoActiveDay
	}
	name, err := validation.HabitName(c.Name)
	if err != nil {
		return s, err
	}
	label, mins, err := validation.HabitTime(c.Time, env.now())
	if err != nil {
		return s, err
	}

	day := s.Days[i].Clone()
	day.Habits = append(day.Habits, models.Habit{
		ID:        day.NextHabitID(),
		Name:      name,
		TimeLabel: label,
		TimeMins:  mins,
		Y:         seed.Offset(env.Rand),
	})
	return s.withDay(i, day), nil
}

func (c ToggleHabit) apply(s State, _ Env) (State, error) {
	i := s.activeIndex()
	if i < 0 {
		return s, ErrNoActiveDay
	}
	day := s.Days[i].Clone()
	for j := range day.Habits {
		if day.Habits[j].ID == c.ID {
			day.Habits[j].Completed = !day.Habits[j].Completed
			return s.withDay(i, day), nil
		}
	}
	return s, fmt.Errorf("%w: %d on %s", ErrHabitNotFound, c.ID, day.ID)
}

func (c SelectDay) apply(s State, _ Env) (State, error) {
	if s.index(c.ID) < 0 {
		return s, fmt.Errorf("%w: %s", ErrDayNotFound, c.ID)
	}
	return State{Days: s.Days, ActiveDayID: c.ID}, nil
}

func (c ImportDays) apply(s State, _ Env) (State, error) {
	days := cloneDays(s.Days)
	for _, in := range c.Days {
		day := in.Clone()
		if i := (State{Days: days}).index(day.ID); i >= 0 {
			days[i] = day
			continue
		}
		days = append(days, day)
	}
	models.SortDays(days)
	return State{Days: days, ActiveDayID: s.ActiveDayID}, nil
}

func (c EnsureDay) apply(s State, env Env) (State, error) {
	if s.index(c.ID) >= 0 {
		return s, nil
	}
	days := make([]models.Day, len(s.Days), len(s.Days)+1)
	copy(days, s.Days)
	days = append(days, seed.NewDay(c.ID, env.Rand))
	models.SortDays(days)
	return State{Days: days, ActiveDayID: s.ActiveDayID}, nil
}

func cloneDays(days []models.Day) []models.Day {
	out := make([]models.Day, len(days))
	for i, d := range days {
		out[i] = d.Clone()
	}
	return out
}
