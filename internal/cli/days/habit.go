package days

import (
	"fmt"
	"time"

	"github.com/julianstephens/skateday/internal/cli"
	"github.com/julianstephens/skateday/internal/constants"
	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/state"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a habit to a day."`
	Toggle HabitToggleCmd `cmd:"" help:"Mark a habit done or not done."`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name (letters, numbers, spaces and simple punctuation)."`
	Time string `short:"t" help:"Time as HH:MM. Defaults to now."`
	Date string `short:"d" help:"Day (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	st, env, err := loadDay(ctx, c.Date)
	if err != nil {
		return err
	}

	next, err := state.Apply(st, state.AddHabit{Name: c.Name, Time: c.Time}, env)
	if err != nil {
		return err
	}
	day, err := saveActive(ctx, next)
	if err != nil {
		return err
	}

	added := day.Habits[len(day.Habits)-1]
	ctx.Printf("✓ Added habit #%d on %s: %s at %s\n", added.ID, day.ID, added.Name, added.TimeLabel)
	return nil
}

type HabitToggleCmd struct {
	ID   int    `arg:"" help:"Habit id as shown by 'skateday day show'."`
	Date string `short:"d" help:"Day (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	st, env, err := loadDay(ctx, c.Date)
	if err != nil {
		return err
	}

	next, err := state.Apply(st, state.ToggleHabit{ID: c.ID}, env)
	if err != nil {
		return err
	}
	day, err := saveActive(ctx, next)
	if err != nil {
		return err
	}

	for _, h := range day.Habits {
		if h.ID == c.ID {
			status := "not done"
			if h.Completed {
				status = "done"
			}
			ctx.Printf("✓ %s marked %s\n", h.Name, status)
		}
	}
	return nil
}

// loadDay builds a state holding the stored days with the requested day
// active, creating it from the default template when missing
func loadDay(ctx *cli.Context, date string) (state.State, state.Env, error) {
	id, err := resolveDate(ctx, date)
	if err != nil {
		return state.State{}, state.Env{}, err
	}

	// Today already parsed the timezone, so Now cannot fail here
	env := state.Env{Now: func() time.Time {
		now, _ := ctx.Now()
		return now
	}}

	stored, err := ctx.Store.GetDays(constants.LocalUserID)
	if err != nil {
		return state.State{}, state.Env{}, fmt.Errorf("failed to load days: %w", err)
	}

	st, err := state.Apply(state.State{Days: stored}, state.EnsureDay{ID: id}, env)
	if err != nil {
		return state.State{}, state.Env{}, err
	}
	st, err = state.Apply(st, state.SelectDay{ID: id}, env)
	return st, env, err
}

func saveActive(ctx *cli.Context, st state.State) (models.Day, error) {
	day, ok := st.ActiveDay()
	if !ok {
		return models.Day{}, state.ErrNoActiveDay
	}
	if err := ctx.Store.ReplaceDays(constants.LocalUserID, []models.Day{day}); err != nil {
		return models.Day{}, fmt.Errorf("failed to save %s: %w", day.ID, err)
	}
	return day, nil
}
