package days

import (
	"errors"
	"fmt"

	"github.com/julianstephens/skateday/internal/cli"
	"github.com/julianstephens/skateday/internal/constants"
	errs "github.com/julianstephens/skateday/internal/errors"
	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/storage"
	"github.com/julianstephens/skateday/internal/utils"
)

type DayCmd struct {
	List DayListCmd `cmd:"" help:"List stored days." default:"1"`
	Show DayShowCmd `cmd:"" help:"Show the habits of one day."`
}

type DayListCmd struct{}

func (c *DayListCmd) Run(ctx *cli.Context) error {
	days, err := ctx.Store.GetDays(constants.LocalUserID)
	if err != nil {
		return fmt.Errorf("failed to load days: %w", err)
	}
	if len(days) == 0 {
		ctx.Println("No days yet. Run 'skateday habit add' or open the TUI.")
		return nil
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}

	for _, d := range days {
		marker := ""
		if d.ID == today {
			marker = " (Today)"
		}
		ctx.Printf("  %s%s  %d/%d done\n", d.ID, marker, d.CompletedCount(), len(d.Habits))
	}
	return nil
}

type DayShowCmd struct {
	Date string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD). Defaults to today."`
}

func (c *DayShowCmd) Run(ctx *cli.Context) error {
	id, err := resolveDate(ctx, c.Date)
	if err != nil {
		return err
	}

	day, err := ctx.Store.GetDay(constants.LocalUserID, id)
	if errors.Is(err, storage.ErrNotFound) {
		return errs.WithHint(fmt.Errorf("no habits recorded for %s", id), "add one with 'skateday habit add --date "+id+" <name>'")
	}
	if err != nil {
		return fmt.Errorf("failed to load day: %w", err)
	}

	printDay(ctx, day)
	return nil
}

func printDay(ctx *cli.Context, day models.Day) {
	ctx.Printf("%s  (%d/%d done)\n\n", day.ID, day.CompletedCount(), len(day.Habits))
	if len(day.Habits) == 0 {
		ctx.Println("  No habits.")
		return
	}
	for _, h := range day.HabitsByTime() {
		check := " "
		if h.Completed {
			check = "x"
		}
		ctx.Printf("  [%s] %s  #%-3d %s\n", check, h.TimeLabel, h.ID, h.Name)
	}
}

// resolveDate validates an explicit day id or falls back to today
func resolveDate(ctx *cli.Context, date string) (string, error) {
	if date == "" {
		return ctx.Today()
	}
	if _, err := utils.ParseDayID(date); err != nil {
		return "", err
	}
	return date, nil
}
