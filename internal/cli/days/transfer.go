package days

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/skateday/internal/cli"
	"github.com/julianstephens/skateday/internal/constants"
	"github.com/julianstephens/skateday/internal/exchange"
	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/state"
)

type ExportCmd struct {
	Date   string `short:"d" help:"Export only this day (YYYY-MM-DD)."`
	Output string `short:"o" help:"Write to a file instead of stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	var (
		data []byte
		err  error
	)
	if c.Date != "" {
		day, gerr := ctx.Store.GetDay(constants.LocalUserID, c.Date)
		if gerr != nil {
			return fmt.Errorf("failed to load %s: %w", c.Date, gerr)
		}
		data, err = exchange.ExportDay(day)
	} else {
		days, gerr := ctx.Store.GetDays(constants.LocalUserID)
		if gerr != nil {
			return fmt.Errorf("failed to load days: %w", gerr)
		}
		data, err = exchange.Export(days)
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if c.Output == "" {
		_, err = ctx.Stdout().Write(data)
		return err
	}
	if err := os.WriteFile(c.Output, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Output, err)
	}
	ctx.Printf("✓ Exported to %s\n", c.Output)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"JSON file holding a day or an array of days, or - for stdin."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	var (
		data []byte
		err  error
	)
	if c.File == "-" {
		data, err = io.ReadAll(ctx.Stdin())
	} else {
		data, err = os.ReadFile(c.File)
	}
	if err != nil {
		return fmt.Errorf("failed to read import: %w", err)
	}

	imported, err := exchange.Parse(data)
	if err != nil {
		return err
	}

	stored, err := ctx.Store.GetDays(constants.LocalUserID)
	if err != nil {
		return fmt.Errorf("failed to load days: %w", err)
	}
	next, err := state.Apply(state.State{Days: stored}, state.ImportDays{Days: imported}, state.Env{})
	if err != nil {
		return err
	}

	changed := make(map[string]bool, len(imported))
	for _, d := range imported {
		changed[d.ID] = true
	}
	toSave := make([]models.Day, 0, len(changed))
	for _, d := range next.Days {
		if changed[d.ID] {
			toSave = append(toSave, d)
		}
	}
	if err := ctx.Store.ReplaceDays(constants.LocalUserID, toSave); err != nil {
		return fmt.Errorf("failed to save import: %w", err)
	}

	ctx.Printf("✓ Imported %d day(s)\n", len(toSave))
	return nil
}
