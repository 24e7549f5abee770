package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/skateday/internal/exchange"
	"github.com/julianstephens/skateday/internal/validation"
)

const importInvalidMessage = "Invalid JSON in textbox."

// NewHabitForm asks for a habit name and an optional HH:MM time
func (m Model) NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				CharLimit(80).
				Value(&fm.Name).
				Validate(func(s string) error {
					if _, err := validation.HabitName(s); err != nil {
						return errors.New(validation.FormMessage(err))
					}
					return nil
				}),
			huh.NewInput().
				Title("Time").
				Description("HH:MM, leave blank for now").
				Placeholder("08:00").
				Value(&fm.Time).
				Validate(func(s string) error {
					if _, _, err := validation.HabitTime(s, m.env.Now()); err != nil {
						return errors.New(validation.FormMessage(err))
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewImportForm takes a JSON day or array of days
func NewImportForm(fm *ImportFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Import JSON").
				Description("One day or an array of days. Imported days replace their habits.").
				Lines(12).
				CharLimit(0).
				Value(&fm.JSON).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New(importInvalidMessage)
					}
					if _, err := exchange.Parse([]byte(s)); err != nil {
						return errors.New(importInvalidMessage)
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
