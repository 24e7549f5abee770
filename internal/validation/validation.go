package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/skateday/internal/constants"
	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/utils"
)

// Form errors returned by HabitName and HabitTime
var (
	ErrNameEmpty   = errors.New("habit name is empty")
	ErrNameTooLong = errors.New("habit name is longer than 50 characters")
	ErrNameChars   = errors.New("habit name contains disallowed characters")
	ErrTimeInvalid = errors.New("habit time is not a valid HH:MM time")
)

var formMessages = map[error]string{
	ErrNameEmpty:   "Habit name can't be empty.",
	ErrNameTooLong: "Max 50 characters.",
	ErrNameChars:   "Use only letters, numbers, spaces, and simple punctuation.",
	ErrTimeInvalid: "Please choose a valid time.",
}

// FormMessage returns the inline message shown under the add-habit form.
func FormMessage(err error) string {
	if err == nil {
		return ""
	}
	for target, msg := range formMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return err.Error()
}

var habitNameRe = regexp.MustCompile(constants.HabitNamePattern)

// ConflictType represents the type of integrity problem found in stored data
type ConflictType string

const (
	ConflictInvalidDayID      ConflictType = "invalid_day_id"
	ConflictDuplicateDay      ConflictType = "duplicate_day"
	ConflictDuplicateHabitID  ConflictType = "duplicate_habit_id"
	ConflictInvalidHabitName  ConflictType = "invalid_habit_name"
	ConflictInvalidTime       ConflictType = "invalid_time"
	ConflictTimeMismatch      ConflictType = "time_mismatch"
	ConflictOffsetOutOfBounds ConflictType = "offset_out_of_bounds"
)

// Conflict represents a detected problem in a day or one of its habits
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string // YYYY-MM-DD format (if applicable)
	HabitIDs    []int  // IDs of habits involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// HabitName trims name and checks it against the allow-list.
func HabitName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrNameEmpty
	}
	if len(trimmed) > constants.MaxHabitNameLen {
		return "", ErrNameTooLong
	}
	if !habitNameRe.MatchString(trimmed) {
		return "", ErrNameChars
	}
	return trimmed, nil
}

// HabitTime resolves the time field of the add-habit form. A blank input
// means "now", truncated to the minute.
func HabitTime(input string, now time.Time) (string, int, error) {
	label := strings.TrimSpace(input)
	if label == "" {
		label = utils.TimeLabel(now)
	}
	mins, err := utils.ParseTimeLabel(label)
	if err != nil {
		return "", 0, ErrTimeInvalid
	}
	return label, mins, nil
}

// Validator checks stored days for integrity problems
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateDays checks every day and habit. Problems are collected rather than
// failing fast so that doctor can report all of them at once.
func (v *Validator) ValidateDays(days []models.Day) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[string]int)
	for _, day := range days {
		seen[day.ID]++
	}
	dupDays := make([]string, 0)
	for id, n := range seen {
		if n > 1 {
			dupDays = append(dupDays, id)
		}
	}
	sort.Strings(dupDays)
	for _, id := range dupDays {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateDay,
			Description: fmt.Sprintf("Day %s appears %d times", id, seen[id]),
			Date:        id,
		})
	}

	for _, day := range days {
		result.Conflicts = append(result.Conflicts, v.ValidateDay(day).Conflicts...)
	}
	return result
}

// ValidateDay checks a single day and its habits
func (v *Validator) ValidateDay(day models.Day) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if _, err := utils.ParseDayID(day.ID); err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDayID,
			Description: fmt.Sprintf("Day id %q is not a YYYY-MM-DD date", day.ID),
			Date:        day.ID,
		})
	}

	ids := make(map[int]int)
	for _, h := range day.Habits {
		ids[h.ID]++

		if _, err := HabitName(h.Name); err != nil || strings.TrimSpace(h.Name) != h.Name {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidHabitName,
				Description: fmt.Sprintf("Day %s habit %d has an invalid name %q", day.ID, h.ID, h.Name),
				Date:        day.ID,
				HabitIDs:    []int{h.ID},
			})
		}

		mins, err := utils.ParseTimeLabel(h.TimeLabel)
		switch {
		case err != nil:
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Day %s habit %d has an invalid time label %q", day.ID, h.ID, h.TimeLabel),
				Date:        day.ID,
				HabitIDs:    []int{h.ID},
			})
		case mins != h.TimeMins:
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictTimeMismatch,
				Description: fmt.Sprintf("Day %s habit %d: label %s is %d minutes, stored %d", day.ID, h.ID, h.TimeLabel, mins, h.TimeMins),
				Date:        day.ID,
				HabitIDs:    []int{h.ID},
			})
		}

		if h.Y < 0 || h.Y > constants.CanvasSize {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOffsetOutOfBounds,
				Description: fmt.Sprintf("Day %s habit %d has offset %.2f outside [0,100]", day.ID, h.ID, h.Y),
				Date:        day.ID,
				HabitIDs:    []int{h.ID},
			})
		}
	}

	dupIDs := make([]int, 0)
	for id, n := range ids {
		if n > 1 {
			dupIDs = append(dupIDs, id)
		}
	}
	sort.Ints(dupIDs)
	for _, id := range dupIDs {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateHabitID,
			Description: fmt.Sprintf("Day %s has %d habits with id %d", day.ID, ids[id], id),
			Date:        day.ID,
			HabitIDs:    []int{id},
		})
	}

	return result
}
