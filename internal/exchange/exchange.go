// Package exchange reads and writes the JSON form of days used by import,
// export and the sync endpoint.
package exchange

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/julianstephens/skateday/internal/constants"
	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/utils"
	"github.com/julianstephens/skateday/internal/validation"
)

// ErrMalformed is returned for payloads that cannot be imported
var ErrMalformed = errors.New("malformed days payload")

//go:embed schema.json
var schemaJSON string

var daysSchema = jsonschema.MustCompileString("days.json", schemaJSON)

// wireHabit mirrors models.Habit with optional fields
type wireHabit struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	TimeLabel *string  `json:"timeLabel"`
	TimeMins  *int     `json:"timeMins"`
	Y         *float64 `json:"y"`
	Completed *bool    `json:"completed"`
}

type wireDay struct {
	ID     string      `json:"id"`
	Habits []wireHabit `json:"habits"`
}

// Parse decodes a single day object or an array of days. Missing optional
// habit fields are filled in: the label and minutes from each other, or
// "00:00" when both are absent, an offset of 50 and not completed. Any
// problem rejects the whole payload.
func Parse(data []byte) ([]models.Day, error) {
	return parse(data, false)
}

// ParseSync is Parse for the sync endpoint: a habit repeating an id already
// seen in the same day is dropped instead of rejecting the payload, and a
// repeated day replaces the earlier one.
func ParseSync(data []byte) ([]models.Day, error) {
	return parse(data, true)
}

func parse(data []byte, lenient bool) ([]models.Day, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	if trimmed[0] == '{' {
		trimmed = append(append([]byte{'['}, trimmed...), ']')
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrMalformed)
	}

	if err := daysSchema.Validate(doc); err != nil {
		var problems []string
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			collectSchemaErrors(&problems, ve)
		} else {
			problems = append(problems, err.Error())
		}
		return nil, fmt.Errorf("%w: %s", ErrMalformed, strings.Join(problems, "; "))
	}

	var wire []wireDay
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	days := make([]models.Day, 0, len(wire))
	for _, wd := range wire {
		day := models.Day{ID: wd.ID, Habits: make([]models.Habit, 0, len(wd.Habits))}
		for _, wh := range wd.Habits {
			h, err := normalize(wh)
			if err != nil {
				return nil, fmt.Errorf("%w: day %s habit %d: %v", ErrMalformed, wd.ID, wh.ID, err)
			}
			day.Habits = append(day.Habits, h)
		}
		days = append(days, day)
	}
	if lenient {
		days = dedupe(days)
	}

	result := validation.New().ValidateDays(days)
	if result.HasConflicts() {
		descs := make([]string, len(result.Conflicts))
		for i, c := range result.Conflicts {
			descs[i] = c.Description
		}
		return nil, fmt.Errorf("%w: %s", ErrMalformed, strings.Join(descs, "; "))
	}
	return days, nil
}

// dedupe keeps the last copy of each day and the first habit per id
func dedupe(days []models.Day) []models.Day {
	index := make(map[string]int, len(days))
	out := make([]models.Day, 0, len(days))
	for _, day := range days {
		seen := make(map[int]bool, len(day.Habits))
		kept := day.Habits[:0]
		for _, h := range day.Habits {
			if seen[h.ID] {
				continue
			}
			seen[h.ID] = true
			kept = append(kept, h)
		}
		day.Habits = kept

		if i, ok := index[day.ID]; ok {
			out[i] = day
			continue
		}
		index[day.ID] = len(out)
		out = append(out, day)
	}
	return out
}

func normalize(wh wireHabit) (models.Habit, error) {
	h := models.Habit{ID: wh.ID, Name: wh.Name, Y: constants.DefaultOffset}
	if wh.Y != nil {
		h.Y = *wh.Y
	}
	if wh.Completed != nil {
		h.Completed = *wh.Completed
	}

	switch {
	case wh.TimeLabel != nil:
		mins, err := utils.ParseTimeLabel(*wh.TimeLabel)
		if err != nil {
			return h, err
		}
		if wh.TimeMins != nil && *wh.TimeMins != mins {
			return h, fmt.Errorf("timeMins %d does not match timeLabel %s", *wh.TimeMins, *wh.TimeLabel)
		}
		h.TimeLabel, h.TimeMins = *wh.TimeLabel, mins
	case wh.TimeMins != nil:
		h.TimeLabel, h.TimeMins = utils.FormatMinutes(*wh.TimeMins), *wh.TimeMins
	default:
		h.TimeLabel, h.TimeMins = "00:00", 0
	}
	return h, nil
}

func collectSchemaErrors(problems *[]string, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*problems = append(*problems, fmt.Sprintf("%s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(problems, cause)
	}
}

// Export renders days as indented JSON ordered by day id.
func Export(days []models.Day) ([]byte, error) {
	out := make([]models.Day, len(days))
	for i, d := range days {
		out[i] = d.Clone()
		if out[i].Habits == nil {
			out[i].Habits = []models.Habit{}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return json.MarshalIndent(out, "", "  ")
}

// ExportDay renders a single day as indented JSON.
func ExportDay(day models.Day) ([]byte, error) {
	d := day.Clone()
	if d.Habits == nil {
		d.Habits = []models.Habit{}
	}
	return json.MarshalIndent(d, "", "  ")
}
