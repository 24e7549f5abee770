package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/julianstephens/skateday/internal/constants"
)

var (
	// ErrInvalidTime is returned for labels that are not HH:MM or are out of range
	ErrInvalidTime = errors.New("invalid time")
	// ErrInvalidDate is returned for day ids that are not YYYY-MM-DD calendar dates
	ErrInvalidDate = errors.New("invalid date")

	timeLabelRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// DayID returns the YYYY-MM-DD id of the calendar day containing t.
func DayID(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// TimeLabel returns t as a zero-padded HH:MM label, dropping seconds.
func TimeLabel(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

// ParseTimeLabel validates an HH:MM label and returns minutes since midnight.
// Both fields must be two digits; hours run 00-23 and minutes 00-59.
func ParseTimeLabel(label string) (int, error) {
	if !timeLabelRe.MatchString(label) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, label)
	}
	hours, _ := strconv.Atoi(label[:2])
	mins, _ := strconv.Atoi(label[3:])
	if hours > 23 || mins > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidTime, label)
	}
	return hours*60 + mins, nil
}

// FormatMinutes renders minutes since midnight as an HH:MM label.
func FormatMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// MinutesToX maps minutes since midnight onto the canvas x axis.
func MinutesToX(mins int) float64 {
	return float64(mins) / constants.MinutesPerDay * constants.CanvasSize
}

// ParseDayID checks that id is a real calendar date in YYYY-MM-DD form.
func ParseDayID(id string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, id)
	}
	return t, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
