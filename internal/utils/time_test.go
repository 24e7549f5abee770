package utils

import (
	"errors"
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone Europe/London", timezone: "Europe/London", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestParseTimeLabel(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		want    int
		wantErr bool
	}{
		{name: "midnight", label: "00:00", want: 0},
		{name: "morning", label: "08:00", want: 480},
		{name: "quarter past ten", label: "10:15", want: 615},
		{name: "last minute", label: "23:59", want: 1439},
		{name: "single digit hour", label: "8:00", wantErr: true},
		{name: "hour out of range", label: "24:00", wantErr: true},
		{name: "minute out of range", label: "12:60", wantErr: true},
		{name: "seconds included", label: "12:00:00", wantErr: true},
		{name: "empty", label: "", wantErr: true},
		{name: "letters", label: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeLabel(tt.label)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeLabel(%q) error = %v, wantErr %v", tt.label, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTime) {
					t.Errorf("ParseTimeLabel(%q) error = %v, want ErrInvalidTime", tt.label, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseTimeLabel(%q) = %d, want %d", tt.label, got, tt.want)
			}
		})
	}
}

func TestFormatMinutesRoundTrip(t *testing.T) {
	for mins := 0; mins < 24*60; mins += 7 {
		label := FormatMinutes(mins)
		got, err := ParseTimeLabel(label)
		if err != nil {
			t.Fatalf("ParseTimeLabel(%q) failed: %v", label, err)
		}
		if got != mins {
			t.Errorf("round trip of %d via %q = %d", mins, label, got)
		}
	}
}

func TestTimeLabelTruncatesSeconds(t *testing.T) {
	now := time.Date(2025, 11, 14, 9, 5, 59, 999, time.UTC)
	if got := TimeLabel(now); got != "09:05" {
		t.Errorf("TimeLabel() = %q, want %q", got, "09:05")
	}
	if got := DayID(now); got != "2025-11-14" {
		t.Errorf("DayID() = %q, want %q", got, "2025-11-14")
	}
}

func TestMinutesToX(t *testing.T) {
	if got := MinutesToX(0); got != 0 {
		t.Errorf("MinutesToX(0) = %v, want 0", got)
	}
	if got := MinutesToX(720); got != 50 {
		t.Errorf("MinutesToX(720) = %v, want 50", got)
	}
}

func TestParseDayID(t *testing.T) {
	if _, err := ParseDayID("2025-11-14"); err != nil {
		t.Errorf("ParseDayID() unexpected error: %v", err)
	}
	for _, bad := range []string{"", "2025-13-01", "2025-02-30", "14-11-2025", "2025/11/14"} {
		if _, err := ParseDayID(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDayID(%q) error = %v, want ErrInvalidDate", bad, err)
		}
	}
}
