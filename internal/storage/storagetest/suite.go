// Package storagetest holds behaviour checks shared by every storage.Provider.
package storagetest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/storage"
)

// Run exercises a freshly initialised provider. newStore must return a
// provider on which Init has already succeeded.
func Run(t *testing.T, newStore func(t *testing.T) storage.Provider) {
	t.Helper()

	t.Run("EmptyStore", func(t *testing.T) {
		s := newStore(t)
		days, err := s.GetDays(0)
		if err != nil {
			t.Fatalf("GetDays() error: %v", err)
		}
		if len(days) != 0 {
			t.Errorf("GetDays() on a new store = %v, want none", days)
		}
		if _, err := s.GetDay(0, "2025-11-14"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetDay() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ReplaceDaysRoundTrip", func(t *testing.T) {
		s := newStore(t)
		in := []models.Day{
			{ID: "2025-11-15", Habits: []models.Habit{
				{ID: 1, Name: "Hydrate", TimeLabel: "09:00", TimeMins: 540, Y: 25, Completed: true},
				{ID: 2, Name: "Code 30 min", TimeLabel: "13:45", TimeMins: 825, Y: 60.5},
			}},
			{ID: "2025-11-14", Habits: []models.Habit{}},
		}
		if err := s.ReplaceDays(0, in); err != nil {
			t.Fatalf("ReplaceDays() error: %v", err)
		}

		got, err := s.GetDays(0)
		if err != nil {
			t.Fatalf("GetDays() error: %v", err)
		}
		want := []models.Day{in[1], in[0]}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("GetDays() = %+v, want %+v", got, want)
		}

		day, err := s.GetDay(0, "2025-11-15")
		if err != nil {
			t.Fatalf("GetDay() error: %v", err)
		}
		if !reflect.DeepEqual(day, in[0]) {
			t.Errorf("GetDay() = %+v, want %+v", day, in[0])
		}
	})

	t.Run("ReplaceDaysReplacesHabitsAndKeepsOthers", func(t *testing.T) {
		s := newStore(t)
		first := []models.Day{
			{ID: "2025-11-14", Habits: []models.Habit{{ID: 1, Name: "A", TimeLabel: "01:00", TimeMins: 60, Y: 20}}},
			{ID: "2025-11-15", Habits: []models.Habit{{ID: 1, Name: "B", TimeLabel: "02:00", TimeMins: 120, Y: 30}}},
		}
		if err := s.ReplaceDays(0, first); err != nil {
			t.Fatalf("ReplaceDays() error: %v", err)
		}

		second := []models.Day{
			{ID: "2025-11-14", Habits: []models.Habit{
				{ID: 3, Name: "C", TimeLabel: "03:00", TimeMins: 180, Y: 40},
				{ID: 3, Name: "dup", TimeLabel: "04:00", TimeMins: 240, Y: 40},
			}},
		}
		if err := s.ReplaceDays(0, second); err != nil {
			t.Fatalf("ReplaceDays() error: %v", err)
		}

		day, _ := s.GetDay(0, "2025-11-14")
		if len(day.Habits) != 1 || day.Habits[0].Name != "C" {
			t.Errorf("habits not replaced or duplicate kept: %+v", day.Habits)
		}
		other, _ := s.GetDay(0, "2025-11-15")
		if len(other.Habits) != 1 || other.Habits[0].Name != "B" {
			t.Errorf("unrelated day changed: %+v", other.Habits)
		}
	})

	t.Run("DaysAreScopedByUser", func(t *testing.T) {
		s := newStore(t)
		if err := s.ReplaceDays(7, []models.Day{{ID: "2025-11-14", Habits: []models.Habit{}}}); err != nil {
			t.Fatalf("ReplaceDays() error: %v", err)
		}
		days, err := s.GetDays(0)
		if err != nil {
			t.Fatal(err)
		}
		if len(days) != 0 {
			t.Errorf("user 0 sees user 7's days: %v", days)
		}
	})

	t.Run("Users", func(t *testing.T) {
		s := newStore(t)
		u, err := s.CreateUser(models.User{Name: "Ada", Email: "Ada@Example.com", PasswordHash: "hash"})
		if err != nil {
			t.Fatalf("CreateUser() error: %v", err)
		}
		if u.ID == 0 || u.Email != "ada@example.com" {
			t.Errorf("CreateUser() = %+v", u)
		}

		if _, err := s.CreateUser(models.User{Email: "ada@example.com", PasswordHash: "x"}); !errors.Is(err, storage.ErrUserExists) {
			t.Errorf("duplicate CreateUser() error = %v, want ErrUserExists", err)
		}

		got, err := s.GetUserByEmail("ADA@example.com ")
		if err != nil {
			t.Fatalf("GetUserByEmail() error: %v", err)
		}
		if got.ID != u.ID || got.PasswordHash != "hash" || got.Name != "Ada" {
			t.Errorf("GetUserByEmail() = %+v", got)
		}

		if _, err := s.GetUserByEmail("nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetUserByEmail() error = %v, want ErrNotFound", err)
		}
	})
}
