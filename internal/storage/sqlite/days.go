package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/storage"
)

func (s *Store) GetDays(userID int64) ([]models.Day, error) {
	rows, err := s.db.Query(`SELECT id FROM days WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	days := make([]models.Day, 0, len(ids))
	for _, id := range ids {
		habits, err := s.habitsFor(userID, id)
		if err != nil {
			return nil, err
		}
		days = append(days, models.Day{ID: id, Habits: habits})
	}
	return days, nil
}

func (s *Store) GetDay(userID int64, id string) (models.Day, error) {
	var found string
	err := s.db.QueryRow(`SELECT id FROM days WHERE user_id = ? AND id = ?`, userID, id).Scan(&found)
	if err == sql.ErrNoRows {
		return models.Day{}, fmt.Errorf("%w: day %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return models.Day{}, err
	}

	habits, err := s.habitsFor(userID, id)
	if err != nil {
		return models.Day{}, err
	}
	return models.Day{ID: id, Habits: habits}, nil
}

func (s *Store) habitsFor(userID int64, dayID string) ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, name, time_label, time_mins, y, completed
		FROM habits
		WHERE user_id = ? AND day_id = ?
		ORDER BY position`, userID, dayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		var h models.Habit
		var completed int
		if err := rows.Scan(&h.ID, &h.Name, &h.TimeLabel, &h.TimeMins, &h.Y, &completed); err != nil {
			return nil, err
		}
		h.Completed = completed != 0
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) ReplaceDays(userID int64, days []models.Day) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, day := range days {
		if _, err := tx.Exec(`INSERT INTO days (user_id, id) VALUES (?, ?) ON CONFLICT (user_id, id) DO NOTHING`, userID, day.ID); err != nil {
			return fmt.Errorf("failed to upsert day %s: %w", day.ID, err)
		}
		if _, err := tx.Exec(`DELETE FROM habits WHERE user_id = ? AND day_id = ?`, userID, day.ID); err != nil {
			return fmt.Errorf("failed to clear habits for %s: %w", day.ID, err)
		}
		for pos, h := range day.Habits {
			completed := 0
			if h.Completed {
				completed = 1
			}
			_, err := tx.Exec(`
				INSERT INTO habits (user_id, day_id, id, position, name, time_label, time_mins, y, completed)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (user_id, day_id, id) DO NOTHING`,
				userID, day.ID, h.ID, pos, h.Name, h.TimeLabel, h.TimeMins, h.Y, completed)
			if err != nil {
				return fmt.Errorf("failed to insert habit %d for %s: %w", h.ID, day.ID, err)
			}
		}
	}

	return tx.Commit()
}
