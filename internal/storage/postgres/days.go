package postgres

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/storage"
)

func (s *Store) GetDays(userID int64) ([]models.Day, error) {
	rows, err := s.db.Query(`
		SELECT d.id, h.id, h.name, h.time_label, h.time_mins, h.y, h.completed
		FROM days d
		LEFT JOIN habits h ON h.user_id = d.user_id AND h.day_id = d.id
		WHERE d.user_id = $1
		ORDER BY d.id, h.position`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := []models.Day{}
	for rows.Next() {
		var dayID string
		var id, mins sql.NullInt64
		var name, label sql.NullString
		var y sql.NullFloat64
		var completed sql.NullBool
		if err := rows.Scan(&dayID, &id, &name, &label, &mins, &y, &completed); err != nil {
			return nil, err
		}

		if len(days) == 0 || days[len(days)-1].ID != dayID {
			days = append(days, models.Day{ID: dayID, Habits: []models.Habit{}})
		}
		if !id.Valid {
			continue
		}
		last := &days[len(days)-1]
		last.Habits = append(last.Habits, models.Habit{
			ID:        int(id.Int64),
			Name:      name.String,
			TimeLabel: label.String,
			TimeMins:  int(mins.Int64),
			Y:         y.Float64,
			Completed: completed.Bool,
		})
	}
	return days, rows.Err()
}

func (s *Store) GetDay(userID int64, id string) (models.Day, error) {
	var found string
	err := s.db.QueryRow(`SELECT id FROM days WHERE user_id = $1 AND id = $2`, userID, id).Scan(&found)
	if err == sql.ErrNoRows {
		return models.Day{}, fmt.Errorf("%w: day %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return models.Day{}, err
	}

	rows, err := s.db.Query(`
		SELECT id, name, time_label, time_mins, y, completed
		FROM habits
		WHERE user_id = $1 AND day_id = $2
		ORDER BY position`, userID, id)
	if err != nil {
		return models.Day{}, err
	}
	defer rows.Close()

	day := models.Day{ID: id, Habits: []models.Habit{}}
	for rows.Next() {
		var h models.Habit
		if err := rows.Scan(&h.ID, &h.Name, &h.TimeLabel, &h.TimeMins, &h.Y, &h.Completed); err != nil {
			return models.Day{}, err
		}
		day.Habits = append(day.Habits, h)
	}
	return day, rows.Err()
}

func (s *Store) ReplaceDays(userID int64, days []models.Day) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, day := range days {
		if _, err := tx.Exec(`INSERT INTO days (user_id, id) VALUES ($1, $2) ON CONFLICT (user_id, id) DO NOTHING`, userID, day.ID); err != nil {
			return fmt.Errorf("failed to upsert day %s: %w", day.ID, err)
		}
		if _, err := tx.Exec(`DELETE FROM habits WHERE user_id = $1 AND day_id = $2`, userID, day.ID); err != nil {
			return fmt.Errorf("failed to clear habits for %s: %w", day.ID, err)
		}
		for pos, h := range day.Habits {
			_, err := tx.Exec(`
				INSERT INTO habits (user_id, day_id, id, position, name, time_label, time_mins, y, completed)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				ON CONFLICT (user_id, day_id, id) DO NOTHING`,
				userID, day.ID, h.ID, pos, h.Name, h.TimeLabel, h.TimeMins, h.Y, h.Completed)
			if err != nil {
				return fmt.Errorf("failed to insert habit %d for %s: %w", h.ID, day.ID, err)
			}
		}
	}

	return tx.Commit()
}
