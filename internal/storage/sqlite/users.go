package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/storage"
)

func (s *Store) CreateUser(user models.User) (models.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.Exec(`
		INSERT INTO users (name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (email) DO NOTHING`,
		user.Name, user.Email, user.PasswordHash, user.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return models.User{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.User{}, err
	}
	if n == 0 {
		return models.User{}, fmt.Errorf("%w: %s", storage.ErrUserExists, user.Email)
	}

	user.ID, err = res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u models.User
	var createdAt string
	err := s.db.QueryRow(`
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &createdAt)
	if err == sql.ErrNoRows {
		return models.User{}, fmt.Errorf("%w: user %s", storage.ErrNotFound, email)
	}
	if err != nil {
		return models.User{}, err
	}

	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		u.CreatedAt = t
	}
	return u, nil
}
