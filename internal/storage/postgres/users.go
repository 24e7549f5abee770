package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/storage"
)

// uniqueViolation is the SQLSTATE for a unique constraint failure
const uniqueViolation = "23505"

func (s *Store) CreateUser(user models.User) (models.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	err := s.db.QueryRow(`
		INSERT INTO users (name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		user.Name, user.Email, user.PasswordHash, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.User{}, fmt.Errorf("%w: %s", storage.ErrUserExists, user.Email)
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u models.User
	err := s.db.QueryRow(`
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, fmt.Errorf("%w: user %s", storage.ErrNotFound, email)
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}
