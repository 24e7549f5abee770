package storage

import (
	"errors"

	"github.com/julianstephens/skateday/internal/models"
)

var (
	// ErrNotFound is returned when a day or user does not exist
	ErrNotFound = errors.New("not found")
	// ErrUserExists is returned when registering an email that is taken
	ErrUserExists = errors.New("user already exists")
	// ErrNotInitialized is returned by Load before `skateday init` has run
	ErrNotInitialized = errors.New("storage not initialized")
)

// Provider persists days and user accounts. Days are scoped by the owning
// user id; the local app uses constants.LocalUserID.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Days
	GetDays(userID int64) ([]models.Day, error)
	GetDay(userID int64, id string) (models.Day, error)
	// ReplaceDays upserts each day and replaces its habits with the given
	// set in one transaction. Habits repeating an id already seen for the
	// same day are skipped. Days not listed are untouched.
	ReplaceDays(userID int64, days []models.Day) error

	// Users
	CreateUser(models.User) (models.User, error)
	GetUserByEmail(email string) (models.User, error)

	// Utils
	GetConfigPath() string
}

// SchemaReporter is implemented by SQL backends that track a schema version
type SchemaReporter interface {
	SchemaVersion() (current, latest int, err error)
}
