package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/skateday/internal/logger"
	"github.com/julianstephens/skateday/internal/models"
)

// jsonFile is the on-disk layout of a JSONStore
type jsonFile struct {
	Version int                    `json:"version"`
	Users   []models.User          `json:"users"`
	Hashes  map[string]string      `json:"password_hashes"`
	Days    map[int64][]models.Day `json:"days"`
}

// JSONStore keeps everything in a single JSON file. It suits a local,
// single-user setup and tests.
type JSONStore struct {
	mu    sync.Mutex
	path  string
	store *jsonFile
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func emptyJSONFile() *jsonFile {
	return &jsonFile{
		Version: 1,
		Users:   []models.User{},
		Hashes:  map[string]string{},
		Days:    map[int64][]models.Day{},
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.load()
	}

	s.store = emptyJSONFile()
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load reads the file. A file that cannot be parsed is moved aside to
// <path>.corrupt and the store starts empty, so callers fall back to the
// example days instead of failing.
func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w, run 'skateday init' first", ErrNotInitialized)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := emptyJSONFile()
	if err := json.Unmarshal(data, store); err != nil {
		aside := s.path + ".corrupt"
		logger.Warn("Storage file is malformed, starting empty", "path", s.path, "moved_to", aside, "error", err)
		if rerr := os.Rename(s.path, aside); rerr != nil {
			return fmt.Errorf("failed to move malformed storage aside: %w", rerr)
		}
		s.store = emptyJSONFile()
		return s.save()
	}

	if store.Hashes == nil {
		store.Hashes = map[string]string{}
	}
	if store.Days == nil {
		store.Days = map[int64][]models.Day{}
	}
	s.store = store
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetDays(userID int64) ([]models.Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	days := s.store.Days[userID]
	out := make([]models.Day, len(days))
	for i, d := range days {
		out[i] = d.Clone()
	}
	models.SortDays(out)
	return out, nil
}

func (s *JSONStore) GetDay(userID int64, id string) (models.Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return models.Day{}, fmt.Errorf("storage not loaded")
	}

	for _, d := range s.store.Days[userID] {
		if d.ID == id {
			return d.Clone(), nil
		}
	}
	return models.Day{}, fmt.Errorf("%w: day %s", ErrNotFound, id)
}

func (s *JSONStore) ReplaceDays(userID int64, days []models.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	existing := s.store.Days[userID]
	for _, in := range days {
		day := dedupeHabits(in)
		replaced := false
		for i := range existing {
			if existing[i].ID == day.ID {
				existing[i] = day
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, day)
		}
	}
	models.SortDays(existing)
	s.store.Days[userID] = existing
	return s.save()
}

// dedupeHabits copies day keeping only the first habit for each id
func dedupeHabits(day models.Day) models.Day {
	out := models.Day{ID: day.ID, Habits: make([]models.Habit, 0, len(day.Habits))}
	seen := make(map[int]bool, len(day.Habits))
	for _, h := range day.Habits {
		if seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		out.Habits = append(out.Habits, h)
	}
	return out
}

func (s *JSONStore) CreateUser(user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return models.User{}, fmt.Errorf("storage not loaded")
	}

	email := strings.ToLower(strings.TrimSpace(user.Email))
	var maxID int64
	for _, u := range s.store.Users {
		if u.Email == email {
			return models.User{}, fmt.Errorf("%w: %s", ErrUserExists, email)
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	user.ID = maxID + 1
	user.Email = email
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.store.Hashes[email] = user.PasswordHash
	s.store.Users = append(s.store.Users, user)
	if err := s.save(); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *JSONStore) GetUserByEmail(email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return models.User{}, fmt.Errorf("storage not loaded")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.store.Users {
		if u.Email == email {
			u.PasswordHash = s.store.Hashes[email]
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("%w: user %s", ErrNotFound, email)
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
