// Package config loads the optional skateday config file and applies
// environment overrides on top of it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/skateday/internal/constants"
	"github.com/julianstephens/skateday/internal/utils"
)

// ErrUnknownFormat is returned for config files that are neither YAML nor TOML
var ErrUnknownFormat = errors.New("unknown config format")

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// StorageConfig selects where days are kept.
type StorageConfig struct {
	// DSN is a file path (SQLite, or JSON when it ends in .json) or a
	// postgres:// URL. Empty means the default SQLite file.
	DSN string `yaml:"dsn" toml:"dsn"`
}

// ServerConfig controls `skateday serve`.
type ServerConfig struct {
	Addr           string   `yaml:"addr" toml:"addr"`
	Secret         string   `yaml:"secret" toml:"secret"` // JWT signing secret
	TokenTTL       string   `yaml:"token_ttl" toml:"token_ttl"`
	AllowedOrigins []string `yaml:"allowed_origins" toml:"allowed_origins"`
}

// RemoteConfig points the CLI at a sync server.
type RemoteConfig struct {
	URL   string `yaml:"url" toml:"url"`
	Email string `yaml:"email" toml:"email"`
}

// PlaybackConfig tunes the skater animation.
type PlaybackConfig struct {
	DurationMillis int `yaml:"duration_ms" toml:"duration_ms"`
}

// Config is the root configuration.
type Config struct {
	Timezone string         `yaml:"timezone" toml:"timezone"`
	Storage  StorageConfig  `yaml:"storage" toml:"storage"`
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Remote   RemoteConfig   `yaml:"remote" toml:"remote"`
	Playback PlaybackConfig `yaml:"playback" toml:"playback"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Timezone: "Local",
		Server: ServerConfig{
			Addr:           constants.DefaultServerAddr,
			TokenTTL:       constants.DefaultTokenTTL.String(),
			AllowedOrigins: []string{"*"},
		},
		Playback: PlaybackConfig{
			DurationMillis: int(constants.PlaybackDuration / time.Millisecond),
		},
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the config file at path. The format follows the extension:
// .toml for TOML, .yaml or .yml for YAML. A missing file yields Default()
// with no error, and keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	return cfg, nil
}

// Save writes cfg to path in the format implied by its extension,
// creating parent directories as needed.
func Save(path string, cfg *Config) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0600)
}

// ApplyEnv overrides fields from SKATEDAY_* environment variables. lookup
// is normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(constants.EnvDB); ok && v != "" {
		c.Storage.DSN = v
	}
	if v, ok := lookup(constants.EnvSecret); ok && v != "" {
		c.Server.Secret = v
	}
	if v, ok := lookup(constants.EnvRemote); ok && v != "" {
		c.Remote.URL = v
	}
}

// Validate checks values that cannot be caught while decoding.
func (c *Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if _, err := c.TokenTTL(); err != nil {
		return err
	}
	if c.Playback.DurationMillis <= 0 {
		return fmt.Errorf("playback.duration_ms must be positive, got %d", c.Playback.DurationMillis)
	}
	return nil
}

// TokenTTL parses the configured session token lifetime.
func (c *Config) TokenTTL() (time.Duration, error) {
	if c.Server.TokenTTL == "" {
		return constants.DefaultTokenTTL, nil
	}
	d, err := time.ParseDuration(c.Server.TokenTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid server.token_ttl %q: %w", c.Server.TokenTTL, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("server.token_ttl must be positive, got %s", d)
	}
	return d, nil
}

// PlaybackDuration returns the animation length.
func (c *Config) PlaybackDuration() time.Duration {
	return time.Duration(c.Playback.DurationMillis) * time.Millisecond
}

// ---------------------------------------------------------------------------
// Paths
// ---------------------------------------------------------------------------

// ExpandPath expands a leading ~ and environment variables.
func ExpandPath(path string) (string, error) {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path, nil
}

// ConfigDir returns the directory holding the config file, logs and the
// default database.
func ConfigDir(configPath string) (string, error) {
	p, err := ExpandPath(configPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(p), nil
}
