package constants

import "time"

// StorageKind identifies the backend behind a storage DSN
type StorageKind string

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "skateday"
	DefaultKeyringUser = "database-connection"
	DefaultTokenUser   = "api-token"
	DefaultConfigDir   = "~/.config/skateday"
	DefaultConfigPath  = "~/.config/skateday/skateday.db"
	DefaultConfigFile  = "~/.config/skateday/config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// LocalUserID owns every day when running without a remote principal
	LocalUserID int64 = 0

	// Canvas geometry. Points live on a CanvasSize x CanvasSize square and
	// the x axis spans one full day.
	CanvasSize    = 100.0
	MinutesPerDay = 24 * 60

	// New habits get a vertical offset of floor(OffsetMin + U[0,1) * OffsetSpan)
	OffsetMin  = 20
	OffsetSpan = 60

	// DefaultOffset is used when a synced habit carries no offset
	DefaultOffset = 50.0

	// Habit name rules
	MaxHabitNameLen  = 50
	HabitNamePattern = `^[a-zA-Z0-9\s.,'!?#-]{1,50}$`

	// Playback
	PlaybackDuration = 4000 * time.Millisecond
	FrameInterval    = time.Second / 60

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "skateday-"
	BackupFileSuffix = ".db"

	// Server defaults
	DefaultServerAddr = ":8080"
	DefaultTokenTTL   = 24 * time.Hour
	BcryptCost        = 10

	// Remote sync
	RemoteTimeout = 5 * time.Second

	// Storage kinds reported by the status probe
	StorageSQLite      StorageKind = "local_sqlite"
	StoragePostgres    StorageKind = "postgres"
	StorageMySQL       StorageKind = "mysql"
	StorageJSON        StorageKind = "json"
	StorageRemoteOther StorageKind = "remote_other"

	// Environment overrides
	EnvDB     = "SKATEDAY_DB"
	EnvSecret = "SKATEDAY_SECRET"
	EnvRemote = "SKATEDAY_REMOTE"
)

// Session States
const (
	StateHabits SessionState = iota
	StateAddHabit
	StateImport
	StateExport
)
