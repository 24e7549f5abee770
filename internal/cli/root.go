package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/skateday/internal/backup"
	"github.com/julianstephens/skateday/internal/config"
	"github.com/julianstephens/skateday/internal/constants"
	errs "github.com/julianstephens/skateday/internal/errors"
	"github.com/julianstephens/skateday/internal/keyring"
	"github.com/julianstephens/skateday/internal/logger"
	"github.com/julianstephens/skateday/internal/remote"
	"github.com/julianstephens/skateday/internal/storage"
	"github.com/julianstephens/skateday/internal/storage/postgres"
	"github.com/julianstephens/skateday/internal/storage/sqlite"
	"github.com/julianstephens/skateday/internal/utils"
)

// Context is handed to every command's Run method
type Context struct {
	Store      storage.Provider
	Config     *config.Config
	ConfigPath string
	// DSN is the resolved storage location the store was opened from
	DSN string
	Out io.Writer
	In  io.Reader
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Settings returns the loaded config, or the defaults when none was loaded
func (c *Context) Settings() *config.Config {
	if c.Config == nil {
		c.Config = config.Default()
	}
	return c.Config
}

// Kind reports which backend the store was opened for
func (c *Context) Kind() constants.StorageKind {
	return storage.DetectKind(c.DSN)
}

// Now returns the current time in the configured timezone
func (c *Context) Now() (time.Time, error) {
	return utils.NowInTimezone(c.Settings().Timezone)
}

// Today returns today's day id in the configured timezone
func (c *Context) Today() (string, error) {
	now, err := c.Now()
	if err != nil {
		return "", err
	}
	return utils.DayID(now), nil
}

// PerformAutomaticBackup snapshots the SQLite database. Failures are logged
// and never interrupt the caller.
func (c *Context) PerformAutomaticBackup() {
	if c.Kind() != constants.StorageSQLite {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// RemoteClient builds a sync client from the config and the token saved by
// `skateday remote login`. A missing token is not an error; the public
// endpoints still work.
func (c *Context) RemoteClient() (*remote.Client, error) {
	token, err := keyring.GetToken()
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Warn("Could not read API token from keyring", "error", err)
	}
	client, err := remote.New(c.Settings().Remote.URL, token)
	if errors.Is(err, remote.ErrNoServer) {
		return nil, errs.WithHint(err, fmt.Sprintf("set remote.url in %s or export %s", c.ConfigPath, constants.EnvRemote))
	}
	return client, err
}

// OpenStore picks a backend for dsn. Postgres URLs carrying a password are
// refused unless trusted is set, which main does for strings read back from
// the OS keyring.
func OpenStore(dsn string, trusted bool) (storage.Provider, error) {
	switch kind := storage.DetectKind(dsn); kind {
	case constants.StoragePostgres:
		if valid, err := postgres.ValidateConnString(dsn); !valid {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
			if !trusted {
				return nil, errs.WithHint(err,
					"store the connection string with `skateday db set-connection`, or use PGPASSWORD or a .pgpass file")
			}
		}
		return postgres.New(dsn), nil
	case constants.StorageJSON:
		path, err := config.ExpandPath(strings.TrimPrefix(dsn, "file:"))
		if err != nil {
			return nil, err
		}
		return storage.NewJSONStore(path), nil
	case constants.StorageSQLite:
		if dsn == "" {
			dsn = constants.DefaultConfigPath
		}
		path, err := config.ExpandPath(strings.TrimPrefix(dsn, "file:"))
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	default:
		return nil, fmt.Errorf("unsupported storage %s (%s)", storage.RedactDSN(dsn), kind)
	}
}

// ResolveDSN picks the storage location: the --db flag, then the config
// (which already carries SKATEDAY_DB), then the keyring, then the default
// SQLite file. trusted reports that the DSN came from the keyring.
func ResolveDSN(flag, configured string, fromKeyring func() (string, error)) (dsn string, trusted bool) {
	if flag != "" {
		return flag, false
	}
	if configured != "" {
		return configured, false
	}
	if fromKeyring != nil {
		connStr, err := fromKeyring()
		switch {
		case err == nil && connStr != "":
			return connStr, true
		case err != nil && !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Keyring lookup skipped", "error", err)
		}
	}
	return constants.DefaultConfigPath, false
}
