package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/skateday/internal/cli"
	"github.com/julianstephens/skateday/internal/cli/backups"
	"github.com/julianstephens/skateday/internal/cli/days"
	"github.com/julianstephens/skateday/internal/cli/db"
	"github.com/julianstephens/skateday/internal/cli/remotes"
	"github.com/julianstephens/skateday/internal/cli/system"
	"github.com/julianstephens/skateday/internal/config"
	"github.com/julianstephens/skateday/internal/constants"
	errs "github.com/julianstephens/skateday/internal/errors"
	"github.com/julianstephens/skateday/internal/keyring"
	"github.com/julianstephens/skateday/internal/logger"
	"github.com/julianstephens/skateday/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file (.yaml, .yml or .toml)." default:"~/.config/skateday/config.yaml"`
	DSN     string `name:"db" help:"SQLite file, .json file or PostgreSQL URL. PostgreSQL passwords belong in the keyring (skateday db set-connection), PGPASSWORD or .pgpass."`
	Debug   bool   `help:"Log debug output to stderr as well as the log file."`

	Init   system.InitCmd   `cmd:"" help:"Initialize skateday storage."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve  system.ServeCmd  `cmd:"" help:"Run the sync API server."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Status system.StatusCmd `cmd:"" help:"Show storage and auth configuration."`

	Day    days.DayCmd    `cmd:"" help:"Inspect stored days."`
	Habit  days.HabitCmd  `cmd:"" help:"Add or toggle habits."`
	Export days.ExportCmd `cmd:"" help:"Export days as JSON."`
	Import days.ImportCmd `cmd:"" help:"Import days from JSON."`

	Remote remotes.RemoteCmd `cmd:"" help:"Sync with a skateday server."`
	Backup backups.BackupCmd `cmd:"" help:"Manage database backups."`
	Db     db.DBCmd          `cmd:"" name:"db" help:"Manage the stored database connection string."`
}

// storageFree lists commands that never touch the local store
var storageFree = []string{"init", "status", "db ", "remote register", "remote login", "remote logout", "remote status"}

func needsStorage(command string) bool {
	for _, prefix := range storageFree {
		if command == strings.TrimSpace(prefix) || strings.HasPrefix(command, prefix) {
			return false
		}
	}
	return true
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Skate Your Day: a habit tracker that turns your day into a skate path"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errs.Fatal(err)
	}
	cfg.ApplyEnv(os.LookupEnv)

	configDir, err := config.ConfigDir(CLI.Config)
	if err != nil {
		errs.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		errs.Fatal(err)
	}

	dsn, trusted := cli.ResolveDSN(CLI.DSN, cfg.Storage.DSN, keyring.GetConnectionString)
	store, err := cli.OpenStore(dsn, trusted)
	if err != nil {
		errs.Fatal(err)
	}
	defer store.Close()
	logger.Debug("Storage selected", "kind", storage.DetectKind(dsn), "dsn", storage.RedactDSN(dsn))

	appCtx := &cli.Context{
		Store:      store,
		Config:     cfg,
		ConfigPath: CLI.Config,
		DSN:        dsn,
	}

	if needsStorage(ctx.Command()) {
		if err := store.Load(); err != nil {
			errs.Fatal(errs.WithHint(err, "run 'skateday init' to create the database"))
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errs.Fatal(err)
	}
}
