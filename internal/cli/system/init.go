package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/skateday/internal/cli"
	"github.com/julianstephens/skateday/internal/config"
	"github.com/julianstephens/skateday/internal/constants"
	"github.com/julianstephens/skateday/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing local database before initializing."`
	Source string `help:"Database path or connection string to copy days from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized skateday storage at: %s\n", storage.RedactDSN(ctx.Store.GetConfigPath()))

	if err := writeDefaultConfig(ctx); err != nil {
		return err
	}

	if c.Source != "" {
		ctx.Printf("Copying days from: %s\n", storage.RedactDSN(c.Source))
		n, err := copyDays(ctx, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("    Copied %d days\n", n)
	}

	return nil
}

// reset removes a file-backed database so Init starts from scratch
func (c *InitCmd) reset(ctx *cli.Context) error {
	if ctx.Kind() == constants.StoragePostgres {
		return fmt.Errorf("--force only resets file databases; drop the PostgreSQL schema by hand")
	}

	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// writeDefaultConfig saves the defaults next to the database unless a config
// file is already there
func writeDefaultConfig(ctx *cli.Context) error {
	if ctx.ConfigPath == "" {
		return nil
	}
	path, err := config.ExpandPath(ctx.ConfigPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := config.Save(path, ctx.Settings()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	ctx.Printf("Wrote default config to: %s\n", path)
	return nil
}

func copyDays(ctx *cli.Context, source string) (int, error) {
	src, err := cli.OpenStore(source, false)
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	days, err := src.GetDays(constants.LocalUserID)
	if err != nil {
		return 0, fmt.Errorf("failed to read days from source: %w", err)
	}
	if err := ctx.Store.ReplaceDays(constants.LocalUserID, days); err != nil {
		return 0, fmt.Errorf("failed to save days: %w", err)
	}
	return len(days), nil
}
