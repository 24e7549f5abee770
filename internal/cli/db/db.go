package db

import (
	"errors"
	"fmt"

	"github.com/julianstephens/skateday/internal/cli"
	"github.com/julianstephens/skateday/internal/keyring"
	"github.com/julianstephens/skateday/internal/storage"
	"github.com/julianstephens/skateday/internal/storage/postgres"
)

type DBCmd struct {
	SetConnection   SetConnectionCmd   `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	ClearConnection ClearConnectionCmd `cmd:"" help:"Remove the stored connection string."`
	ShowConnection  ShowConnectionCmd  `cmd:"" help:"Show the stored connection string with the password hidden."`
}

type SetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string."`
}

func (cmd *SetConnectionCmd) Run(ctx *cli.Context) error {
	if !storage.IsPostgres(cmd.ConnectionString) {
		return errors.New("connection string must start with postgres:// or postgresql://")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		ctx.Println("⚠ Connection string contains a password; it will be kept in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}

	ctx.Println("✓ Connection string stored in OS keyring")
	ctx.Println("  It is used whenever --db, SKATEDAY_DB and storage.dsn are all unset")
	return nil
}

type ClearConnectionCmd struct{}

func (cmd *ClearConnectionCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring")
	}
	if err != nil {
		return err
	}
	ctx.Println("✓ Connection string deleted from OS keyring")
	return nil
}

type ShowConnectionCmd struct{}

func (cmd *ShowConnectionCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring; use 'skateday db set-connection' to store one")
	}
	if err != nil {
		return err
	}
	ctx.Println(storage.RedactDSN(connStr))
	return nil
}
