package system

import (
	"encoding/json"

	"github.com/julianstephens/skateday/internal/cli"
	"github.com/julianstephens/skateday/internal/keyring"
	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/server"
	"github.com/julianstephens/skateday/internal/storage"
)

// StatusCmd reports the local configuration in the shape of the server's
// status probe
type StatusCmd struct {
	JSON bool `help:"Print the status as JSON."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	var st models.StatusResponse
	st.DB.Type = string(ctx.Kind())
	st.Auth.SecretSet = ctx.Settings().Server.Secret != ""
	st.Auth.Providers = server.Providers

	if c.JSON {
		enc := json.NewEncoder(ctx.Stdout())
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	ctx.Printf("Storage:   %s (%s)\n", st.DB.Type, storage.RedactDSN(ctx.DSN))
	ctx.Printf("Config:    %s\n", ctx.ConfigPath)
	if st.Auth.SecretSet {
		ctx.Println("Secret:    set")
	} else {
		ctx.Println("Secret:    not set")
	}
	ctx.Printf("Providers: %v\n", st.Auth.Providers)

	remoteURL := ctx.Settings().Remote.URL
	switch {
	case remoteURL == "":
		ctx.Println("Remote:    not configured")
	case loggedIn():
		ctx.Printf("Remote:    %s (logged in)\n", remoteURL)
	default:
		ctx.Printf("Remote:    %s (not logged in)\n", remoteURL)
	}
	return nil
}

func loggedIn() bool {
	_, err := keyring.GetToken()
	return err == nil
}
