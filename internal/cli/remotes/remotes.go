package remotes

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/skateday/internal/cli"
	"github.com/julianstephens/skateday/internal/config"
	"github.com/julianstephens/skateday/internal/constants"
	errs "github.com/julianstephens/skateday/internal/errors"
	"github.com/julianstephens/skateday/internal/keyring"
	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/remote"
)

type RemoteCmd struct {
	Register RegisterCmd `cmd:"" help:"Create an account on the sync server."`
	Login    LoginCmd    `cmd:"" help:"Sign in and store the session token in the OS keyring."`
	Logout   LogoutCmd   `cmd:"" help:"Forget the stored session token."`
	Push     PushCmd     `cmd:"" help:"Upload local days to the sync server."`
	Pull     PullCmd     `cmd:"" help:"Download days from the sync server."`
	Status   StatusCmd   `cmd:"" help:"Show the sync server's status." default:"1"`
}

type RegisterCmd struct {
	Name     string `help:"Display name."`
	Email    string `required:"" help:"Account email."`
	Password string `help:"Account password. Prompted for when omitted."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	client, err := ctx.RemoteClient()
	if err != nil {
		return err
	}
	password, err := passwordOrPrompt(ctx, c.Password)
	if err != nil {
		return err
	}

	id, err := client.Register(context.Background(), models.RegisterRequest{
		Name:     c.Name,
		Email:    c.Email,
		Password: password,
	})
	if errors.Is(err, remote.ErrConflict) {
		return errs.WithHint(err, "sign in with 'skateday remote login --email "+c.Email+"'")
	}
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	ctx.Printf("✓ Registered %s (user %d)\n", c.Email, id)
	return nil
}

type LoginCmd struct {
	Email    string `help:"Account email. Defaults to remote.email from the config."`
	Password string `help:"Account password. Prompted for when omitted."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	email := c.Email
	if email == "" {
		email = ctx.Settings().Remote.Email
	}
	if email == "" {
		return errors.New("an email is required: pass --email or set remote.email in the config")
	}

	client, err := ctx.RemoteClient()
	if err != nil {
		return err
	}
	password, err := passwordOrPrompt(ctx, c.Password)
	if err != nil {
		return err
	}

	resp, err := client.Login(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := keyring.SetToken(resp.Token); err != nil {
		return err
	}

	if ctx.Settings().Remote.Email != email && ctx.ConfigPath != "" {
		ctx.Settings().Remote.Email = email
		if err := config.Save(ctx.ConfigPath, ctx.Settings()); err != nil {
			ctx.Printf("⚠ Could not remember the email in %s: %v\n", ctx.ConfigPath, err)
		}
	}

	ctx.Printf("✓ Logged in as %s\n", resp.Email)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteToken()
	if errors.Is(err, keyring.ErrNotFound) {
		ctx.Println("Not logged in.")
		return nil
	}
	if err != nil {
		return err
	}
	ctx.Println("✓ Logged out")
	return nil
}

type PushCmd struct{}

func (c *PushCmd) Run(ctx *cli.Context) error {
	client, err := ctx.RemoteClient()
	if err != nil {
		return err
	}
	days, err := ctx.Store.GetDays(constants.LocalUserID)
	if err != nil {
		return fmt.Errorf("failed to load days: %w", err)
	}
	if len(days) == 0 {
		ctx.Println("Nothing to push.")
		return nil
	}

	if err := client.PutDays(context.Background(), days); err != nil {
		return loginHint(fmt.Errorf("push failed: %w", err))
	}
	ctx.Printf("✓ Pushed %d day(s)\n", len(days))
	return nil
}

type PullCmd struct{}

func (c *PullCmd) Run(ctx *cli.Context) error {
	client, err := ctx.RemoteClient()
	if err != nil {
		return err
	}
	days, err := client.GetDays(context.Background())
	if err != nil {
		return loginHint(fmt.Errorf("pull failed: %w", err))
	}
	if err := ctx.Store.ReplaceDays(constants.LocalUserID, days); err != nil {
		return fmt.Errorf("failed to save pulled days: %w", err)
	}
	ctx.Printf("✓ Pulled %d day(s)\n", len(days))
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	client, err := ctx.RemoteClient()
	if err != nil {
		return err
	}
	st, err := client.Status(context.Background())
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	ctx.Printf("Server:    %s\n", ctx.Settings().Remote.URL)
	ctx.Printf("Storage:   %s\n", st.DB.Type)
	ctx.Printf("Secret:    %t\n", st.Auth.SecretSet)
	ctx.Printf("Providers: %s\n", strings.Join(st.Auth.Providers, ", "))
	return nil
}

func loginHint(err error) error {
	if errors.Is(err, remote.ErrUnauthorized) {
		return errs.WithHint(err, "run 'skateday remote login'")
	}
	return err
}

// passwordOrPrompt reads one line from stdin when no password flag was given
func passwordOrPrompt(ctx *cli.Context, password string) (string, error) {
	if password != "" {
		return password, nil
	}
	ctx.Printf("Password: ")
	line, err := bufio.NewReader(ctx.Stdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password = strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return password, nil
}
