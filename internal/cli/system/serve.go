package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/skateday/internal/auth"
	"github.com/julianstephens/skateday/internal/cli"
	"github.com/julianstephens/skateday/internal/constants"
	"github.com/julianstephens/skateday/internal/logger"
	"github.com/julianstephens/skateday/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address. Defaults to server.addr from the config."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	opts, ephemeral, err := serverOptions(ctx)
	if err != nil {
		return err
	}
	if ephemeral {
		ctx.Printf("⚠ No signing secret configured (server.secret or %s).\n", constants.EnvSecret)
		ctx.Println("  Using a random secret; sessions will not survive a restart.")
	}

	addr := c.Addr
	if addr == "" {
		addr = ctx.Settings().Server.Addr
	}
	if addr == "" {
		addr = constants.DefaultServerAddr
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Printf("✓ Serving skateday sync API on %s (storage: %s)\n", addr, opts.Kind)
	return server.New(opts).ListenAndServe(sigCtx, addr)
}

// serverOptions builds the server configuration. When no secret is set a
// random one is generated and ephemeral is true.
func serverOptions(ctx *cli.Context) (opts server.Options, ephemeral bool, err error) {
	cfg := ctx.Settings()

	ttl, err := cfg.TokenTTL()
	if err != nil {
		return opts, false, err
	}

	secret := cfg.Server.Secret
	if secret == "" {
		secret, err = auth.GenerateSecret()
		if err != nil {
			return opts, false, err
		}
		ephemeral = true
		logger.Warn("No signing secret configured, generated an ephemeral one")
	}

	issuer, err := auth.NewIssuer(secret, ttl)
	if err != nil {
		return opts, false, fmt.Errorf("failed to create token issuer: %w", err)
	}

	return server.Options{
		Store:          ctx.Store,
		Issuer:         issuer,
		Kind:           ctx.Kind(),
		SecretSet:      !ephemeral,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger.With("component", "server"),
	}, ephemeral, nil
}
