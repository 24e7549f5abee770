package system

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/skateday/internal/cli"
	"github.com/julianstephens/skateday/internal/constants"
	"github.com/julianstephens/skateday/internal/keyring"
	"github.com/julianstephens/skateday/internal/logger"
	"github.com/julianstephens/skateday/internal/tui"
	"github.com/julianstephens/skateday/internal/utils"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Settings()
	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	ctx.PerformAutomaticBackup()

	opts := tui.Options{
		Store:    ctx.Store,
		UserID:   constants.LocalUserID,
		Now:      func() time.Time { return time.Now().In(loc) },
		Duration: cfg.PlaybackDuration(),
		Pusher:   pusher(ctx),
	}

	p := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}

// pusher returns a sync client when a server is configured and the user has
// logged in, otherwise nil so the TUI stays local
func pusher(ctx *cli.Context) tui.Pusher {
	if ctx.Settings().Remote.URL == "" {
		return nil
	}
	if _, err := keyring.GetToken(); err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("Sync disabled, keyring unavailable", "error", err)
		}
		return nil
	}
	client, err := ctx.RemoteClient()
	if err != nil {
		logger.Warn("Sync disabled", "error", err)
		return nil
	}
	return client
}
