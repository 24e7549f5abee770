package system

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/julianstephens/skateday/internal/cli"
	"github.com/julianstephens/skateday/internal/config"
	"github.com/julianstephens/skateday/internal/storage/sqlite"
)

// setupTestContext returns a context over an uninitialized SQLite file and
// the buffer capturing command output
func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "skateday.db")

	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	var out bytes.Buffer
	cfg := config.Default()
	cfg.Timezone = "UTC"
	return &cli.Context{
		Store:      store,
		Config:     cfg,
		ConfigPath: filepath.Join(dir, "config.yaml"),
		DSN:        dbPath,
		Out:        &out,
	}, &out
}
