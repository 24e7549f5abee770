package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/skateday/internal/backup"
	"github.com/julianstephens/skateday/internal/cli"
	"github.com/julianstephens/skateday/internal/constants"
	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/storage"
	"github.com/julianstephens/skateday/internal/utils"
	"github.com/julianstephens/skateday/internal/validation"
)

// errSkipped marks a check that does not apply to the current backend
var errSkipped = errors.New("skipped")

type DoctorCmd struct{}

type doctorRun struct {
	ctx      *cli.Context
	hasError bool
}

// check prints one result line. Warnings never fail the run.
func (r *doctorRun) check(name string, warnOnly bool, err error) {
	switch {
	case err == nil:
		r.ctx.Printf("✓ %s: OK\n", name)
	case errors.Is(err, errSkipped):
		r.ctx.Printf("⊘ %s: SKIPPED (%s)\n", name, strings.TrimSuffix(err.Error(), ": "+errSkipped.Error()))
	case warnOnly:
		r.ctx.Printf("⚠ %s: WARNING\n", name)
		r.ctx.Printf("   %v\n", err)
	default:
		r.ctx.Printf("❌ %s: FAIL\n", name)
		r.ctx.Printf("   Error: %v\n", err)
		r.hasError = true
	}
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	r := &doctorRun{ctx: ctx}

	days, loadErr := checkStorageReachable(ctx)
	r.check("Storage reachable", false, loadErr)

	unreachable := fmt.Errorf("storage not reachable: %w", errSkipped)
	if loadErr != nil {
		r.check("Schema version", false, unreachable)
		r.check("Migrations complete", false, unreachable)
		r.check("Data validation", false, unreachable)
	} else {
		current, latest, err := schemaVersions(ctx)
		r.check("Schema version", false, checkSchemaVersion(current, latest, err))
		r.check("Migrations complete", false, checkMigrationsComplete(current, latest, err))
		r.check("Data validation", false, checkValidation(days))
	}

	r.check("Backups present", true, checkBackupsPresent(ctx))
	r.check("Configuration", false, ctx.Settings().Validate())
	r.check("Clock/timezone", false, checkClockTimezone(ctx))

	ctx.Println()
	if r.hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) ([]models.Day, error) {
	if err := ctx.Store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load storage: %w", err)
	}
	days, err := ctx.Store.GetDays(constants.LocalUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read days: %w", err)
	}
	return days, nil
}

func schemaVersions(ctx *cli.Context) (int, int, error) {
	reporter, ok := ctx.Store.(storage.SchemaReporter)
	if !ok {
		return 0, 0, fmt.Errorf("backend has no schema: %w", errSkipped)
	}
	current, latest, err := reporter.SchemaVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return current, latest, nil
}

func checkSchemaVersion(current, latest int, err error) error {
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(current, latest int, err error) error {
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkValidation(days []models.Day) error {
	result := validation.New().ValidateDays(days)
	if result.HasConflicts() {
		return fmt.Errorf("%d problem(s)\n%s", len(result.Conflicts), result.FormatReport())
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Kind() != constants.StorageSQLite {
		return fmt.Errorf("backups cover SQLite only: %w", errSkipped)
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'skateday backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now, err := utils.NowInTimezone(ctx.Settings().Timezone)
	if err != nil {
		return err
	}
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
