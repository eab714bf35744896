package db

import (
	"log/slog"

	"condo-reservations/internal/pkg/config"
	"condo-reservations/internal/pkg/errs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres:// driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // file:// source
)

// Migration actions accepted by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStepUp = "step-up"
	MigrateDrop   = "drop"
)

var ErrUnknownMigrateAction = errs.New("unknown migrate action")

// Migrate applies the schema under migrationsPath. "down" rolls back one step,
// "drop" rolls back everything. No pending change is not an error.
func Migrate(cfg config.DBConfig, migrationsPath, action string) error {
	mig, err := migrate.New("file://"+migrationsPath, cfg.BuildDSN())
	if err != nil {
		return errs.Wrap(err, "create migrate instance")
	}
	defer func() {
		if srcErr, dbErr := mig.Close(); srcErr != nil || dbErr != nil {
			slog.Warn("failed to close migrate instance", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	switch action {
	case MigrateUp:
		err = mig.Up()
	case MigrateDown:
		err = mig.Steps(-1)
	case MigrateStepUp:
		err = mig.Steps(1)
	case MigrateDrop:
		err = mig.Down()
	default:
		return errs.Wrapf(ErrUnknownMigrateAction, "%q", action)
	}
	if err != nil && !errs.Is(err, migrate.ErrNoChange) {
		return errs.Wrapf(err, "migrate %s", action)
	}

	version, dirty, verr := mig.Version()
	if verr != nil && !errs.Is(verr, migrate.ErrNilVersion) {
		return errs.Wrap(verr, "read schema version")
	}
	slog.Info("database migration finished", "action", action, "version", version, "dirty", dirty)
	return nil
}
