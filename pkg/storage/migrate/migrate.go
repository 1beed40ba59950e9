// Package migrate runs the goose migrations embedded in the binary against
// the configured datastore engine.
package migrate

import (
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"github.com/pressly/goose/v3"

	"github.com/shambalink/shambalink/assets"
	"github.com/shambalink/shambalink/pkg/storage/sqlite"
)

// MigrationConfig contains the configuration needed for running migrations.
type MigrationConfig struct {
	Engine        string
	URI           string
	TargetVersion int64
	Timeout       time.Duration
	Verbose       bool
}

// RunMigrations runs the migrations for the given config. A TargetVersion of
// zero migrates all the way up; a lower version than the current one
// migrates down.
func RunMigrations(cfg MigrationConfig) error {
	switch cfg.Engine {
	case "memory":
		log.Println("no migrations to run for `memory` datastore")
		return nil
	case "sqlite":
		uri, err := sqlite.PrepareDSN(cfg.URI)
		if err != nil {
			return err
		}
		return runGoose("sqlite", uri, assets.SqliteMigrationDir, cfg)
	case "postgres":
		return runGoose("pgx", cfg.URI, assets.PostgresMigrationDir, cfg)
	default:
		return fmt.Errorf("unknown datastore engine type: %s", cfg.Engine)
	}
}

func runGoose(driver, uri, migrationsPath string, cfg MigrationConfig) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetVerbose(cfg.Verbose)

	dialect := driver
	if driver == "pgx" {
		dialect = "postgres"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set %s dialect: %w", dialect, err)
	}

	db, err := goose.OpenDBWithDriver(driver, uri)
	if err != nil {
		return fmt.Errorf("open %s connection: %w", driver, err)
	}
	defer db.Close()

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cfg.Timeout
	err = backoff.Retry(func() error {
		return db.Ping()
	}, policy)
	if err != nil {
		return fmt.Errorf("initialize %s connection: %w", driver, err)
	}

	goose.SetBaseFS(assets.EmbedMigrations)

	currentVersion, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	if cfg.TargetVersion == 0 {
		if err := goose.Up(db, migrationsPath); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		return nil
	}

	switch {
	case cfg.TargetVersion < currentVersion:
		if err := goose.DownTo(db, migrationsPath, cfg.TargetVersion); err != nil {
			return fmt.Errorf("run migrations down to %v: %w", cfg.TargetVersion, err)
		}
	case cfg.TargetVersion > currentVersion:
		if err := goose.UpTo(db, migrationsPath, cfg.TargetVersion); err != nil {
			return fmt.Errorf("run migrations up to %v: %w", cfg.TargetVersion, err)
		}
	}

	return nil
}
