package database

import (
	"database/sql"
	"errors"
	"fmt"

	"tourneyhub/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const migrationsLockKey = "tourneyhub_migrations_lock"

// ErrMigrationsLocked is returned when another process holds the migrations lock.
var ErrMigrationsLocked = errors.New("another process is running the migrations")

// RunMigrations applies all pending migrations to the database.
func RunMigrations(cfg config.DatabaseConfiguration, db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cfg.MigrationsPath),
		cfg.Database,
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	// Acquire an advisory lock to prevent concurrent migrations between services.
	var lockAcquired bool
	err = db.QueryRow("SELECT pg_try_advisory_lock(hashtext($1))", migrationsLockKey).Scan(&lockAcquired)
	if err != nil {
		return err
	}

	if !lockAcquired {
		return ErrMigrationsLocked
	}

	upErr := m.Up()

	var lockReleased bool
	err = db.QueryRow("SELECT pg_advisory_unlock(hashtext($1))", migrationsLockKey).Scan(&lockReleased)
	if err != nil || !lockReleased {
		return fmt.Errorf("could not release advisory lock: %w", err)
	}

	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", upErr)
	}

	return nil
}
