package database

import (
	"errors"
	"fmt"
	"time"

	"tourneyhub/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrMissingDSN is returned when no connection string is configured.
var ErrMissingDSN = errors.New("POSTGRES_DSN is not set")

// NewConnection opens the connection pool.
// Driver errors are translated so unique violations surface as gorm.ErrDuplicatedKey.
func NewConnection(cfg config.DatabaseConfiguration) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, ErrMissingDSN
	}

	return Open(cfg.DSN)
}

// Open a connection pool on the given dsn.
func Open(dsn string) (*gorm.DB, error) {
	// Create the database instance.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get the SQL database itself.
	sqlDb, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get the sql connection: %w", err)
	}

	// Set the pool values.
	sqlDb.SetMaxOpenConns(50)
	sqlDb.SetMaxIdleConns(10)
	sqlDb.SetConnMaxLifetime(time.Hour)
	sqlDb.SetConnMaxIdleTime(time.Hour)

	// Test the connection
	if err := sqlDb.Ping(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
