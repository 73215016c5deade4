package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/study-marks/internal/config"
	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/migrations"
)

// DB wraps *sql.DB with the dialect specific pieces the repositories need:
// the squirrel placeholder format, the goose dialect and an error classifier.
type DB struct {
	*sql.DB
	driver             string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	retryBackoff       time.Duration
	logger             *logger.Logger
}

const maxAttempts = 3

// NewDB wraps an already opened connection. driver is one of
// [config.DriverPostgres] or [config.DriverSQLite].
func NewDB(conn *sql.DB, driver string, log *logger.Logger) *DB {
	db := &DB{
		DB:     conn,
		driver:       driver,
		retryBackoff: 50 * time.Millisecond,
		logger:       log,
	}

	switch driver {
	case config.DriverSQLite:
		db.placeholder = sq.Question
		db.errorClassificator = NewSQLiteErrorClassifier()
	default:
		db.placeholder = sq.Dollar
		db.errorClassificator = NewPostgresErrorClassifier()
	}

	return db
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	dialect := "postgres"
	if db.driver == config.DriverSQLite {
		dialect = "sqlite3"
	}
	return migrations.Migrate(db.DB, dialect)
}

// withRetry runs op until it succeeds, fails with an error the classifier
// does not consider retryable, or maxAttempts is reached. The wait between
// attempts grows linearly with the attempt number.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; ; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if attempt == maxAttempts || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		db.logger.Warn().Err(err).Int("attempt", attempt).Msg("retrying transient database error")
		select {
		case <-ctx.Done():
			return err
		case <-time.After(db.retryBackoff * time.Duration(attempt)):
		}
	}
}

// builder returns a squirrel statement builder using the placeholder format
// of the underlying driver.
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.placeholder)
}
