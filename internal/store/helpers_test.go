package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MKhiriev/study-marks/internal/config"
	"github.com/MKhiriev/study-marks/internal/logger"
)

type fixedIDs struct {
	ids []string
	n   int
}

func (f *fixedIDs) Generate() string {
	id := f.ids[f.n%len(f.ids)]
	f.n++
	return id
}

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	db := NewDB(conn, config.DriverPostgres, logger.Nop())
	db.retryBackoff = time.Millisecond
	return db, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}
