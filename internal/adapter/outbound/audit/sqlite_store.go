package audit

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/fn-gate/fngate/internal/domain/audit"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS audit_records (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp   TEXT NOT NULL,
	request_id  TEXT NOT NULL,
	route       TEXT NOT NULL,
	status      INTEGER NOT NULL,
	outcome     TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	body_digest TEXT
);
CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_records(timestamp);
`

// SQLiteStore implements audit.Store on a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// audit schema exists. Pass ":memory:" for an ephemeral store in tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create audit schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append inserts records in a single transaction.
func (s *SQLiteStore) Append(ctx context.Context, records ...audit.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin audit tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO audit_records
		(timestamp, request_id, route, status, outcome, duration_ms, body_digest)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare audit insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"),
			rec.RequestID, rec.Route, rec.Status, rec.Outcome,
			rec.DurationMS, rec.BodyDigest,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert audit record: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit audit tx: %w", err)
	}
	return nil
}

// Flush is a no-op; Append commits synchronously.
func (s *SQLiteStore) Flush(context.Context) error { return nil }

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
