package kvstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	apperrors "studyplanner/internal/platform/errors"
	"studyplanner/internal/platform/sqlitedb"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// SQLiteStore persists values in the kv table of the planner database.
type SQLiteStore struct {
	db    *sql.DB
	quota int64
}

// NewSQLiteStore migrates db and returns a store bounded by quota bytes
// (key plus value lengths). quota <= 0 means unlimited.
func NewSQLiteStore(ctx context.Context, db *sql.DB, quota int64) (*SQLiteStore, error) {
	if err := sqlitedb.ApplyMigrations(ctx, db, migrationFS, "migrations"); err != nil {
		return nil, fmt.Errorf("migrate kv store: %w", err)
	}
	return &SQLiteStore{db: db, quota: quota}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write %s: %w", key, err)
	}
	defer func() { _ = tx.Rollback() }()

	if s.quota > 0 {
		var used int64
		const usage = `SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0) FROM kv WHERE key <> ?`
		if err := tx.QueryRowContext(ctx, usage, key).Scan(&used); err != nil {
			return fmt.Errorf("measure usage: %w", err)
		}
		if used+entrySize(key, value) > s.quota {
			return apperrors.ErrQuotaExceeded
		}
	}

	const stmt = `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;
`
	if _, err := tx.ExecContext(ctx, stmt, key, value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
