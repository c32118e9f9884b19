// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ManuGH/recorderctl/internal/persistence/sqlite"
	"github.com/ManuGH/recorderctl/internal/recorder"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS recorder_entries (
	db_name     TEXT NOT NULL,
	entry_key   TEXT NOT NULL,
	entry_field TEXT NOT NULL,
	state       TEXT NOT NULL,
	updated_at  INTEGER NOT NULL,
	PRIMARY KEY (db_name, entry_key, entry_field)
);`

const sqliteUpsert = `
INSERT INTO recorder_entries (db_name, entry_key, entry_field, state, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (db_name, entry_key, entry_field) DO UPDATE SET
	state = excluded.state,
	updated_at = excluded.updated_at;`

// SQLiteWriter keeps entries in a single SQLite table keyed by (db_name, entry_key, entry_field).
type SQLiteWriter struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens the file at path and creates the table if needed.
func OpenSQLite(ctx context.Context, path string, cfg sqlite.Config) (*SQLiteWriter, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite backend requires a path")
	}
	if cfg.BusyTimeout <= 0 {
		cfg = sqlite.DefaultConfig()
	}
	db, err := sqlite.Open(ctx, path, cfg)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}
	return &SQLiteWriter{db: db, now: time.Now}, nil
}

// WriteEntry upserts the row for (database, key, field).
func (w *SQLiteWriter) WriteEntry(ctx context.Context, database, key, field string, rec recorder.Record) error {
	_, err := w.db.ExecContext(ctx, sqliteUpsert, database, key, field, string(rec.State), w.now().Unix())
	return err
}

func (w *SQLiteWriter) Close() error { return w.db.Close() }
