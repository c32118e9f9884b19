// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"sync"

	"github.com/ManuGH/recorderctl/internal/recorder"
)

// Write is one call observed by Memory.
type Write struct {
	Database string
	Key      string
	Field    string
	Record   recorder.Record
}

// Memory is an in-process backend. It keeps the latest record per entry and
// the full write log, and can be told to fail writes for given databases.
type Memory struct {
	mu      sync.Mutex
	entries map[Write]recorder.Record
	writes  []Write
	fail    map[string]error
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[Write]recorder.Record),
		fail:    make(map[string]error),
	}
}

// FailWith makes every later write to database return err. A nil err clears it.
func (m *Memory) FailWith(database string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.fail, database)
		return
	}
	m.fail[database] = err
}

// WriteEntry records the write unless a failure is configured for database.
func (m *Memory) WriteEntry(ctx context.Context, database, key, field string, rec recorder.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w := Write{Database: database, Key: key, Field: field, Record: rec}
	m.writes = append(m.writes, w)
	if err := m.fail[database]; err != nil {
		return err
	}
	m.entries[Write{Database: database, Key: key, Field: field}] = rec
	return nil
}

// Entry returns the stored record for an entry.
func (m *Memory) Entry(database, key, field string) (recorder.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.entries[Write{Database: database, Key: key, Field: field}]
	return rec, ok
}

// Writes returns every attempted write in call order, failed ones included.
func (m *Memory) Writes() []Write {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Write, len(m.writes))
	copy(out, m.writes)
	return out
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
