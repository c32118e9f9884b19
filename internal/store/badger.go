// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ManuGH/recorderctl/internal/recorder"
	"github.com/dgraph-io/badger/v4"
)

// BadgerWriter keeps entries in an embedded badger directory:
// key = "<database>/<key>|<field>" (JSON record).
type BadgerWriter struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the badger directory at path.
func OpenBadger(path string) (*BadgerWriter, error) {
	if path == "" {
		return nil, fmt.Errorf("badger backend requires a path")
	}
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %s: %w", path, err)
	}
	return &BadgerWriter{db: db}, nil
}

func badgerKey(database, key, field string) []byte {
	return []byte(database + "/" + key + "|" + field)
}

// WriteEntry overwrites the record stored for database/key|field.
func (w *BadgerWriter) WriteEntry(ctx context.Context, database, key, field string, rec recorder.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buf, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return w.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(database, key, field), buf)
	})
}

func (w *BadgerWriter) Close() error { return w.db.Close() }
