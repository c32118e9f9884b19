// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package store implements the key-value backends recorder state is written to.
// Every write is a blind overwrite of one field under one key in one database.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ManuGH/recorderctl/internal/catalog"
	"github.com/ManuGH/recorderctl/internal/persistence/sqlite"
	"github.com/ManuGH/recorderctl/internal/recorder"
	"github.com/rs/zerolog"
)

// Backend kinds accepted by Open.
const (
	KindRedis  = "redis"
	KindBadger = "badger"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// ErrUnknownBackend is returned by Open for unsupported backend kinds.
var ErrUnknownBackend = errors.New("unknown store backend")

// Resolver maps a database name to its Redis endpoint.
type Resolver interface {
	Resolve(ctx context.Context, database string) (catalog.Endpoint, error)
}

// Options selects and configures a backend.
type Options struct {
	Kind     string
	Redis    RedisOptions
	Badger   BadgerOptions
	SQLite   SQLiteOptions
	Resolver Resolver // required by the redis backend
	Logger   zerolog.Logger
}

// BadgerOptions configures the badger backend.
type BadgerOptions struct {
	Path string
}

// SQLiteOptions configures the sqlite backend.
type SQLiteOptions struct {
	Path   string
	Config sqlite.Config
}

// Handle is an opened backend.
type Handle struct {
	recorder.Writer
	io.Closer
	Kind string
}

// Open creates the backend named by opts.Kind.
func Open(ctx context.Context, opts Options) (*Handle, error) {
	switch opts.Kind {
	case KindRedis, "":
		if opts.Resolver == nil {
			return nil, fmt.Errorf("redis backend requires a database catalog")
		}
		w := NewRedisWriter(opts.Resolver, opts.Redis, opts.Logger)
		return &Handle{Writer: w, Closer: w, Kind: KindRedis}, nil
	case KindBadger:
		w, err := OpenBadger(opts.Badger.Path)
		if err != nil {
			return nil, err
		}
		return &Handle{Writer: w, Closer: w, Kind: KindBadger}, nil
	case KindSQLite:
		w, err := OpenSQLite(ctx, opts.SQLite.Path, opts.SQLite.Config)
		if err != nil {
			return nil, err
		}
		return &Handle{Writer: w, Closer: w, Kind: KindSQLite}, nil
	case KindMemory:
		w := NewMemory()
		return &Handle{Writer: w, Closer: w, Kind: KindMemory}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, opts.Kind)
	}
}
