// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ManuGH/recorderctl/internal/catalog"
	xglog "github.com/ManuGH/recorderctl/internal/log"
	"github.com/ManuGH/recorderctl/internal/recorder"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisOptions holds Redis connection settings shared by all databases.
type RedisOptions struct {
	Password     string        // Redis password (optional)
	DialTimeout  time.Duration // defaults to 5s
	WriteTimeout time.Duration // defaults to 3s
}

// RedisWriter writes entries as Redis hashes: HSET <key><sep><field> <record fields>.
// Each database is routed to its own instance and logical db through the Resolver.
type RedisWriter struct {
	resolver Resolver
	opts     RedisOptions
	logger   zerolog.Logger

	mu      sync.Mutex
	clients map[string]*redis.Client
}

// NewRedisWriter creates a writer that opens clients lazily per endpoint.
func NewRedisWriter(resolver Resolver, opts RedisOptions, logger zerolog.Logger) *RedisWriter {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 5 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 3 * time.Second
	}
	return &RedisWriter{
		resolver: resolver,
		opts:     opts,
		logger:   logger,
		clients:  make(map[string]*redis.Client),
	}
}

// WriteEntry overwrites the record fields of key<sep>field in database.
// Redis errors are returned unwrapped so their text reaches the operator as-is.
func (w *RedisWriter) WriteEntry(ctx context.Context, database, key, field string, rec recorder.Record) error {
	ep, err := w.resolver.Resolve(ctx, database)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", database, err)
	}

	fields := rec.Fields()
	args := make([]any, 0, 2*len(fields))
	for k, v := range fields {
		args = append(args, k, v)
	}

	// The hash is replaced as a whole so fields from earlier writers do not survive.
	hashKey := key + ep.Separator + field
	_, err = w.client(ep).TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, hashKey)
		p.HSet(ctx, hashKey, args...)
		return nil
	})
	if err != nil {
		return err
	}

	w.logger.Debug().
		Str(xglog.FieldAddr, ep.Addr).
		Int("db", ep.DB).
		Str(xglog.FieldKey, hashKey).
		Msg("entry replaced")
	return nil
}

func (w *RedisWriter) client(ep catalog.Endpoint) *redis.Client {
	id := ep.Network + "://" + ep.Addr + "/" + strconv.Itoa(ep.DB)

	w.mu.Lock()
	defer w.mu.Unlock()
	if c, ok := w.clients[id]; ok {
		return c
	}
	c := redis.NewClient(&redis.Options{
		Network:      ep.Network,
		Addr:         ep.Addr,
		Password:     w.opts.Password,
		DB:           ep.DB,
		DialTimeout:  w.opts.DialTimeout,
		ReadTimeout:  w.opts.WriteTimeout,
		WriteTimeout: w.opts.WriteTimeout,
		PoolSize:     2,
	})
	w.clients[id] = c
	return c
}

// Close closes every client opened so far.
func (w *RedisWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	for id, c := range w.clients {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", id, err))
		}
		delete(w.clients, id)
	}
	return errors.Join(errs...)
}
