// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ManuGH/recorderctl/internal/config"
	xglog "github.com/ManuGH/recorderctl/internal/log"
	"github.com/ManuGH/recorderctl/internal/metrics"
	"github.com/ManuGH/recorderctl/internal/persistence/sqlite"
	"github.com/ManuGH/recorderctl/internal/recorder"
	"github.com/ManuGH/recorderctl/internal/registry"
	"github.com/ManuGH/recorderctl/internal/store"
	"github.com/ManuGH/recorderctl/internal/telemetry"
	"github.com/ManuGH/recorderctl/internal/validate"
	"github.com/ManuGH/recorderctl/internal/version"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// app holds the per-invocation wiring shared by all commands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string

	cfg      config.AppConfig
	logger   zerolog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	provider *telemetry.Provider
	handle   *store.Handle
	loaded   bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

// load reads the configuration and initialises logging, tracing and the
// invocation context. It is safe to call more than once.
func (a *app) load() error {
	if a.loaded {
		return nil
	}

	path := a.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	cfg, err := config.NewLoader(path, version.Version).Load()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		level, err := validate.ParseLogLevel(a.logLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level.String()
	}
	a.cfg = cfg

	xglog.Configure(xglog.Config{
		Level:   cfg.LogLevel,
		Output:  a.stderr,
		Version: version.Version,
	})

	ctx := xglog.ContextWithInvocationID(context.Background(), uuid.NewString())
	a.ctx, a.cancel = context.WithTimeout(ctx, cfg.Timeout)
	a.logger = xglog.WithContext(a.ctx, xglog.WithComponent("cli"))

	a.provider, err = telemetry.NewProvider(a.ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "recorderctl",
		ServiceVersion: version.Version,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
		Output:         a.stderr,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	a.loaded = true
	a.logger.Debug().
		Str(xglog.FieldEvent, "cli.config.loaded").
		Str(xglog.FieldBackend, cfg.Backend.Kind).
		Str(xglog.FieldPath, cfg.Registry.Catalog).
		Msg("configuration loaded")
	return nil
}

func (a *app) registry() recorder.Registry {
	return registry.New(a.cfg.Registry.Catalog, a.cfg.Registry.Databases, a.cfg.Registry.PreferUnixSocket)
}

// controller builds a Controller over a freshly opened store.
func (a *app) controller() (*recorder.Controller, error) {
	if err := a.load(); err != nil {
		return nil, err
	}
	reg := a.registry()

	sqliteCfg := sqlite.DefaultConfig()
	sqliteCfg.BusyTimeout = a.cfg.Backend.SQLite.BusyTimeout
	opts := store.Options{
		Kind: a.cfg.Backend.Kind,
		Redis: store.RedisOptions{
			Password:     a.cfg.Backend.Redis.Password,
			DialTimeout:  a.cfg.Backend.Redis.DialTimeout,
			WriteTimeout: a.cfg.Backend.Redis.WriteTimeout,
		},
		Badger: store.BadgerOptions{Path: a.cfg.Backend.Badger.Path},
		SQLite: store.SQLiteOptions{Path: a.cfg.Backend.SQLite.Path, Config: sqliteCfg},
		Logger: xglog.WithContext(a.ctx, xglog.Derive(func(c *zerolog.Context) {
			*c = c.Str(xglog.FieldComponent, "store").Str(xglog.FieldBackend, a.cfg.Backend.Kind)
		})),
	}
	if cr, ok := reg.(*registry.CatalogRegistry); ok {
		opts.Resolver = cr
	}

	handle, err := store.Open(a.ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", a.cfg.Backend.Kind, err)
	}
	a.handle = handle

	return recorder.NewController(reg, handle,
		recorder.WithConcurrency(a.cfg.Concurrency),
		recorder.WithLogger(xglog.WithContext(a.ctx, xglog.WithComponent("recorder"))),
	), nil
}

// close releases the store, writes the metrics textfile and flushes spans.
func (a *app) close() {
	if a.cancel != nil {
		defer a.cancel()
	}
	if !a.loaded {
		return
	}
	if a.handle != nil {
		if err := a.handle.Close(); err != nil {
			a.logger.Warn().Err(err).Str(xglog.FieldEvent, "cli.store.close_failed").Msg("failed to close store")
		}
	}
	if path := a.cfg.MetricsTextfile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			a.logger.Warn().Err(err).Str(xglog.FieldPath, path).Msg("failed to write metrics textfile")
		}
	}
	if a.provider != nil {
		if err := a.provider.Shutdown(context.Background()); err != nil {
			a.logger.Warn().Err(err).Msg("failed to flush telemetry")
		}
	}
}
