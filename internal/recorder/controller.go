// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package recorder toggles the recorder state stored in the registered databases.
package recorder

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mocks.go github.com/ManuGH/recorderctl/internal/recorder Registry,Writer

import (
	"context"
	"fmt"
	"slices"

	xglog "github.com/ManuGH/recorderctl/internal/log"
	"github.com/ManuGH/recorderctl/internal/metrics"
	"github.com/ManuGH/recorderctl/internal/telemetry"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// EntryKey is the key every recorder record is written under.
const EntryKey = "RECORDER"

// Registry lists the databases that may be targeted. It is queried on every
// operation and never cached.
type Registry interface {
	ListDatabases(ctx context.Context) ([]string, error)
}

// Writer overwrites one field under one key in one database.
type Writer interface {
	WriteEntry(ctx context.Context, database, key, field string, rec Record) error
}

// Controller validates requests against a Registry and writes them through a Writer.
type Controller struct {
	registry    Registry
	writer      Writer
	logger      zerolog.Logger
	tracer      trace.Tracer
	concurrency int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger overrides the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithTracer overrides the tracer used for operation spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Controller) { c.tracer = t }
}

// WithConcurrency bounds the number of parallel writes in SetStateAll.
// Values below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(c *Controller) {
		if n < 1 {
			n = 1
		}
		c.concurrency = n
	}
}

// NewController returns a Controller writing through w for the databases reg lists.
func NewController(reg Registry, w Writer, opts ...Option) *Controller {
	c := &Controller{
		registry:    reg,
		writer:      w,
		logger:      xglog.WithComponent("recorder"),
		tracer:      telemetry.Tracer("github.com/ManuGH/recorderctl/internal/recorder"),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetState writes state to a single database. The database must be listed by
// the registry; otherwise nothing is written.
func (c *Controller) SetState(ctx context.Context, database string, state State) (Confirmation, error) {
	ctx, span := c.tracer.Start(ctx, "recorder.SetState",
		trace.WithAttributes(telemetry.RecorderAttributes(database, string(state))...))
	defer span.End()

	logger := xglog.WithContext(ctx, c.logger)

	if !state.Valid() {
		err := fmt.Errorf("%w: %q", ErrInvalidState, state)
		failSpan(span, err)
		return Confirmation{}, err
	}

	names, err := c.listDatabases(ctx, logger)
	if err != nil {
		failSpan(span, err)
		return Confirmation{}, err
	}

	if !slices.Contains(names, database) {
		metrics.RecordUnknownDatabase()
		logger.Warn().
			Str(xglog.FieldEvent, "recorder.unknown_database").
			Str(xglog.FieldDatabase, database).
			Strs("known", names).
			Msg("database not in registry")
		err := &UnknownDatabaseError{Name: database}
		failSpan(span, err)
		return Confirmation{}, err
	}

	if err := c.write(ctx, logger, database, state); err != nil {
		failSpan(span, err)
		return Confirmation{}, err
	}

	return Confirmation{Database: database, State: state}, nil
}

// SetStateAll writes state to every database the registry lists. A failing
// database does not stop the others; if any write fails a *BulkError naming
// every failed database is returned. An empty registry is a successful no-op
// reported through Summary.Empty.
func (c *Controller) SetStateAll(ctx context.Context, state State) (Summary, error) {
	ctx, span := c.tracer.Start(ctx, "recorder.SetStateAll",
		trace.WithAttributes(telemetry.RecorderAttributes("", string(state))...))
	defer span.End()

	logger := xglog.WithContext(ctx, c.logger)

	if !state.Valid() {
		err := fmt.Errorf("%w: %q", ErrInvalidState, state)
		failSpan(span, err)
		return Summary{}, err
	}

	names, err := c.listDatabases(ctx, logger)
	if err != nil {
		failSpan(span, err)
		return Summary{}, err
	}

	slices.Sort(names)
	names = slices.Compact(names)

	if len(names) == 0 {
		metrics.RecordBulk(string(state), "empty")
		logger.Info().
			Str(xglog.FieldEvent, "recorder.bulk.done").
			Str(xglog.FieldState, string(state)).
			Int(xglog.FieldTargets, 0).
			Msg("no databases found")
		return Summary{State: state}, nil
	}

	// One goroutine per slot; the report keeps the sorted order.
	outcomes := make([]Outcome, len(names))
	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, name := range names {
		g.Go(func() error {
			outcomes[i] = Outcome{Database: name, Err: c.write(ctx, logger, name, state)}
			return nil
		})
	}
	_ = g.Wait()

	var failed []Outcome
	for _, o := range outcomes {
		if !o.Succeeded() {
			failed = append(failed, o)
		}
	}

	logger.Info().
		Str(xglog.FieldEvent, "recorder.bulk.done").
		Str(xglog.FieldState, string(state)).
		Int(xglog.FieldTargets, len(names)).
		Int(xglog.FieldFailed, len(failed)).
		Msg("bulk recorder update finished")

	span.SetAttributes(telemetry.BulkAttributes(len(names), len(failed))...)

	if len(failed) > 0 {
		metrics.RecordBulk(string(state), "failure")
		err := &BulkError{State: state, Total: len(names), Failed: failed}
		failSpan(span, err)
		return Summary{}, err
	}

	metrics.RecordBulk(string(state), "success")
	return Summary{State: state, Outcomes: outcomes}, nil
}

// ListDatabases returns the registry's current databases, sorted.
func (c *Controller) ListDatabases(ctx context.Context) ([]string, error) {
	names, err := c.listDatabases(ctx, xglog.WithContext(ctx, c.logger))
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

func (c *Controller) listDatabases(ctx context.Context, logger zerolog.Logger) ([]string, error) {
	names, err := c.registry.ListDatabases(ctx)
	if err != nil {
		metrics.RecordRegistryError()
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "recorder.registry.unavailable").
			Msg("failed to list databases")
		return nil, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}
	return slices.Clone(names), nil
}

func (c *Controller) write(ctx context.Context, logger zerolog.Logger, database string, state State) error {
	ctx, span := c.tracer.Start(ctx, "recorder.WriteEntry",
		trace.WithAttributes(telemetry.RecorderAttributes(database, string(state))...))
	defer span.End()

	err := c.writer.WriteEntry(ctx, database, EntryKey, database, Record{State: state})
	if err != nil {
		metrics.RecordWrite(database, "failure")
		failSpan(span, err)
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "recorder.write.failed").
			Str(xglog.FieldDatabase, database).
			Str(xglog.FieldKey, EntryKey).
			Str(xglog.FieldState, string(state)).
			Msg("failed to write recorder state")
		return &WriteFailedError{Database: database, Err: err}
	}

	metrics.RecordWrite(database, "success")
	metrics.RecordState(database, state == StateEnabled)
	logger.Info().
		Str(xglog.FieldEvent, "recorder.write.ok").
		Str(xglog.FieldDatabase, database).
		Str(xglog.FieldKey, EntryKey).
		Str(xglog.FieldState, string(state)).
		Msg("recorder state written")
	return nil
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
