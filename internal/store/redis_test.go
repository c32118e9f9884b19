// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/ManuGH/recorderctl/internal/catalog"
	"github.com/ManuGH/recorderctl/internal/recorder"
	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticResolver map[string]catalog.Endpoint

func (r staticResolver) Resolve(_ context.Context, database string) (catalog.Endpoint, error) {
	ep, ok := r[database]
	if !ok {
		return catalog.Endpoint{}, catalog.ErrUnknownDatabase
	}
	return ep, nil
}

// setupMiniRedis starts a test Redis server and a writer routing CONFIG_DB to
// db 4 and STATE_DB to db 6.
func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisWriter) {
	t.Helper()

	mr := miniredis.RunT(t)
	resolver := staticResolver{
		"CONFIG_DB": {Network: "tcp", Addr: mr.Addr(), DB: 4, Separator: "|"},
		"STATE_DB":  {Network: "tcp", Addr: mr.Addr(), DB: 6, Separator: "|"},
		"APPL_DB":   {Network: "tcp", Addr: mr.Addr(), DB: 0, Separator: ":"},
	}
	w := NewRedisWriter(resolver, RedisOptions{}, zerolog.Nop())
	t.Cleanup(func() { _ = w.Close() })
	return mr, w
}

func TestRedisWriter_WriteEntry(t *testing.T) {
	mr, w := setupMiniRedis(t)

	err := w.WriteEntry(context.Background(), "CONFIG_DB", "RECORDER", "CONFIG_DB", recorder.Record{State: recorder.StateEnabled})
	require.NoError(t, err)

	assert.Equal(t, "enabled", mr.DB(4).HGet("RECORDER|CONFIG_DB", "state"))
	assert.Empty(t, mr.DB(6).Keys(), "STATE_DB must not be touched")
	assert.Empty(t, mr.DB(0).Keys())
}

func TestRedisWriter_RoutesPerDatabase(t *testing.T) {
	mr, w := setupMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, w.WriteEntry(ctx, "CONFIG_DB", "RECORDER", "CONFIG_DB", recorder.Record{State: recorder.StateEnabled}))
	require.NoError(t, w.WriteEntry(ctx, "STATE_DB", "RECORDER", "STATE_DB", recorder.Record{State: recorder.StateDisabled}))
	require.NoError(t, w.WriteEntry(ctx, "APPL_DB", "RECORDER", "APPL_DB", recorder.Record{State: recorder.StateEnabled}))

	assert.Equal(t, "enabled", mr.DB(4).HGet("RECORDER|CONFIG_DB", "state"))
	assert.Equal(t, "disabled", mr.DB(6).HGet("RECORDER|STATE_DB", "state"))
	assert.Equal(t, "enabled", mr.DB(0).HGet("RECORDER:APPL_DB", "state"))
}

func TestRedisWriter_BlindOverwrite(t *testing.T) {
	mr, w := setupMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, w.WriteEntry(ctx, "CONFIG_DB", "RECORDER", "CONFIG_DB", recorder.Record{State: recorder.StateEnabled}))
	require.NoError(t, w.WriteEntry(ctx, "CONFIG_DB", "RECORDER", "CONFIG_DB", recorder.Record{State: recorder.StateDisabled}))
	require.NoError(t, w.WriteEntry(ctx, "CONFIG_DB", "RECORDER", "CONFIG_DB", recorder.Record{State: recorder.StateDisabled}))

	assert.Equal(t, "disabled", mr.DB(4).HGet("RECORDER|CONFIG_DB", "state"))
	fields, err := mr.DB(4).HKeys("RECORDER|CONFIG_DB")
	require.NoError(t, err)
	assert.Equal(t, []string{"state"}, fields)
}

func TestRedisWriter_ReplacesWholeRecord(t *testing.T) {
	mr, w := setupMiniRedis(t)

	mr.DB(4).HSet("RECORDER|CONFIG_DB", "state", "disabled")
	mr.DB(4).HSet("RECORDER|CONFIG_DB", "stale", "x")

	err := w.WriteEntry(context.Background(), "CONFIG_DB", "RECORDER", "CONFIG_DB", recorder.Record{State: recorder.StateEnabled})
	require.NoError(t, err)

	fields, err := mr.DB(4).HKeys("RECORDER|CONFIG_DB")
	require.NoError(t, err)
	assert.Equal(t, []string{"state"}, fields)
	assert.Equal(t, "enabled", mr.DB(4).HGet("RECORDER|CONFIG_DB", "state"))
}

func TestRedisWriter_ErrorTextPreserved(t *testing.T) {
	mr, w := setupMiniRedis(t)
	mr.SetError("MISCONF Redis is configured to save RDB snapshots, but it's currently unable to persist to disk.")

	err := w.WriteEntry(context.Background(), "CONFIG_DB", "RECORDER", "CONFIG_DB", recorder.Record{State: recorder.StateEnabled})
	require.Error(t, err)
	assert.Equal(t, "MISCONF Redis is configured to save RDB snapshots, but it's currently unable to persist to disk.", err.Error())
}

func TestRedisWriter_ResolveFailure(t *testing.T) {
	_, w := setupMiniRedis(t)

	err := w.WriteEntry(context.Background(), "BOGUS_DB", "RECORDER", "BOGUS_DB", recorder.Record{State: recorder.StateEnabled})
	require.ErrorIs(t, err, catalog.ErrUnknownDatabase)
	assert.Contains(t, err.Error(), "resolve BOGUS_DB")
}

func TestRedisWriter_ServerDown(t *testing.T) {
	mr, w := setupMiniRedis(t)
	mr.Close()

	err := w.WriteEntry(context.Background(), "CONFIG_DB", "RECORDER", "CONFIG_DB", recorder.Record{State: recorder.StateEnabled})
	require.Error(t, err)
}

func TestRedisWriter_ReusesClients(t *testing.T) {
	_, w := setupMiniRedis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, w.WriteEntry(ctx, "CONFIG_DB", "RECORDER", "CONFIG_DB", recorder.Record{State: recorder.StateEnabled}))
	}
	require.NoError(t, w.WriteEntry(ctx, "STATE_DB", "RECORDER", "STATE_DB", recorder.Record{State: recorder.StateEnabled}))

	w.mu.Lock()
	n := len(w.clients)
	w.mu.Unlock()
	assert.Equal(t, 2, n, "one client per endpoint")

	require.NoError(t, w.Close())
	w.mu.Lock()
	assert.Empty(t, w.clients)
	w.mu.Unlock()
}

func TestRedisWriter_CanceledContext(t *testing.T) {
	_, w := setupMiniRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.WriteEntry(ctx, "CONFIG_DB", "RECORDER", "CONFIG_DB", recorder.Record{State: recorder.StateEnabled})
	require.True(t, errors.Is(err, context.Canceled), "got %v", err)
}
