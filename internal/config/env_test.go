// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	const key = "RECORDERCTL_TEST_INT"

	t.Setenv(key, "")
	assert.Equal(t, 3, ParseInt(key, 3))

	t.Setenv(key, " 12 ")
	assert.Equal(t, 12, ParseInt(key, 3))

	t.Setenv(key, "twelve")
	assert.Equal(t, 3, ParseInt(key, 3))
}

func TestParseBool(t *testing.T) {
	const key = "RECORDERCTL_TEST_BOOL"

	for _, v := range []string{"true", "1", "YES"} {
		t.Setenv(key, v)
		assert.True(t, ParseBool(key, false), v)
	}
	for _, v := range []string{"false", "0", "no"} {
		t.Setenv(key, v)
		assert.False(t, ParseBool(key, true), v)
	}
	t.Setenv(key, "maybe")
	assert.True(t, ParseBool(key, true))
}

func TestParseDuration(t *testing.T) {
	const key = "RECORDERCTL_TEST_DURATION"

	t.Setenv(key, "250ms")
	assert.Equal(t, 250*time.Millisecond, ParseDuration(key, time.Second))

	t.Setenv(key, "soon")
	assert.Equal(t, time.Second, ParseDuration(key, time.Second))
}

func TestParseFloat(t *testing.T) {
	const key = "RECORDERCTL_TEST_FLOAT"

	t.Setenv(key, "0.25")
	assert.InDelta(t, 0.25, ParseFloat(key, 1), 1e-9)

	t.Setenv(key, "a quarter")
	assert.InDelta(t, 1.0, ParseFloat(key, 1), 0)
}

func TestParseList(t *testing.T) {
	const key = "RECORDERCTL_TEST_LIST"

	t.Setenv(key, "")
	assert.Equal(t, []string{"X"}, ParseList(key, []string{"X"}))

	t.Setenv(key, " A , ,B,")
	assert.Equal(t, []string{"A", "B"}, ParseList(key, nil))
}

func TestParseString_Sensitive(t *testing.T) {
	t.Setenv(EnvRedisPassword, "hunter2")
	assert.Equal(t, "hunter2", ParseString(EnvRedisPassword, ""))
	assert.True(t, sensitive(EnvRedisPassword))
	assert.False(t, sensitive(EnvCatalog))
}
