// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestConfigure_ComponentAndService(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "svc-test", Version: "v9"})
	t.Cleanup(func() { Configure(Config{}) })

	l := WithComponent("recorder")
	l.Debug().Str(FieldDatabase, "CONFIG_DB").Msg("write")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["service"] != "svc-test" {
		t.Errorf("expected service svc-test, got %v", entry["service"])
	}
	if entry["version"] != "v9" {
		t.Errorf("expected version v9, got %v", entry["version"])
	}
	if entry[FieldComponent] != "recorder" {
		t.Errorf("expected component recorder, got %v", entry[FieldComponent])
	}
	if entry[FieldDatabase] != "CONFIG_DB" {
		t.Errorf("expected database CONFIG_DB, got %v", entry[FieldDatabase])
	}
}

func TestConfigure_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	l := WithComponent("test")
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn entry should be written")
	}
}

func TestConfigure_InvalidLevelFallsBackToWarn(t *testing.T) {
	Configure(Config{Level: "chatty", Output: &bytes.Buffer{}})
	t.Cleanup(func() { Configure(Config{}) })

	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("expected warn level, got %s", zerolog.GlobalLevel())
	}
}

func TestDerive(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "info", Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	l := Derive(func(c *zerolog.Context) {
		*c = c.Str(FieldBackend, "redis")
	})
	l.Info().Msg("derived")

	if !strings.Contains(buf.String(), `"backend":"redis"`) {
		t.Errorf("expected backend field in %q", buf.String())
	}
}
