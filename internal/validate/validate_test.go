// SPDX-License-Identifier: MIT
package validate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"lower bound", 1, false},
		{"upper bound", 64, false},
		{"below", 0, true},
		{"above", 65, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Range("concurrency", tt.value, 1, 64)

			if tt.wantErr && v.IsValid() {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && !v.IsValid() {
				t.Errorf("unexpected error: %v", v.Err())
			}
		})
	}
}

func TestValidator_FloatRange(t *testing.T) {
	v := New()
	v.FloatRange("samplingRate", 0.5, 0, 1)
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}
	v.FloatRange("samplingRate", 1.5, 0, 1)
	if v.IsValid() {
		t.Fatal("expected error for 1.5")
	}
}

func TestValidator_OneOf(t *testing.T) {
	v := New()
	v.OneOf("backend.kind", "redis", []string{"redis", "badger"})
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}

	v.OneOf("backend.kind", "etcd", []string{"redis", "badger"})
	if v.IsValid() {
		t.Fatal("expected error for etcd")
	}
	if !strings.Contains(v.Err().Error(), `got "etcd"`) {
		t.Errorf("unexpected message: %v", v.Err())
	}
}

func TestValidator_NotEmptyAndPositive(t *testing.T) {
	v := New()
	v.NotEmpty("path", "  ")
	v.Positive("timeout", 0)

	if len(v.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(v.Errors()))
	}
}

func TestValidator_Custom(t *testing.T) {
	v := New()
	v.Custom("logLevel", "loud", func(val interface{}) error {
		_, err := ParseLogLevel(val.(string))
		return err
	})
	if v.IsValid() {
		t.Fatal("expected custom validation to fail")
	}
}

func TestValidator_ParentDirExists(t *testing.T) {
	dir := t.TempDir()

	v := New()
	v.ParentDirExists("metricsTextfile", "")
	v.ParentDirExists("metricsTextfile", filepath.Join(dir, "recorder.prom"))
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}

	v.ParentDirExists("metricsTextfile", filepath.Join(dir, "missing", "recorder.prom"))
	if v.IsValid() {
		t.Fatal("expected missing parent directory to fail")
	}

	file := filepath.Join(dir, "plain")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	v = New()
	v.ParentDirExists("metricsTextfile", filepath.Join(file, "recorder.prom"))
	if v.IsValid() {
		t.Fatal("expected file parent to fail")
	}
}

func TestValidationError_Format(t *testing.T) {
	v := New()
	if v.Err() != nil {
		t.Fatal("empty validator should return nil error")
	}

	v.AddError("a", "first", nil)
	if got := v.Err().Error(); got != "validation failed for a: first" {
		t.Errorf("unexpected single error %q", got)
	}

	v.AddError("b", "second", nil)
	err := v.Err()
	if got := err.Error(); got != "validation failed for a: first; validation failed for b: second" {
		t.Errorf("unexpected joined error %q", got)
	}

	var ve ValidationError
	if !errors.As(err, &ve) || len(ve.Errors()) != 2 {
		t.Errorf("expected ValidationError with 2 entries, got %#v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, s := range []string{"debug", "info", "warn", "error"} {
		if _, err := ParseLogLevel(s); err != nil {
			t.Errorf("ParseLogLevel(%q) failed: %v", s, err)
		}
	}
	if got, err := ParseLogLevel(" WARN "); err != nil || got != LogLevelWarn {
		t.Errorf("ParseLogLevel(\" WARN \") = %q, %v", got, err)
	}
	if _, err := ParseLogLevel("trace"); err == nil {
		t.Error("expected trace to be rejected")
	}
}
