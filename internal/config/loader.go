// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ManuGH/recorderctl/internal/catalog"
	xglog "github.com/ManuGH/recorderctl/internal/log"
	"gopkg.in/yaml.v3"
)

// Environment variables understood by the loader.
const (
	EnvConfig          = "RECORDERCTL_CONFIG"
	EnvLogLevel        = "RECORDERCTL_LOG_LEVEL"
	EnvCatalog         = "RECORDERCTL_CATALOG"
	EnvDatabases       = "RECORDERCTL_DATABASES"
	EnvPreferUnix      = "RECORDERCTL_PREFER_UNIX_SOCKET"
	EnvBackend         = "RECORDERCTL_BACKEND"
	EnvRedisPassword   = "RECORDERCTL_REDIS_PASSWORD"
	EnvBadgerPath      = "RECORDERCTL_BADGER_PATH"
	EnvSQLitePath      = "RECORDERCTL_SQLITE_PATH"
	EnvConcurrency     = "RECORDERCTL_CONCURRENCY"
	EnvTimeout         = "RECORDERCTL_TIMEOUT"
	EnvMetricsTextfile = "RECORDERCTL_METRICS_TEXTFILE"
	EnvOTelEnabled     = "RECORDERCTL_OTEL_ENABLED"
	EnvOTelExporter    = "RECORDERCTL_OTEL_EXPORTER"
	EnvOTelEndpoint    = "RECORDERCTL_OTEL_ENDPOINT"
	EnvOTelSampling    = "RECORDERCTL_OTEL_SAMPLING_RATE"
)

// Backend kinds accepted by backend.kind.
var BackendKinds = []string{"redis", "badger", "sqlite", "memory"}

// Loader handles configuration loading with precedence
type Loader struct {
	configPath string
	version    string

	// set when the catalog came from the file or the environment
	catalogExplicit bool
}

// NewLoader creates a new configuration loader
func NewLoader(configPath, version string) *Loader {
	return &Loader{configPath: configPath, version: version}
}

// Defaults returns the configuration used when neither file nor environment say otherwise.
func Defaults() AppConfig {
	return AppConfig{
		LogLevel: "warn",
		Registry: RegistryConfig{
			Catalog: catalog.DefaultPath,
		},
		Backend: BackendConfig{
			Kind: "redis",
			Redis: RedisConfig{
				DialTimeout:  5 * time.Second,
				WriteTimeout: 3 * time.Second,
			},
			SQLite: SQLiteConfig{BusyTimeout: 5 * time.Second},
		},
		Concurrency: 1,
		Timeout:     10 * time.Second,
		Telemetry: TelemetryConfig{
			Exporter:     "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
		},
	}
}

// Load loads configuration with precedence: ENV > File > Defaults
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()
	l.catalogExplicit = false

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		l.mergeFileConfig(&cfg, fileCfg)
	}

	l.mergeEnvConfig(&cfg)

	// A static database list replaces the default catalog unless a catalog was asked for.
	if len(cfg.Registry.Databases) > 0 && !l.catalogExplicit {
		cfg.Registry.Catalog = ""
	}

	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFile loads configuration from a YAML file with STRICT parsing.
// Unknown fields will cause a fatal error to prevent misconfiguration.
func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("%w: %s (only YAML supported)", ErrUnsupportedFormat, ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

func (l *Loader) mergeFileConfig(cfg *AppConfig, src *FileConfig) {
	if src.LogLevel != "" {
		cfg.LogLevel = src.LogLevel
	}
	if r := src.Registry; r != nil {
		if r.Catalog != nil {
			cfg.Registry.Catalog = *r.Catalog
			l.catalogExplicit = true
		}
		if len(r.Databases) > 0 {
			cfg.Registry.Databases = append([]string(nil), r.Databases...)
		}
		if r.PreferUnixSocket != nil {
			cfg.Registry.PreferUnixSocket = *r.PreferUnixSocket
		}
	}
	if b := src.Backend; b != nil {
		if b.Kind != "" {
			cfg.Backend.Kind = b.Kind
		}
		if b.Redis != nil {
			if b.Redis.Password != "" {
				cfg.Backend.Redis.Password = b.Redis.Password
			}
			if b.Redis.DialTimeout != nil {
				cfg.Backend.Redis.DialTimeout = *b.Redis.DialTimeout
			}
			if b.Redis.WriteTimeout != nil {
				cfg.Backend.Redis.WriteTimeout = *b.Redis.WriteTimeout
			}
		}
		if b.Badger != nil && b.Badger.Path != "" {
			cfg.Backend.Badger.Path = b.Badger.Path
		}
		if b.SQLite != nil {
			if b.SQLite.Path != "" {
				cfg.Backend.SQLite.Path = b.SQLite.Path
			}
			if b.SQLite.BusyTimeout != nil {
				cfg.Backend.SQLite.BusyTimeout = *b.SQLite.BusyTimeout
			}
		}
	}
	if src.Concurrency != nil {
		cfg.Concurrency = *src.Concurrency
	}
	if src.Timeout != nil {
		cfg.Timeout = *src.Timeout
	}
	if src.MetricsTextfile != "" {
		cfg.MetricsTextfile = src.MetricsTextfile
	}
	if t := src.Telemetry; t != nil {
		if t.Enabled != nil {
			cfg.Telemetry.Enabled = *t.Enabled
		}
		if t.Exporter != "" {
			cfg.Telemetry.Exporter = t.Exporter
		}
		if t.Endpoint != "" {
			cfg.Telemetry.Endpoint = t.Endpoint
		}
		if t.SamplingRate != nil {
			cfg.Telemetry.SamplingRate = *t.SamplingRate
		}
	}
}

func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(ParseString(EnvLogLevel, cfg.LogLevel)))

	if v, ok := lookup(xglog.WithComponent("config"), EnvCatalog); ok {
		cfg.Registry.Catalog = strings.TrimSpace(v)
		l.catalogExplicit = true
	}
	cfg.Registry.Databases = ParseList(EnvDatabases, cfg.Registry.Databases)
	cfg.Registry.PreferUnixSocket = ParseBool(EnvPreferUnix, cfg.Registry.PreferUnixSocket)

	cfg.Backend.Kind = strings.ToLower(ParseString(EnvBackend, cfg.Backend.Kind))
	cfg.Backend.Redis.Password = ParseString(EnvRedisPassword, cfg.Backend.Redis.Password)
	cfg.Backend.Badger.Path = ParseString(EnvBadgerPath, cfg.Backend.Badger.Path)
	cfg.Backend.SQLite.Path = ParseString(EnvSQLitePath, cfg.Backend.SQLite.Path)

	cfg.Concurrency = ParseInt(EnvConcurrency, cfg.Concurrency)
	cfg.Timeout = ParseDuration(EnvTimeout, cfg.Timeout)
	cfg.MetricsTextfile = ParseString(EnvMetricsTextfile, cfg.MetricsTextfile)

	cfg.Telemetry.Enabled = ParseBool(EnvOTelEnabled, cfg.Telemetry.Enabled)
	cfg.Telemetry.Exporter = ParseString(EnvOTelExporter, cfg.Telemetry.Exporter)
	cfg.Telemetry.Endpoint = ParseString(EnvOTelEndpoint, cfg.Telemetry.Endpoint)
	cfg.Telemetry.SamplingRate = ParseFloat(EnvOTelSampling, cfg.Telemetry.SamplingRate)
}
