// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

// AppConfig is the effective configuration after defaults, file and environment
// have been merged.
type AppConfig struct {
	Version         string
	LogLevel        string
	Registry        RegistryConfig
	Backend         BackendConfig
	Concurrency     int
	Timeout         time.Duration
	MetricsTextfile string
	Telemetry       TelemetryConfig
}

// RegistryConfig selects where the set of databases comes from.
type RegistryConfig struct {
	Catalog          string   // catalog file; wins over Databases when set
	Databases        []string // static list used without a catalog
	PreferUnixSocket bool
}

// BackendConfig selects and configures the key-value backend.
type BackendConfig struct {
	Kind   string
	Redis  RedisConfig
	Badger BadgerConfig
	SQLite SQLiteConfig
}

type RedisConfig struct {
	Password     string
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

type BadgerConfig struct {
	Path string
}

type SQLiteConfig struct {
	Path        string
	BusyTimeout time.Duration
}

// TelemetryConfig configures OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled      bool
	Exporter     string
	Endpoint     string
	SamplingRate float64
}

// FileConfig mirrors the YAML file. Pointers distinguish "unset" from zero values.
type FileConfig struct {
	LogLevel        string               `yaml:"logLevel,omitempty"`
	Registry        *RegistryFileConfig  `yaml:"registry,omitempty"`
	Backend         *BackendFileConfig   `yaml:"backend,omitempty"`
	Concurrency     *int                 `yaml:"concurrency,omitempty"`
	Timeout         *time.Duration       `yaml:"timeout,omitempty"`
	MetricsTextfile string               `yaml:"metricsTextfile,omitempty"`
	Telemetry       *TelemetryFileConfig `yaml:"telemetry,omitempty"`
}

type RegistryFileConfig struct {
	Catalog          *string  `yaml:"catalog,omitempty"`
	Databases        []string `yaml:"databases,omitempty"`
	PreferUnixSocket *bool    `yaml:"preferUnixSocket,omitempty"`
}

type BackendFileConfig struct {
	Kind  string `yaml:"kind,omitempty"`
	Redis *struct {
		Password     string         `yaml:"password,omitempty"`
		DialTimeout  *time.Duration `yaml:"dialTimeout,omitempty"`
		WriteTimeout *time.Duration `yaml:"writeTimeout,omitempty"`
	} `yaml:"redis,omitempty"`
	Badger *struct {
		Path string `yaml:"path,omitempty"`
	} `yaml:"badger,omitempty"`
	SQLite *struct {
		Path        string         `yaml:"path,omitempty"`
		BusyTimeout *time.Duration `yaml:"busyTimeout,omitempty"`
	} `yaml:"sqlite,omitempty"`
}

type TelemetryFileConfig struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"`
	Endpoint     string   `yaml:"endpoint,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
}
