// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"strings"

	"github.com/ManuGH/recorderctl/internal/validate"
)

// Validate validates an AppConfig using the centralized validation package.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.Custom("logLevel", cfg.LogLevel, func(value interface{}) error {
		_, err := validate.ParseLogLevel(value.(string))
		return err
	})

	v.OneOf("backend.kind", cfg.Backend.Kind, BackendKinds)
	switch cfg.Backend.Kind {
	case "redis":
		if strings.TrimSpace(cfg.Registry.Catalog) == "" {
			v.AddError("registry.catalog", "redis backend requires a database catalog", cfg.Registry.Catalog)
		}
	case "badger":
		v.NotEmpty("backend.badger.path", cfg.Backend.Badger.Path)
	case "sqlite":
		v.NotEmpty("backend.sqlite.path", cfg.Backend.SQLite.Path)
		v.ParentDirExists("backend.sqlite.path", cfg.Backend.SQLite.Path)
	}

	v.Positive("concurrency", cfg.Concurrency)
	if cfg.Timeout <= 0 {
		v.AddError("timeout", "must be positive", cfg.Timeout)
	}
	v.ParentDirExists("metricsTextfile", cfg.MetricsTextfile)

	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, []string{"grpc", "http", "stdout"})
	}
	v.FloatRange("telemetry.samplingRate", cfg.Telemetry.SamplingRate, 0, 1)

	return v.Err()
}
