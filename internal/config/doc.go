// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config provides configuration management for recorderctl.
//
// Precedence is ENV > YAML file > defaults. The file is parsed strictly:
// unknown keys, trailing documents and non-YAML extensions are rejected.
package config
