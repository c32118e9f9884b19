// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldInvocationID = "invocation_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldCommand   = "command"

	// Recorder fields
	FieldDatabase = "database"
	FieldState    = "state"
	FieldKey      = "key"
	FieldField    = "field"
	FieldTargets  = "targets"
	FieldFailed   = "failed"

	// Backend fields
	FieldBackend = "backend"
	FieldAddr    = "addr"
	FieldPath    = "path"
)
