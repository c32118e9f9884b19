// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the application.
const (
	DatabaseKey = "recorder.database"
	StateKey    = "recorder.state"
	TargetsKey  = "recorder.targets"
	FailedKey   = "recorder.failed"
)

// RecorderAttributes creates the span attributes of a single-database operation.
func RecorderAttributes(database, state string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 2)
	if database != "" {
		attrs = append(attrs, attribute.String(DatabaseKey, database))
	}
	if state != "" {
		attrs = append(attrs, attribute.String(StateKey, state))
	}
	return attrs
}

// BulkAttributes creates the span attributes summarising a bulk operation.
func BulkAttributes(targets, failed int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(TargetsKey, targets),
		attribute.Int(FailedKey, failed),
	}
}
