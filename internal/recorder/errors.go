// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package recorder

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidState classifies state tokens other than "enabled" and "disabled".
	ErrInvalidState = errors.New("invalid recorder state")

	// ErrRegistryUnavailable is returned when the set of databases could not be listed.
	// No write is attempted in that case.
	ErrRegistryUnavailable = errors.New("database registry unavailable")
)

// UnknownDatabaseError reports a target database that is not in the registry.
type UnknownDatabaseError struct {
	Name string
}

func (e *UnknownDatabaseError) Error() string {
	return fmt.Sprintf("Database '%s' not found", e.Name)
}

// WriteFailedError wraps a backend write failure. Error returns the backend
// message unchanged.
type WriteFailedError struct {
	Database string
	Err      error
}

func (e *WriteFailedError) Error() string {
	return e.Err.Error()
}

func (e *WriteFailedError) Unwrap() error {
	return e.Err
}

// BulkError is returned by SetStateAll when at least one database write failed.
// Failed is sorted by database name.
type BulkError struct {
	State  State
	Total  int
	Failed []Outcome
}

func (e *BulkError) Error() string {
	parts := make([]string, 0, len(e.Failed))
	for _, o := range e.Failed {
		parts = append(parts, fmt.Sprintf("%s: %v", o.Database, o.Err))
	}
	return fmt.Sprintf("recorder not %s for %d of %d databases: %s",
		e.State, len(e.Failed), e.Total, strings.Join(parts, "; "))
}

// Unwrap exposes every per-database failure to errors.Is / errors.As.
func (e *BulkError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, o := range e.Failed {
		errs = append(errs, o.Err)
	}
	return errs
}

// FailedDatabases returns the names of the databases that could not be written.
func (e *BulkError) FailedDatabases() []string {
	names := make([]string, 0, len(e.Failed))
	for _, o := range e.Failed {
		names = append(names, o.Database)
	}
	return names
}
