// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package recorder

import "fmt"

// Outcome is the result of one database write during SetStateAll.
type Outcome struct {
	Database string
	Err      error
}

// Succeeded reports whether the write went through.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Confirmation is returned by a successful SetState.
type Confirmation struct {
	Database string
	State    State
}

// Message renders the operator-facing confirmation.
func (c Confirmation) Message() string {
	return fmt.Sprintf("Recorder state set to %s in %s", c.State, c.Database)
}

// Summary is returned by a successful SetStateAll.
type Summary struct {
	State    State
	Outcomes []Outcome
}

// Empty reports whether the registry had no databases to write to.
func (s Summary) Empty() bool {
	return len(s.Outcomes) == 0
}

// Databases returns the written database names in the order they were reported.
func (s Summary) Databases() []string {
	names := make([]string, 0, len(s.Outcomes))
	for _, o := range s.Outcomes {
		names = append(names, o.Database)
	}
	return names
}

// Message renders the operator-facing confirmation.
func (s Summary) Message() string {
	if s.Empty() {
		return "No databases found; recorder state unchanged"
	}
	return fmt.Sprintf("Recorder %s for all databases (%d)", s.State, len(s.Outcomes))
}
