// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package recorder

import (
	"fmt"
	"strings"
)

// State is the persisted on/off state of the recorder in one database.
type State string

const (
	StateEnabled  State = "enabled"
	StateDisabled State = "disabled"
)

// States returns the accepted state literals in display order.
func States() []State {
	return []State{StateEnabled, StateDisabled}
}

// JoinStates renders the accepted literals separated by sep.
func JoinStates(sep string) string {
	names := make([]string, 0, 2)
	for _, s := range States() {
		names = append(names, string(s))
	}
	return strings.Join(names, sep)
}

// ParseState maps a CLI token onto a State. Only the exact literals are accepted.
func ParseState(token string) (State, error) {
	s := State(token)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q (expected %s)", ErrInvalidState, token, JoinStates(" or "))
	}
	return s, nil
}

// Valid reports whether s is one of the two recognised states.
func (s State) Valid() bool {
	return s == StateEnabled || s == StateDisabled
}

func (s State) String() string {
	return string(s)
}

// Record is the value written under the RECORDER key for a database.
type Record struct {
	State State `json:"state" yaml:"state"`
}

// Fields returns the record as hash fields for key-value backends.
func (r Record) Fields() map[string]string {
	return map[string]string{"state": string(r.State)}
}
