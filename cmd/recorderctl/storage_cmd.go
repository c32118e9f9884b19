// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ManuGH/recorderctl/internal/persistence/sqlite"
	"github.com/spf13/cobra"
)

func newStorageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect the local state store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newStorageVerifyCmd(a))
	return cmd
}

func newStorageVerifyCmd(a *app) *cobra.Command {
	var path, mode string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check integrity of the sqlite state store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode = strings.ToLower(strings.TrimSpace(mode))
			if mode != "quick" && mode != "full" {
				return fmt.Errorf("invalid mode %q. Use 'quick' or 'full'", mode)
			}
			if err := a.load(); err != nil {
				return failf("Failed to verify storage", err)
			}
			if path == "" {
				path = a.cfg.Backend.SQLite.Path
			}
			if path == "" {
				return errors.New("--path is required unless backend.sqlite.path is configured")
			}

			_, _ = fmt.Fprintf(a.stderr, "Verifying integrity of %s (mode: %s)...\n", path, mode)
			issues, err := sqlite.VerifyIntegrity(a.ctx, path, mode)
			if err != nil {
				return failf("Verification interrupted by system error", err)
			}
			if issues != nil {
				return &commandError{msg: "Corruption detected:\n  - " + strings.Join(issues, "\n  - ")}
			}
			_, _ = fmt.Fprintln(a.stdout, "Integrity verified: ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "path to the SQLite database file (defaults to backend.sqlite.path)")
	cmd.Flags().StringVar(&mode, "mode", "quick", "verification mode: quick or full")
	return cmd
}
