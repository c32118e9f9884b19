// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"fmt"

	"github.com/ManuGH/recorderctl/internal/recorder"
	"github.com/spf13/cobra"
)

func newRecorderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recorder",
		Short: "Redis recorder service management",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newStateCmd(a),
		newBulkCmd(a, "enable-all", recorder.StateEnabled, "Enable the recorder in every database"),
		newBulkCmd(a, "disable-all", recorder.StateDisabled, "Disable the recorder in every database"),
		newDatabasesCmd(a),
	)
	return cmd
}

func newStateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "state <database> <" + recorder.JoinStates("|") + ">",
		Short: "Configure recorder state in the specified database",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return err
			}
			_, err := recorder.ParseState(args[1])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := recorder.ParseState(args[1])
			if err != nil {
				return err
			}
			ctrl, err := a.controller()
			if err != nil {
				return failf("Failed to set recorder state", err)
			}
			conf, err := ctrl.SetState(a.ctx, args[0], state)
			if err != nil {
				return failf("Failed to set recorder state", err)
			}
			_, _ = fmt.Fprintln(a.stdout, conf.Message())
			return nil
		},
	}
}

func newBulkCmd(a *app, use string, state recorder.State, short string) *cobra.Command {
	verb := "enable"
	if state == recorder.StateDisabled {
		verb = "disable"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := a.controller()
			if err != nil {
				return failf("Failed to "+verb+" recorder", err)
			}
			summary, err := ctrl.SetStateAll(a.ctx, state)
			if err != nil {
				return failf("Failed to "+verb+" recorder", err)
			}
			_, _ = fmt.Fprintln(a.stdout, summary.Message())
			return nil
		},
	}
}

func newDatabasesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "databases",
		Short: "List the databases the recorder state can be set in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return failf("Failed to list databases", err)
			}
			ctrl := recorder.NewController(a.registry(), nil)
			names, err := ctrl.ListDatabases(a.ctx)
			if err != nil {
				return failf("Failed to list databases", err)
			}
			for _, name := range names {
				_, _ = fmt.Fprintln(a.stdout, name)
			}
			return nil
		},
	}
}
