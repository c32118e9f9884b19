// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Command recorderctl enables and disables the recorder in the configured databases.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ManuGH/recorderctl/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// commandError carries an operator-facing failure message that is printed as is.
type commandError struct {
	msg string
	err error
}

func (e *commandError) Error() string { return e.msg }
func (e *commandError) Unwrap() error { return e.err }

func failf(prefix string, err error) error {
	return &commandError{msg: fmt.Sprintf("%s: %v", prefix, err), err: err}
}

// run executes one command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		var ce *commandError
		if errors.As(err, &ce) {
			_, _ = fmt.Fprintln(stderr, ce.msg)
		} else {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.Name())
		}
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "recorderctl",
		Short:         "Manage the recorder state of SONiC Redis databases",
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetVersionTemplate(version.String() + "\n")

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to YAML config file (env: RECORDERCTL_CONFIG)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(newRecorderCmd(a), newStorageCmd(a))
	return root
}
