package main

import (
	"github.com/spf13/cobra"

	"github.com/weiihann/sortbench/harness"
)

// newChildCmd is the entry point of the per-run child process. It skips
// configuration loading so nothing but the sort runs inside the child.
func newChildCmd() *cobra.Command {
	return &cobra.Command{
		Use:                harness.ChildCommand,
		Short:              "Sort one fixture and exit (internal)",
		Hidden:             true,
		DisableFlagParsing: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			code := harness.ChildMain(args, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if code != 0 {
				return exitCodeError{code: code}
			}

			return nil
		},
	}
}
