package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tracker",
		Short: "Personal income and expense tracker",
		Long: `Record income and expense entries, view them through date filters and
see running totals. State is kept in the backend selected by STATE_BACKEND.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newAddCmd(),
		newRemoveCmd(),
		newListCmd(),
		newStatsCmd(),
		newFilterCmd(),
		newServeCmd(),
	)

	return rootCmd
}

// withApp wires the tracker for the duration of one command.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := newApp(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}
