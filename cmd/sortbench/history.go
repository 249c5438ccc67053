package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/weiihann/sortbench/archive"
	"github.com/weiihann/sortbench/report"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit      int
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show archived benchmark runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.HistoryDB == "" {
				return usageErrorf("no history database configured; set --history-db")
			}

			entries, err := archive.History(a.cfg.HistoryDB, limit)
			if err != nil {
				return err
			}

			if outputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")

				return enc.Encode(entries)
			}

			return report.History(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5,
		"Number of most recent runs to show (0 = all)")
	cmd.Flags().BoolVar(&outputJSON, "json", false,
		"Output entries as JSON instead of a table")

	return cmd
}
