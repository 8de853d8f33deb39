// cmd/server/cmd_stats.go
package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// server stats: print catalog statistics as JSON.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.catalog.Stats(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	},
}
