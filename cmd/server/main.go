// cmd/server/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Merchio catalog service",
	Long:          "Merchio serves the storefront product catalog: listing, search, reviews, favorites and stats.",
	SilenceUsage:  true,
	SilenceErrors: true,
	// Running the binary without a subcommand starts the HTTP server.
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statsCmd)
}
