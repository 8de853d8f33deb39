// cmd/server/cmd_seed.go
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javajoker/merchio-backend/internal/services"
)

var seedForce bool

// server seed: write the starter catalog.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the starter products into an empty catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		catalog := services.NewCatalogService(a.store, services.WithSeed(services.DefaultSeedProducts(time.Now())))
		written, err := catalog.Seed(cmd.Context(), seedForce)
		if err != nil {
			return err
		}

		if written == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Catalog already has products; use --force to overwrite.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products.\n", written)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "overwrite existing products")
}
