package main

import (
	"github.com/spf13/cobra"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Add Codeforces ratings and tags to the scraped ladders",
	Long: "Fetch the full Codeforces problem set once and rewrite every ladder-*.json file with the " +
		"rating and tags of each matched problem. Exits 1 when the problem set cannot be fetched.",
	RunE: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, _ []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	_, err = d.enricher().Run(ctx)
	return err
}
