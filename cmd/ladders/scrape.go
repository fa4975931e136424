package main

import (
	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape every A2OJ ladder into the data directory",
	Long: "Fetch the ladder index, then every ladder page, writing ladder-{id}.json after each ladder " +
		"and index.json at the end. A ladder page that cannot be fetched is skipped and reported, " +
		"and the command exits non-zero; --fail-fast stops at the first such page instead.",
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().Bool("fail-fast", false, "Abort on the first ladder page that cannot be scraped")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	defer d.close()

	s, err := d.scraper()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	_, err = s.Run(ctx)
	return err
}
