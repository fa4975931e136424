package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ladder-scraper/internal/analytics"
	"github.com/jonathan/ladder-scraper/internal/logger"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the ladder index or a single ladder",
	RunE:  runShow,
}

var showID int

func init() {
	showCmd.Flags().IntVar(&showID, "id", 0, "Ladder id to print (default: the whole index)")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	defer d.close()

	if showID == 0 {
		idx, err := d.store.ReadIndex()
		if err != nil {
			return fmt.Errorf("failed to read index (run scrape first): %w", err)
		}
		d.printer.PrintIndex(idx)
		return nil
	}

	ladder, err := d.store.ReadLadderByID(showID)
	if err != nil {
		return fmt.Errorf("failed to read ladder %d: %w", showID, err)
	}

	// The index only affects the display number.
	idx, err := d.store.ReadIndex()
	if err != nil {
		d.log.Debug("index unavailable", logger.Error(err))
		idx = nil
	}
	d.printer.PrintLadder(ladder, analytics.FormatLadderNumber(ladder.ID, ladder.Type, idx))
	return nil
}
