package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonathan/ladder-scraper/internal/analytics"
	"github.com/jonathan/ladder-scraper/internal/types"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show a Codeforces user's progress through the ladders",
	RunE:  runProgress,
}

var (
	progressHandle string
	progressID     int
)

func init() {
	progressCmd.Flags().StringVar(&progressHandle, "handle", "", "Codeforces handle (required)")
	progressCmd.Flags().IntVar(&progressID, "id", 0, "Only show this ladder")

	progressCmd.MarkFlagRequired("handle")

	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, _ []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	defer d.close()

	ladders, err := loadLadders(d, progressID)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	subs, err := d.codeforces().UserStatus(ctx, progressHandle)
	if err != nil {
		return fmt.Errorf("failed to fetch submissions of %s: %w", progressHandle, err)
	}

	status := analytics.NewStatus(subs)
	rows := make([]analytics.LadderProgress, 0, len(ladders))
	for _, l := range ladders {
		rows = append(rows, status.Progress(l))
	}
	d.printer.PrintProgress(progressHandle, rows)
	return nil
}

// loadLadders reads ladder id, or every stored ladder ordered by id when id is 0.
func loadLadders(d *deps, id int) ([]*types.Ladder, error) {
	if id != 0 {
		l, err := d.store.ReadLadderByID(id)
		if err != nil {
			return nil, fmt.Errorf("failed to read ladder %d: %w", id, err)
		}
		return []*types.Ladder{l}, nil
	}

	paths, err := d.store.ListLadderFiles()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no ladder files in %s (run scrape first)", d.store.Dir())
	}

	ladders := make([]*types.Ladder, 0, len(paths))
	for _, p := range paths {
		l, err := d.store.ReadLadder(p)
		if err != nil {
			return nil, err
		}
		ladders = append(ladders, l)
	}
	sort.Slice(ladders, func(i, j int) bool { return ladders[i].ID < ladders[j].ID })
	return ladders, nil
}
