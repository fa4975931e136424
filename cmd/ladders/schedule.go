package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jonathan/ladder-scraper/internal/app"
	"github.com/jonathan/ladder-scraper/internal/logger"
	"github.com/jonathan/ladder-scraper/internal/scraper"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Refresh the ladder data periodically",
	Long: "Run the enrichment (and, with --scrape, a full scrape before it) once now and then on the " +
		"configured cron schedule until interrupted.",
	RunE: runSchedule,
}

var scheduleScrape bool

func init() {
	scheduleCmd.Flags().String("schedule", "", "Cron expression (default from config: every Monday 06:00)")
	scheduleCmd.Flags().BoolVar(&scheduleScrape, "scrape", false, "Scrape the ladders before each enrichment")

	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	defer d.close()

	s, err := d.scraper()
	if err != nil {
		return err
	}
	enricher := d.enricher()

	job := func(ctx context.Context) error {
		if scheduleScrape {
			if _, err := s.Run(ctx); err != nil {
				var incomplete *scraper.IncompleteError
				if !errors.As(err, &incomplete) {
					return err
				}
				d.log.Warn("scrape incomplete, enriching what was written", logger.Error(err))
			}
		}
		_, err := enricher.Run(ctx)
		return err
	}

	scheduler, err := app.NewScheduler(d.cfg.Schedule, job, d.log)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	return scheduler.Run(ctx)
}
