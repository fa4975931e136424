package enrichment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/ladder-scraper/internal/logger"
	"github.com/jonathan/ladder-scraper/internal/observability"
	"github.com/jonathan/ladder-scraper/internal/storage"
	"github.com/jonathan/ladder-scraper/internal/types"
)

const totalSteps = 2

// ProblemSource returns the full external problem list.
type ProblemSource interface {
	Problemset(ctx context.Context) ([]types.ExternalProblem, error)
}

// Report holds per-ladder and overall counts of one run.
type Report struct {
	RunID    string
	Ladders  []LadderResult
	Total    int
	Enriched int
	Missing  int
}

func (r *Report) add(res LadderResult) {
	r.Ladders = append(r.Ladders, res)
	r.Total += res.Total
	r.Enriched += res.Enriched
	r.Missing += res.Missing
}

// Enricher rewrites every stored ladder with external ratings and tags.
type Enricher struct {
	source  ProblemSource
	store   *storage.Store
	log     logger.Logger
	printer *observability.Printer
}

// New creates an Enricher.
func New(source ProblemSource, store *storage.Store, log logger.Logger, printer *observability.Printer) *Enricher {
	return &Enricher{source: source, store: store, log: log, printer: printer}
}

// Run fetches the problem list once and enriches every ladder file in file name order.
// Failing to fetch the list aborts before any file is touched. Every ladder file is
// rewritten, changed or not.
func (e *Enricher) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	log := e.log.With(logger.String("run_id", report.RunID))

	e.printer.Banner("Codeforces Problem Data Enricher")
	e.printer.Step(1, totalSteps, "Fetching Codeforces problem data...")

	problems, err := e.source.Problemset(ctx)
	if err != nil {
		log.Error("problemset fetch failed", logger.Error(err))
		return report, fmt.Errorf("failed to fetch Codeforces problem data: %w", err)
	}
	lookup := BuildLookup(problems)
	e.printer.Infof("Fetched %d problems, lookup map has %d entries", len(problems), len(lookup))
	log.Info("problemset fetched",
		logger.Int("problems", len(problems)),
		logger.Int("lookup_entries", len(lookup)))

	e.printer.Step(2, totalSteps, "Enriching ladder files...")
	paths, err := e.store.ListLadderFiles()
	if err != nil {
		return report, err
	}
	e.printer.Infof("Found %d ladder files", len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		ladder, err := e.store.ReadLadder(path)
		if err != nil {
			return report, err
		}

		res := EnrichLadder(ladder, lookup)
		if err := e.store.WriteLadderFile(path, ladder); err != nil {
			return report, err
		}

		report.add(res)
		e.printer.LadderEnriched(res.ID, res.Enriched, res.Total, res.Missing, res.Name)
		log.Debug("ladder enriched",
			logger.Int("ladder_id", res.ID),
			logger.Int("enriched", res.Enriched),
			logger.Int("missing", res.Missing))
	}

	e.printer.PrintSummary("ENRICHMENT COMPLETE", []observability.Stat{
		{Label: "Run", Value: report.RunID},
		{Label: "Ladders processed", Value: len(report.Ladders)},
		{Label: "Total problems", Value: report.Total},
		{Label: "Enriched with CF data", Value: report.Enriched},
		{Label: "Missing from CF API", Value: report.Missing},
	})
	log.Info("enrichment finished",
		logger.Int("ladders", len(report.Ladders)),
		logger.Int("enriched", report.Enriched),
		logger.Int("missing", report.Missing))

	return report, nil
}
