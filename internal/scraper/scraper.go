// Package scraper drives a full ladder scrape: index page, every detail page, one file
// per ladder and finally the aggregate index.
package scraper

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/ladder-scraper/internal/fetch"
	"github.com/jonathan/ladder-scraper/internal/logger"
	"github.com/jonathan/ladder-scraper/internal/observability"
	"github.com/jonathan/ladder-scraper/internal/parsing"
	"github.com/jonathan/ladder-scraper/internal/storage"
	"github.com/jonathan/ladder-scraper/internal/types"
)

const totalSteps = 3

// Config holds the scrape settings.
type Config struct {
	// BaseURL is the root that relative ladder links are resolved against.
	BaseURL string
	// IndexPage is the listing page, relative to BaseURL.
	IndexPage string
	// FailFast aborts the run on the first ladder page that cannot be scraped.
	// Otherwise the page is skipped and reported in the summary.
	FailFast bool
}

// Summary describes a finished (or aborted) run.
type Summary struct {
	RunID       string
	Ladders     int
	Problems    int
	SkippedRows int
	Failed      []*PageError
	Index       *types.LadderIndex
}

// Scraper runs scrapes. Pacing between requests is the job of the PageSource.
type Scraper struct {
	cfg     Config
	source  fetch.PageSource
	store   *storage.Store
	log     logger.Logger
	printer *observability.Printer
}

// New creates a Scraper.
func New(cfg Config, source fetch.PageSource, store *storage.Store, log logger.Logger, printer *observability.Printer) *Scraper {
	return &Scraper{cfg: cfg, source: source, store: store, log: log, printer: printer}
}

// Run performs one scrape. A failure to fetch or parse the index page, or to write a
// file, ends the run with an error. Ladder page failures end it only with FailFast;
// otherwise Run finishes and returns an *IncompleteError alongside the summary.
func (s *Scraper) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{RunID: uuid.NewString(), Index: types.NewLadderIndex()}
	log := s.log.With(logger.String("run_id", summary.RunID))

	s.printer.Banner("A2OJ Ladder Scraper")
	s.printer.Step(1, totalSteps, "Fetching ladder index...")

	ix, err := s.fetchIndex(ctx, log)
	if err != nil {
		return summary, err
	}
	s.printer.Infof("Found %d rating, %d division, %d extra ladders",
		len(ix.Rating), len(ix.Division), len(ix.Extra))
	log.Info("ladder index parsed",
		logger.Int("rating", len(ix.Rating)),
		logger.Int("division", len(ix.Division)),
		logger.Int("extra", len(ix.Extra)))

	s.printer.Step(2, totalSteps, "Scraping ladder pages...")
	for _, entry := range ix.Entries() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		ladder, skipped, pageErr := s.scrapeLadder(ctx, entry)
		summary.SkippedRows += s.logSkippedRows(log, entry.ID, skipped)
		if pageErr != nil {
			log.Warn("ladder page skipped",
				logger.Int("ladder_id", entry.ID),
				logger.String("url", pageErr.URL),
				logger.Error(pageErr.Cause))
			s.printer.LadderFailed(entry.ID, pageErr.Cause)
			summary.Failed = append(summary.Failed, pageErr)
			if s.cfg.FailFast {
				return summary, pageErr
			}
			continue
		}

		if err := s.store.WriteLadder(ladder); err != nil {
			return summary, err
		}
		summary.Index.Add(ladder.Type, ladder.IndexEntry())
		summary.Ladders++
		summary.Problems += ladder.ProblemCount
		s.printer.LadderScraped(ladder.ID, ladder.ProblemCount, ladder.Name)
		log.Debug("ladder written",
			logger.Int("ladder_id", ladder.ID),
			logger.Int("problems", ladder.ProblemCount))
	}

	s.printer.Step(3, totalSteps, "Writing index...")
	if err := s.store.WriteIndex(summary.Index); err != nil {
		return summary, err
	}

	s.printSummary(summary)
	log.Info("scrape finished",
		logger.Int("ladders", summary.Ladders),
		logger.Int("problems", summary.Problems),
		logger.Int("failed", len(summary.Failed)))

	if len(summary.Failed) > 0 {
		return summary, &IncompleteError{Failed: summary.Failed}
	}
	return summary, nil
}

func (s *Scraper) fetchIndex(ctx context.Context, log logger.Logger) (*parsing.Index, error) {
	indexURL, err := fetch.ResolveURL(s.cfg.BaseURL, s.cfg.IndexPage)
	if err != nil {
		return nil, err
	}
	s.printer.Infof("Fetching: %s", indexURL)

	html, err := s.source.Page(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ladder index: %w", err)
	}

	ix, skipped, err := parsing.ParseIndex(html)
	if err != nil {
		return nil, err
	}
	s.logSkippedRows(log, 0, skipped)
	return ix, nil
}

func (s *Scraper) scrapeLadder(ctx context.Context, entry parsing.IndexEntry) (*types.Ladder, []*parsing.RowError, *PageError) {
	href := entry.Href
	if href == "" {
		href = "Ladder" + strconv.Itoa(entry.ID) + ".html"
	}

	pageURL, err := fetch.ResolveURL(s.cfg.BaseURL, href)
	if err != nil {
		return nil, nil, &PageError{LadderID: entry.ID, URL: href, Cause: err}
	}

	html, err := s.source.Page(ctx, pageURL)
	if err != nil {
		return nil, nil, &PageError{LadderID: entry.ID, URL: pageURL, Cause: err}
	}

	ladder, skipped, err := parsing.ParseLadder(html, entry.ID, entry.Name, entry.Type)
	if err != nil {
		return nil, skipped, &PageError{LadderID: entry.ID, URL: pageURL, Cause: err}
	}
	return ladder, skipped, nil
}

// logSkippedRows logs layout rows at debug and malformed rows at warn, and returns the
// number of malformed rows.
func (s *Scraper) logSkippedRows(log logger.Logger, ladderID int, skipped []*parsing.RowError) int {
	malformed := 0
	for _, rowErr := range skipped {
		fields := []logger.Field{
			logger.Int("ladder_id", ladderID),
			logger.Int("table", rowErr.Table),
			logger.Int("row", rowErr.Row),
			logger.Error(rowErr.Cause),
		}
		if parsing.IsLayoutRow(rowErr) {
			log.Debug("row skipped", fields...)
			continue
		}
		malformed++
		log.Warn("malformed row skipped", fields...)
	}
	return malformed
}

func (s *Scraper) printSummary(summary *Summary) {
	s.printer.PrintSummary("SCRAPE COMPLETE", []observability.Stat{
		{Label: "Run", Value: summary.RunID},
		{Label: "Rating ladders", Value: len(summary.Index.Rating)},
		{Label: "Division ladders", Value: len(summary.Index.Division)},
		{Label: "Extra ladders", Value: len(summary.Index.Extra)},
		{Label: "Total problems", Value: summary.Problems},
		{Label: "Malformed rows skipped", Value: summary.SkippedRows},
		{Label: "Failed ladders", Value: len(summary.Failed)},
		{Label: "Output", Value: s.store.Dir()},
	})

	failures := make([]error, len(summary.Failed))
	for i, f := range summary.Failed {
		failures[i] = f
	}
	s.printer.PrintFailures("FAILED LADDERS", failures)
}
