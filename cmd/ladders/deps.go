package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/ladder-scraper/internal/codeforces"
	"github.com/jonathan/ladder-scraper/internal/config"
	"github.com/jonathan/ladder-scraper/internal/enrichment"
	"github.com/jonathan/ladder-scraper/internal/fetch"
	"github.com/jonathan/ladder-scraper/internal/logger"
	"github.com/jonathan/ladder-scraper/internal/observability"
	"github.com/jonathan/ladder-scraper/internal/scraper"
	"github.com/jonathan/ladder-scraper/internal/storage"
)

// deps holds what every command needs, built from the resolved configuration.
type deps struct {
	cfg     *config.Config
	log     logger.Logger
	printer *observability.Printer
	store   *storage.Store
}

func newDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel})
	if err != nil {
		return nil, err
	}

	log = log.With(logger.String("command", cmd.Name()))
	for _, warning := range cfg.Warnings() {
		log.Warn("config override", logger.String("warning", warning))
	}

	return &deps{
		cfg:     cfg,
		log:     log,
		printer: observability.NewPrinter(cmd.OutOrStdout()),
		store:   storage.New(cfg.DataDir),
	}, nil
}

func (d *deps) close() {
	_ = d.log.Sync()
}

func (d *deps) fetchOptions() *fetch.Options {
	return &fetch.Options{
		Timeout:   d.cfg.RequestTimeout,
		UserAgent: d.cfg.UserAgent,
	}
}

func (d *deps) pageSource() (fetch.PageSource, error) {
	if d.cfg.UseBrowser {
		return fetch.NewBrowser(d.fetchOptions(), d.cfg.RequestDelay), nil
	}
	return fetch.NewCollector(d.fetchOptions(), d.cfg.RequestDelay)
}

func (d *deps) codeforces() *codeforces.Client {
	opts := d.fetchOptions()
	opts.Headers = map[string]string{"Accept": "application/json"}
	return codeforces.NewClient(codeforces.Config{
		ProblemsetURL: d.cfg.ProblemsetURL,
		UserStatusURL: d.cfg.UserStatusURL,
		Fetch:         opts,
	})
}

func (d *deps) scraper() (*scraper.Scraper, error) {
	source, err := d.pageSource()
	if err != nil {
		return nil, err
	}
	return scraper.New(scraper.Config{
		BaseURL:   d.cfg.BaseURL,
		IndexPage: d.cfg.IndexPage,
		FailFast:  d.cfg.FailFast,
	}, source, d.store, d.log, d.printer), nil
}

func (d *deps) enricher() *enrichment.Enricher {
	return enrichment.New(d.codeforces(), d.store, d.log, d.printer)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
