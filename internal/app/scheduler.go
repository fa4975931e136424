// Package app runs the ladder jobs on a cron schedule.
package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jonathan/ladder-scraper/internal/logger"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Scheduler runs a Job immediately and then on every tick of a cron expression.
// Runs never overlap: a tick that fires while the previous run is still going is skipped.
type Scheduler struct {
	spec string
	job  Job
	log  logger.Logger
	cron *cron.Cron
	runs atomic.Int64
}

// NewScheduler validates spec (five fields, or a descriptor such as "@daily") and
// builds a Scheduler.
func NewScheduler(spec string, job Job, log logger.Logger) (*Scheduler, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(spec); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		cron.WithLogger(cl),
	)

	return &Scheduler{spec: spec, job: job, log: log, cron: c}, nil
}

// Runs returns the number of job runs started so far.
func (s *Scheduler) Runs() int64 {
	return s.runs.Load()
}

// Run executes the job once, then on schedule until ctx is cancelled. A failing run is
// logged and does not stop the schedule.
func (s *Scheduler) Run(ctx context.Context) error {
	s.runOnce(ctx)
	if ctx.Err() != nil {
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, func() { s.runOnce(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule job: %w", err)
	}

	s.cron.Start()
	s.log.Info("scheduler started", logger.String("schedule", s.spec))

	<-ctx.Done()

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("scheduler stopped", zap.Int64("runs", s.Runs()))
	return nil
}

func (s *Scheduler) runOnce(ctx context.Context) {
	n := s.runs.Add(1)
	s.log.Info("scheduled run starting", zap.Int64("run", n))
	if err := s.job(ctx); err != nil {
		s.log.Error("scheduled run failed", zap.Int64("run", n), logger.Error(err))
		return
	}
	s.log.Info("scheduled run finished", zap.Int64("run", n))
}

// cronLogger adapts Logger to cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.log.Debug(msg, fields(keysAndValues)...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.log.Error(msg, append(fields(keysAndValues), logger.Error(err))...)
}

func fields(keysAndValues []any) []logger.Field {
	out := make([]logger.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		out = append(out, zap.Any(fmt.Sprint(keysAndValues[i]), keysAndValues[i+1]))
	}
	return out
}
