package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/ladder-scraper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, err := NewScheduler("every monday", func(context.Context) error { return nil }, logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule")
}

func TestNewScheduler_AcceptsDefaultAndDescriptors(t *testing.T) {
	for _, spec := range []string{"0 6 * * 1", "@daily", "@every 1h"} {
		_, err := NewScheduler(spec, func(context.Context) error { return nil }, logger.NewNop())
		assert.NoError(t, err, spec)
	}
}

func TestScheduler_RunsImmediatelyAndOnSchedule(t *testing.T) {
	var calls atomic.Int32
	s, err := NewScheduler("@every 1s", func(context.Context) error {
		calls.Add(1)
		return nil
	}, logger.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.Equal(t, int64(calls.Load()), s.Runs())
}

func TestScheduler_FailedRunIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx, cancel := context.WithCancel(context.Background())

	s, err := NewScheduler("@daily", func(context.Context) error {
		cancel()
		return errors.New("problemset unavailable")
	}, logger.FromZap(zap.New(core)))
	require.NoError(t, err)

	require.NoError(t, s.Run(ctx))
	assert.Equal(t, int64(1), s.Runs())

	failed := logs.FilterMessage("scheduled run failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "problemset unavailable", failed[0].ContextMap()["error"])
}
