package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IdleEvictor removes sessions that were last updated before cutoff.
type IdleEvictor interface {
	EvictIdle(ctx context.Context, cutoff time.Time) (int, error)
}

// SessionJanitor periodically drops abandoned game sessions.
type SessionJanitor struct {
	store    IdleEvictor
	ttl      time.Duration
	schedule string
	logger   *zap.Logger
}

func NewSessionJanitor(store IdleEvictor, ttl time.Duration, schedule string, logger *zap.Logger) *SessionJanitor {
	return &SessionJanitor{
		store:    store,
		ttl:      ttl,
		schedule: schedule,
		logger:   logger,
	}
}

// Start runs the sweep on schedule until ctx is done.
func (j *SessionJanitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(j.schedule, func() {
		if _, err := j.Sweep(ctx, time.Now()); err != nil {
			j.logger.Error("failed to evict idle sessions", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", j.schedule, err)
	}

	c.Start()
	j.logger.Info("session janitor started",
		zap.String("schedule", j.schedule),
		zap.Duration("ttl", j.ttl),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")
	return nil
}

// Sweep evicts sessions idle for longer than the TTL as of now.
func (j *SessionJanitor) Sweep(ctx context.Context, now time.Time) (int, error) {
	evicted, err := j.store.EvictIdle(ctx, now.Add(-j.ttl))
	if err != nil {
		return 0, fmt.Errorf("evict idle sessions: %w", err)
	}

	if evicted > 0 {
		j.logger.Info("idle sessions evicted", zap.Int("count", evicted))
	}
	return evicted, nil
}
