package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"JaxSpot/internal/usecase"
	"JaxSpot/pkg/logger"
)

// Scheduler owns every periodic task in the service. View consumers poll
// the feed service it drives; nothing else starts its own timer.
type Scheduler struct {
	cron     *cron.Cron
	feed     *usecase.FeedService
	accuracy *usecase.AccuracyService
	logger   *logger.Logger
	ctx      context.Context
}

// New creates the scheduler.
func New(ctx context.Context, feed *usecase.FeedService, accuracy *usecase.AccuracyService, lgr *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		feed:     feed,
		accuracy: accuracy,
		logger:   lgr,
		ctx:      ctx,
	}
}

// RegisterAll wires the periodic work: the feed tick at the given cadence
// and the accuracy cache warmer at a slower one.
func (s *Scheduler) RegisterAll(tickEvery time.Duration) error {
	if tickEvery <= 0 {
		tickEvery = 5 * time.Second
	}
	spec := fmt.Sprintf("@every %s", tickEvery)
	if _, err := s.cron.AddFunc(spec, func() {
		s.feed.Tick(s.ctx)
	}); err != nil {
		return fmt.Errorf("register feed tick: %w", err)
	}

	if s.accuracy != nil {
		if _, err := s.cron.AddFunc("@every 30s", func() {
			if _, err := s.accuracy.Summary(s.ctx); err != nil {
				s.logger.Warn("accuracy refresh failed", logger.Error(err))
			}
		}); err != nil {
			return fmt.Errorf("register accuracy refresh: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully and waits for a running tick.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunTickNow executes one feed tick immediately (for warmup on boot).
func (s *Scheduler) RunTickNow() {
	s.feed.Tick(s.ctx)
}
