package repository

import (
	"context"

	"JaxSpot/internal/domain/models"
	"JaxSpot/internal/domain/repository"
)

// NoopAnalytics discards analytics writes. Used when ClickHouse is disabled.
type NoopAnalytics struct{}

func NewNoopAnalytics() repository.AnalyticsSink { return NoopAnalytics{} }

func (NoopAnalytics) Init(ctx context.Context) error { return nil }

func (NoopAnalytics) StoreTransition(ctx context.Context, ev *models.TransitionEvent) error {
	return nil
}

func (NoopAnalytics) StoreUsage(ctx context.Context, ev *models.UsageEvent) error { return nil }

func (NoopAnalytics) Health(ctx context.Context) error { return nil }

func (NoopAnalytics) Close() error { return nil }
