package usecase

import (
	"context"
	"fmt"
	"time"

	"JaxSpot/internal/domain/models"
	drepo "JaxSpot/internal/domain/repository"
)

// EventProcessor routes transition events onto the bus.
type EventProcessor struct {
	pub     drepo.EventPublisher
	metrics drepo.Metrics
}

// NewEventProcessor creates a new EventProcessor instance.
func NewEventProcessor(pub drepo.EventPublisher, metrics drepo.Metrics) *EventProcessor {
	return &EventProcessor{pub: pub, metrics: metrics}
}

// Process publishes a single transition event.
func (p *EventProcessor) Process(ctx context.Context, ev *models.TransitionEvent) error {
	if ev == nil {
		return fmt.Errorf("event is nil")
	}

	start := time.Now()
	if err := p.pub.Publish(ctx, ev); err != nil {
		p.metrics.RecordError("publish")
		return fmt.Errorf("publish transition: %w", err)
	}
	p.metrics.RecordLatency("publish", time.Since(start).Seconds())
	return nil
}

// ProcessBatch publishes multiple transition events at once.
func (p *EventProcessor) ProcessBatch(ctx context.Context, evs []*models.TransitionEvent) error {
	if len(evs) == 0 {
		return nil
	}

	start := time.Now()
	if err := p.pub.PublishBatch(ctx, evs); err != nil {
		p.metrics.RecordError("publish_batch")
		return fmt.Errorf("publish batch: %w", err)
	}
	p.metrics.RecordLatency("publish_batch", time.Since(start).Seconds())
	return nil
}

// Close closes the underlying publisher.
func (p *EventProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
}
