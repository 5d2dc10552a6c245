package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"JaxSpot/internal/domain/models"
)

type nopMetrics struct{}

func (nopMetrics) RecordTick(int)                {}
func (nopMetrics) RecordTransition(string)       {}
func (nopMetrics) RecordPickResolved(string)     {}
func (nopMetrics) RecordLogin(string)            {}
func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordLatency(string, float64) {}

type fakeProc struct {
	mu     sync.Mutex
	events []models.TransitionEvent
	err    error
}

func (p *fakeProc) Process(ctx context.Context, ev *models.TransitionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, *ev)
	return nil
}

func (p *fakeProc) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func validEvent(symbol string) *models.TransitionEvent {
	return &models.TransitionEvent{
		Symbol:    symbol,
		From:      models.StageWatchlist,
		To:        models.StageReady,
		Direction: models.DirectionUpgrade,
		At:        time.Now(),
	}
}

func TestPipelineForwardsValidEvent(t *testing.T) {
	proc := &fakeProc{}
	p := NewEventPipeline(proc, nopMetrics{})

	if err := p.Process(context.Background(), validEvent("BTC")); err != nil {
		t.Fatalf("process: %v", err)
	}
	if proc.count() != 1 {
		t.Fatalf("event not forwarded")
	}
}

func TestPipelineRejectsInvalid(t *testing.T) {
	proc := &fakeProc{}
	p := NewEventPipeline(proc, nopMetrics{})
	ctx := context.Background()

	cases := []*models.TransitionEvent{
		nil,
		{From: models.StageWatchlist, To: models.StageReady, At: time.Now()},
		{Symbol: "X", From: "bogus", To: models.StageReady, At: time.Now()},
		{Symbol: "X", From: models.StageReady, To: models.StageReady, At: time.Now()},
		{Symbol: "X", From: models.StageWatchlist, To: models.StageReady},
	}
	for i, ev := range cases {
		if err := p.Process(ctx, ev); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
	if proc.count() != 0 {
		t.Fatalf("invalid event reached downstream")
	}
}

func TestPipelineThrottlesPerSymbol(t *testing.T) {
	proc := &fakeProc{}
	p := NewEventPipeline(proc, nopMetrics{}, WithMaxRPS(1))
	ctx := context.Background()

	if err := p.Process(ctx, validEvent("BTC")); err != nil {
		t.Fatalf("first: %v", err)
	}
	// Second event inside the same window is dropped without error.
	if err := p.Process(ctx, validEvent("BTC")); err != nil {
		t.Fatalf("second: %v", err)
	}
	if proc.count() != 1 {
		t.Fatalf("throttle did not drop, got %d", proc.count())
	}
	// A different symbol is not affected.
	if err := p.Process(ctx, validEvent("SOL")); err != nil {
		t.Fatalf("other symbol: %v", err)
	}
	if proc.count() != 2 {
		t.Fatalf("other symbol dropped")
	}
}

func TestPipelineBuffersOnDownstreamError(t *testing.T) {
	proc := &fakeProc{err: errors.New("broker down")}
	p := NewEventPipeline(proc, nopMetrics{}, WithBufferSize(4))
	ctx := context.Background()

	if err := p.Process(ctx, validEvent("BTC")); err == nil {
		t.Fatalf("expected downstream error")
	}

	// Once downstream recovers, Start drains the buffer.
	proc.mu.Lock()
	proc.err = nil
	proc.mu.Unlock()

	p.Start(ctx)
	defer p.Stop()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if proc.count() == 1 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("buffered event never flushed")
}
