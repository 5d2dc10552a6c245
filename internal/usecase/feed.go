package usecase

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"JaxSpot/internal/domain/models"
	domrepo "JaxSpot/internal/domain/repository"
	"JaxSpot/pkg/logger"
)

// TickResult is what one simulation step produced.
type TickResult struct {
	Instruments []models.Instrument
	Transitions []models.TransitionEvent
}

// Advance runs one simulation step over the board. It is pure given the
// random source: score drifts by uniform(-5,+5) then is clamped to 0..100
// and rounded, price drifts by up to ±1%, change24h by ±1. Stage is always
// re-derived from the published (rounded) score, so snapshot consumers can
// rely on stage matching score.
func Advance(instruments []models.Instrument, rnd func() float64, seq uint64, now time.Time) TickResult {
	out := make([]models.Instrument, len(instruments))
	var transitions []models.TransitionEvent

	for i, in := range instruments {
		next := in

		scoreChange := (rnd() - 0.5) * 10
		next.Score = math.Round(models.ClampScore(in.Score + scoreChange))
		next.Stage = models.StageForScore(next.Score)

		if next.Stage != in.Stage {
			next.Reasoning = reasoningForStage(next.Stage)
			next.RecentlyMoved = true
			next.PreviousStage = in.Stage
			transitions = append(transitions, models.TransitionEvent{
				Symbol:    in.Symbol,
				From:      in.Stage,
				To:        next.Stage,
				Direction: models.DirectionOf(in.Stage, next.Stage),
				Score:     next.Score,
				Seq:       seq,
				At:        now,
			})
		}

		next.Price = in.Price * (1 + (rnd()-0.5)*0.02)
		next.Change24h = in.Change24h + (rnd()-0.5)*2
		next.LastUpdated = now

		out[i] = next
	}

	return TickResult{Instruments: out, Transitions: transitions}
}

// TransitionSink receives the transitions a tick produced.
type TransitionSink interface {
	Process(ctx context.Context, ev *models.TransitionEvent) error
}

// FeedService owns the simulated board. Ticks come from the scheduler;
// readers get copied snapshots tagged with a monotonically increasing
// sequence number.
type FeedService struct {
	logger  *logger.Logger
	metrics domrepo.Metrics
	sink    TransitionSink

	mu          sync.RWMutex
	instruments []models.Instrument
	seq         uint64
	updatedAt   time.Time
	published   *Refresher

	rnd       func() float64
	now       func() time.Time
	clearTTL  time.Duration
	clearStop chan struct{}
}

// FeedOption configures FeedService.
type FeedOption func(*FeedService)

// WithRand injects the random source. Tests pass a deterministic one.
func WithRand(rnd func() float64) FeedOption {
	return func(f *FeedService) { f.rnd = rnd }
}

// WithClock injects the time source.
func WithClock(now func() time.Time) FeedOption {
	return func(f *FeedService) { f.now = now }
}

// WithMovedClearTTL sets how long transition highlights linger.
func WithMovedClearTTL(d time.Duration) FeedOption {
	return func(f *FeedService) {
		if d > 0 {
			f.clearTTL = d
		}
	}
}

// NewFeedService creates the feed over the given starting board.
func NewFeedService(lgr *logger.Logger, metrics domrepo.Metrics, sink TransitionSink, seed []models.Instrument, opts ...FeedOption) *FeedService {
	f := &FeedService{
		logger:      lgr,
		metrics:     metrics,
		sink:        sink,
		instruments: append([]models.Instrument(nil), seed...),
		published:   NewRefresher(),
		rnd:         rand.Float64,
		now:         time.Now,
		clearTTL:    10 * time.Second,
		clearStop:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.updatedAt = f.now()
	f.publish()
	return f
}

// Tick runs one simulation step and forwards any transitions downstream.
func (f *FeedService) Tick(ctx context.Context) {
	f.mu.Lock()
	f.seq++
	seq := f.seq
	res := Advance(f.instruments, f.rnd, seq, f.now())
	f.instruments = res.Instruments
	f.updatedAt = f.now()
	f.mu.Unlock()

	f.publish()

	f.metrics.RecordTick(len(res.Instruments))

	for i := range res.Transitions {
		ev := res.Transitions[i]
		f.metrics.RecordTransition(string(ev.Direction))
		f.logger.Info("stage transition",
			logger.String("symbol", ev.Symbol),
			logger.String("from", string(ev.From)),
			logger.String("to", string(ev.To)),
			logger.Float64("score", ev.Score))
		if f.sink != nil {
			if err := f.sink.Process(ctx, &ev); err != nil {
				f.logger.Warn("transition publish failed",
					logger.String("symbol", ev.Symbol), logger.Error(err))
			}
		}
	}

	if len(res.Transitions) > 0 {
		f.scheduleMovedClear()
	}
}

// scheduleMovedClear drops every highlight after the TTL. The clear is
// global rather than per symbol; a fresh transition in the meantime simply
// reschedules it.
func (f *FeedService) scheduleMovedClear() {
	ttl := f.clearTTL
	stop := f.clearStop
	time.AfterFunc(ttl, func() {
		select {
		case <-stop:
			return
		default:
		}
		f.mu.Lock()
		for i := range f.instruments {
			f.instruments[i].RecentlyMoved = false
			f.instruments[i].PreviousStage = ""
		}
		f.mu.Unlock()
		f.publish()
	})
}

// publish copies the current board into the last-write-wins holder readers
// consume from. A slow publish racing a newer one is dropped there.
func (f *FeedService) publish() {
	f.mu.RLock()
	out := make([]models.Instrument, len(f.instruments))
	copy(out, f.instruments)
	snap := models.FeedSnapshot{
		Seq:         f.seq,
		GeneratedAt: f.updatedAt,
		Instruments: out,
	}
	f.mu.RUnlock()
	f.published.Apply(snap)
}

// Stop cancels pending highlight clears.
func (f *FeedService) Stop() {
	close(f.clearStop)
}

// Snapshot returns the newest published copy of the board.
func (f *FeedService) Snapshot() models.FeedSnapshot {
	snap, _ := f.published.Latest()
	return snap
}

// Seq returns the current sequence number without copying the board.
func (f *FeedService) Seq() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.seq
}
