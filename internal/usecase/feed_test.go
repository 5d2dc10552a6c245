package usecase

import (
	"context"
	"testing"
	"time"

	"JaxSpot/internal/domain/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func seedBoard() []models.Instrument {
	return []models.Instrument{
		{Symbol: "BTC", Name: "Bitcoin", Score: 45, Stage: models.StageScanning, Price: 43250, Change24h: 2.5},
		{Symbol: "SOL", Name: "Solana", Score: 78, Stage: models.StageWatchlist, Price: 98.45, Change24h: 5.2},
	}
}

func TestAdvanceStageMatchesScore(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// rnd=1.0 pushes every score up by the full +5 drift
	res := Advance(seedBoard(), func() float64 { return 1 }, 1, now)

	for _, in := range res.Instruments {
		if in.Stage != models.StageForScore(in.Score) {
			t.Fatalf("%s: stage %s does not match score %v", in.Symbol, in.Stage, in.Score)
		}
		if in.Score < 0 || in.Score > 100 {
			t.Fatalf("%s: score %v out of range", in.Symbol, in.Score)
		}
		if !in.LastUpdated.Equal(now) {
			t.Fatalf("%s: lastUpdated not stamped", in.Symbol)
		}
	}
}

func TestAdvanceEmitsTransition(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	board := []models.Instrument{
		{Symbol: "SOL", Name: "Solana", Score: 78, Stage: models.StageWatchlist, Price: 98.45},
	}
	// +5 drift moves 78 to 83, watchlist -> ready
	res := Advance(board, func() float64 { return 1 }, 7, now)

	if len(res.Transitions) != 1 {
		t.Fatalf("expected 1 transition, got %d", len(res.Transitions))
	}
	ev := res.Transitions[0]
	if ev.From != models.StageWatchlist || ev.To != models.StageReady {
		t.Fatalf("unexpected transition %s -> %s", ev.From, ev.To)
	}
	if ev.Direction != models.DirectionUpgrade {
		t.Fatalf("expected upgrade, got %s", ev.Direction)
	}
	if ev.Seq != 7 {
		t.Fatalf("expected seq 7, got %d", ev.Seq)
	}

	moved := res.Instruments[0]
	if !moved.RecentlyMoved {
		t.Fatalf("recentlyMoved not set")
	}
	if moved.PreviousStage != models.StageWatchlist {
		t.Fatalf("previousStage %s", moved.PreviousStage)
	}
	if moved.Reasoning != reasoningForStage(models.StageReady) {
		t.Fatalf("reasoning not swapped: %q", moved.Reasoning)
	}
}

func TestAdvanceNoTransitionKeepsReasoning(t *testing.T) {
	now := time.Now()
	board := []models.Instrument{
		{Symbol: "BTC", Score: 45, Stage: models.StageScanning, Reasoning: "original", Price: 1},
	}
	// rnd=0.5 means zero drift everywhere
	res := Advance(board, func() float64 { return 0.5 }, 1, now)

	if len(res.Transitions) != 0 {
		t.Fatalf("unexpected transitions: %v", res.Transitions)
	}
	got := res.Instruments[0]
	if got.Reasoning != "original" {
		t.Fatalf("reasoning changed: %q", got.Reasoning)
	}
	if got.RecentlyMoved {
		t.Fatalf("recentlyMoved set without a transition")
	}
}

func TestAdvanceClampsAtEdges(t *testing.T) {
	now := time.Now()
	board := []models.Instrument{
		{Symbol: "HI", Score: 98, Stage: models.StagePurchased, Price: 1},
		{Symbol: "LO", Score: 2, Stage: models.StageScanning, Price: 1},
	}

	up := Advance(board, func() float64 { return 1 }, 1, now)
	if up.Instruments[0].Score != 100 {
		t.Fatalf("expected clamp to 100, got %v", up.Instruments[0].Score)
	}

	down := Advance(board, func() float64 { return 0 }, 1, now)
	if down.Instruments[1].Score != 0 {
		t.Fatalf("expected clamp to 0, got %v", down.Instruments[1].Score)
	}
}

func TestFeedServiceTickPublishesSnapshot(t *testing.T) {
	sink := &captureSink{}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := NewFeedService(testLogger(), nopMetrics{}, sink, seedBoard(),
		WithRand(func() float64 { return 1 }),
		WithClock(fixedClock(now)),
	)
	defer f.Stop()

	if f.Snapshot().Seq != 0 {
		t.Fatalf("fresh feed should publish seq 0")
	}

	f.Tick(context.Background())

	snap := f.Snapshot()
	if snap.Seq != 1 {
		t.Fatalf("expected seq 1, got %d", snap.Seq)
	}
	if len(snap.Instruments) != 2 {
		t.Fatalf("expected 2 instruments, got %d", len(snap.Instruments))
	}
	for _, in := range snap.Instruments {
		if in.Stage != models.StageForScore(in.Score) {
			t.Fatalf("%s: stage %s vs score %v", in.Symbol, in.Stage, in.Score)
		}
	}

	// SOL 78 -> 83 crossed into ready and must have reached the sink.
	events := sink.all()
	if len(events) != 1 || events[0].Symbol != "SOL" {
		t.Fatalf("unexpected sink events: %v", events)
	}
}

func TestFeedServiceMovedClear(t *testing.T) {
	sink := &captureSink{}
	f := NewFeedService(testLogger(), nopMetrics{}, sink, seedBoard(),
		WithRand(func() float64 { return 1 }),
		WithMovedClearTTL(20*time.Millisecond),
	)
	defer f.Stop()

	f.Tick(context.Background())

	snap := f.Snapshot()
	var moved bool
	for _, in := range snap.Instruments {
		if in.RecentlyMoved {
			moved = true
		}
	}
	if !moved {
		t.Fatalf("expected a highlighted instrument after the tick")
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		cleared := true
		for _, in := range f.Snapshot().Instruments {
			if in.RecentlyMoved || in.PreviousStage != "" {
				cleared = false
			}
		}
		if cleared {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("highlights not cleared after TTL")
}

func TestFeedServiceSeqMonotonic(t *testing.T) {
	f := NewFeedService(testLogger(), nopMetrics{}, nil, seedBoard(),
		WithRand(func() float64 { return 0.5 }),
	)
	defer f.Stop()

	for i := 1; i <= 5; i++ {
		f.Tick(context.Background())
		if got := f.Seq(); got != uint64(i) {
			t.Fatalf("after %d ticks seq is %d", i, got)
		}
	}
}
