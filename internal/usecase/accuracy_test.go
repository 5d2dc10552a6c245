package usecase

import (
	"context"
	"testing"
	"time"

	"JaxSpot/internal/domain/models"
	"JaxSpot/pkg/cache"
)

func mkPick(id string, status models.PickStatus, pnl float64, created time.Time) *models.Pick {
	return &models.Pick{
		ID:          id,
		Symbol:      id,
		Status:      status,
		PnL:         pnl,
		DateCreated: created,
	}
}

func TestAggregateEmpty(t *testing.T) {
	sum := Aggregate(nil)
	if sum.TotalPicks != 0 || sum.HitRate != 0 || sum.WinRate != 0 {
		t.Fatalf("expected zeroed summary, got %+v", sum)
	}
	if sum.BestPick != nil || sum.WorstPick != nil {
		t.Fatalf("expected nil best/worst")
	}
	if sum.Monthly == nil || len(sum.Monthly) != 0 {
		t.Fatalf("expected empty monthly slice, got %v", sum.Monthly)
	}
}

func TestAggregateSkipsUnresolved(t *testing.T) {
	created := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	sum := Aggregate([]*models.Pick{
		mkPick("a", models.PickActive, 10, created),
		mkPick("b", models.PickCancelled, -5, created),
	})
	if sum.TotalPicks != 0 {
		t.Fatalf("active and cancelled must not count, got %d", sum.TotalPicks)
	}
}

func TestAggregateBasics(t *testing.T) {
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	sum := Aggregate([]*models.Pick{
		mkPick("a", models.PickHit, 10, jan),
		mkPick("b", models.PickStopped, -5, jan),
		mkPick("c", models.PickActive, 20, feb),
		mkPick("d", models.PickHit, 7.5, feb),
	})

	if sum.TotalPicks != 3 {
		t.Fatalf("totalPicks %d", sum.TotalPicks)
	}
	if sum.Hits != 2 || sum.Stops != 1 {
		t.Fatalf("hits %d stops %d", sum.Hits, sum.Stops)
	}
	wantRate := float64(2) / 3 * 100
	if sum.HitRate != wantRate {
		t.Fatalf("hitRate %v, want %v", sum.HitRate, wantRate)
	}
	if sum.WinRate != sum.HitRate {
		t.Fatalf("winRate %v must mirror hitRate %v", sum.WinRate, sum.HitRate)
	}
	if sum.TotalReturn != 12.5 {
		t.Fatalf("totalReturn %v", sum.TotalReturn)
	}
	if sum.BestPick == nil || sum.BestPick.ID != "a" {
		t.Fatalf("best %+v", sum.BestPick)
	}
	if sum.WorstPick == nil || sum.WorstPick.ID != "b" {
		t.Fatalf("worst %+v", sum.WorstPick)
	}
}

func TestAggregateTieFirstWins(t *testing.T) {
	created := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	sum := Aggregate([]*models.Pick{
		mkPick("first", models.PickHit, 10, created),
		mkPick("second", models.PickHit, 10, created),
	})
	if sum.BestPick.ID != "first" {
		t.Fatalf("tie should keep the first seen, got %s", sum.BestPick.ID)
	}
	if sum.WorstPick.ID != "first" {
		t.Fatalf("tie should keep the first seen, got %s", sum.WorstPick.ID)
	}
}

func TestAggregateMonthlyBuckets(t *testing.T) {
	dec := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	sum := Aggregate([]*models.Pick{
		mkPick("a", models.PickHit, 4, dec),
		mkPick("b", models.PickStopped, -2, dec),
		mkPick("c", models.PickHit, 6, jan),
	})

	if len(sum.Monthly) != 2 {
		t.Fatalf("expected 2 months, got %d", len(sum.Monthly))
	}
	// Most recent first.
	if sum.Monthly[0].Label != "Jan 2026" || sum.Monthly[1].Label != "Dec 2025" {
		t.Fatalf("order wrong: %s, %s", sum.Monthly[0].Label, sum.Monthly[1].Label)
	}
	decStat := sum.Monthly[1]
	if decStat.Picks != 2 || decStat.Hits != 1 {
		t.Fatalf("dec bucket %+v", decStat)
	}
	if decStat.HitRate != 50 {
		t.Fatalf("dec hitRate %v", decStat.HitRate)
	}
	if decStat.AvgReturn != 1 {
		t.Fatalf("dec avgReturn %v", decStat.AvgReturn)
	}
}

func TestAccuracyServiceCaching(t *testing.T) {
	store := newMemPickStore()
	created := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()
	if err := store.Create(ctx, mkPick("a", models.PickHit, 10, created)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := NewAccuracyService(store, cache.NewMemoryCache(), time.Minute, nopMetrics{})

	sum, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalPicks != 1 {
		t.Fatalf("totalPicks %d", sum.TotalPicks)
	}

	// A second resolved pick stays invisible until the cache is invalidated.
	if err := store.Create(ctx, mkPick("b", models.PickStopped, -3, created)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sum, err = svc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalPicks != 1 {
		t.Fatalf("expected cached summary, got %d picks", sum.TotalPicks)
	}

	svc.Invalidate(ctx)
	sum, err = svc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalPicks != 2 {
		t.Fatalf("expected fresh summary, got %d picks", sum.TotalPicks)
	}
}
