package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"JaxSpot/internal/domain/models"
	domrepo "JaxSpot/internal/domain/repository"
	"JaxSpot/pkg/cache"
)

// Aggregate computes the track record over the given picks. Only resolved
// picks (hit or stopped) count; active and cancelled ones are skipped
// entirely. Empty or all-unresolved input yields a zeroed summary, never an
// error. Best/worst scan in input order and the first seen wins ties.
func Aggregate(picks []*models.Pick) models.AccuracySummary {
	summary := models.AccuracySummary{Monthly: []models.MonthlyStat{}}
	buckets := make(map[string]*models.MonthlyStat)

	for _, p := range picks {
		if p == nil || !p.Status.Resolved() {
			continue
		}

		summary.TotalPicks++
		summary.TotalReturn += p.PnL
		if p.Status == models.PickHit {
			summary.Hits++
		} else {
			summary.Stops++
		}

		if summary.BestPick == nil || p.PnL > summary.BestPick.PnL {
			summary.BestPick = &models.PickRef{ID: p.ID, Symbol: p.Symbol, PnL: p.PnL}
		}
		if summary.WorstPick == nil || p.PnL < summary.WorstPick.PnL {
			summary.WorstPick = &models.PickRef{ID: p.ID, Symbol: p.Symbol, PnL: p.PnL}
		}

		// Bucket by creation month, not resolution month.
		key := fmt.Sprintf("%04d-%02d", p.DateCreated.Year(), int(p.DateCreated.Month()))
		b, ok := buckets[key]
		if !ok {
			b = &models.MonthlyStat{
				Label: p.DateCreated.Format("Jan 2006"),
				Year:  p.DateCreated.Year(),
				Month: int(p.DateCreated.Month()),
			}
			buckets[key] = b
		}
		b.Picks++
		b.TotalPnL += p.PnL
		if p.Status == models.PickHit {
			b.Hits++
		}
	}

	if summary.TotalPicks > 0 {
		summary.HitRate = float64(summary.Hits) / float64(summary.TotalPicks) * 100
		summary.AvgReturn = summary.TotalReturn / float64(summary.TotalPicks)
	}
	// winRate mirrors hitRate in the published payload.
	summary.WinRate = summary.HitRate

	for _, b := range buckets {
		if b.Picks > 0 {
			b.HitRate = float64(b.Hits) / float64(b.Picks) * 100
			b.AvgReturn = b.TotalPnL / float64(b.Picks)
		}
		summary.Monthly = append(summary.Monthly, *b)
	}
	// Most recent month first.
	sort.Slice(summary.Monthly, func(i, j int) bool {
		a, b := summary.Monthly[i], summary.Monthly[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return a.Month > b.Month
	})

	return summary
}

// AccuracyService recomputes the summary from the full pick history on
// demand, with a short cache in front so dashboard polling does not re-scan
// the store every request.
type AccuracyService struct {
	picks    domrepo.PickStore
	cache    cache.Service
	cacheTTL time.Duration
	metrics  domrepo.Metrics
}

const accuracyCacheKey = "accuracy:summary"

func NewAccuracyService(picks domrepo.PickStore, cacheSvc cache.Service, cacheTTL time.Duration, metrics domrepo.Metrics) *AccuracyService {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &AccuracyService{picks: picks, cache: cacheSvc, cacheTTL: cacheTTL, metrics: metrics}
}

// Summary returns the current track record.
func (s *AccuracyService) Summary(ctx context.Context) (models.AccuracySummary, error) {
	if s.cache != nil {
		var sum models.AccuracySummary
		if err := s.cache.Get(ctx, accuracyCacheKey, &sum); err == nil {
			return sum, nil
		}
	}

	start := time.Now()
	picks, err := s.picks.List(ctx, domrepo.PickFilter{})
	if err != nil {
		s.metrics.RecordError("accuracy_list")
		return models.AccuracySummary{}, fmt.Errorf("list picks: %w", err)
	}
	sum := Aggregate(picks)
	s.metrics.RecordLatency("accuracy_aggregate", time.Since(start).Seconds())

	if s.cache != nil {
		if err := s.cache.Set(ctx, accuracyCacheKey, sum, s.cacheTTL); err != nil {
			s.metrics.RecordError("accuracy_cache_set")
		}
	}
	return sum, nil
}

// Invalidate drops the cached summary after a pick changes.
func (s *AccuracyService) Invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, accuracyCacheKey)
	}
}
