package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"JaxSpot/internal/domain/models"
	"JaxSpot/internal/domain/repository"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUserRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	users := s.Users()

	now := time.Now().Truncate(time.Second)
	u := &models.User{
		ID:          "u1",
		Email:       "a@b.c",
		DisplayName: "Trader",
		Avatar:      "/avatars/u1.png",
		Tier:        models.TierPro,
		JoinDate:    now.Add(-30 * 24 * time.Hour),
		TotalTrades: 156,
		WinRate:     73.2,
		TotalPnL:    12450,
		IsActive:    true,
		Preferences: models.Preferences{
			AudioEnabled:  true,
			AudioVolume:   0.8,
			Notifications: false,
			Theme:         "dark",
			Timezone:      "Europe/Berlin",
		},
		PasswordHash: "deadbeef",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := users.GetByEmail(ctx, "a@b.c")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != "u1" || got.Tier != models.TierPro {
		t.Fatalf("got %+v", got)
	}
	if got.Avatar != "/avatars/u1.png" || got.TotalTrades != 156 || got.WinRate != 73.2 || got.TotalPnL != 12450 || !got.IsActive {
		t.Fatalf("profile fields lost: %+v", got)
	}
	if got.JoinDate.Unix() != u.JoinDate.Unix() {
		t.Fatalf("joinDate %v", got.JoinDate)
	}
	if got.LastLogin != nil {
		t.Fatalf("lastLogin set before any login")
	}
	if !got.Preferences.AudioEnabled || got.Preferences.AudioVolume != 0.8 || got.Preferences.Notifications {
		t.Fatalf("preferences %+v", got.Preferences)
	}
	if got.Preferences.Theme != "dark" || got.Preferences.Timezone != "Europe/Berlin" {
		t.Fatalf("preferences %+v", got.Preferences)
	}

	login := now.Add(time.Hour)
	got.DisplayName = "Renamed"
	got.LastLogin = &login
	got.UpdatedAt = now.Add(time.Minute)
	if err := users.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, err := users.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if again.DisplayName != "Renamed" {
		t.Fatalf("update lost: %s", again.DisplayName)
	}
	if again.LastLogin == nil || again.LastLogin.Unix() != login.Unix() {
		t.Fatalf("lastLogin %v", again.LastLogin)
	}
}

func TestUserNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Users().GetByID(ctx, "ghost"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	ghost := &models.User{ID: "ghost", Email: "g@b.c", Tier: models.TierFree}
	if err := s.Users().Update(ctx, ghost); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func TestPickRoundTripAndFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	picks := s.Picks()

	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	for i, status := range []models.PickStatus{models.PickActive, models.PickHit, models.PickActive} {
		p := &models.Pick{
			ID:          []string{"p1", "p2", "p3"}[i],
			Symbol:      "SOL",
			Name:        "Solana",
			Stage:       models.StageReady,
			Status:      status,
			EntryPrice:  98.45,
			TargetPrice: 120,
			StopLoss:    90,
			Confidence:  85,
			DateCreated: base.Add(time.Duration(i) * time.Hour),
		}
		if err := picks.Create(ctx, p); err != nil {
			t.Fatalf("create %s: %v", p.ID, err)
		}
	}

	all, err := picks.List(ctx, repository.PickFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d picks", len(all))
	}
	// Newest first.
	if all[0].ID != "p3" {
		t.Fatalf("order wrong, first is %s", all[0].ID)
	}

	active, err := picks.List(ctx, repository.PickFilter{Status: models.PickActive})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("got %d active", len(active))
	}

	limited, err := picks.List(ctx, repository.PickFilter{Limit: 1})
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit ignored, got %d", len(limited))
	}
}

func TestPickResolveFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	picks := s.Picks()

	created := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	p := &models.Pick{
		ID: "p1", Symbol: "SOL", Name: "Solana",
		Stage: models.StageReady, Status: models.PickActive,
		EntryPrice: 100, TargetPrice: 120, StopLoss: 90,
		Confidence: 85, CreatedBy: "u-elite", DateCreated: created,
	}
	if err := picks.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := picks.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CreatedBy != "u-elite" {
		t.Fatalf("createdBy lost: %q", got.CreatedBy)
	}
	if got.ActualExit != nil || got.DateResolved != nil {
		t.Fatalf("unresolved pick carries outcome: %+v", got)
	}

	exit := 118.5
	resolved := created.Add(48 * time.Hour)
	got.Status = models.PickHit
	got.PnL = 18.5
	got.ActualExit = &exit
	got.DateResolved = &resolved
	if err := picks.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}

	final, err := picks.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("get resolved: %v", err)
	}
	if final.Status != models.PickHit || final.PnL != 18.5 {
		t.Fatalf("outcome lost: %+v", final)
	}
	if final.ActualExit == nil || *final.ActualExit != 118.5 {
		t.Fatalf("actualExit %v", final.ActualExit)
	}
	if final.DateResolved == nil || final.DateResolved.Unix() != resolved.Unix() {
		t.Fatalf("dateResolved %v", final.DateResolved)
	}
}

func TestSeedAppsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seed := []*models.PlatformApp{
		{ID: "a", Name: "Alpha", Category: "trading", RequiredTier: models.TierFree},
		{ID: "b", Name: "Beta", Category: "analytics", RequiredTier: models.TierElite},
	}
	if err := s.SeedApps(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Second seed must not duplicate.
	if err := s.SeedApps(ctx, seed); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	apps, err := s.Apps().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("got %d apps", len(apps))
	}

	got, err := s.Apps().GetByID(ctx, "b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.RequiredTier != models.TierElite || got.Category != "analytics" {
		t.Fatalf("app %+v", got)
	}

	if _, err := s.Apps().GetByID(ctx, "ghost"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
