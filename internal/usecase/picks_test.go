package usecase

import (
	"context"
	"testing"
	"time"

	"JaxSpot/internal/domain/models"
	pkghttp "JaxSpot/pkg/http"
)

func newPickService(t *testing.T) (*PickService, *memPickStore) {
	t.Helper()
	store := newMemPickStore()
	return NewPickService(store, nil, nopMetrics{}, testLogger()), store
}

func elite() *models.User {
	return &models.User{ID: "u-elite", DisplayName: "Caller", Tier: models.TierElite}
}

func TestCreatePickDefaults(t *testing.T) {
	svc, _ := newPickService(t)

	p, err := svc.Create(context.Background(), &models.CreatePickRequest{
		Symbol:     "SOL",
		Name:       "Solana",
		Stage:      "ready",
		EntryPrice: 98.45,
		Confidence: 85,
	}, elite())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("id not assigned")
	}
	if p.Status != models.PickActive {
		t.Fatalf("status %s", p.Status)
	}
	if p.CreatedBy != "u-elite" {
		t.Fatalf("createdBy %q", p.CreatedBy)
	}
	if p.DateCreated.IsZero() {
		t.Fatalf("dateCreated not stamped")
	}
	if p.DateResolved != nil {
		t.Fatalf("dateResolved stamped on create")
	}
}

func TestCreatePickRecordsAuthor(t *testing.T) {
	svc, store := newPickService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &models.CreatePickRequest{
		Symbol: "X", Name: "X", Stage: "ready", EntryPrice: 1,
	}, &models.User{ID: "author-1", Tier: models.TierElite})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	stored, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.CreatedBy != "author-1" {
		t.Fatalf("createdBy not persisted: %q", stored.CreatedBy)
	}

	// A nil creator leaves authorship blank rather than failing.
	anon, err := svc.Create(ctx, &models.CreatePickRequest{
		Symbol: "Y", Name: "Y", Stage: "ready", EntryPrice: 1,
	}, nil)
	if err != nil {
		t.Fatalf("create anonymous: %v", err)
	}
	if anon.CreatedBy != "" {
		t.Fatalf("createdBy %q for nil creator", anon.CreatedBy)
	}
}

func TestCreatePickClampsConfidence(t *testing.T) {
	svc, _ := newPickService(t)

	p, err := svc.Create(context.Background(), &models.CreatePickRequest{
		Symbol: "X", Name: "X", Stage: "ready", EntryPrice: 1, Confidence: 140,
	}, elite())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Confidence != 100 {
		t.Fatalf("confidence %v", p.Confidence)
	}
}

func TestResolvePickStampsOutcome(t *testing.T) {
	svc, _ := newPickService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &models.CreatePickRequest{Symbol: "X", Name: "X", Stage: "ready", EntryPrice: 10}, elite())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	exit := 12.5
	got, err := svc.Resolve(ctx, p.ID, &models.UpdatePickRequest{Status: "hit", PnL: 25, ActualExit: &exit})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Status != models.PickHit {
		t.Fatalf("status %s", got.Status)
	}
	if got.DateResolved == nil {
		t.Fatalf("dateResolved not stamped")
	}
	if got.PnL != 25 || got.ActualExit == nil || *got.ActualExit != 12.5 {
		t.Fatalf("outcome not stamped: %+v", got)
	}
}

func TestResolveCancelledKeepsNoOutcome(t *testing.T) {
	svc, _ := newPickService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &models.CreatePickRequest{Symbol: "X", Name: "X", Stage: "ready", EntryPrice: 10}, elite())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Resolve(ctx, p.ID, &models.UpdatePickRequest{Status: "cancelled", PnL: 99})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.DateResolved != nil {
		t.Fatalf("cancelled pick must not stamp dateResolved")
	}
	if got.PnL != 0 {
		t.Fatalf("cancelled pick must not keep pnl, got %v", got.PnL)
	}
}

func TestResolveTerminalPickRejected(t *testing.T) {
	svc, _ := newPickService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &models.CreatePickRequest{Symbol: "X", Name: "X", Stage: "ready", EntryPrice: 10}, elite())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Resolve(ctx, p.ID, &models.UpdatePickRequest{Status: "hit", PnL: 5}); err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	_, err = svc.Resolve(ctx, p.ID, &models.UpdatePickRequest{Status: "stopped"})
	if err == nil {
		t.Fatalf("expected rejection")
	}
	appErr, ok := err.(*pkghttp.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Status != 400 {
		t.Fatalf("status %d", appErr.Status)
	}
}

func TestResolveUnknownPick(t *testing.T) {
	svc, _ := newPickService(t)

	_, err := svc.Resolve(context.Background(), "missing", &models.UpdatePickRequest{Status: "hit"})
	if err == nil {
		t.Fatalf("expected not found")
	}
	appErr, ok := err.(*pkghttp.AppError)
	if !ok || appErr.Status != 404 {
		t.Fatalf("expected 404 AppError, got %v", err)
	}
}

func TestListPicksLimit(t *testing.T) {
	svc, store := newPickService(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		p := &models.Pick{ID: string(rune('a' + i)), Symbol: "X", Stage: models.StageReady, Status: models.PickActive, DateCreated: time.Now()}
		if err := store.Create(ctx, p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	out, err := svc.List(ctx, &models.ListPicksRequest{Limit: 3})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d picks", len(out))
	}
}
