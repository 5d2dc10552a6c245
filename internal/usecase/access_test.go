package usecase

import (
	"testing"
	"time"

	"JaxSpot/internal/domain/models"
)

func userWithTier(tier models.Tier) *models.User {
	return &models.User{ID: "u1", Email: "u@example.com", Tier: tier}
}

func TestVisibleStages(t *testing.T) {
	svc := NewAccessService()

	cases := []struct {
		user *models.User
		want int
	}{
		{nil, 2},
		{userWithTier(models.TierFree), 2},
		{userWithTier(models.TierHerd), 2},
		{userWithTier(models.TierPro), 3},
		{userWithTier(models.TierElite), 4},
	}
	for _, c := range cases {
		if got := svc.VisibleStages(c.user); len(got) != c.want {
			t.Fatalf("user %+v: got %d stages, want %d", c.user, len(got), c.want)
		}
	}
}

func TestCanAccess(t *testing.T) {
	svc := NewAccessService()

	if !svc.CanAccess(nil, models.TierFree) {
		t.Fatalf("anonymous should satisfy free")
	}
	if svc.CanAccess(nil, models.TierPro) {
		t.Fatalf("anonymous should not satisfy pro")
	}
	if !svc.CanAccess(userWithTier(models.TierPro), models.TierHerd) {
		t.Fatalf("pro should satisfy herd")
	}
	if svc.CanAccess(userWithTier(models.TierHerd), models.TierPro) {
		t.Fatalf("herd should not satisfy pro")
	}
	// Unknown tiers degrade to free.
	if svc.CanAccess(userWithTier(models.Tier("vip")), models.TierHerd) {
		t.Fatalf("unknown tier should be treated as free")
	}
}

func TestFilterSnapshot(t *testing.T) {
	svc := NewAccessService()
	snap := models.FeedSnapshot{
		Seq:         9,
		GeneratedAt: time.Now(),
		Instruments: []models.Instrument{
			{Symbol: "A", Stage: models.StageScanning},
			{Symbol: "B", Stage: models.StageWatchlist},
			{Symbol: "C", Stage: models.StageReady},
			{Symbol: "D", Stage: models.StagePurchased},
		},
	}

	free := svc.FilterSnapshot(nil, snap)
	if len(free.Instruments) != 2 {
		t.Fatalf("free sees %d instruments", len(free.Instruments))
	}
	if free.Seq != 9 {
		t.Fatalf("seq must pass through, got %d", free.Seq)
	}

	pro := svc.FilterSnapshot(userWithTier(models.TierPro), snap)
	if len(pro.Instruments) != 3 {
		t.Fatalf("pro sees %d instruments", len(pro.Instruments))
	}
	for _, in := range pro.Instruments {
		if in.Stage == models.StagePurchased {
			t.Fatalf("pro must not see purchased")
		}
	}

	elite := svc.FilterSnapshot(userWithTier(models.TierElite), snap)
	if len(elite.Instruments) != 4 {
		t.Fatalf("elite sees %d instruments", len(elite.Instruments))
	}
}

func TestUpgradeMessage(t *testing.T) {
	svc := NewAccessService()

	if got := svc.UpgradeMessage(userWithTier(models.TierElite), models.TierElite); got != "Access granted" {
		t.Fatalf("satisfied viewer got %q", got)
	}
	if got := svc.UpgradeMessage(nil, models.TierPro); got != "Sign up to access more stages" {
		t.Fatalf("anonymous got %q", got)
	}
	if got := svc.UpgradeMessage(userWithTier(models.TierFree), models.TierHerd); got != "Upgrade to Herd membership to access all stages" {
		t.Fatalf("free got %q", got)
	}
	if got := svc.UpgradeMessage(userWithTier(models.TierHerd), models.TierPro); got != "Upgrade to Pro to access Stage 3" {
		t.Fatalf("herd got %q", got)
	}
	if got := svc.UpgradeMessage(userWithTier(models.TierPro), models.TierElite); got != "Upgrade to Elite to access Stage 4" {
		t.Fatalf("pro got %q", got)
	}
}

func TestLockApps(t *testing.T) {
	svc := NewAccessService()
	apps := []*models.PlatformApp{
		{ID: "a", RequiredTier: models.TierFree},
		{ID: "b", RequiredTier: models.TierPro},
	}

	out := svc.LockApps(userWithTier(models.TierHerd), apps)
	if out[0].Locked {
		t.Fatalf("free app locked for herd")
	}
	if !out[1].Locked {
		t.Fatalf("pro app unlocked for herd")
	}
	// Input must not be mutated.
	if apps[1].Locked {
		t.Fatalf("input slice mutated")
	}
}
