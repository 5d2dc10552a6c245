package models

import "testing"

func TestTierSatisfies(t *testing.T) {
	cases := []struct {
		tier     Tier
		required Tier
		want     bool
	}{
		{TierFree, TierFree, true},
		{TierFree, TierHerd, false},
		{TierHerd, TierFree, true},
		{TierHerd, TierPro, false},
		{TierPro, TierHerd, true},
		{TierPro, TierElite, false},
		{TierElite, TierElite, true},
		{TierElite, TierFree, true},
	}
	for _, c := range cases {
		if got := c.tier.Satisfies(c.required); got != c.want {
			t.Fatalf("%s satisfies %s: got %v, want %v", c.tier, c.required, got, c.want)
		}
	}
}

func TestParseTierUnknownFallsBackToFree(t *testing.T) {
	if got := ParseTier("platinum"); got != TierFree {
		t.Fatalf("got %s", got)
	}
	if got := ParseTier(""); got != TierFree {
		t.Fatalf("got %s", got)
	}
	if got := ParseTier("elite"); got != TierElite {
		t.Fatalf("got %s", got)
	}
}

func TestTierRankOrdering(t *testing.T) {
	tiers := AllTiers()
	for i := 1; i < len(tiers); i++ {
		if tiers[i].Rank() <= tiers[i-1].Rank() {
			t.Fatalf("tier %s rank %d not above %s rank %d",
				tiers[i], tiers[i].Rank(), tiers[i-1], tiers[i-1].Rank())
		}
	}
}
