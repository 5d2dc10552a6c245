package models

// Tier is a membership level gating feature and content visibility.
type Tier string

const (
	TierFree  Tier = "free"
	TierHerd  Tier = "herd"
	TierPro   Tier = "pro"
	TierElite Tier = "elite"
)

// tierRanks defines the total order free < herd < pro < elite.
var tierRanks = map[Tier]int{
	TierFree:  0,
	TierHerd:  1,
	TierPro:   2,
	TierElite: 3,
}

// AllTiers lists tiers in ascending rank order.
func AllTiers() []Tier {
	return []Tier{TierFree, TierHerd, TierPro, TierElite}
}

// Rank returns the ordinal of the tier. Unknown labels rank as free so that
// gating fails safe: a garbled tier never unlocks anything.
func (t Tier) Rank() int {
	if r, ok := tierRanks[t]; ok {
		return r
	}
	return tierRanks[TierFree]
}

// Satisfies reports whether t meets or exceeds the required tier.
func (t Tier) Satisfies(required Tier) bool {
	return t.Rank() >= required.Rank()
}

// ParseTier normalizes a raw label to a known tier, defaulting to free.
func ParseTier(s string) Tier {
	t := Tier(s)
	if _, ok := tierRanks[t]; ok {
		return t
	}
	return TierFree
}
