package models

import "time"

// PickStatus tracks the outcome of a published pick.
type PickStatus string

const (
	PickActive    PickStatus = "active"
	PickHit       PickStatus = "hit"
	PickStopped   PickStatus = "stopped"
	PickCancelled PickStatus = "cancelled"
)

// pickTransitions encodes the status machine: active may resolve to any
// terminal status, terminal statuses never change again.
var pickTransitions = map[PickStatus][]PickStatus{
	PickActive: {PickHit, PickStopped, PickCancelled},
}

// Valid reports whether s is a known status.
func (s PickStatus) Valid() bool {
	switch s {
	case PickActive, PickHit, PickStopped, PickCancelled:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transition.
func (s PickStatus) Terminal() bool {
	return s.Valid() && s != PickActive
}

// CanTransition reports whether a pick in status s may move to next.
func (s PickStatus) CanTransition(next PickStatus) bool {
	for _, allowed := range pickTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// Resolved reports whether the status counts toward accuracy statistics.
// Cancelled picks are excluded: they never ran to an outcome.
func (s PickStatus) Resolved() bool {
	return s == PickHit || s == PickStopped
}

// Pick is a published trade call with its eventual outcome.
type Pick struct {
	ID           string     `json:"id"`
	Symbol       string     `json:"symbol"`
	Name         string     `json:"name"`
	Stage        Stage      `json:"stage"`
	Status       PickStatus `json:"status"`
	EntryPrice   float64    `json:"entryPrice"`
	TargetPrice  float64    `json:"targetPrice"`
	StopLoss     float64    `json:"stopLoss"`
	Confidence   float64    `json:"confidence"`
	PnL          float64    `json:"pnl"`
	ActualExit   *float64   `json:"actualExit,omitempty"`
	Reasoning    string     `json:"reasoning"`
	CreatedBy    string     `json:"createdBy,omitempty"`
	DateCreated  time.Time  `json:"dateCreated"`
	DateResolved *time.Time `json:"dateResolved,omitempty"`
}
