package models

import "time"

// TransitionDirection tells whether a stage move climbed or fell.
type TransitionDirection string

const (
	DirectionUpgrade   TransitionDirection = "upgrade"
	DirectionDowngrade TransitionDirection = "downgrade"
)

// TransitionEvent records one instrument crossing a stage boundary.
type TransitionEvent struct {
	Symbol    string              `json:"symbol"`
	From      Stage               `json:"from"`
	To        Stage               `json:"to"`
	Direction TransitionDirection `json:"direction"`
	Score     float64             `json:"score"`
	Seq       uint64              `json:"seq"`
	At        time.Time           `json:"at"`
}

// DirectionOf derives the direction from the stage ranks.
func DirectionOf(from, to Stage) TransitionDirection {
	if to.Rank() > from.Rank() {
		return DirectionUpgrade
	}
	return DirectionDowngrade
}
