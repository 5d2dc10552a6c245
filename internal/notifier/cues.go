package notifier

import (
	"JaxSpot/internal/domain/models"
)

// Cue is a playable tone sequence the dashboard renders for an event.
// Frequencies are in Hz, durations in seconds.
type Cue struct {
	Name         string    `json:"name"`
	Frequencies  []float64 `json:"frequencies"`
	NoteDuration float64   `json:"noteDuration"`
	Gap          float64   `json:"gap"`
}

var upgradeSequences = map[string][]float64{
	"scanning-watchlist": {440, 523, 659},             // A4, C5, E5
	"watchlist-ready":    {523, 659, 784, 880},        // C5, E5, G5, A5
	"ready-purchased":    {659, 784, 880, 1047, 1319}, // E5, G5, A5, C6, E6
}

var downgradeSequences = map[string][]float64{
	"purchased-ready":    {1319, 1047, 880, 784}, // E6, C6, A5, G5
	"ready-watchlist":    {880, 784, 659, 523},   // A5, G5, E5, C5
	"watchlist-scanning": {659, 523, 440},        // E5, C5, A4
}

// CueForTransition maps a stage move to its tone sequence. Unknown pairs
// fall back to the smallest sequence in the matching direction.
func CueForTransition(ev *models.TransitionEvent) Cue {
	key := string(ev.From) + "-" + string(ev.To)
	if ev.Direction == models.DirectionUpgrade {
		seq, ok := upgradeSequences[key]
		if !ok {
			seq = upgradeSequences["scanning-watchlist"]
		}
		return Cue{Name: "upgrade:" + key, Frequencies: seq, NoteDuration: 0.15, Gap: 0.05}
	}
	seq, ok := downgradeSequences[key]
	if !ok {
		seq = downgradeSequences["watchlist-scanning"]
	}
	return Cue{Name: "downgrade:" + key, Frequencies: seq, NoteDuration: 0.2, Gap: 0.1}
}

// HighScoreCue is the fanfare for a score crossing into purchased range.
func HighScoreCue() Cue {
	return Cue{
		Name:         "high-score",
		Frequencies:  []float64{523, 659, 784, 1047, 1319, 1047, 784, 659, 523},
		NoteDuration: 0.12,
		Gap:          0.03,
	}
}

// NewCoinCue is the chirp for an instrument joining the board.
func NewCoinCue() Cue {
	return Cue{
		Name:         "new-coin",
		Frequencies:  []float64{800, 1000, 800},
		NoteDuration: 0.1,
		Gap:          0.05,
	}
}
