package models

// Stage is the lifecycle bucket of an instrument on the board.
type Stage string

const (
	StageScanning  Stage = "scanning"
	StageWatchlist Stage = "watchlist"
	StageReady     Stage = "ready"
	StagePurchased Stage = "purchased"
)

// Score thresholds. Checked highest first; a score below every threshold
// lands in scanning.
const (
	ScorePurchased = 95
	ScoreReady     = 80
	ScoreWatchlist = 60
)

var stageRanks = map[Stage]int{
	StageScanning:  1,
	StageWatchlist: 2,
	StageReady:     3,
	StagePurchased: 4,
}

// AllStages lists stages in ascending rank order.
func AllStages() []Stage {
	return []Stage{StageScanning, StageWatchlist, StageReady, StagePurchased}
}

// Rank returns the 1-based ordinal of the stage, 0 for unknown labels.
func (s Stage) Rank() int {
	return stageRanks[s]
}

// Valid reports whether s is one of the four known stages.
func (s Stage) Valid() bool {
	_, ok := stageRanks[s]
	return ok
}

// StageForScore classifies a score into a stage. The input is assumed to be
// on the 0..100 scale already; classification itself never clamps.
func StageForScore(score float64) Stage {
	switch {
	case score >= ScorePurchased:
		return StagePurchased
	case score >= ScoreReady:
		return StageReady
	case score >= ScoreWatchlist:
		return StageWatchlist
	default:
		return StageScanning
	}
}

// ClampScore bounds a score to the 0..100 scale.
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
