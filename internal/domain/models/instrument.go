package models

import "time"

// Instrument is one tradeable asset on the signal board.
type Instrument struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Icon          string  `json:"icon"`
	Score         float64 `json:"score"`
	Stage         Stage   `json:"stage"`
	Price         float64 `json:"price"`
	Change24h     float64 `json:"change24h"`
	Volume        string  `json:"volume"`
	MarketCap     string  `json:"marketCap"`
	Reasoning     string  `json:"reasoning"`
	RecentlyMoved bool    `json:"recentlyMoved"`
	// PreviousStage is set together with RecentlyMoved and cleared with it.
	PreviousStage Stage     `json:"previousStage,omitempty"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// FeedSnapshot is a point-in-time view of the board as one tier sees it.
type FeedSnapshot struct {
	Seq         uint64       `json:"seq"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Instruments []Instrument `json:"instruments"`
}
