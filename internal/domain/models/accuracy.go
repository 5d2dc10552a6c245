package models

// PickRef identifies a pick inside an accuracy summary.
type PickRef struct {
	ID     string  `json:"id"`
	Symbol string  `json:"symbol"`
	PnL    float64 `json:"pnl"`
}

// MonthlyStat aggregates resolved picks created in one calendar month.
type MonthlyStat struct {
	Label     string  `json:"label"`
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Picks     int     `json:"picks"`
	Hits      int     `json:"hits"`
	HitRate   float64 `json:"hitRate"`
	TotalPnL  float64 `json:"totalPnl"`
	AvgReturn float64 `json:"avgReturn"`
}

// AccuracySummary is the track record computed over resolved picks.
// HitRate and WinRate carry the same value; both names are part of the
// published payload.
type AccuracySummary struct {
	TotalPicks  int           `json:"totalPicks"`
	Hits        int           `json:"hits"`
	Stops       int           `json:"stops"`
	HitRate     float64       `json:"hitRate"`
	WinRate     float64       `json:"winRate"`
	TotalReturn float64       `json:"totalReturn"`
	AvgReturn   float64       `json:"avgReturn"`
	BestPick    *PickRef      `json:"bestPick,omitempty"`
	WorstPick   *PickRef      `json:"worstPick,omitempty"`
	Monthly     []MonthlyStat `json:"monthly"`
}
