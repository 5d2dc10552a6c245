package notifier

import (
	"sync"

	"JaxSpot/internal/domain/models"
	"JaxSpot/pkg/logger"
)

// Alert pairs a transition with the cue the dashboard should play.
type Alert struct {
	Event models.TransitionEvent `json:"event"`
	Cue   Cue                    `json:"cue"`
}

// Notifier turns transition events into dashboard alerts. It keeps a small
// ring of recent alerts for pollers; it never performs audio output itself.
type Notifier struct {
	logger *logger.Logger

	mu     sync.RWMutex
	recent []Alert
	limit  int
}

func New(lgr *logger.Logger) *Notifier {
	return &Notifier{logger: lgr, limit: 50}
}

// Notify records the alert for a transition. Crossing into purchased also
// gets the high-score fanfare appended.
func (n *Notifier) Notify(ev *models.TransitionEvent) {
	if ev == nil {
		return
	}
	alerts := []Alert{{Event: *ev, Cue: CueForTransition(ev)}}
	if ev.To == models.StagePurchased && ev.Direction == models.DirectionUpgrade {
		alerts = append(alerts, Alert{Event: *ev, Cue: HighScoreCue()})
	}

	n.mu.Lock()
	n.recent = append(n.recent, alerts...)
	if len(n.recent) > n.limit {
		n.recent = n.recent[len(n.recent)-n.limit:]
	}
	n.mu.Unlock()

	n.logger.Debug("alert queued",
		logger.String("symbol", ev.Symbol),
		logger.String("cue", alerts[0].Cue.Name))
}

// Silenced strips the audio cues from alerts, for viewers whose
// preferences have audio disabled. The events themselves still show.
func Silenced(alerts []Alert) []Alert {
	out := make([]Alert, len(alerts))
	for i, a := range alerts {
		a.Cue = Cue{}
		out[i] = a
	}
	return out
}

// Recent returns the newest alerts, most recent last.
func (n *Notifier) Recent(limit int) []Alert {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if limit <= 0 || limit > len(n.recent) {
		limit = len(n.recent)
	}
	out := make([]Alert, limit)
	copy(out, n.recent[len(n.recent)-limit:])
	return out
}
