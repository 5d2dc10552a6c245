package usecase

import (
	"sync"

	"JaxSpot/internal/domain/models"
)

// Refresher is a last-write-wins holder for snapshot data. Responses are
// tagged with a monotonically increasing sequence; an older, slower result
// arriving after a newer one is discarded instead of overwriting it.
type Refresher struct {
	mu   sync.RWMutex
	seq  uint64
	snap models.FeedSnapshot
	set  bool
}

func NewRefresher() *Refresher {
	return &Refresher{}
}

// Apply installs the snapshot if it is at least as new as the current one.
// Returns false when the snapshot was stale and dropped.
func (r *Refresher) Apply(snap models.FeedSnapshot) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.set && snap.Seq < r.seq {
		return false
	}
	r.seq = snap.Seq
	r.snap = snap
	r.set = true
	return true
}

// Latest returns the newest applied snapshot.
func (r *Refresher) Latest() (models.FeedSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap, r.set
}

// Seq returns the sequence of the newest applied snapshot.
func (r *Refresher) Seq() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.seq
}
