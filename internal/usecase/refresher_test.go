package usecase

import (
	"testing"

	"JaxSpot/internal/domain/models"
)

func TestRefresherLastWriteWins(t *testing.T) {
	r := NewRefresher()

	if _, ok := r.Latest(); ok {
		t.Fatalf("fresh refresher should hold nothing")
	}

	if !r.Apply(models.FeedSnapshot{Seq: 3}) {
		t.Fatalf("first apply must win")
	}
	if !r.Apply(models.FeedSnapshot{Seq: 5}) {
		t.Fatalf("newer apply must win")
	}
	if r.Apply(models.FeedSnapshot{Seq: 4}) {
		t.Fatalf("stale apply must be dropped")
	}

	snap, ok := r.Latest()
	if !ok || snap.Seq != 5 {
		t.Fatalf("latest %d ok=%v", snap.Seq, ok)
	}
	if r.Seq() != 5 {
		t.Fatalf("seq %d", r.Seq())
	}
}

func TestRefresherEqualSeqReplaces(t *testing.T) {
	r := NewRefresher()
	r.Apply(models.FeedSnapshot{Seq: 2, Instruments: []models.Instrument{{Symbol: "OLD"}}})
	if !r.Apply(models.FeedSnapshot{Seq: 2, Instruments: []models.Instrument{{Symbol: "NEW"}}}) {
		t.Fatalf("same-seq apply must replace")
	}
	snap, _ := r.Latest()
	if snap.Instruments[0].Symbol != "NEW" {
		t.Fatalf("got %s", snap.Instruments[0].Symbol)
	}
}
