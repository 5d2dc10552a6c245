package notifier

import (
	"testing"

	"JaxSpot/internal/domain/models"
)

func TestCueForUpgrade(t *testing.T) {
	cue := CueForTransition(&models.TransitionEvent{
		From:      models.StageWatchlist,
		To:        models.StageReady,
		Direction: models.DirectionUpgrade,
	})
	want := []float64{523, 659, 784, 880}
	if len(cue.Frequencies) != len(want) {
		t.Fatalf("got %v", cue.Frequencies)
	}
	for i, f := range want {
		if cue.Frequencies[i] != f {
			t.Fatalf("freq[%d] = %v, want %v", i, cue.Frequencies[i], f)
		}
	}
	if cue.NoteDuration != 0.15 || cue.Gap != 0.05 {
		t.Fatalf("timing %v/%v", cue.NoteDuration, cue.Gap)
	}
}

func TestCueForDowngrade(t *testing.T) {
	cue := CueForTransition(&models.TransitionEvent{
		From:      models.StagePurchased,
		To:        models.StageReady,
		Direction: models.DirectionDowngrade,
	})
	if cue.Frequencies[0] != 1319 {
		t.Fatalf("got %v", cue.Frequencies)
	}
	if cue.NoteDuration != 0.2 || cue.Gap != 0.1 {
		t.Fatalf("timing %v/%v", cue.NoteDuration, cue.Gap)
	}
}

func TestCueUnknownPairFallsBack(t *testing.T) {
	cue := CueForTransition(&models.TransitionEvent{
		From:      models.StageScanning,
		To:        models.StageReady,
		Direction: models.DirectionUpgrade,
	})
	if len(cue.Frequencies) == 0 {
		t.Fatalf("no fallback cue")
	}
}

func TestNotifyAppendsHighScoreFanfare(t *testing.T) {
	n := New(testLogger())

	n.Notify(&models.TransitionEvent{
		Symbol:    "SOL",
		From:      models.StageReady,
		To:        models.StagePurchased,
		Direction: models.DirectionUpgrade,
	})

	alerts := n.Recent(0)
	if len(alerts) != 2 {
		t.Fatalf("expected cue plus fanfare, got %d alerts", len(alerts))
	}
	if alerts[1].Cue.Name != "high-score" {
		t.Fatalf("second alert %q", alerts[1].Cue.Name)
	}
}

func TestNotifyDowngradeSingleAlert(t *testing.T) {
	n := New(testLogger())

	n.Notify(&models.TransitionEvent{
		Symbol:    "SOL",
		From:      models.StageReady,
		To:        models.StageWatchlist,
		Direction: models.DirectionDowngrade,
	})

	if got := len(n.Recent(0)); got != 1 {
		t.Fatalf("expected 1 alert, got %d", got)
	}
}

func TestSilencedStripsCues(t *testing.T) {
	n := New(testLogger())
	n.Notify(&models.TransitionEvent{
		Symbol:    "SOL",
		From:      models.StageWatchlist,
		To:        models.StageReady,
		Direction: models.DirectionUpgrade,
	})

	alerts := n.Recent(0)
	if len(alerts) == 0 || len(alerts[0].Cue.Frequencies) == 0 {
		t.Fatalf("expected an alert with a cue")
	}

	quiet := Silenced(alerts)
	if len(quiet) != len(alerts) {
		t.Fatalf("alert count changed: %d -> %d", len(alerts), len(quiet))
	}
	if quiet[0].Event.Symbol != "SOL" {
		t.Fatalf("event dropped from silenced alert")
	}
	if len(quiet[0].Cue.Frequencies) != 0 || quiet[0].Cue.Name != "" {
		t.Fatalf("cue survived silencing: %+v", quiet[0].Cue)
	}
	if len(alerts[0].Cue.Frequencies) == 0 {
		t.Fatalf("original alerts mutated")
	}
}

func TestRecentLimitAndOrder(t *testing.T) {
	n := New(testLogger())
	for i := 0; i < 5; i++ {
		n.Notify(&models.TransitionEvent{
			Symbol:    "BTC",
			From:      models.StageScanning,
			To:        models.StageWatchlist,
			Direction: models.DirectionUpgrade,
		})
	}

	if got := len(n.Recent(3)); got != 3 {
		t.Fatalf("limit not applied, got %d", got)
	}
}
