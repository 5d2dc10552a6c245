package models

import "testing"

func TestPickStatusTransitions(t *testing.T) {
	terminals := []PickStatus{PickHit, PickStopped, PickCancelled}

	for _, next := range terminals {
		if !PickActive.CanTransition(next) {
			t.Fatalf("active should transition to %s", next)
		}
	}
	for _, from := range terminals {
		for _, next := range append(terminals, PickActive) {
			if from.CanTransition(next) {
				t.Fatalf("%s should be terminal, transitioned to %s", from, next)
			}
		}
	}
}

func TestPickStatusResolved(t *testing.T) {
	if !PickHit.Resolved() || !PickStopped.Resolved() {
		t.Fatalf("hit and stopped should count as resolved")
	}
	if PickActive.Resolved() || PickCancelled.Resolved() {
		t.Fatalf("active and cancelled should not count as resolved")
	}
}

func TestPickStatusValid(t *testing.T) {
	for _, s := range []PickStatus{PickActive, PickHit, PickStopped, PickCancelled} {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if PickStatus("pending").Valid() {
		t.Fatalf("unknown status should not be valid")
	}
}
