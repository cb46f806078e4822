package push

import (
	"testing"
	"time"
)

var encourageDay = time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)

func TestMilestoneSequence(t *testing.T) {
	ratios := []float64{0.1, 0.3, 0.6, 0.6, 0.9, 1.0}
	want := []int{0, 25, 50, thresholdNone, 75, 100} // thresholdNone = no message

	var state ThresholdState
	for i, ratio := range ratios {
		n, next := NextMilestone(ratio, state, encourageDay)
		state = next

		if want[i] == thresholdNone {
			if n != nil {
				t.Errorf("ratio %.2f emitted threshold %d, want none", ratio, n.Threshold)
			}
			continue
		}
		if n == nil {
			t.Errorf("ratio %.2f emitted nothing, want threshold %d", ratio, want[i])
			continue
		}
		if n.Threshold != want[i] {
			t.Errorf("ratio %.2f emitted threshold %d, want %d", ratio, n.Threshold, want[i])
		}
	}
}

func TestMilestoneJumpEmitsOnlyHighest(t *testing.T) {
	// 10% -> 80% between observations crosses 25, 50, and 75 at once;
	// only 75 may fire.
	state := ThresholdState{Day: encourageDay.Format(dayFormat), Highest: 0}

	n, state := NextMilestone(0.8, state, encourageDay)
	if n == nil || n.Threshold != 75 {
		t.Fatalf("got %v, want threshold 75", n)
	}

	n, _ = NextMilestone(0.8, state, encourageDay)
	if n != nil {
		t.Errorf("repeat observation emitted threshold %d, want none", n.Threshold)
	}
}

func TestMilestoneStateResetsNextDay(t *testing.T) {
	state := ThresholdState{Day: encourageDay.Format(dayFormat), Highest: 75}
	tomorrow := encourageDay.AddDate(0, 0, 1)

	n, next := NextMilestone(0.30, state, tomorrow)
	if n == nil || n.Threshold != 25 {
		t.Fatalf("got %v, want threshold 25 (yesterday's state must not suppress)", n)
	}
	if next.Day != tomorrow.Format(dayFormat) {
		t.Errorf("state day = %q, want %q", next.Day, tomorrow.Format(dayFormat))
	}
	if next.Highest != 25 {
		t.Errorf("state highest = %d, want 25", next.Highest)
	}
}

func TestMilestoneNeverDecreases(t *testing.T) {
	var state ThresholdState
	_, state = NextMilestone(1.0, state, encourageDay)

	// A later, lower ratio (task un-completed) must not re-emit.
	n, _ := NextMilestone(0.5, state, encourageDay)
	if n != nil {
		t.Errorf("ratio drop emitted threshold %d, want none", n.Threshold)
	}
}

func TestTrackerKeepsPerUserState(t *testing.T) {
	tr := NewEncouragementTracker()

	if n := tr.Observe(1, 0.5, encourageDay); n == nil || n.Threshold != 50 {
		t.Fatalf("user 1: got %v, want threshold 50", n)
	}
	// A different user starts fresh.
	if n := tr.Observe(2, 0.5, encourageDay); n == nil || n.Threshold != 50 {
		t.Fatalf("user 2: got %v, want threshold 50", n)
	}
	// User 1 is unchanged by user 2's progress.
	if n := tr.Observe(1, 0.5, encourageDay); n != nil {
		t.Errorf("user 1 repeat: got threshold %d, want none", n.Threshold)
	}
}

func TestMilestoneMessagesComplete(t *testing.T) {
	for _, threshold := range thresholds {
		msg, ok := milestoneMessages[threshold]
		if !ok {
			t.Errorf("no message for threshold %d", threshold)
			continue
		}
		if msg.Title == "" || msg.Body == "" {
			t.Errorf("threshold %d has empty title or body", threshold)
		}
	}
}
