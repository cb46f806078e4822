package push

import (
	"sync"
	"time"
)

// thresholdNone means no milestone has been crossed yet today.
const thresholdNone = -1

// thresholds is the fixed milestone ladder, scanned highest first so a
// ratio jump emits only the single highest newly crossed milestone.
var thresholds = [...]int{100, 75, 50, 25, 0}

var milestoneMessages = map[int]struct{ Title, Body string }{
	0:   {"Let's get started", "A new day of tasks is waiting for you."},
	25:  {"Off to a good start", "A quarter of today's tasks are done."},
	50:  {"Halfway there", "Half of today's tasks are done. Keep going!"},
	75:  {"Almost done", "Three quarters down. The finish line is close."},
	100: {"All done!", "Every task finished today. Great work!"},
}

// ThresholdState is one user's milestone progress for one day. Highest is
// non-decreasing within a day and resets when the stored day is not today.
type ThresholdState struct {
	Day     string
	Highest int
}

// NextMilestone returns the highest milestone newly crossed by the given
// completion ratio, or nil if none, along with the advanced state. At most
// one milestone is emitted per call and each milestone fires at most once
// per day.
func NextMilestone(completionRatio float64, state ThresholdState, today time.Time) (*EncouragementNotification, ThresholdState) {
	day := today.Format(dayFormat)
	if state.Day != day {
		state = ThresholdState{Day: day, Highest: thresholdNone}
	}

	rate := int(completionRatio * 100)
	for _, t := range thresholds {
		if rate >= t && t > state.Highest {
			state.Highest = t
			n := EncouragementNotification{Threshold: t}
			return &n, state
		}
	}
	return nil, state
}

// EncouragementTracker holds per-user threshold state in memory. Like the
// send guard it does not survive a restart; the worst case is one repeated
// milestone message after a redeploy.
type EncouragementTracker struct {
	mu     sync.Mutex
	states map[int64]ThresholdState
}

func NewEncouragementTracker() *EncouragementTracker {
	return &EncouragementTracker{states: make(map[int64]ThresholdState)}
}

// Observe feeds one completion ratio observation for a user and returns
// the milestone notification to show, if any.
func (t *EncouragementTracker) Observe(userID int64, completionRatio float64, now time.Time) *EncouragementNotification {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, state := NextMilestone(completionRatio, t.states[userID], now)
	t.states[userID] = state
	return n
}
