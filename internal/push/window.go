package push

import (
	"fmt"
	"time"
)

// GraceMinutes is how far past a configured time a tick may land and still
// fire the reminder. A reminder fires for any tick observed within the
// 6-minute window starting at the exact configured minute, never before.
const GraceMinutes = 5

// TimeOfDay is a configured reminder time, minute granularity.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an "HH:MM" string in 24-hour time.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Matches reports whether now falls inside the grace window for this time
// of day. Both sides are compared as minutes since midnight in now's
// location, so no wraparound handling is needed.
func (t TimeOfDay) Matches(now time.Time) bool {
	nowMinutes := now.Hour()*60 + now.Minute()
	configured := t.Hour*60 + t.Minute
	delta := nowMinutes - configured
	return delta >= 0 && delta <= GraceMinutes
}
