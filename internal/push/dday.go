package push

import "time"

// DaysUntil returns the whole-day count from today to target, negative for
// past dates. Both inputs are normalized to midnight first, so a target of
// today yields 0 regardless of time of day, and DST transitions cannot
// skew the count.
func DaysUntil(today, target time.Time) int {
	ty, tm, td := today.Date()
	gy, gm, gd := target.Date()
	a := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	b := time.Date(gy, gm, gd, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}
