// Package time holds small time helpers shared by the adapters and the filters
package time

import "time"

// Ptr returns &t, or nil for the zero time
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Latest returns the latest non nil, non zero time, or nil
func Latest(ts ...*time.Time) *time.Time {
	var best time.Time
	for _, t := range ts {
		if t != nil && t.After(best) {
			best = *t
		}
	}
	return Ptr(best)
}

// Within reports whether t is set and falls after now minus d
func Within(t *time.Time, now time.Time, d time.Duration) bool {
	return t != nil && !t.IsZero() && t.After(now.Add(-d))
}
