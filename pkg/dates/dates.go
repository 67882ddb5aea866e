// Package dates provides calendar helpers for event scheduling.
package dates

import "time"

// SameDay reports whether both instants fall on the same calendar day
// in t's location.
func SameDay(t, u time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := u.In(t.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsToday reports whether t falls on the same calendar day as now.
func IsToday(t, now time.Time) bool {
	return SameDay(now, t)
}

// WithinNextWeek reports whether t lies in the closed window [now, now+7d].
func WithinNextWeek(t, now time.Time) bool {
	if t.Before(now) {
		return false
	}
	return !t.After(now.AddDate(0, 0, 7))
}

// Display renders an event timestamp for listings and exports.
func Display(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}
