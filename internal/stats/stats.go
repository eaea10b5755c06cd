// Package stats derives summary statistics from record collections. All
// functions are pure reductions; the single source of the dashboard's
// rolling-window recency policy lives here.
package stats

import "time"

// Count returns the number of records matching the predicate.
func Count[T any](records []T, pred func(T) bool) int {
	n := 0
	for _, rec := range records {
		if pred(rec) {
			n++
		}
	}
	return n
}

// GroupCount tallies records by the key function's result.
func GroupCount[T any](records []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, rec := range records {
		out[key(rec)]++
	}
	return out
}

// RecencyBuckets holds rolling-window counts derived from a date field.
type RecencyBuckets struct {
	Today     int `json:"today"`
	ThisWeek  int `json:"this_week"`
	ThisMonth int `json:"this_month"`
}

// BucketByRecency counts records relative to now. Today covers the current
// local calendar day; ThisWeek and ThisMonth are rolling 7- and 30-day
// windows, not calendar-aligned. Records dated in the future count toward
// every bucket. Zero dates count toward none.
func BucketByRecency[T any](records []T, date func(T) time.Time, now time.Time) RecencyBuckets {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := now.AddDate(0, 0, -7)
	monthStart := now.AddDate(0, 0, -30)

	var b RecencyBuckets
	for _, rec := range records {
		t := date(rec)
		if t.IsZero() {
			continue
		}
		if !t.Before(startOfDay) {
			b.Today++
		}
		if !t.Before(weekStart) {
			b.ThisWeek++
		}
		if !t.Before(monthStart) {
			b.ThisMonth++
		}
	}
	return b
}
