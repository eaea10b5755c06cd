// Package filter evaluates declarative criteria against in-memory record
// collections. Every list view in the dashboard is produced by one pass
// through Apply; the stored collections are never mutated, only copied.
package filter

import (
	"sort"
	"strings"
	"time"
)

// Record exposes a record's fields by name. All stored record types
// implement this with a switch over their filterable fields; unknown names
// return nil.
type Record interface {
	Field(name string) any
}

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Sort names a field and direction. Ties keep the original array order.
type Sort struct {
	Field string
	Order Order
}

// DateRange bounds a date field. From is inclusive; To is inclusive of the
// entire day it falls on. Records whose field cannot be read as a date never
// match a range filter.
type DateRange struct {
	Field string
	From  *time.Time
	To    *time.Time
}

// Criteria is the declarative filter/search/sort configuration for one view.
// The zero value matches everything and preserves order.
type Criteria struct {
	// Search is matched case-insensitively as a substring against each field
	// in SearchFields; a record matches when any field contains it.
	Search       string
	SearchFields []string

	// Equals holds exact-match categorical filters combined with AND.
	// An empty value or "all" disables that field's filter.
	Equals map[string]string

	DateRange *DateRange
	Sort      *Sort
}

// Apply evaluates the criteria and returns a new slice. The input slice and
// its records are never modified; absent criteria return the records in their
// original order.
func Apply[T Record](records []T, c Criteria) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if matches(rec, c) {
			out = append(out, rec)
		}
	}

	if c.Sort != nil && c.Sort.Field != "" {
		field, desc := c.Sort.Field, c.Sort.Order == Desc
		sort.SliceStable(out, func(i, j int) bool {
			cmp := compareValues(out[i].Field(field), out[j].Field(field))
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	return out
}

func matches[T Record](rec T, c Criteria) bool {
	if c.Search != "" && len(c.SearchFields) > 0 {
		needle := strings.ToLower(c.Search)
		found := false
		for _, f := range c.SearchFields {
			if strings.Contains(strings.ToLower(asString(rec.Field(f))), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for field, want := range c.Equals {
		if want == "" || want == "all" {
			continue
		}
		if asString(rec.Field(field)) != want {
			return false
		}
	}

	if r := c.DateRange; r != nil && (r.From != nil || r.To != nil) {
		t, ok := asTime(rec.Field(r.Field))
		if !ok {
			return false
		}
		if r.From != nil && t.Before(*r.From) {
			return false
		}
		if r.To != nil && t.After(endOfDay(*r.To)) {
			return false
		}
	}

	return true
}

// endOfDay normalizes a bound to the last instant of its calendar day, so a
// plain date supplied as "to" includes records from any time that day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// asString renders a field value for search and equality checks.
func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// asTime coerces a field value to a time. Strings are accepted in RFC 3339
// or plain YYYY-MM-DD form, matching the formats found in stored records.
func asTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return time.Time{}, false
		}
		return val, true
	case string:
		if t, err := time.Parse(time.RFC3339, val); err == nil {
			return t, true
		}
		if t, err := time.ParseInLocation("2006-01-02", val, time.Local); err == nil {
			return t, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// compareValues orders two field values: times chronologically, everything
// else as case-insensitive strings.
func compareValues(a, b any) int {
	at, aok := a.(time.Time)
	bt, bok := b.(time.Time)
	if aok && bok {
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(asString(a)), strings.ToLower(asString(b)))
}
