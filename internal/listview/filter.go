package listview

import (
	"strings"
	"time"
)

// ContainsFold reports whether haystack contains needle case-insensitively.
// An empty needle imposes no constraint.
func ContainsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// DayStart truncates t to its calendar day in local time.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// InDayRange reports whether ts falls within [from, to] inclusive after
// normalizing all three to local calendar days. Zero bounds are unbounded.
func InDayRange(ts, from, to time.Time) bool {
	day := DayStart(ts)
	if !from.IsZero() && day.Before(DayStart(from)) {
		return false
	}
	if !to.IsZero() && day.After(DayStart(to)) {
		return false
	}
	return true
}
