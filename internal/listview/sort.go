package listview

import (
	"sort"

	"github.com/wareflow/wareflow/internal/format"
)

// SortDirection is the sort order of a column.
type SortDirection string

const (
	// Asc sorts lowest first.
	Asc SortDirection = "asc"
	// Desc sorts highest first.
	Desc SortDirection = "desc"
)

// Valid reports whether d is a known direction.
func (d SortDirection) Valid() bool { return d == Asc || d == Desc }

// SortState tracks the column/direction pair behind a sortable table header.
type SortState struct {
	Field string
	Dir   SortDirection
}

// Toggle applies the header-click behaviour: clicking the active column
// flips the direction, clicking a new column selects it ascending.
func (s *SortState) Toggle(field string) {
	if s.Field == field {
		if s.Dir == Asc {
			s.Dir = Desc
		} else {
			s.Dir = Asc
		}
		return
	}
	s.Field = field
	s.Dir = Asc
}

// SortBy stable-sorts a shallow copy of list with the given ascending
// comparator, inverting it for Desc. The input is never mutated. Sorting is
// page-local: it only ever sees the slice it is handed, never other pages.
func SortBy[T any](list []T, less func(a, b T) bool, dir SortDirection) []T {
	out := make([]T, len(list))
	copy(out, list)
	if less == nil {
		return out
	}
	cmp := less
	if dir == Desc {
		cmp = func(a, b T) bool { return less(b, a) }
	}
	sort.SliceStable(out, func(i, j int) bool { return cmp(out[i], out[j]) })
	return out
}

// NumericLess builds an ascending comparator over a monetary/numeric field.
// Missing values should be surfaced by key as 0.
func NumericLess[T any](key func(T) float64) func(a, b T) bool {
	return func(a, b T) bool { return key(a) < key(b) }
}

// DateLess builds an ascending comparator over an ISO date field. Missing or
// unparsable dates sort lowest (epoch).
func DateLess[T any](key func(T) string) func(a, b T) bool {
	return func(a, b T) bool {
		ta, oka := format.ParseTime(key(a))
		tb, okb := format.ParseTime(key(b))
		if !oka && !okb {
			return false
		}
		if !oka {
			return true
		}
		if !okb {
			return false
		}
		return ta.Before(tb)
	}
}
