package listview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type row struct {
	Code  string
	Value float64
	Date  string
}

func values(rows []row) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Value
	}
	return out
}

func TestSortByNumeric(t *testing.T) {
	in := []row{{Code: "A", Value: 300}, {Code: "B", Value: 100}, {Code: "C", Value: 200}}
	less := NumericLess(func(r row) float64 { return r.Value })

	asc := SortBy(in, less, Asc)
	require.Equal(t, []float64{100, 200, 300}, values(asc))
	// Input untouched.
	require.Equal(t, []float64{300, 100, 200}, values(in))

	desc := SortBy(in, less, Desc)
	require.Equal(t, []float64{300, 200, 100}, values(desc))
}

func TestSortByIsIdempotent(t *testing.T) {
	in := []row{{Value: 2}, {Value: 1}, {Value: 1}, {Value: 3}}
	less := NumericLess(func(r row) float64 { return r.Value })
	once := SortBy(in, less, Asc)
	twice := SortBy(once, less, Asc)
	require.Equal(t, once, twice)
}

func TestDateLessUnparsableSortsLowest(t *testing.T) {
	in := []row{
		{Code: "new", Date: "2025-06-01T10:00:00"},
		{Code: "broken", Date: "not-a-date"},
		{Code: "old", Date: "2024-01-15"},
	}
	sorted := SortBy(in, DateLess(func(r row) string { return r.Date }), Asc)
	require.Equal(t, "broken", sorted[0].Code)
	require.Equal(t, "old", sorted[1].Code)
	require.Equal(t, "new", sorted[2].Code)
}

func TestSortStateToggle(t *testing.T) {
	var s SortState
	s.Toggle("value")
	require.Equal(t, SortState{Field: "value", Dir: Asc}, s)
	s.Toggle("value")
	require.Equal(t, Desc, s.Dir)
	s.Toggle("value")
	require.Equal(t, Asc, s.Dir)
	// New field resets direction.
	s.Toggle("value")
	s.Toggle("date")
	require.Equal(t, SortState{Field: "date", Dir: Asc}, s)
}

func TestContainsFold(t *testing.T) {
	require.True(t, ContainsFold("PX-2025-001", "px-2025"))
	require.True(t, ContainsFold("anything", ""))
	require.False(t, ContainsFold("PX-2025-001", "PN"))
}
