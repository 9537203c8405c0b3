package checks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleChecks() []Check {
	return []Check{
		{ID: 1, Code: "KK-0001", Status: StatusPending, StoreID: 1, CheckDate: "2025-01-10"},
		{ID: 2, Code: "KK-0002", Status: StatusApproved, StoreID: 2, CheckDate: "2025-01-12"},
		{ID: 3, Code: "kk-0003", Status: StatusPending, StoreID: 1, CheckDate: "2025-01-20"},
	}
}

func TestFilterZeroCriteriaKeepsEverythingInOrder(t *testing.T) {
	list := sampleChecks()

	out := Filter(list, Criteria{})
	require.Equal(t, list, out)

	out = Filter(list, Criteria{Status: StatusAll})
	require.Equal(t, list, out)
}

func TestFilterNarrowsWithEachCriterion(t *testing.T) {
	list := sampleChecks()

	byStore := Filter(list, Criteria{StoreID: 1})
	require.Len(t, byStore, 2)

	narrowed := Filter(list, Criteria{StoreID: 1, Status: string(StatusPending)})
	require.LessOrEqual(t, len(narrowed), len(byStore))

	from := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	narrowest := Filter(list, Criteria{StoreID: 1, Status: string(StatusPending), From: from})
	require.LessOrEqual(t, len(narrowest), len(narrowed))
	require.Len(t, narrowest, 1)
	require.Equal(t, int64(3), narrowest[0].ID)
}

func TestFilterMatchesCodeCaseInsensitively(t *testing.T) {
	out := Filter(sampleChecks(), Criteria{Code: "KK-0003"})
	require.Len(t, out, 1)
	require.Equal(t, int64(3), out[0].ID)
}
