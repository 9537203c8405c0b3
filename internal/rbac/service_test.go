package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasPermission(t *testing.T) {
	require.True(t, HasPermission([]string{"ADMIN"}, ImportApprove))
	require.True(t, HasPermission([]string{"manager"}, ExportReject))
	require.False(t, HasPermission([]string{"STAFF"}, ImportApprove))
	require.False(t, HasPermission([]string{"USER"}, CheckConfirm))
	require.False(t, HasPermission(nil, ImportView))
	require.False(t, HasPermission([]string{"GHOST"}, ImportView))
}

func TestEffectivePermissions(t *testing.T) {
	perms := EffectivePermissions([]string{"USER"})
	require.ElementsMatch(t, []string{ImportView, ExportView, CheckView}, perms)

	// Roles union without duplicates.
	both := EffectivePermissions([]string{"USER", "STAFF"})
	require.Contains(t, both, ImportCreate)
	seen := map[string]int{}
	for _, p := range both {
		seen[p]++
	}
	for p, n := range seen {
		require.Equal(t, 1, n, p)
	}
}
