package rbac

import (
	"sort"
	"strings"
)

// EffectivePermissions returns the deduplicated flags granted by the given
// roles. Unknown roles grant nothing.
func EffectivePermissions(roles []string) []string {
	granted := make(map[string]struct{})
	for _, role := range roles {
		for _, p := range rolePermissions[strings.ToUpper(strings.TrimSpace(role))] {
			granted[p] = struct{}{}
		}
	}
	perms := make([]string, 0, len(granted))
	for p := range granted {
		perms = append(perms, p)
	}
	sort.Strings(perms)
	return perms
}

// HasPermission reports whether any of the roles grants the flag.
func HasPermission(roles []string, permission string) bool {
	permission = strings.ToUpper(strings.TrimSpace(permission))
	if permission == "" {
		return false
	}
	for _, role := range roles {
		for _, p := range rolePermissions[strings.ToUpper(strings.TrimSpace(role))] {
			if p == permission {
				return true
			}
		}
	}
	return false
}
