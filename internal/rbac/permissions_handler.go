package rbac

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wareflow/wareflow/internal/auth"
	"github.com/wareflow/wareflow/internal/platform/httpx"
)

// PermissionsHandler exposes the caller's effective permission flags so the
// dashboard can disable action buttons up front. The handlers re-validate on
// every action regardless; this endpoint is a UI convenience, not a gate.
type PermissionsHandler struct{}

// MountRoutes registers permission routes.
func (h *PermissionsHandler) MountRoutes(r chi.Router) {
	r.Get("/me", h.myPermissions)
}

func (h *PermissionsHandler) myPermissions(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	httpx.Data(w, http.StatusOK, map[string]any{
		"roles":       principal.Roles,
		"permissions": EffectivePermissions(principal.Roles),
	}, "")
}
