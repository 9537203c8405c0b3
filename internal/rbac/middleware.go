package rbac

import (
	"log/slog"
	"net/http"

	"github.com/wareflow/wareflow/internal/auth"
	"github.com/wareflow/wareflow/internal/platform/httpx"
)

// Middleware wires permission checks for HTTP handlers.
type Middleware struct {
	Logger *slog.Logger
}

// RequireAny ensures the current principal holds at least one of the flags.
func (m Middleware) RequireAny(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(perms) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			principal := auth.PrincipalFromContext(r.Context())
			if principal == nil {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			for _, p := range perms {
				if HasPermission(principal.Roles, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			if m.Logger != nil {
				m.Logger.Warn("permission denied",
					slog.Int64("user_id", principal.ID),
					slog.Any("required", perms))
			}
			httpx.RespondError(w, httpx.ErrForbidden)
		})
	}
}
