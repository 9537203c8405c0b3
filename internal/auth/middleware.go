package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wareflow/wareflow/internal/platform/httpx"
	"github.com/wareflow/wareflow/internal/upstream"
)

// Middleware authenticates incoming dashboard requests and primes the
// context with both the principal and the token forwarded upstream.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// Authenticate resolves the bearer token. Requests without a valid token are
// rejected; everything behind the gateway requires a signed-in user.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		principal, err := m.Service.Resolve(r.Context(), token)
		if err != nil {
			if errors.Is(err, ErrUnauthenticated) {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			if m.Logger != nil {
				m.Logger.Error("resolve principal", slog.Any("error", err))
			}
			httpx.RespondError(w, err)
			return
		}
		ctx := ContextWithPrincipal(r.Context(), principal)
		ctx = upstream.ContextWithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
