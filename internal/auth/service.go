package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wareflow/wareflow/internal/upstream"
)

// ErrUnauthenticated indicates the caller presented no usable token.
var ErrUnauthenticated = errors.New("auth: unauthenticated")

// Service resolves bearer tokens into principals via the backend's
// /api/auth/me endpoint, with a short-lived Redis cache so each page view
// does not cost an extra backend round-trip per request.
type Service struct {
	client *upstream.Client
	cache  *redis.Client
	ttl    time.Duration
}

// NewService constructs the resolver. cache may be nil, in which case every
// resolution hits the backend.
func NewService(client *upstream.Client, cache *redis.Client, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Service{client: client, cache: cache, ttl: ttl}
}

type meResponse struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	FullName string   `json:"fullName"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Resolve returns the principal for the given bearer token.
func (s *Service) Resolve(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	key := cacheKey(token)
	if s.cache != nil {
		// Cache trouble is not an auth failure; fall through to the backend.
		if raw, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var p Principal
			if json.Unmarshal(raw, &p) == nil {
				return &p, nil
			}
		}
	}

	ctx = upstream.ContextWithToken(ctx, token)
	me, err := upstream.GetJSON[meResponse](ctx, s.client, "/api/auth/me", nil)
	if err != nil {
		var apiErr *upstream.Error
		if errors.As(err, &apiErr) && (apiErr.Status == 401 || apiErr.Status == 403) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("auth: resolve principal: %w", err)
	}

	p := &Principal{
		ID:    me.ID,
		Name:  upstream.FirstNonEmpty(me.FullName, me.Name, me.Username),
		Roles: me.Roles,
	}
	if s.cache != nil {
		if raw, err := json.Marshal(p); err == nil {
			_ = s.cache.Set(ctx, key, raw, s.ttl).Err()
		}
	}
	return p, nil
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:principal:" + hex.EncodeToString(sum[:])
}
