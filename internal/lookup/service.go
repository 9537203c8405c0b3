package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/wareflow/wareflow/internal/upstream"
)

// BackendPort abstracts the backend reference-data endpoints.
type BackendPort interface {
	Products(ctx context.Context) ([]Product, error)
	Stores(ctx context.Context) ([]Store, error)
	Suppliers(ctx context.Context) ([]Supplier, error)
	Stocks(ctx context.Context, storeID int64) ([]Stock, error)
}

type httpBackend struct {
	client *upstream.Client
}

func (b httpBackend) Products(ctx context.Context) ([]Product, error) {
	return upstream.GetJSON[[]Product](ctx, b.client, "/api/products", nil)
}

func (b httpBackend) Stores(ctx context.Context) ([]Store, error) {
	return upstream.GetJSON[[]Store](ctx, b.client, "/api/stores", nil)
}

func (b httpBackend) Suppliers(ctx context.Context) ([]Supplier, error) {
	return upstream.GetJSON[[]Supplier](ctx, b.client, "/api/suppliers", nil)
}

func (b httpBackend) Stocks(ctx context.Context, storeID int64) ([]Stock, error) {
	q := url.Values{}
	if storeID != 0 {
		q.Set("storeId", strconv.FormatInt(storeID, 10))
	}
	return upstream.GetJSON[[]Stock](ctx, b.client, "/api/stocks", q)
}

// Service is the read-through reference cache. cache may be nil, in which
// case every call goes to the backend but concurrent loads still collapse.
type Service struct {
	backend BackendPort
	cache   *redis.Client
	ttl     time.Duration
	group   singleflight.Group
	logger  *slog.Logger
}

// NewService builds a Service over the backend reference endpoints.
func NewService(client *upstream.Client, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *Service {
	return newService(httpBackend{client: client}, cache, ttl, logger)
}

func newService(backend BackendPort, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{backend: backend, cache: cache, ttl: ttl, logger: logger}
}

// Products returns the product catalog.
func (s *Service) Products(ctx context.Context) ([]Product, error) {
	return fetch(ctx, s, "lookup:products", s.backend.Products)
}

// Stores returns all store locations.
func (s *Service) Stores(ctx context.Context) ([]Store, error) {
	return fetch(ctx, s, "lookup:stores", s.backend.Stores)
}

// Suppliers returns all suppliers.
func (s *Service) Suppliers(ctx context.Context) ([]Supplier, error) {
	return fetch(ctx, s, "lookup:suppliers", s.backend.Suppliers)
}

// Stocks returns stock levels, optionally scoped to one store.
func (s *Service) Stocks(ctx context.Context, storeID int64) ([]Stock, error) {
	key := fmt.Sprintf("lookup:stocks:%d", storeID)
	return fetch(ctx, s, key, func(ctx context.Context) ([]Stock, error) {
		return s.backend.Stocks(ctx, storeID)
	})
}

// ProductName resolves a product id to its display name, falling back to
// the deleted-product placeholder so stale references stay renderable.
func (s *Service) ProductName(ctx context.Context, id int64) string {
	products, err := s.Products(ctx)
	if err != nil {
		return DeletedProductName(id)
	}
	for _, p := range products {
		if p.ID == id {
			return p.Name
		}
	}
	return DeletedProductName(id)
}

// Invalidate drops the cached reference lists. Stock keys carry the TTL and
// age out on their own.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, "lookup:products", "lookup:stores", "lookup:suppliers").Err()
}

// fetch is the read-through path: Redis first, then one collapsed backend
// load shared by every concurrent caller of the same key.
func fetch[T any](ctx context.Context, s *Service, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Bytes()
		if err == nil {
			var out T
			if json.Unmarshal(raw, &out) == nil {
				return out, nil
			}
		} else if err != redis.Nil && s.logger != nil {
			s.logger.Warn("lookup cache read failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	ch := s.group.DoChan(key, func() (any, error) {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if raw, err := json.Marshal(value); err == nil {
				_ = s.cache.Set(ctx, key, raw, s.ttl).Err()
			}
		}
		return value, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
