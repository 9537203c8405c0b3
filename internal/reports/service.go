package reports

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/wareflow/wareflow/internal/listview"
	"github.com/wareflow/wareflow/internal/upstream"
)

// ReceiptRow is the slice of a receipt the volume and activity reports need.
type ReceiptRow struct {
	ID         int64   `json:"id"`
	Code       string  `json:"code"`
	Status     string  `json:"status"`
	TotalValue float64 `json:"totalValue"`
}

// BackendPort abstracts the backend analytics endpoints.
type BackendPort interface {
	SalesTrend(ctx context.Context, period string) (SalesTrend, error)
	ABCAnalysis(ctx context.Context) (ABCAnalysis, error)
	Alerts(ctx context.Context) (Alerts, error)
	ReceiptPage(ctx context.Context, outbound bool, page, size int) (upstream.Page[ReceiptRow], error)
}

type httpBackend struct {
	client  *upstream.Client
	imports *upstream.Resource[ReceiptRow]
	exports *upstream.Resource[ReceiptRow]
}

func newHTTPBackend(client *upstream.Client) httpBackend {
	return httpBackend{
		client:  client,
		imports: upstream.NewResource[ReceiptRow](client, "/api/imports"),
		exports: upstream.NewResource[ReceiptRow](client, "/api/exports"),
	}
}

func (b httpBackend) SalesTrend(ctx context.Context, period string) (SalesTrend, error) {
	q := url.Values{}
	q.Set("period", period)
	return upstream.GetJSON[SalesTrend](ctx, b.client, "/api/ai/sales-trend", q)
}

func (b httpBackend) ABCAnalysis(ctx context.Context) (ABCAnalysis, error) {
	return upstream.GetJSON[ABCAnalysis](ctx, b.client, "/api/ai/abc-analysis", nil)
}

func (b httpBackend) Alerts(ctx context.Context) (Alerts, error) {
	return upstream.GetJSON[Alerts](ctx, b.client, "/api/ai/dashboard-alerts", nil)
}

func (b httpBackend) ReceiptPage(ctx context.Context, outbound bool, page, size int) (upstream.Page[ReceiptRow], error) {
	if outbound {
		return b.exports.Search(ctx, nil, page, size)
	}
	return b.imports.Search(ctx, nil, page, size)
}

// Periods accepted by the sales trend endpoint.
const (
	PeriodWeekly    = "WEEKLY"
	PeriodMonthly   = "MONTHLY"
	PeriodQuarterly = "QUARTERLY"
)

// ValidPeriod reports whether p is an accepted trend period.
func ValidPeriod(p string) bool {
	return p == PeriodWeekly || p == PeriodMonthly || p == PeriodQuarterly
}

// volumePageSize bounds one page of the volume walk.
const volumePageSize = 100

// Service is the cached report layer. cache may be nil, in which case every
// read goes to the backend but concurrent loads still collapse.
type Service struct {
	backend BackendPort
	cache   *redis.Client
	ttl     time.Duration
	group   singleflight.Group
	logger  *slog.Logger

	// recent holds the last fetched page of import activity. Overlapping
	// refreshes are sequence-guarded so a slow one cannot clobber a newer.
	recent *listview.PagedView[ReceiptRow]
}

// NewService builds a Service over the backend analytics endpoints.
func NewService(client *upstream.Client, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *Service {
	return newService(newHTTPBackend(client), cache, ttl, logger)
}

func newService(backend BackendPort, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Service{
		backend: backend,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
		recent:  listview.NewPagedView[ReceiptRow]("Không tải được hoạt động gần đây"),
	}
}

// SalesTrend returns the cached trend analysis for one period.
func (s *Service) SalesTrend(ctx context.Context, period string) (SalesTrend, error) {
	if !ValidPeriod(period) {
		period = PeriodWeekly
	}
	return fetch(ctx, s, "report:trend:"+period, func(ctx context.Context) (SalesTrend, error) {
		return s.backend.SalesTrend(ctx, period)
	})
}

// ABCAnalysis returns the cached ABC classification.
func (s *Service) ABCAnalysis(ctx context.Context) (ABCAnalysis, error) {
	return fetch(ctx, s, "report:abc", s.backend.ABCAnalysis)
}

// Alerts returns the cached dashboard alert feed.
func (s *Service) Alerts(ctx context.Context) (Alerts, error) {
	return fetch(ctx, s, "report:alerts", s.backend.Alerts)
}

// Volume returns the cached receipt volume summary.
func (s *Service) Volume(ctx context.Context) (Volume, error) {
	return fetch(ctx, s, "report:volume", s.buildVolume)
}

// Recent returns the last refreshed page of import activity without
// touching the backend.
func (s *Service) Recent() listview.Snapshot[ReceiptRow] {
	return s.recent.Snapshot()
}

// Refresh recomputes every report from the backend and overwrites the
// cache. The worker runs this on a schedule so dashboard loads stay warm.
func (s *Service) Refresh(ctx context.Context) error {
	trend, err := s.backend.SalesTrend(ctx, PeriodWeekly)
	if err != nil {
		return err
	}
	s.store(ctx, "report:trend:"+PeriodWeekly, trend)

	abc, err := s.backend.ABCAnalysis(ctx)
	if err != nil {
		return err
	}
	s.store(ctx, "report:abc", abc)

	alerts, err := s.backend.Alerts(ctx)
	if err != nil {
		return err
	}
	s.store(ctx, "report:alerts", alerts)

	vol, err := s.buildVolume(ctx)
	if err != nil {
		return err
	}
	s.store(ctx, "report:volume", vol)

	return s.recent.Load(ctx, func(ctx context.Context) (upstream.Page[ReceiptRow], error) {
		return s.backend.ReceiptPage(ctx, false, 1, listview.DefaultPerPage)
	})
}

// buildVolume walks every page of both receipt collections and sums the
// completed ones. Totals go through decimal so page boundaries cannot
// introduce float drift.
func (s *Service) buildVolume(ctx context.Context) (Volume, error) {
	var vol Volume

	walk := func(outbound bool, done string, total *float64, count *int64) error {
		sum := decimal.Zero
		var pager *listview.Pager
		load := func(ctx context.Context, page int) error {
			p, err := s.backend.ReceiptPage(ctx, outbound, page, volumePageSize)
			if err != nil {
				return err
			}
			for _, row := range p.Content {
				if row.Status != done {
					continue
				}
				sum = sum.Add(decimal.NewFromFloat(row.TotalValue))
				*count++
			}
			pager.SetTotals(int(p.TotalElements), p.TotalPages)
			return nil
		}
		pager = listview.NewPager(volumePageSize, load)
		if err := load(ctx, 1); err != nil {
			return err
		}
		for pager.Current() < pager.TotalPages() {
			if err := pager.Next(ctx); err != nil {
				return err
			}
		}
		*total, _ = sum.Float64()
		return nil
	}

	if err := walk(false, "IMPORTED", &vol.ImportTotal, &vol.ImportCount); err != nil {
		return Volume{}, err
	}
	if err := walk(true, "EXPORTED", &vol.ExportTotal, &vol.ExportCount); err != nil {
		return Volume{}, err
	}
	return vol, nil
}

// store writes one report into the cache, best effort.
func (s *Service) store(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil && s.logger != nil {
		s.logger.Warn("report cache write failed", slog.String("key", key), slog.Any("error", err))
	}
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
			s.logger.Warn("report cache read failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	ch := s.group.DoChan(key, func() (any, error) {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.store(ctx, key, value)
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
