package reports

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/wareflow/wareflow/internal/upstream"
)

type fakeBackend struct {
	trendCalls  atomic.Int64
	pageCalls   atomic.Int64
	trend       SalesTrend
	imports     []upstream.Page[ReceiptRow]
	exports     []upstream.Page[ReceiptRow]
	lastPeriods []string
}

func (f *fakeBackend) SalesTrend(ctx context.Context, period string) (SalesTrend, error) {
	f.trendCalls.Add(1)
	f.lastPeriods = append(f.lastPeriods, period)
	return f.trend, nil
}

func (f *fakeBackend) ABCAnalysis(ctx context.Context) (ABCAnalysis, error) {
	return ABCAnalysis{Analysis: "ổn định"}, nil
}

func (f *fakeBackend) Alerts(ctx context.Context) (Alerts, error) {
	return Alerts{Summary: "2 cảnh báo tồn kho"}, nil
}

func (f *fakeBackend) ReceiptPage(ctx context.Context, outbound bool, page, size int) (upstream.Page[ReceiptRow], error) {
	f.pageCalls.Add(1)
	pages := f.imports
	if outbound {
		pages = f.exports
	}
	if page < 1 || page > len(pages) {
		return upstream.Page[ReceiptRow]{}, nil
	}
	return pages[page-1], nil
}

func newTestService(t *testing.T, backend BackendPort) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return newService(backend, client, time.Minute, nil)
}

func TestSalesTrendReadThrough(t *testing.T) {
	backend := &fakeBackend{trend: SalesTrend{Period: "WEEKLY", GrowthRate: 12.5}}
	svc := newTestService(t, backend)

	first, err := svc.SalesTrend(context.Background(), "WEEKLY")
	require.NoError(t, err)
	require.Equal(t, 12.5, first.GrowthRate)

	second, err := svc.SalesTrend(context.Background(), "WEEKLY")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.EqualValues(t, 1, backend.trendCalls.Load())
}

func TestSalesTrendUnknownPeriodFallsBackToWeekly(t *testing.T) {
	backend := &fakeBackend{trend: SalesTrend{Period: "WEEKLY"}}
	svc := newTestService(t, backend)

	_, err := svc.SalesTrend(context.Background(), "YEARLY")
	require.NoError(t, err)
	require.Equal(t, []string{"WEEKLY"}, backend.lastPeriods)
}

func TestVolumeWalksEveryPageAndSumsCompleted(t *testing.T) {
	backend := &fakeBackend{
		imports: []upstream.Page[ReceiptRow]{
			{
				Content: []ReceiptRow{
					{ID: 1, Status: "IMPORTED", TotalValue: 100000},
					{ID: 2, Status: "PENDING", TotalValue: 999999},
				},
				TotalElements: 3,
				TotalPages:    2,
			},
			{
				Content:       []ReceiptRow{{ID: 3, Status: "IMPORTED", TotalValue: 250000}},
				TotalElements: 3,
				TotalPages:    2,
			},
		},
		exports: []upstream.Page[ReceiptRow]{
			{
				Content:       []ReceiptRow{{ID: 9, Status: "EXPORTED", TotalValue: 80000}},
				TotalElements: 1,
				TotalPages:    1,
			},
		},
	}
	svc := newTestService(t, backend)

	vol, err := svc.Volume(context.Background())
	require.NoError(t, err)
	require.Equal(t, float64(350000), vol.ImportTotal)
	require.EqualValues(t, 2, vol.ImportCount)
	require.Equal(t, float64(80000), vol.ExportTotal)
	require.EqualValues(t, 1, vol.ExportCount)
	// Two import pages plus one export page.
	require.EqualValues(t, 3, backend.pageCalls.Load())

	// A second read comes from the cache.
	_, err = svc.Volume(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 3, backend.pageCalls.Load())
}

func TestRefreshWarmsRecentActivitySnapshot(t *testing.T) {
	backend := &fakeBackend{
		trend: SalesTrend{Period: "WEEKLY"},
		imports: []upstream.Page[ReceiptRow]{
			{
				Content:       []ReceiptRow{{ID: 7, Code: "PN-0007", Status: "PENDING", TotalValue: 40000}},
				TotalElements: 1,
				TotalPages:    1,
			},
		},
		exports: []upstream.Page[ReceiptRow]{{TotalPages: 0}},
	}
	svc := newTestService(t, backend)

	before := svc.Recent()
	require.False(t, before.Loaded)

	require.NoError(t, svc.Refresh(context.Background()))

	after := svc.Recent()
	require.True(t, after.Loaded)
	require.Empty(t, after.Err)
	require.Len(t, after.Page.Content, 1)
	require.Equal(t, "PN-0007", after.Page.Content[0].Code)
}
