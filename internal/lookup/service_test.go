package lookup

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	productCalls atomic.Int64
	stockCalls   atomic.Int64
	release      chan struct{}
	products     []Product
}

func (f *fakeBackend) Products(ctx context.Context) ([]Product, error) {
	f.productCalls.Add(1)
	if f.release != nil {
		<-f.release
	}
	return f.products, nil
}

func (f *fakeBackend) Stores(ctx context.Context) ([]Store, error) {
	return []Store{{ID: 1, Name: "Kho trung tâm"}}, nil
}

func (f *fakeBackend) Suppliers(ctx context.Context) ([]Supplier, error) {
	return []Supplier{{ID: 1, Name: "NCC Minh Anh"}}, nil
}

func (f *fakeBackend) Stocks(ctx context.Context, storeID int64) ([]Stock, error) {
	f.stockCalls.Add(1)
	return []Stock{{ProductID: 9, StoreID: storeID, Quantity: 12}}, nil
}

func newTestService(t *testing.T, backend BackendPort) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return newService(backend, client, time.Minute, nil)
}

func TestProductsReadThrough(t *testing.T) {
	backend := &fakeBackend{products: []Product{{ID: 9, Name: "Bàn phím cơ", Price: 1500000}}}
	svc := newTestService(t, backend)

	first, err := svc.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.Products(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
	// The second read is served from Redis.
	require.EqualValues(t, 1, backend.productCalls.Load())
}

func TestConcurrentLoadsCollapse(t *testing.T) {
	backend := &fakeBackend{
		products: []Product{{ID: 1, Name: "Chuột"}},
		release:  make(chan struct{}),
	}
	svc := newTestService(t, backend)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Products(context.Background())
		}()
	}
	// Give the goroutines time to pile onto the same key, then let the one
	// in-flight load finish.
	time.Sleep(50 * time.Millisecond)
	close(backend.release)
	wg.Wait()

	require.EqualValues(t, 1, backend.productCalls.Load())
}

func TestStocksKeyedByStore(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, backend)

	_, err := svc.Stocks(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.Stocks(context.Background(), 2)
	require.NoError(t, err)
	_, err = svc.Stocks(context.Background(), 1)
	require.NoError(t, err)
	require.EqualValues(t, 2, backend.stockCalls.Load())
}

func TestProductNameFallsBackToPlaceholder(t *testing.T) {
	backend := &fakeBackend{products: []Product{{ID: 9, Name: "Bàn phím cơ"}}}
	svc := newTestService(t, backend)

	require.Equal(t, "Bàn phím cơ", svc.ProductName(context.Background(), 9))
	require.Equal(t, "Sản phẩm đã xóa #404", svc.ProductName(context.Background(), 404))
}

func TestInvalidateDropsLists(t *testing.T) {
	backend := &fakeBackend{products: []Product{{ID: 1, Name: "Chuột"}}}
	svc := newTestService(t, backend)

	_, err := svc.Products(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(context.Background()))

	_, err = svc.Products(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 2, backend.productCalls.Load())
}
