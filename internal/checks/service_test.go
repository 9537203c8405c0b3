package checks

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wareflow/wareflow/internal/auth"
	"github.com/wareflow/wareflow/internal/platform/httpx"
	"github.com/wareflow/wareflow/internal/upstream"
)

type fakePort struct {
	checks map[int64]checkDTO
	page   upstream.Page[checkDTO]
	nextID int64

	searchCalls int
	getCalls    int
	createCalls int
	updateCalls int
	actCalls    int
	deleteCalls int

	lastQuery  url.Values
	lastAction string
	lastBody   any
}

func newFakePort() *fakePort {
	return &fakePort{checks: make(map[int64]checkDTO), nextID: 200}
}

func (f *fakePort) Search(ctx context.Context, query url.Values, page, size int) (upstream.Page[checkDTO], error) {
	f.searchCalls++
	f.lastQuery = query
	return f.page, nil
}

func (f *fakePort) Get(ctx context.Context, id int64) (checkDTO, error) {
	f.getCalls++
	dto, ok := f.checks[id]
	if !ok {
		return checkDTO{}, &upstream.Error{Status: 404}
	}
	return dto, nil
}

func (f *fakePort) Create(ctx context.Context, body any) (checkDTO, error) {
	f.createCalls++
	f.lastBody = body
	f.nextID++
	dto := checkDTO{ID: f.nextID, Status: "PENDING"}
	if b, ok := body.(createBody); ok {
		dto.StoreID = b.StoreID
		dto.CheckDate = b.CheckDate
	}
	f.checks[dto.ID] = dto
	return dto, nil
}

func (f *fakePort) Update(ctx context.Context, id int64, body any) (checkDTO, error) {
	f.updateCalls++
	f.lastBody = body
	return f.checks[id], nil
}

func (f *fakePort) Act(ctx context.Context, id int64, action string, body any) (checkDTO, error) {
	f.actCalls++
	f.lastAction = action
	f.lastBody = body
	dto := f.checks[id]
	switch action {
	case "approve":
		dto.Status = "APPROVED"
	case "reject":
		dto.Status = "REJECTED"
	case "confirm":
		dto.Status = "COMPLETED"
	}
	f.checks[id] = dto
	return dto, nil
}

func (f *fakePort) Delete(ctx context.Context, id int64) error {
	f.deleteCalls++
	delete(f.checks, id)
	return nil
}

func ctxWithRoles(roles ...string) context.Context {
	return auth.ContextWithPrincipal(context.Background(), &auth.Principal{ID: 3, Name: "kho1", Roles: roles})
}

func TestDifferenceRecomputation(t *testing.T) {
	items := []Item{
		{ProductID: 1, SystemQuantity: 50, ActualQuantity: 47, UnitPrice: 20000},
		{ProductID: 2, SystemQuantity: 10, ActualQuantity: 12, UnitPrice: 5000},
	}
	total := Recompute(items)
	require.Equal(t, float64(-3), items[0].DifferenceQuantity)
	require.Equal(t, float64(-60000), items[0].TotalValue)
	require.Equal(t, float64(2), items[1].DifferenceQuantity)
	require.Equal(t, float64(10000), items[1].TotalValue)
	require.Equal(t, float64(-50000), total)
}

func TestToDomainIgnoresSnapshotTotals(t *testing.T) {
	dto := checkDTO{
		ID:        4,
		Status:    "PENDING",
		TotalDiff: 999999,
		Items: []checkItemDTO{
			{ProductID: 1, SystemQty: 50, ActualQty: 47, UnitPrice: 20000},
		},
	}
	c := dto.toDomain()
	require.Equal(t, float64(-60000), c.TotalDifference)
	require.Equal(t, float64(-3), c.Items[0].DifferenceQuantity)
}

func TestToDomainMergesSplitCheckTime(t *testing.T) {
	dto := checkDTO{ID: 5, Status: "PENDING", CheckDate: "2025-02-01", CheckTime: "14:30"}
	require.Equal(t, "2025-02-01T14:30:00", dto.toDomain().CheckDate)

	// A date that already carries a time component wins.
	dto = checkDTO{ID: 6, Status: "PENDING", CheckDate: "2025-02-01T09:00:00", CheckTime: "14:30"}
	require.Equal(t, "2025-02-01T09:00:00", dto.toDomain().CheckDate)
}

func TestCreateMergesDateAndTime(t *testing.T) {
	port := newFakePort()
	svc := newService(port, nil)

	check, err := svc.Create(ctxWithRoles("STAFF"), Input{
		StoreID: 2,
		Date:    "2025-02-01",
		Time:    "14:30",
		Items:   []ItemInput{{ProductID: 1, SystemQuantity: 5, ActualQuantity: 5, UnitPrice: 1000}},
	})
	require.NoError(t, err)

	body := port.lastBody.(createBody)
	require.Equal(t, "2025-02-01T14:30:00", body.CheckDate)
	require.Equal(t, float64(0), body.TotalDiff)
	require.Equal(t, StatusPending, check.Status)
}

func TestCreateDefaultsToCurrentClock(t *testing.T) {
	port := newFakePort()
	svc := newService(port, nil)
	svc.clock = func() time.Time {
		return time.Date(2025, 2, 1, 9, 15, 30, 0, time.Local)
	}

	_, err := svc.Create(ctxWithRoles("STAFF"), Input{
		StoreID: 2,
		Date:    "2025-02-01",
		Items:   []ItemInput{{ProductID: 1, SystemQuantity: 1, ActualQuantity: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, "2025-02-01T09:15:30", port.lastBody.(createBody).CheckDate)
}

func TestSearchDeniedZeroNetwork(t *testing.T) {
	port := newFakePort()
	svc := newService(port, nil)

	_, err := svc.Search(ctxWithRoles("GUEST"), SearchQuery{})
	require.ErrorIs(t, err, ErrPermissionDenied)
	require.Zero(t, port.searchCalls)
}

func TestSearchSortsByDifferencePageLocally(t *testing.T) {
	port := newFakePort()
	port.page = upstream.Page[checkDTO]{
		Content: []checkDTO{
			{ID: 1, Items: []checkItemDTO{{SystemQty: 10, ActualQty: 9, UnitPrice: 1000}}},
			{ID: 2, Items: []checkItemDTO{{SystemQty: 10, ActualQty: 4, UnitPrice: 1000}}},
			{ID: 3, Items: []checkItemDTO{{SystemQty: 10, ActualQty: 10, UnitPrice: 1000}}},
		},
		TotalElements: 3,
		TotalPages:    1,
	}
	svc := newService(port, nil)

	page, err := svc.Search(ctxWithRoles("USER"), SearchQuery{SortBy: SortByDifference})
	require.NoError(t, err)
	require.Equal(t, 1, port.searchCalls)
	// Ascending: the biggest shrinkage (-6000) sorts first.
	require.EqualValues(t, 2, page.Content[0].ID)
	require.EqualValues(t, 1, page.Content[1].ID)
	require.EqualValues(t, 3, page.Content[2].ID)
}

func TestApproveWorkflow(t *testing.T) {
	port := newFakePort()
	port.checks[1] = checkDTO{ID: 1, Status: "PENDING"}
	svc := newService(port, nil)

	check, err := svc.Approve(ctxWithRoles("MANAGER"), 1)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, check.Status)
	require.Equal(t, 2, port.getCalls)

	_, err = svc.Approve(ctxWithRoles("MANAGER"), 1)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirmBalancesFromApproved(t *testing.T) {
	port := newFakePort()
	port.checks[1] = checkDTO{ID: 1, Status: "APPROVED"}
	svc := newService(port, nil)

	check, err := svc.Confirm(ctxWithRoles("MANAGER"), 1)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, check.Status)
	require.True(t, check.Status.Terminal())
}

func TestRejectNeedsReason(t *testing.T) {
	port := newFakePort()
	port.checks[1] = checkDTO{ID: 1, Status: "PENDING"}
	svc := newService(port, nil)

	_, err := svc.Reject(ctxWithRoles("MANAGER"), 1, "")
	require.ErrorIs(t, err, ErrReasonRequired)
	require.Zero(t, port.getCalls)

	check, err := svc.Reject(ctxWithRoles("MANAGER"), 1, "lệch quá lớn")
	require.NoError(t, err)
	require.Equal(t, StatusRejected, check.Status)
	require.Equal(t, map[string]string{"reason": "lệch quá lớn"}, port.lastBody)
}

func TestDeleteRequiresPending(t *testing.T) {
	port := newFakePort()
	port.checks[1] = checkDTO{ID: 1, Status: "COMPLETED"}
	svc := newService(port, nil)

	err := svc.Delete(ctxWithRoles("ADMIN"), 1)
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Zero(t, port.deleteCalls)
}

func TestGetMissingCheck(t *testing.T) {
	port := newFakePort()
	svc := newService(port, nil)

	_, err := svc.Get(ctxWithRoles("USER"), 77)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
