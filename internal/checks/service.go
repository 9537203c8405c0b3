package checks

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/wareflow/wareflow/internal/auth"
	"github.com/wareflow/wareflow/internal/format"
	"github.com/wareflow/wareflow/internal/listview"
	"github.com/wareflow/wareflow/internal/platform/httpx"
	"github.com/wareflow/wareflow/internal/rbac"
	"github.com/wareflow/wareflow/internal/upstream"
)

// ResourcePort abstracts the backend inventory-check collection.
type ResourcePort interface {
	Search(ctx context.Context, query url.Values, page, size int) (upstream.Page[checkDTO], error)
	Get(ctx context.Context, id int64) (checkDTO, error)
	Create(ctx context.Context, body any) (checkDTO, error)
	Update(ctx context.Context, id int64, body any) (checkDTO, error)
	Act(ctx context.Context, id int64, action string, body any) (checkDTO, error)
	Delete(ctx context.Context, id int64) error
}

// Service coordinates stocktake reads and the approval workflow.
type Service struct {
	port   ResourcePort
	logger *slog.Logger
	clock  func() time.Time
}

// NewService builds a Service over the backend inventory-check collection.
func NewService(client *upstream.Client, logger *slog.Logger) *Service {
	return newService(upstream.NewResource[checkDTO](client, "/api/inventory-checks"), logger)
}

func newService(port ResourcePort, logger *slog.Logger) *Service {
	return &Service{port: port, logger: logger, clock: time.Now}
}

// SearchQuery is one immutable stocktake search request.
type SearchQuery struct {
	Criteria Criteria
	Page     int
	Size     int
	SortBy   string
	SortDir  listview.SortDirection
}

// Search runs a paged backend search; ordering within the page is local.
func (s *Service) Search(ctx context.Context, q SearchQuery) (upstream.Page[Check], error) {
	if err := s.require(ctx, rbac.CheckView); err != nil {
		return upstream.Page[Check]{}, err
	}
	raw, err := s.port.Search(ctx, q.Criteria.Values(), q.Page, q.Size)
	if err != nil {
		return upstream.Page[Check]{}, err
	}
	page := toDomainPage(raw)
	if q.SortBy != "" {
		page.Content = Sort(page.Content, q.SortBy, q.SortDir)
	}
	return page, nil
}

// Get fetches one stocktake with full detail.
func (s *Service) Get(ctx context.Context, id int64) (Check, error) {
	if err := s.require(ctx, rbac.CheckView); err != nil {
		return Check{}, err
	}
	return s.fetch(ctx, id)
}

// ItemInput is one counted line on create or update.
type ItemInput struct {
	ProductID      int64   `json:"productId" validate:"required,gt=0"`
	SystemQuantity float64 `json:"systemQuantity" validate:"gte=0"`
	ActualQuantity float64 `json:"actualQuantity" validate:"gte=0"`
	UnitPrice      float64 `json:"unitPrice" validate:"gte=0"`
	Note           string  `json:"note"`
}

// Input carries the editable stocktake fields. Date is the calendar day and
// Time the optional wall-clock moment of the count; they are merged into one
// timestamp before anything goes on the wire.
type Input struct {
	StoreID int64       `json:"storeId" validate:"required,gt=0"`
	Date    string      `json:"date" validate:"required"`
	Time    string      `json:"time"`
	Note    string      `json:"note"`
	Items   []ItemInput `json:"items" validate:"required,min=1,dive"`
}

type createBody struct {
	StoreID   int64   `json:"storeId"`
	CheckDate string  `json:"checkDate"`
	Note      string  `json:"note,omitempty"`
	TotalDiff float64 `json:"totalDifferenceValue"`
	Items     []Item  `json:"items"`
}

func (s *Service) buildBody(in Input) createBody {
	items := make([]Item, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, Item{
			ProductID:      it.ProductID,
			SystemQuantity: it.SystemQuantity,
			ActualQuantity: it.ActualQuantity,
			UnitPrice:      it.UnitPrice,
			Note:           it.Note,
		})
	}
	total := Recompute(items)
	// The form captures the calendar day; the moment of the count is the
	// current wall-clock time unless given explicitly.
	clock := in.Time
	if clock == "" {
		clock = s.clock().Format("15:04:05")
	}
	return createBody{
		StoreID:   in.StoreID,
		CheckDate: format.MergeDateTime(in.Date, clock),
		Note:      in.Note,
		TotalDiff: total,
		Items:     items,
	}
}

// Create submits a new stocktake, always starting out PENDING.
func (s *Service) Create(ctx context.Context, in Input) (Check, error) {
	if err := s.require(ctx, rbac.CheckCreate); err != nil {
		return Check{}, err
	}
	created, err := s.port.Create(ctx, s.buildBody(in))
	if err != nil {
		return Check{}, err
	}
	return s.fetch(ctx, created.ID)
}

// Update replaces an editable stocktake. Only PENDING checks may change.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Check, error) {
	if err := s.require(ctx, rbac.CheckEdit); err != nil {
		return Check{}, err
	}
	current, err := s.fetch(ctx, id)
	if err != nil {
		return Check{}, err
	}
	if current.Status != StatusPending {
		return Check{}, ErrInvalidTransition
	}
	if _, err := s.port.Update(ctx, id, s.buildBody(in)); err != nil {
		return Check{}, err
	}
	return s.fetch(ctx, id)
}

// Approve moves a PENDING stocktake to APPROVED.
func (s *Service) Approve(ctx context.Context, id int64) (Check, error) {
	return s.transition(ctx, id, rbac.CheckApprove, "approve", StatusPending, nil)
}

// Reject moves a PENDING stocktake to REJECTED with a mandatory reason.
func (s *Service) Reject(ctx context.Context, id int64, reason string) (Check, error) {
	if err := s.require(ctx, rbac.CheckReject); err != nil {
		return Check{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Check{}, ErrReasonRequired
	}
	return s.act(ctx, id, "reject", StatusPending, map[string]string{"reason": reason})
}

// Confirm completes an APPROVED stocktake; stock balances adjust on the
// backend.
func (s *Service) Confirm(ctx context.Context, id int64) (Check, error) {
	return s.transition(ctx, id, rbac.CheckConfirm, "confirm", StatusApproved, nil)
}

// Delete removes a PENDING stocktake.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.require(ctx, rbac.CheckDelete); err != nil {
		return err
	}
	current, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != StatusPending {
		return ErrInvalidTransition
	}
	return s.port.Delete(ctx, id)
}

func (s *Service) transition(ctx context.Context, id int64, permission, action string, from Status, body any) (Check, error) {
	if err := s.require(ctx, permission); err != nil {
		return Check{}, err
	}
	return s.act(ctx, id, action, from, body)
}

func (s *Service) act(ctx context.Context, id int64, action string, from Status, body any) (Check, error) {
	current, err := s.fetch(ctx, id)
	if err != nil {
		return Check{}, err
	}
	if current.Status != from {
		return Check{}, ErrInvalidTransition
	}
	if _, err := s.port.Act(ctx, id, action, body); err != nil {
		return Check{}, err
	}
	return s.fetch(ctx, id)
}

func (s *Service) fetch(ctx context.Context, id int64) (Check, error) {
	dto, err := s.port.Get(ctx, id)
	if err != nil {
		if upstream.IsNotFound(err) {
			return Check{}, httpx.ErrNotFound
		}
		return Check{}, err
	}
	return dto.toDomain(), nil
}

func (s *Service) require(ctx context.Context, permission string) error {
	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		return httpx.ErrUnauthorized
	}
	if !rbac.HasPermission(principal.Roles, permission) {
		if s.logger != nil {
			s.logger.Warn("permission denied",
				slog.String("permission", permission),
				slog.String("user", principal.Name))
		}
		return ErrPermissionDenied
	}
	return nil
}
