package receipts

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/wareflow/wareflow/internal/auth"
	"github.com/wareflow/wareflow/internal/listview"
	"github.com/wareflow/wareflow/internal/platform/httpx"
	"github.com/wareflow/wareflow/internal/rbac"
	"github.com/wareflow/wareflow/internal/upstream"
)

// ResourcePort abstracts the backend receipt collection for the service.
type ResourcePort interface {
	Search(ctx context.Context, query url.Values, page, size int) (upstream.Page[receiptDTO], error)
	List(ctx context.Context, query url.Values) ([]receiptDTO, error)
	Get(ctx context.Context, id int64) (receiptDTO, error)
	Create(ctx context.Context, body any) (receiptDTO, error)
	Update(ctx context.Context, id int64, body any) (receiptDTO, error)
	Act(ctx context.Context, id int64, action string, body any) (receiptDTO, error)
	Delete(ctx context.Context, id int64) error
}

// Service coordinates receipt reads and the approval workflow for one kind.
type Service struct {
	port   ResourcePort
	kind   Kind
	perms  Permissions
	logger *slog.Logger
}

// NewService builds a Service talking to the backend collection for kind.
func NewService(client *upstream.Client, kind Kind, logger *slog.Logger) *Service {
	return newService(upstream.NewResource[receiptDTO](client, kind.basePath()), kind, logger)
}

func newService(port ResourcePort, kind Kind, logger *slog.Logger) *Service {
	return &Service{port: port, kind: kind, perms: PermissionsFor(kind), logger: logger}
}

// Kind returns the receipt kind this service serves.
func (s *Service) Kind() Kind { return s.kind }

// SearchQuery is one immutable search request. Sort applies to the fetched
// page only; changing it never triggers another backend call.
type SearchQuery struct {
	Criteria Criteria
	Page     int
	Size     int
	SortBy   string
	SortDir  listview.SortDirection
}

// Search runs a paged backend search. The returned envelope is backend
// truth; only the ordering within the page is adjusted locally. Collections
// without a /search endpoint come back as a single page.
func (s *Service) Search(ctx context.Context, q SearchQuery) (upstream.Page[Receipt], error) {
	if err := s.require(ctx, s.perms.View); err != nil {
		return upstream.Page[Receipt]{}, err
	}
	var raw upstream.Page[receiptDTO]
	if s.kind.paged() {
		var err error
		raw, err = s.port.Search(ctx, q.Criteria.Values(), q.Page, q.Size)
		if err != nil {
			return upstream.Page[Receipt]{}, err
		}
	} else {
		items, err := s.port.List(ctx, q.Criteria.Values())
		if err != nil {
			return upstream.Page[Receipt]{}, err
		}
		raw = upstream.Page[receiptDTO]{
			Content:       items,
			TotalElements: int64(len(items)),
			TotalPages:    1,
			Size:          len(items),
		}
	}
	page := toDomainPage(raw, s.kind)
	if q.SortBy != "" {
		page.Content = Sort(page.Content, q.SortBy, q.SortDir)
	}
	return page, nil
}

// Get fetches one receipt with full detail.
func (s *Service) Get(ctx context.Context, id int64) (Receipt, error) {
	if err := s.require(ctx, s.perms.View); err != nil {
		return Receipt{}, err
	}
	return s.fetch(ctx, id)
}

// ItemInput is one receipt line on create or update.
type ItemInput struct {
	ProductID       int64   `json:"productId" validate:"required,gt=0"`
	StoreID         int64   `json:"storeId"`
	Quantity        float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice       float64 `json:"unitPrice" validate:"gte=0"`
	DiscountPercent float64 `json:"discountPercent" validate:"gte=0,lte=100"`
}

// Input carries the editable receipt fields.
type Input struct {
	StoreID     int64       `json:"storeId" validate:"required,gt=0"`
	SupplierID  int64       `json:"supplierId"`
	Date        string      `json:"date" validate:"required"`
	Note        string      `json:"note"`
	Description string      `json:"description"`
	Items       []ItemInput `json:"items" validate:"required,min=1,dive"`
}

// createBody mirrors the backend's create/update payload. The date field's
// name depends on the receipt kind.
type createBody struct {
	StoreID     int64       `json:"storeId"`
	SupplierID  int64       `json:"supplierId,omitempty"`
	ImportsDate string      `json:"importsDate,omitempty"`
	ExportsDate string      `json:"exportsDate,omitempty"`
	Note        string      `json:"note,omitempty"`
	Description string      `json:"description,omitempty"`
	TotalValue  float64     `json:"totalValue"`
	Items       []ItemInput `json:"items"`
}

func (s *Service) body(in Input) createBody {
	items := make([]Item, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, Item{Quantity: it.Quantity, UnitPrice: it.UnitPrice, DiscountPercent: it.DiscountPercent})
	}
	b := createBody{
		StoreID:     in.StoreID,
		SupplierID:  in.SupplierID,
		Note:        in.Note,
		Description: in.Description,
		TotalValue:  ReceiptTotal(items),
		Items:       in.Items,
	}
	if s.kind.outbound() {
		b.ExportsDate = in.Date
	} else {
		b.ImportsDate = in.Date
	}
	return b
}

// Create submits a new receipt. New receipts always start out PENDING on the
// backend.
func (s *Service) Create(ctx context.Context, in Input) (Receipt, error) {
	if err := s.require(ctx, s.perms.Create); err != nil {
		return Receipt{}, err
	}
	created, err := s.port.Create(ctx, s.body(in))
	if err != nil {
		return Receipt{}, err
	}
	return s.fetch(ctx, created.ID)
}

// Update replaces an editable receipt. Only PENDING receipts may change.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Receipt, error) {
	if err := s.require(ctx, s.perms.Edit); err != nil {
		return Receipt{}, err
	}
	current, err := s.fetch(ctx, id)
	if err != nil {
		return Receipt{}, err
	}
	if current.Status != StatusPending {
		return Receipt{}, ErrInvalidTransition
	}
	if _, err := s.port.Update(ctx, id, s.body(in)); err != nil {
		return Receipt{}, err
	}
	return s.fetch(ctx, id)
}

// fetch gets one receipt and maps a backend 404 onto the not-found sentinel.
func (s *Service) fetch(ctx context.Context, id int64) (Receipt, error) {
	dto, err := s.port.Get(ctx, id)
	if err != nil {
		if upstream.IsNotFound(err) {
			return Receipt{}, httpx.ErrNotFound
		}
		return Receipt{}, err
	}
	return dto.toDomain(s.kind), nil
}

// require checks the caller's roles against one permission flag. It fails
// before any backend call, so a denied action costs zero network traffic.
func (s *Service) require(ctx context.Context, permission string) error {
	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		return httpx.ErrUnauthorized
	}
	if !rbac.HasPermission(principal.Roles, permission) {
		if s.logger != nil {
			s.logger.Warn("permission denied",
				slog.String("permission", permission),
				slog.String("user", principal.Name),
				slog.String("roles", strings.Join(principal.Roles, ",")))
		}
		return ErrPermissionDenied
	}
	return nil
}
