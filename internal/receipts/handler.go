package receipts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/wareflow/wareflow/internal/format"
	"github.com/wareflow/wareflow/internal/listview"
	"github.com/wareflow/wareflow/internal/platform/httpx"
)

// NameResolver supplies display names for product references, including the
// placeholder for products that no longer exist.
type NameResolver interface {
	ProductName(ctx context.Context, id int64) string
}

// Handler wires HTTP endpoints for one receipt kind.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	assetBase string
	names     NameResolver
	validator *validator.Validate
}

// NewHandler constructs a Handler instance. names may be nil, in which case
// missing product names are passed through as-is.
func NewHandler(logger *slog.Logger, service *Service, assetBase string, names NameResolver) *Handler {
	return &Handler{logger: logger, service: service, assetBase: assetBase, names: names, validator: validator.New()}
}

// decorate resolves presentation concerns on a fetched receipt: absolute
// attachment URLs and placeholder names for deleted product references.
func (h *Handler) decorate(ctx context.Context, receipt *Receipt) {
	for i, path := range receipt.Attachments {
		receipt.Attachments[i] = format.BuildImageURL(h.assetBase, path)
	}
	if h.names == nil {
		return
	}
	for i := range receipt.Items {
		if receipt.Items[i].ProductName == "" {
			receipt.Items[i].ProductName = h.names.ProductName(ctx, receipt.Items[i].ProductID)
		}
	}
}

// MountRoutes registers receipt routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.search)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
	if h.service.kind.hasApproval() {
		r.Post("/{id}/approve", h.approve)
		r.Post("/{id}/reject", h.reject)
	}
	r.Post("/{id}/cancel", h.cancel)
	r.Post("/{id}/confirm", h.confirm)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q := queryFromRequest(r)
	page, err := h.service.Search(r.Context(), q)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, page, "")
}

// queryFromRequest builds one immutable SearchQuery from the URL. Unknown
// or malformed parameters fall back to their zero value rather than failing
// the whole search.
func queryFromRequest(r *http.Request) SearchQuery {
	values := r.URL.Query()
	c := Criteria{
		Code:       strings.TrimSpace(values.Get("code")),
		Status:     strings.TrimSpace(values.Get("status")),
		StoreID:    parseID(values.Get("storeId")),
		SupplierID: parseID(values.Get("supplierId")),
	}
	if ts, ok := format.ParseTime(values.Get("from")); ok {
		c.From = ts
	}
	if ts, ok := format.ParseTime(values.Get("to")); ok {
		c.To = ts
	}
	dir := listview.Asc
	if strings.EqualFold(values.Get("sortDir"), "desc") {
		dir = listview.Desc
	}
	page, _ := strconv.Atoi(values.Get("page"))
	size, _ := strconv.Atoi(values.Get("size"))
	return SearchQuery{
		Criteria: c,
		Page:     page,
		Size:     size,
		SortBy:   strings.TrimSpace(values.Get("sortField")),
		SortDir:  dir,
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	receipt, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.decorate(r.Context(), &receipt)
	httpx.Data(w, http.StatusOK, receipt, "")
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := h.decode(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	receipt, err := h.service.Create(r.Context(), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusCreated, receipt, "Tạo phiếu thành công")
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var in Input
	if err := h.decode(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	receipt, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, receipt, "Cập nhật phiếu thành công")
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, nil, "Xóa phiếu thành công")
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.service.Approve, "Duyệt phiếu thành công")
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.service.Cancel, "Hủy phiếu thành công")
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.service.Confirm, "Xác nhận phiếu thành công")
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: nội dung yêu cầu không hợp lệ", httpx.ErrValidation))
		return
	}
	receipt, err := h.service.Reject(r.Context(), id, body.Reason)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, receipt, "Từ chối phiếu thành công")
}

func (h *Handler) action(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int64) (Receipt, error), message string) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	receipt, err := fn(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, receipt, message)
}

func (h *Handler) decode(r *http.Request, in *Input) error {
	if err := httpx.DecodeJSON(r, in); err != nil {
		return fmt.Errorf("%w: nội dung yêu cầu không hợp lệ", httpx.ErrValidation)
	}
	if err := h.validator.Struct(in); err != nil {
		fields := make([]string, 0, 4)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
		}
		return fmt.Errorf("%w: %s", httpx.ErrValidation, strings.Join(fields, ", "))
	}
	return nil
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: mã phiếu không hợp lệ", httpx.ErrValidation)
	}
	return id, nil
}

func parseID(raw string) int64 {
	id, _ := strconv.ParseInt(raw, 10, 64)
	return id
}
