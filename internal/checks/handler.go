package checks

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

// Handler wires HTTP endpoints for inventory checks.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers stocktake routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.search)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
	r.Post("/{id}/approve", h.approve)
	r.Post("/{id}/reject", h.reject)
	r.Post("/{id}/confirm", h.confirm)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	c := Criteria{
		Code:    strings.TrimSpace(values.Get("code")),
		Status:  strings.TrimSpace(values.Get("status")),
		StoreID: parseID(values.Get("storeId")),
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

	result, err := h.service.Search(r.Context(), SearchQuery{
		Criteria: c,
		Page:     page,
		Size:     size,
		SortBy:   strings.TrimSpace(values.Get("sortField")),
		SortDir:  dir,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, result, "")
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	check, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, check, "")
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := h.decode(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	check, err := h.service.Create(r.Context(), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusCreated, check, "Tạo phiếu kiểm thành công")
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
	check, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, check, "Cập nhật phiếu kiểm thành công")
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
	httpx.Data(w, http.StatusOK, nil, "Xóa phiếu kiểm thành công")
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.service.Approve, "Duyệt phiếu kiểm thành công")
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.service.Confirm, "Cân bằng kho thành công")
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
	check, err := h.service.Reject(r.Context(), id, body.Reason)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, check, "Từ chối phiếu kiểm thành công")
}

func (h *Handler) action(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int64) (Check, error), message string) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	check, err := fn(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, check, message)
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
		return 0, fmt.Errorf("%w: mã phiếu kiểm không hợp lệ", httpx.ErrValidation)
	}
	return id, nil
}

func parseID(raw string) int64 {
	id, _ := strconv.ParseInt(raw, 10, 64)
	return id
}
