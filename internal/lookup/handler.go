package lookup

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wareflow/wareflow/internal/platform/httpx"
)

// Handler exposes the cached reference lists to the dashboard.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers lookup routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/products", h.products)
	r.Get("/stores", h.stores)
	r.Get("/suppliers", h.suppliers)
	r.Get("/stocks", h.stocks)
}

func (h *Handler) products(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Products(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, items, "")
}

func (h *Handler) stores(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Stores(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, items, "")
}

func (h *Handler) suppliers(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Suppliers(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, items, "")
}

func (h *Handler) stocks(w http.ResponseWriter, r *http.Request) {
	storeID, _ := strconv.ParseInt(r.URL.Query().Get("storeId"), 10, 64)
	items, err := h.service.Stocks(r.Context(), storeID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, items, "")
}
