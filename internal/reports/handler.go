package reports

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wareflow/wareflow/internal/platform/httpx"
)

// Handler exposes the report screens' data to the dashboard.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers report routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/sales-trend", h.salesTrend)
	r.Get("/abc-analysis", h.abcAnalysis)
	r.Get("/alerts", h.alerts)
	r.Get("/volume", h.volume)
	r.Get("/recent", h.recent)
}

func (h *Handler) salesTrend(w http.ResponseWriter, r *http.Request) {
	period := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("period")))
	trend, err := h.service.SalesTrend(r.Context(), period)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, trend, "")
}

func (h *Handler) abcAnalysis(w http.ResponseWriter, r *http.Request) {
	abc, err := h.service.ABCAnalysis(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, abc, "")
}

func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.service.Alerts(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, alerts, "")
}

func (h *Handler) volume(w http.ResponseWriter, r *http.Request) {
	vol, err := h.service.Volume(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, http.StatusOK, vol, "")
}

// recent serves the worker-maintained activity snapshot. It never blocks on
// the backend; an empty snapshot just means no refresh has run yet.
func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	httpx.Data(w, http.StatusOK, h.service.Recent(), "")
}
