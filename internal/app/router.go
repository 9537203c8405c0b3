package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wareflow/wareflow/internal/auth"
	"github.com/wareflow/wareflow/internal/checks"
	"github.com/wareflow/wareflow/internal/lookup"
	"github.com/wareflow/wareflow/internal/rbac"
	"github.com/wareflow/wareflow/internal/receipts"
	"github.com/wareflow/wareflow/internal/reports"
	"github.com/wareflow/wareflow/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	AuthMiddleware auth.Middleware
	RBACMiddleware rbac.Middleware

	ImportHandler         *receipts.Handler
	ExportHandler         *receipts.Handler
	InternalImportHandler *receipts.Handler
	InternalExportHandler *receipts.Handler
	StaffImportHandler    *receipts.Handler
	StaffExportHandler    *receipts.Handler

	CheckHandler       *checks.Handler
	LookupHandler      *lookup.Handler
	ReportHandler      *reports.Handler
	PermissionsHandler *rbac.PermissionsHandler
	JobsHandler        *jobs.Handler
}

// NewRouter constructs the chi.Router with gateway defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.JobsHandler != nil {
		r.Route("/jobs", func(rr chi.Router) {
			params.JobsHandler.MountRoutes(rr)
		})
	}

	// Everything under /api requires a signed-in dashboard user. Permission
	// checks happen again inside the services; the route guards only give
	// denied calls a fast 403.
	r.Route("/api", func(api chi.Router) {
		api.Use(params.AuthMiddleware.Authenticate)

		api.Route("/imports", func(rr chi.Router) {
			rr.Use(params.RBACMiddleware.RequireAny(rbac.ImportView))
			params.ImportHandler.MountRoutes(rr)
			rr.Route("/internal", params.InternalImportHandler.MountRoutes)
			rr.Route("/staff", params.StaffImportHandler.MountRoutes)
		})
		api.Route("/exports", func(rr chi.Router) {
			rr.Use(params.RBACMiddleware.RequireAny(rbac.ExportView))
			params.ExportHandler.MountRoutes(rr)
			rr.Route("/internal", params.InternalExportHandler.MountRoutes)
			rr.Route("/staff", params.StaffExportHandler.MountRoutes)
		})
		api.Route("/inventory-checks", func(rr chi.Router) {
			rr.Use(params.RBACMiddleware.RequireAny(rbac.CheckView))
			params.CheckHandler.MountRoutes(rr)
		})
		api.Route("/lookup", func(rr chi.Router) {
			params.LookupHandler.MountRoutes(rr)
		})
		api.Route("/reports", func(rr chi.Router) {
			rr.Use(params.RBACMiddleware.RequireAny(rbac.ReportView))
			params.ReportHandler.MountRoutes(rr)
		})
		api.Route("/permissions", func(rr chi.Router) {
			params.PermissionsHandler.MountRoutes(rr)
		})
	})

	return r
}
