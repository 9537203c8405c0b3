package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/wareflow/wareflow/internal/app"
	"github.com/wareflow/wareflow/internal/auth"
	"github.com/wareflow/wareflow/internal/checks"
	"github.com/wareflow/wareflow/internal/lookup"
	"github.com/wareflow/wareflow/internal/platform/cache"
	"github.com/wareflow/wareflow/internal/rbac"
	"github.com/wareflow/wareflow/internal/receipts"
	"github.com/wareflow/wareflow/internal/reports"
	"github.com/wareflow/wareflow/internal/upstream"
	"github.com/wareflow/wareflow/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	// The gateway stays up without Redis; caches just stop helping.
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, running uncached", slog.Any("error", err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	backend := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, logger)

	authService := auth.NewService(backend, redisClient, cfg.PrincipalTTL)
	lookupService := lookup.NewService(backend, redisClient, cfg.LookupTTL, logger)
	importService := receipts.NewService(backend, receipts.KindImport, logger)
	exportService := receipts.NewService(backend, receipts.KindExport, logger)
	internalImportService := receipts.NewService(backend, receipts.KindInternalImport, logger)
	internalExportService := receipts.NewService(backend, receipts.KindInternalExport, logger)
	staffImportService := receipts.NewService(backend, receipts.KindStaffImport, logger)
	staffExportService := receipts.NewService(backend, receipts.KindStaffExport, logger)
	checkService := checks.NewService(backend, logger)
	reportService := reports.NewService(backend, redisClient, cfg.ReportTTL, logger)

	var jobsHandler *jobs.Handler
	if redisClient != nil {
		inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() { _ = inspector.Close() }()
		jobsHandler = jobs.NewHandler(inspector, logger)
	} else {
		jobsHandler = jobs.NewHandler(nil, logger)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		AuthMiddleware: auth.Middleware{Service: authService, Logger: logger},
		RBACMiddleware: rbac.Middleware{Logger: logger},

		ImportHandler:         receipts.NewHandler(logger, importService, cfg.AssetBaseURL, lookupService),
		ExportHandler:         receipts.NewHandler(logger, exportService, cfg.AssetBaseURL, lookupService),
		InternalImportHandler: receipts.NewHandler(logger, internalImportService, cfg.AssetBaseURL, lookupService),
		InternalExportHandler: receipts.NewHandler(logger, internalExportService, cfg.AssetBaseURL, lookupService),
		StaffImportHandler:    receipts.NewHandler(logger, staffImportService, cfg.AssetBaseURL, lookupService),
		StaffExportHandler:    receipts.NewHandler(logger, staffExportService, cfg.AssetBaseURL, lookupService),

		CheckHandler:       checks.NewHandler(logger, checkService),
		LookupHandler:      lookup.NewHandler(logger, lookupService),
		ReportHandler:      reports.NewHandler(logger, reportService),
		PermissionsHandler: &rbac.PermissionsHandler{},
		JobsHandler:        jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
