package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/wareflow/wareflow/internal/app"
	"github.com/wareflow/wareflow/internal/lookup"
	"github.com/wareflow/wareflow/internal/platform/cache"
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

	// Asynq needs Redis, so a dead broker is fatal for the worker.
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	backend := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, logger)
	lookupService := lookup.NewService(backend, redisClient, cfg.LookupTTL, logger)
	reportService := reports.NewService(backend, redisClient, cfg.ReportTTL, logger)
	warmupJob := jobs.NewLookupWarmupJob(lookupService, logger)
	reportJob := jobs.NewReportRefreshJob(reportService, logger)

	// Task contexts come from Asynq, so the service token is attached per
	// handler rather than on the root context.
	withToken := func(h asynq.HandlerFunc) asynq.HandlerFunc {
		return func(ctx context.Context, t *asynq.Task) error {
			if cfg.ServiceToken != "" {
				ctx = upstream.ContextWithToken(ctx, cfg.ServiceToken)
			}
			return h(ctx, t)
		}
	}

	warmupTask, err := jobs.NewLookupWarmupTask(jobs.LookupWarmupPayload{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLookupWarmup, Handler: withToken(warmupJob.Handle)},
			{Type: jobs.TaskLookupInvalidate, Handler: withToken(warmupJob.HandleInvalidate)},
			{Type: jobs.TaskReportRefresh, Handler: withToken(reportJob.Handle)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "*/15 * * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "0 * * * *", Task: jobs.NewReportRefreshTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
