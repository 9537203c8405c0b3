package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/wareflow/wareflow/internal/lookup"
)

// LookupWarmupJob pre-populates the reference caches so the first dashboard
// view after a cache expiry does not pay the backend round-trips.
type LookupWarmupJob struct {
	Lookup *lookup.Service
	Logger *slog.Logger
}

// NewLookupWarmupJob wires dependencies for the warmup handler.
func NewLookupWarmupJob(svc *lookup.Service, logger *slog.Logger) *LookupWarmupJob {
	return &LookupWarmupJob{Lookup: svc, Logger: logger}
}

// Handle processes lookup warmup tasks.
func (j *LookupWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Lookup == nil {
		return errors.New("lookup warmup: handler not configured")
	}
	var payload LookupWarmupPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	if _, err := j.Lookup.Products(ctx); err != nil {
		return err
	}
	if _, err := j.Lookup.Stores(ctx); err != nil {
		return err
	}
	if _, err := j.Lookup.Suppliers(ctx); err != nil {
		return err
	}
	if payload.StoreID != 0 {
		if _, err := j.Lookup.Stocks(ctx, payload.StoreID); err != nil {
			return err
		}
	}
	if j.Logger != nil {
		j.Logger.Info("lookup caches warmed", slog.Int64("store_id", payload.StoreID))
	}
	return nil
}

// HandleInvalidate processes cache invalidation tasks.
func (j *LookupWarmupJob) HandleInvalidate(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Lookup == nil {
		return errors.New("lookup invalidate: handler not configured")
	}
	return j.Lookup.Invalidate(ctx)
}
