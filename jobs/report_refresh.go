package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/wareflow/wareflow/internal/reports"
)

// ReportRefreshJob recomputes the dashboard reports in the background so
// the report screens read a warm cache instead of fanning out backend calls
// on every view.
type ReportRefreshJob struct {
	Reports *reports.Service
	Logger  *slog.Logger
}

// NewReportRefreshJob wires dependencies for the refresh handler.
func NewReportRefreshJob(svc *reports.Service, logger *slog.Logger) *ReportRefreshJob {
	return &ReportRefreshJob{Reports: svc, Logger: logger}
}

// Handle processes report refresh tasks.
func (j *ReportRefreshJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("report refresh: handler not configured")
	}
	if err := j.Reports.Refresh(ctx); err != nil {
		return err
	}
	if j.Logger != nil {
		j.Logger.Info("reports refreshed")
	}
	return nil
}
