// Package jobs holds the background worker: Asynq task definitions, the
// worker wrapper and the handlers that keep the gateway's caches warm.
package jobs

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLookupWarmup refreshes the cached reference lists.
	TaskLookupWarmup = "lookup:warmup"
	// TaskLookupInvalidate drops the cached reference lists.
	TaskLookupInvalidate = "lookup:invalidate"
	// TaskReportRefresh recomputes the dashboard reports.
	TaskReportRefresh = "report:refresh"
)

// LookupWarmupPayload scopes a warmup run. A zero StoreID warms only the
// shared lists; a concrete one also pre-loads that store's stock levels.
type LookupWarmupPayload struct {
	StoreID int64 `json:"storeId"`
}

// NewLookupWarmupTask constructs a lookup warmup task.
func NewLookupWarmupTask(payload LookupWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLookupWarmup, data), nil
}

// NewLookupInvalidateTask constructs a cache invalidation task.
func NewLookupInvalidateTask() *asynq.Task {
	return asynq.NewTask(TaskLookupInvalidate, nil)
}

// NewReportRefreshTask constructs a report refresh task.
func NewReportRefreshTask() *asynq.Task {
	return asynq.NewTask(TaskReportRefresh, nil)
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) (*Client, error) {
	client := asynq.NewClient(redisOpts)
	return &Client{client: client}, nil
}

// EnqueueLookupWarmup enqueues a warmup task.
func (c *Client) EnqueueLookupWarmup(ctx context.Context, payload LookupWarmupPayload) (*asynq.TaskInfo, error) {
	task, err := NewLookupWarmupTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

// EnqueueLookupInvalidate enqueues an invalidation task.
func (c *Client) EnqueueLookupInvalidate(ctx context.Context) (*asynq.TaskInfo, error) {
	return c.client.EnqueueContext(ctx, NewLookupInvalidateTask(), asynq.Queue(QueueDefault))
}

// EnqueueReportRefresh enqueues a report refresh task.
func (c *Client) EnqueueReportRefresh(ctx context.Context) (*asynq.TaskInfo, error) {
	return c.client.EnqueueContext(ctx, NewReportRefreshTask(), asynq.Queue(QueueDefault))
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
