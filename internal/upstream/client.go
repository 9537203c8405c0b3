// Package upstream is the boundary to the warehouse backend. It owns the
// wire contract: the {data, message} envelope, the page envelope, error
// mapping and audit-field normalization. Nothing above this package parses
// backend JSON directly.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client performs JSON-over-HTTP calls against the backend API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient builds a Client. timeout bounds every round-trip; zero keeps the
// transport default.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do executes one request and decodes the {data} envelope into out. Non-2xx
// responses become *Error values carrying the backend message when present.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any, mutation bool) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: encode body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("upstream: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if mutation {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	res, err := c.http.Do(req)
	if err != nil {
		return &Error{Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return &Error{Status: res.StatusCode, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &Error{Status: res.StatusCode}
		var env envelope
		if json.Unmarshal(raw, &env) == nil {
			apiErr.Message = env.Message
		}
		if c.logger != nil {
			c.logger.Warn("upstream call failed",
				slog.String("method", method),
				slog.String("path", path),
				slog.Int("status", res.StatusCode))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("upstream: decode envelope: %w", err)
	}
	payload := env.Data
	if len(payload) == 0 || string(payload) == "null" {
		// Some endpoints reply with the bare object, no envelope.
		payload = raw
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("upstream: decode payload: %w", err)
	}
	return nil
}

// GetJSON fetches an arbitrary backend path and decodes its envelope.
func GetJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var out T
	err := c.do(ctx, http.MethodGet, path, query, nil, &out, false)
	return out, err
}

// Resource is a typed view over one backend collection such as /api/imports.
type Resource[T any] struct {
	client *Client
	base   string
}

// NewResource binds a Client to a collection path.
func NewResource[T any](client *Client, base string) *Resource[T] {
	return &Resource[T]{client: client, base: strings.TrimSuffix(base, "/")}
}

// Search calls {base}/search. page is 1-based here and converted to the
// backend's 0-based parameter; the returned envelope is backend truth and is
// never recomputed locally.
func (r *Resource[T]) Search(ctx context.Context, query url.Values, page, size int) (Page[T], error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	q := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("page", strconv.Itoa(page-1))
	q.Set("size", strconv.Itoa(size))

	var out Page[T]
	if err := r.client.do(ctx, http.MethodGet, r.base+"/search", q, nil, &out, false); err != nil {
		return Page[T]{}, err
	}
	return out, nil
}

// Get fetches a single entity by id.
func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", r.base, id), nil, nil, &out, false)
	return out, err
}

// Create posts a new entity to the collection.
func (r *Resource[T]) Create(ctx context.Context, body any) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodPost, r.base, nil, body, &out, true)
	return out, err
}

// Update replaces an entity.
func (r *Resource[T]) Update(ctx context.Context, id int64, body any) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", r.base, id), nil, body, &out, true)
	return out, err
}

// Act posts a workflow mutation ({base}/{id}/{action}) and returns the
// entity the backend replies with.
func (r *Resource[T]) Act(ctx context.Context, id int64, action string, body any) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodPost, fmt.Sprintf("%s/%d/%s", r.base, id, action), nil, body, &out, true)
	return out, err
}

// Delete removes an entity.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.client.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", r.base, id), nil, nil, nil, true)
}

// List calls the unpaged collection endpoint with the given query.
func (r *Resource[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	var out []T
	if err := r.client.do(ctx, http.MethodGet, r.base, query, nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}
