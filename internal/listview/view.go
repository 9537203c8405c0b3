package listview

import (
	"context"
	"sync"

	"github.com/wareflow/wareflow/internal/upstream"
)

// FetchFunc loads one page of results from the backend.
type FetchFunc[T any] func(ctx context.Context) (upstream.Page[T], error)

// PagedView holds the currently displayed page envelope for a listing
// screen. A successful load replaces the envelope wholesale; a failed load
// keeps the previous content on screen and records a non-empty error string.
//
// Overlapping loads are guarded with a monotonic sequence number: only the
// most recently issued request may publish its outcome, so a slow stale
// response can never overwrite a newer one.
type PagedView[T any] struct {
	fallback string

	mu      sync.Mutex
	seq     uint64
	page    upstream.Page[T]
	loaded  bool
	loading int
	lastErr string
}

// NewPagedView builds an empty view. fallback is the user-facing error used
// when a failed load carries no message of its own.
func NewPagedView[T any](fallback string) *PagedView[T] {
	if fallback == "" {
		fallback = "request failed"
	}
	return &PagedView[T]{fallback: fallback}
}

// Snapshot is a consistent copy of the view state.
type Snapshot[T any] struct {
	Page    upstream.Page[T]
	Loaded  bool
	Loading bool
	Err     string
}

// Load runs fetch and publishes the result unless a newer Load was issued in
// the meantime. The returned error is the fetch error even when the result
// was superseded, so callers can still log it.
func (v *PagedView[T]) Load(ctx context.Context, fetch FetchFunc[T]) error {
	v.mu.Lock()
	v.seq++
	id := v.seq
	v.loading++
	v.mu.Unlock()

	page, err := fetch(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading--
	if id != v.seq {
		// Superseded by a newer request; discard silently.
		return err
	}
	if err != nil {
		v.lastErr = upstream.UserMessage(err, v.fallback)
		return err
	}
	v.lastErr = ""
	v.page = page
	v.loaded = true
	return nil
}

// Snapshot returns the current state.
func (v *PagedView[T]) Snapshot() Snapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot[T]{Page: v.page, Loaded: v.loaded, Loading: v.loading > 0, Err: v.lastErr}
}

// Invalidate empties the view so the next Load starts from scratch.
func (v *PagedView[T]) Invalidate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = upstream.Page[T]{}
	v.loaded = false
	v.lastErr = ""
}
