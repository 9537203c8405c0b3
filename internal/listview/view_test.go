package listview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wareflow/wareflow/internal/upstream"
)

func TestPagedViewReplacesWholesale(t *testing.T) {
	v := NewPagedView[string]("tải thất bại")
	ctx := context.Background()

	err := v.Load(ctx, func(context.Context) (upstream.Page[string], error) {
		return upstream.Page[string]{Content: []string{"a", "b"}, TotalElements: 2, TotalPages: 1}, nil
	})
	require.NoError(t, err)

	err = v.Load(ctx, func(context.Context) (upstream.Page[string], error) {
		return upstream.Page[string]{Content: []string{"c"}, TotalElements: 1, TotalPages: 1}, nil
	})
	require.NoError(t, err)

	snap := v.Snapshot()
	require.Equal(t, []string{"c"}, snap.Page.Content)
	require.Empty(t, snap.Err)
}

func TestPagedViewFailureKeepsPreviousContent(t *testing.T) {
	v := NewPagedView[string]("tải thất bại")
	ctx := context.Background()

	require.NoError(t, v.Load(ctx, func(context.Context) (upstream.Page[string], error) {
		return upstream.Page[string]{Content: []string{"a"}, TotalElements: 1, TotalPages: 1}, nil
	}))

	err := v.Load(ctx, func(context.Context) (upstream.Page[string], error) {
		return upstream.Page[string]{}, &upstream.Error{Status: 500, Message: "backend down"}
	})
	require.Error(t, err)

	snap := v.Snapshot()
	require.Equal(t, []string{"a"}, snap.Page.Content)
	require.Equal(t, "backend down", snap.Err)
	require.False(t, snap.Loading)
}

func TestPagedViewFallbackMessage(t *testing.T) {
	v := NewPagedView[string]("tải thất bại")
	_ = v.Load(context.Background(), func(context.Context) (upstream.Page[string], error) {
		return upstream.Page[string]{}, &upstream.Error{Status: 500}
	})
	require.Equal(t, "tải thất bại", v.Snapshot().Err)
}

func TestPagedViewStaleResponseDiscarded(t *testing.T) {
	v := NewPagedView[string]("tải thất bại")
	ctx := context.Background()

	release := make(chan struct{})
	done := make(chan struct{})

	// Older request, resolves last.
	go func() {
		defer close(done)
		_ = v.Load(ctx, func(context.Context) (upstream.Page[string], error) {
			<-release
			return upstream.Page[string]{Content: []string{"stale"}, TotalElements: 1, TotalPages: 1}, nil
		})
	}()

	// Give the goroutine time to claim its sequence number, then issue the
	// newer request which resolves immediately.
	for {
		if v.Snapshot().Loading {
			break
		}
	}
	require.NoError(t, v.Load(ctx, func(context.Context) (upstream.Page[string], error) {
		return upstream.Page[string]{Content: []string{"fresh"}, TotalElements: 1, TotalPages: 1}, nil
	}))

	close(release)
	<-done

	require.Equal(t, []string{"fresh"}, v.Snapshot().Page.Content)
}

func TestPagedViewStaleErrorDoesNotClobber(t *testing.T) {
	v := NewPagedView[string]("tải thất bại")
	ctx := context.Background()

	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = v.Load(ctx, func(context.Context) (upstream.Page[string], error) {
			<-release
			return upstream.Page[string]{}, errors.New("slow failure")
		})
	}()
	for {
		if v.Snapshot().Loading {
			break
		}
	}
	require.NoError(t, v.Load(ctx, func(context.Context) (upstream.Page[string], error) {
		return upstream.Page[string]{Content: []string{"fresh"}}, nil
	}))
	close(release)
	<-done

	snap := v.Snapshot()
	require.Empty(t, snap.Err)
	require.Equal(t, []string{"fresh"}, snap.Page.Content)
}
