package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Error is a failed backend call. Message carries the backend's own
// human-readable message when the response had one.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("upstream: %v", e.Err)
	default:
		return fmt.Sprintf("upstream: status %d", e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage returns the backend message, or fallback when the error
// carries none.
func (e *Error) UserMessage(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// UserMessage extracts a user-facing message for any error coming out of
// this package, falling back when none is present.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage(fallback)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
