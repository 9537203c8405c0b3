// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/wareflow/wareflow/internal/upstream"
)

// Sentinel errors for domain layer.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// RespondError maps domain and upstream errors to RFC7807 responses.
// Backend-originated errors keep their message; backend 5xx turns into a 502
// so gateway faults and backend faults stay distinguishable.
func RespondError(w http.ResponseWriter, err error) {
	var apiErr *upstream.Error
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, ErrConflict):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.As(err, &apiErr):
		status := apiErr.Status
		if status == 0 || status >= 500 {
			status = http.StatusBadGateway
		}
		Problem(w, status, "Upstream Error", apiErr.UserMessage("yêu cầu tới máy chủ thất bại"))
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
