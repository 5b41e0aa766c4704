// Package controllers holds the HTTP layer: each controller binds and
// validates request bodies, delegates to a service, and writes the shared
// response envelope. No business rules live here.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/favourfurniture/storefront/app/services"
	"github.com/favourfurniture/storefront/pkg/response"
)

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, services.ErrInvalidInput
	}
	return uint(id), nil
}

// intQuery reads an integer query parameter, falling back when absent or
// malformed.
func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// writeServiceError maps the service failure taxonomy onto HTTP responses.
func writeServiceError(w http.ResponseWriter, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, notFoundMessage)
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(w)
	case errors.Is(err, services.ErrInvalidInput):
		response.Error(w, http.StatusUnprocessableEntity, "Invalid input")
	case errors.Is(err, services.ErrInvalidTransition):
		response.Error(w, http.StatusConflict, "Invalid status transition")
	case errors.Is(err, services.ErrEmailTaken):
		response.Error(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, services.ErrInvalidLogin):
		response.Error(w, http.StatusUnauthorized, "Invalid email or password")
	default:
		response.Error(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	}
}
