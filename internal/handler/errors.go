package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"trip-planner-service/internal/domain"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode response failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
	}
}

// writeError writes the {"error": message} body every failure response uses.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// respondError maps a service error onto the HTTP taxonomy:
// validation, geocoding, routing, and hours-limit failures are the caller's
// to fix (400); a missing trip is 404; everything else is an unexpected
// internal failure (500), logged with the full error chain.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrGeocoding),
		errors.Is(err, domain.ErrRouting),
		errors.Is(err, domain.ErrHoursLimit):
		writeError(w, r, http.StatusBadRequest, userMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "trip not found")
	default:
		slog.ErrorContext(r.Context(), "internal error",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// userSentinels are the error kinds whose text is safe to show to clients.
var userSentinels = []error{
	domain.ErrValidation,
	domain.ErrGeocoding,
	domain.ErrRouting,
	domain.ErrHoursLimit,
}

// userMessage extracts the client-facing part from a wrapped service error by
// cutting everything before the sentinel text, whatever wrap sites the error
// passed through.
// e.g. "service.TripService.Plan: pickup location: geocoding error: no match"
// → "geocoding error: no match".
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range userSentinels {
		if !errors.Is(err, sentinel) {
			continue
		}
		if i := strings.Index(msg, sentinel.Error()); i >= 0 {
			return msg[i:]
		}
	}
	return msg
}
