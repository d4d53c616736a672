package routes

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"SocialRelay/internal/ayrshare"
	"SocialRelay/internal/core/platforms"
	"SocialRelay/internal/core/profiles"
)

// writeJSON marshals to bytes first so encoding errors are caught
// before any headers are written.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	responseBytes, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal response", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "InternalError", "Failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, writeErr := w.Write(responseBytes); writeErr != nil {
		slog.Warn("failed to write response", slog.String("error", writeErr.Error()))
	}
}

// writeRaw relays an upstream response body verbatim.
func writeRaw(w http.ResponseWriter, statusCode int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, writeErr := w.Write(body); writeErr != nil {
		slog.Warn("failed to write response", slog.String("error", writeErr.Error()))
	}
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	responseBytes, err := json.Marshal(map[string]any{
		"error":   errorType,
		"message": message,
	})
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		slog.Error("failed to marshal error response", slog.String("error", err.Error()))
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(message))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, writeErr := w.Write(responseBytes); writeErr != nil {
		slog.Warn("failed to write error response", slog.String("error", writeErr.Error()))
	}
}

// writeServiceError maps domain and upstream errors onto HTTP statuses.
// Upstream failures become 502 with the provider's status and message
// attached so callers can tell transient from permanent failures.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profiles.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "ProfileNotFound", "No profile found for user")
	case errors.Is(err, profiles.ErrProfileExists):
		writeError(w, http.StatusConflict, "ProfileExists", "User already has a profile")
	case errors.Is(err, platforms.ErrEmptyPlatform):
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Platform name is required")
	default:
		var apiErr *ayrshare.APIError
		if errors.As(err, &apiErr) {
			writeError(w, http.StatusBadGateway, "UpstreamError", apiErr.Error())
			return
		}
		slog.Error("request failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "InternalError", "Internal server error")
	}
}
