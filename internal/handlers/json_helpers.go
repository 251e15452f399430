package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"assetboard/internal/apperr"
)

// ErrorResponse is the uniform error body
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithAppError maps a classified error onto an HTTP status. Internal
// failures get logged and a generic message; everything else surfaces its
// own message to the caller.
func respondWithAppError(w http.ResponseWriter, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidArgument:
		respondWithError(w, http.StatusBadRequest, err.Error())
	case apperr.KindNotFound:
		respondWithError(w, http.StatusNotFound, err.Error())
	case apperr.KindUnavailable:
		respondWithError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		slog.Error("Request failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseIntParam reads an integer query parameter, falling back to the
// default for missing or malformed values. Range clamping is the caller's
// business.
func parseIntParam(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// parseListParam collects a multi-valued query parameter. Both repeated
// keys and comma-separated values are accepted.
func parseListParam(r *http.Request, key string) []string {
	var values []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				values = append(values, trimmed)
			}
		}
	}
	return values
}
