package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/piknikapp/piknik/internal/registry"
)

// jsonResponse writes data as JSON with the given status.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes {"error": message} with the given status.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// writeRegistryError maps registry errors to HTTP status codes.
func writeRegistryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrInvalidArgument):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, registry.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, registry.ErrPermissionDenied):
		jsonError(w, http.StatusForbidden, err.Error())
	default:
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
