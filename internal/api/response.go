package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/CSCI-GA-2820-SU24-001/inventory/internal/model"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes the standard error body.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, model.ErrorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: message,
	})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
