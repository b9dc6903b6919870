package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rakatama/koperasi-admin/internal/infra/gateway/platform"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// respondWithError sends an error response
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondUpstreamError maps a platform API failure onto our response. An
// upstream rejection keeps its status and flattened message; anything else
// (network failure, malformed body) becomes a 502.
func respondUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *platform.APIError
	if errors.As(err, &apiErr) {
		respondWithError(w, apiErr.Status, apiErr.Error())
		return
	}
	respondWithError(w, http.StatusBadGateway, "platform api unavailable")
}
