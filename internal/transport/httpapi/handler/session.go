package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rakatama/koperasi-admin/internal/platform/session"
	"github.com/rakatama/koperasi-admin/internal/transport/httpapi/middleware"
)

// SessionHandler exposes the persisted navigation state
type SessionHandler struct {
	sessions *session.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Service) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// UpdateViewRequest represents the view change request
type UpdateViewRequest struct {
	MainView string `json:"main_view"`
	SubView  string `json:"sub_view"`
}

// GetState handles GET /session
func (h *SessionHandler) GetState(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	respondWithJSON(w, http.StatusOK, h.sessions.Load(r.Context(), username))
}

// UpdateView handles PUT /session
func (h *SessionHandler) UpdateView(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MainView == "" {
		respondWithError(w, http.StatusBadRequest, "main_view is required")
		return
	}

	if err := h.sessions.SetView(r.Context(), username, req.MainView, req.SubView); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to persist view")
		return
	}

	respondWithJSON(w, http.StatusOK, h.sessions.Load(r.Context(), username))
}

// SelectBusinessUnit handles PUT /session/business-unit. A null body clears
// the selection.
func (h *SessionHandler) SelectBusinessUnit(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var bu *session.BusinessUnit
	if err := json.NewDecoder(r.Body).Decode(&bu); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.sessions.SelectBusinessUnit(r.Context(), username, bu); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to persist business unit")
		return
	}

	respondWithJSON(w, http.StatusOK, h.sessions.Load(r.Context(), username))
}
