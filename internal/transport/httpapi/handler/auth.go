package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rakatama/koperasi-admin/internal/infra/gateway/platform"
	"github.com/rakatama/koperasi-admin/internal/platform/session"
	"github.com/rakatama/koperasi-admin/internal/transport/httpapi/middleware"
)

// AuthHandler handles login and logout
type AuthHandler struct {
	sessions *session.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *session.Service) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session id the panel uses as its bearer token,
// plus the restored navigation state
type LoginResponse struct {
	SessionID string        `json:"session_id"`
	State     session.State `json:"state"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, state, err := h.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrMissingCredentials) {
			respondWithError(w, http.StatusBadRequest, "username and password are required")
			return
		}
		if platform.IsUnauthorized(err) {
			respondWithError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		respondUpstreamError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponse{
		SessionID: sess.ID,
		State:     state,
	})
}

// Logout handles POST /auth/logout. The session and every persisted
// navigation key are removed; the response is the default state.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	state, err := h.sessions.Logout(r.Context(), sessionID)
	if err != nil {
		// The session can expire between the middleware resolve and here.
		if errors.Is(err, session.ErrSessionNotFound) {
			respondWithError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to logout")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]session.State{"state": state})
}
