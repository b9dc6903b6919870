package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rakatama/koperasi-admin/internal/platform/journal"
	"github.com/rakatama/koperasi-admin/internal/transport/httpapi/middleware"
)

// JournalHandler serves the general journal screen
type JournalHandler struct {
	journal *journal.Service
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(svc *journal.Service) *JournalHandler {
	return &JournalHandler{journal: svc}
}

// CreateEntryRequest represents the journal entry creation request. Line
// amounts arrive as the free-form strings the form fields held.
type CreateEntryRequest struct {
	Date        string         `json:"date"`
	Description string         `json:"description"`
	Lines       []journal.Line `json:"lines"`
}

// EntriesResponse wraps the refreshed entry list
type EntriesResponse struct {
	Data []journal.Entry `json:"data"`
}

// List handles GET /journal-entries
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetTokenFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entries, err := h.journal.List(r.Context(), token)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, EntriesResponse{Data: entries})
}

// Create handles POST /journal-entries. The submission runs through the same
// validation the form applies: balance first, then header fields, then
// per-line completeness.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetTokenFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form := &journal.Form{
		Date:        req.Date,
		Description: req.Description,
		Lines:       req.Lines,
	}

	entries, err := h.journal.Submit(r.Context(), token, form)
	if err != nil {
		if isValidationError(err) {
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondUpstreamError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, EntriesResponse{Data: entries})
}

// Delete handles DELETE /journal-entries/{id}
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetTokenFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	entries, err := h.journal.Delete(r.Context(), token, id)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, EntriesResponse{Data: entries})
}

func isValidationError(err error) bool {
	return errors.Is(err, journal.ErrUnbalanced) ||
		errors.Is(err, journal.ErrMissingDescription) ||
		errors.Is(err, journal.ErrMissingDate) ||
		errors.Is(err, journal.ErrIncompleteLine) ||
		errors.Is(err, journal.ErrDualSidedLine)
}
