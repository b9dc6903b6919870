package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rakatama/koperasi-admin/internal/platform/notify"
)

// NotificationHandler exposes the toast queue
type NotificationHandler struct {
	bus *notify.Bus
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(bus *notify.Bus) *NotificationHandler {
	return &NotificationHandler{bus: bus}
}

// List handles GET /notifications, returning the not-yet-expired toasts
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": h.bus.Active()})
}

// Dismiss handles DELETE /notifications/{id}
func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.bus.Dismiss(id) {
		respondWithError(w, http.StatusNotFound, "notification not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
