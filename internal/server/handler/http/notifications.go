package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkravets/jobtrack/internal/middleware"
	"github.com/mkravets/jobtrack/internal/models"
	"github.com/mkravets/jobtrack/internal/service"
)

// NotificationService defines the operations required by the
// notification handlers.
type NotificationService interface {
	List(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}

// NotificationHandler serves the per-user notification feed polled by
// the client.
type NotificationHandler struct {
	// Notifications performs the underlying operations.
	Notifications NotificationService
}

// List returns every notification for the authenticated user.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	notes, err := h.Notifications.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	if notes == nil {
		notes = []models.Notification{}
	}
	writeJSON(w, http.StatusOK, notes)
}

// MarkRead flips a notification to read. The flip is one-way and
// idempotent.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")
	err := h.Notifications.MarkRead(r.Context(), userID, id)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to mark notification")
		return
	}
	writeMessage(w, http.StatusOK, "marked as read")
}
