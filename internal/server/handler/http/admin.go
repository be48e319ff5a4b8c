package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mkravets/jobtrack/internal/models"
	"github.com/mkravets/jobtrack/internal/repository"
	"github.com/mkravets/jobtrack/internal/service"
)

// AdminService defines the operations required by the admin handlers.
type AdminService interface {
	List(ctx context.Context, f repository.ApplicationFilter) ([]models.Application, error)
	Stats(ctx context.Context) (models.AdminStats, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error
	BatchUpdateStatus(ctx context.Context, ids []string, status models.ApplicationStatus) (int, error)
}

// AdminHandler serves the admin review surface. Every route here sits
// behind the admin-only middleware.
type AdminHandler struct {
	// Admin performs the underlying review operations.
	Admin AdminService
}

// List returns applications filtered by the query parameters: status,
// ageMin, ageMax and degreeClass.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ageMin, _ := strconv.Atoi(q.Get("ageMin"))
	ageMax, _ := strconv.Atoi(q.Get("ageMax"))
	f := repository.ApplicationFilter{
		Status:      models.ApplicationStatus(q.Get("status")),
		AgeMin:      ageMin,
		AgeMax:      ageMax,
		DegreeClass: q.Get("degreeClass"),
	}
	apps, err := h.Admin.List(r.Context(), f)
	if errors.Is(err, service.ErrInvalidStatus) {
		writeError(w, http.StatusUnprocessableEntity, "invalid status filter")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list applications")
		return
	}
	if apps == nil {
		apps = []models.Application{}
	}
	writeJSON(w, http.StatusOK, apps)
}

// Stats returns the application summary.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Admin.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// UpdateStatus moves one application to a new review status.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Status models.ApplicationStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	err := h.Admin.UpdateStatus(r.Context(), id, req.Status)
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusUnprocessableEntity, "invalid status")
		return
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "application not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}
	writeMessage(w, http.StatusOK, "status updated")
}

// BatchUpdateStatus moves every listed application to one status in a
// single statement and reports how many rows changed.
func (h *AdminHandler) BatchUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs    []string                 `json:"ids"`
		Status models.ApplicationStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	changed, err := h.Admin.BatchUpdateStatus(r.Context(), req.IDs, req.Status)
	if errors.Is(err, service.ErrInvalidStatus) {
		writeError(w, http.StatusUnprocessableEntity, "invalid status")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update statuses")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": changed})
}
