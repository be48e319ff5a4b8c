package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkravets/jobtrack/internal/middleware"
	"github.com/mkravets/jobtrack/internal/models"
	"github.com/mkravets/jobtrack/internal/service"
)

// JobService defines the operations required by the job handlers.
type JobService interface {
	List(ctx context.Context, userID string) ([]models.Job, error)
	Get(ctx context.Context, userID, id string) (*models.Job, error)
	Create(ctx context.Context, userID string, j models.Job) (*models.Job, error)
	Update(ctx context.Context, userID string, j models.Job) (*models.Job, error)
	Delete(ctx context.Context, userID, id string) error
}

// ApplicationService defines the apply operation shared by the JSON
// and multipart apply endpoints.
type ApplicationService interface {
	Apply(ctx context.Context, userID, jobID, coverLetter, cvRef string) (*models.Application, error)
}

// JobHandler handles the per-user job collection and both apply paths.
type JobHandler struct {
	// Jobs performs job CRUD.
	Jobs JobService
	// Applications performs the apply flow.
	Applications ApplicationService
	// UploadDir is where uploaded CVs are stored.
	UploadDir string
}

// jobPayload carries the user-editable job fields on the wire.
type jobPayload struct {
	Company     string           `json:"company"`
	Position    string           `json:"position"`
	Status      models.JobStatus `json:"status"`
	DateApplied string           `json:"date_applied"`
	Notes       string           `json:"notes"`
}

func (p jobPayload) toJob(id string) models.Job {
	date, _ := time.Parse("2006-01-02", p.DateApplied)
	return models.Job{
		ID:          id,
		Company:     p.Company,
		Position:    p.Position,
		Status:      p.Status,
		DateApplied: date,
		Notes:       p.Notes,
	}
}

// List returns every job owned by the authenticated user.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	jobs, err := h.Jobs.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	writeJSON(w, http.StatusOK, jobs)
}

// Create stores a new job and returns the entity with its assigned id.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	var p jobPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Company == "" || p.Position == "" {
		writeError(w, http.StatusBadRequest, "company and position are required")
		return
	}
	created, err := h.Jobs.Create(r.Context(), userID, p.toJob(""))
	if errors.Is(err, service.ErrInvalidStatus) {
		writeError(w, http.StatusUnprocessableEntity, "invalid status")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create job")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update replaces the editable fields of a job and returns the stored
// entity.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")
	var p jobPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	updated, err := h.Jobs.Update(r.Context(), userID, p.toJob(id))
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusUnprocessableEntity, "invalid status")
		return
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "job not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to update job")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a job.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")
	err := h.Jobs.Delete(r.Context(), userID, id)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete job")
		return
	}
	writeMessage(w, http.StatusOK, "job deleted")
}

// Apply handles the JSON apply path and returns the job in its new
// Applied state.
func (h *JobHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	jobID := chi.URLParam(r, "id")
	var req struct {
		CoverLetter string `json:"cover_letter"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if _, err := h.Applications.Apply(r.Context(), userID, jobID, req.CoverLetter, ""); err != nil {
		writeApplyError(w, err)
		return
	}
	job, err := h.Jobs.Get(r.Context(), userID, jobID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// ApplyWithDocuments handles the multipart apply path: the cover
// letter as a form field and an optional CV file part. Returns the
// created application.
func (h *JobHandler) ApplyWithDocuments(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	jobID := chi.URLParam(r, "id")
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	cvRef, err := saveUpload(r, "file", h.UploadDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store cv")
		return
	}
	app, err := h.Applications.Apply(r.Context(), userID, jobID, r.FormValue("cover_letter"), cvRef)
	if err != nil {
		writeApplyError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func writeApplyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "job not found")
	case errors.Is(err, service.ErrJobNotOpen):
		writeError(w, http.StatusUnprocessableEntity, "job is not open")
	case errors.Is(err, service.ErrAlreadyApplied):
		writeError(w, http.StatusConflict, "already applied to this job")
	default:
		writeError(w, http.StatusInternalServerError, "failed to apply")
	}
}
