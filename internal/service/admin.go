package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkravets/jobtrack/internal/models"
	"github.com/mkravets/jobtrack/internal/repository"
)

// AdminService implements the admin review surface: filtered listings,
// summary statistics and single or batch status changes. Every status
// change notifies the affected applicant.
type AdminService struct {
	apps  ApplicationRepository
	notes NotificationRepository
}

// NewAdminService constructs an AdminService over the given repositories.
func NewAdminService(apps ApplicationRepository, notes NotificationRepository) *AdminService {
	return &AdminService{apps: apps, notes: notes}
}

// List returns the applications matching the filter.
func (s *AdminService) List(ctx context.Context, f repository.ApplicationFilter) ([]models.Application, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.apps.ListApplications(ctx, f)
}

// Stats returns the application summary.
func (s *AdminService) Stats(ctx context.Context) (models.AdminStats, error) {
	return s.apps.GetStats(ctx)
}

// UpdateStatus moves one application to status and notifies its owner.
func (s *AdminService) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	owner, err := s.apps.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.notify(ctx, owner, status)
}

// BatchUpdateStatus moves every listed application to status in one
// statement and notifies each affected owner. An empty id list is a
// no-op. Returns the number of rows changed.
func (s *AdminService) BatchUpdateStatus(ctx context.Context, ids []string, status models.ApplicationStatus) (int, error) {
	if !status.Valid() {
		return 0, ErrInvalidStatus
	}
	if len(ids) == 0 {
		return 0, nil
	}
	owners, err := s.apps.UpdateStatusBatch(ctx, ids, status)
	if err != nil {
		return 0, err
	}
	for _, owner := range owners {
		if err := s.notify(ctx, owner, status); err != nil {
			return len(owners), err
		}
	}
	return len(owners), nil
}

func (s *AdminService) notify(ctx context.Context, userID string, status models.ApplicationStatus) error {
	n := models.Notification{
		ID:        uuid.NewString(),
		Message:   fmt.Sprintf("Your application status changed to %s", status),
		CreatedAt: time.Now().UTC(),
	}
	return s.notes.Create(ctx, userID, n)
}
