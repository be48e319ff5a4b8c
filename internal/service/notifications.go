package service

import (
	"context"
	"errors"

	"github.com/mkravets/jobtrack/internal/models"
	"github.com/mkravets/jobtrack/internal/repository"
)

// NotificationService implements per-user notification listing and
// the one-way read flip.
type NotificationService struct {
	repo NotificationRepository
}

// NewNotificationService constructs a NotificationService over the
// given repository.
func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List returns every notification for userID, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

// MarkRead flips a notification owned by userID to read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	err := s.repo.MarkRead(ctx, userID, id)
	if errors.Is(err, repository.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
