package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mkravets/jobtrack/internal/models"
	"github.com/mkravets/jobtrack/internal/repository"
)

func TestBatchUpdateStatus_EmptyIsNoop(t *testing.T) {
	apps := &mockAppRepo{
		UpdateStatusBatchFn: func(ctx context.Context, ids []string, status models.ApplicationStatus) ([]string, error) {
			t.Error("UpdateStatusBatch must not be called for an empty id list")
			return nil, nil
		},
	}
	svc := NewAdminService(apps, &mockNoteRepo{})

	n, err := svc.BatchUpdateStatus(context.Background(), nil, models.ApplicationAccepted)
	if err != nil {
		t.Fatalf("BatchUpdateStatus returned error: %v", err)
	}
	if n != 0 {
		t.Errorf("changed = %d; want 0", n)
	}
}

func TestBatchUpdateStatus_NotifiesEveryOwner(t *testing.T) {
	apps := &mockAppRepo{
		UpdateStatusBatchFn: func(ctx context.Context, ids []string, status models.ApplicationStatus) ([]string, error) {
			if len(ids) != 2 {
				t.Errorf("ids = %v; want two entries", ids)
			}
			return []string{"u1", "u2"}, nil
		},
	}
	var notified []string
	notes := &mockNoteRepo{
		CreateFunc: func(ctx context.Context, userID string, n models.Notification) error {
			notified = append(notified, userID)
			return nil
		},
	}
	svc := NewAdminService(apps, notes)

	n, err := svc.BatchUpdateStatus(context.Background(), []string{"a1", "a2"}, models.ApplicationRejected)
	if err != nil {
		t.Fatalf("BatchUpdateStatus returned error: %v", err)
	}
	if n != 2 {
		t.Errorf("changed = %d; want 2", n)
	}
	if len(notified) != 2 || notified[0] != "u1" || notified[1] != "u2" {
		t.Errorf("notified = %v; want [u1 u2]", notified)
	}
}

func TestBatchUpdateStatus_InvalidStatus(t *testing.T) {
	svc := NewAdminService(&mockAppRepo{}, &mockNoteRepo{})

	_, err := svc.BatchUpdateStatus(context.Background(), []string{"a1"}, "Archived")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("BatchUpdateStatus error = %v; want ErrInvalidStatus", err)
	}
}

func TestUpdateStatus_NotifiesOwner(t *testing.T) {
	apps := &mockAppRepo{
		UpdateStatusFunc: func(ctx context.Context, id string, status models.ApplicationStatus) (string, error) {
			return "u7", nil
		},
	}
	var notified string
	notes := &mockNoteRepo{
		CreateFunc: func(ctx context.Context, userID string, n models.Notification) error {
			notified = userID
			return nil
		},
	}
	svc := NewAdminService(apps, notes)

	if err := svc.UpdateStatus(context.Background(), "a1", models.ApplicationShortlisted); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if notified != "u7" {
		t.Errorf("notified = %q; want u7", notified)
	}
}

func TestUpdateStatus_UnknownID(t *testing.T) {
	apps := &mockAppRepo{
		UpdateStatusFunc: func(ctx context.Context, id string, status models.ApplicationStatus) (string, error) {
			return "", repository.ErrNoRows
		},
	}
	svc := NewAdminService(apps, &mockNoteRepo{})

	err := svc.UpdateStatus(context.Background(), "missing", models.ApplicationAccepted)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateStatus error = %v; want ErrNotFound", err)
	}
}

func TestList_RejectsUnknownStatusFilter(t *testing.T) {
	svc := NewAdminService(&mockAppRepo{}, &mockNoteRepo{})

	_, err := svc.List(context.Background(), repository.ApplicationFilter{Status: "Bogus"})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("List error = %v; want ErrInvalidStatus", err)
	}
}
