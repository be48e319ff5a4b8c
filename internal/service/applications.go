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

var (
	// ErrJobNotOpen is returned when applying to a job past the Open status.
	ErrJobNotOpen = errors.New("job is not open")
	// ErrAlreadyApplied is returned on a second application to the same job.
	ErrAlreadyApplied = errors.New("already applied")
)

// ApplicationRepository defines the persistence operations required by
// the application and admin services.
type ApplicationRepository interface {
	CreateApplication(ctx context.Context, userID string, a models.Application) error
	HasApplied(ctx context.Context, userID, jobID string) (bool, error)
	ListApplications(ctx context.Context, f repository.ApplicationFilter) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (string, error)
	UpdateStatusBatch(ctx context.Context, ids []string, status models.ApplicationStatus) ([]string, error)
	GetStats(ctx context.Context) (models.AdminStats, error)
}

// NotificationRepository defines the persistence operations required
// by the notification service and by services that emit notifications.
type NotificationRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	Create(ctx context.Context, userID string, n models.Notification) error
	MarkRead(ctx context.Context, userID, id string) error
}

// ApplicationService implements the apply flow: validating the job,
// snapshotting the applicant's profile and recording the submission.
type ApplicationService struct {
	apps  ApplicationRepository
	jobs  JobRepository
	users UserRepository
	notes NotificationRepository
}

// NewApplicationService constructs an ApplicationService over the
// given repositories.
func NewApplicationService(apps ApplicationRepository, jobs JobRepository, users UserRepository, notes NotificationRepository) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, users: users, notes: notes}
}

// Apply submits an application for userID to jobID. The job must be
// Open and not applied to before. The applicant's current profile is
// captured into the application, the job moves to Applied, and a
// confirmation notification is queued.
func (s *ApplicationService) Apply(ctx context.Context, userID, jobID, coverLetter, cvRef string) (*models.Application, error) {
	job, err := s.jobs.GetJobByID(ctx, userID, jobID)
	if errors.Is(err, repository.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobOpen {
		return nil, ErrJobNotOpen
	}

	applied, err := s.apps.HasApplied(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, ErrAlreadyApplied
	}

	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cvRef == "" {
		cvRef = profile.CV
	}

	a := models.Application{
		ID:             uuid.NewString(),
		JobID:          jobID,
		Name:           profile.Name,
		Email:          profile.Email,
		Age:            profile.Age,
		DegreeClass:    profile.EducationGrade,
		ProfilePicture: profile.ProfilePicture,
		CoverLetter:    coverLetter,
		CV:             cvRef,
		Status:         models.ApplicationPending,
		AppliedAt:      time.Now().UTC(),
	}
	if err := s.apps.CreateApplication(ctx, userID, a); err != nil {
		return nil, err
	}
	if err := s.jobs.SetJobStatus(ctx, userID, jobID, models.JobApplied); err != nil {
		return nil, err
	}

	note := models.Notification{
		ID:        uuid.NewString(),
		Message:   fmt.Sprintf("Application submitted for %s at %s", job.Position, job.Company),
		CreatedAt: a.AppliedAt,
	}
	if err := s.notes.Create(ctx, userID, note); err != nil {
		return nil, err
	}
	return &a, nil
}
