package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mkravets/jobtrack/internal/models"
	"github.com/mkravets/jobtrack/internal/repository"
)

// ErrInvalidStatus is returned when a status value is not recognised.
var ErrInvalidStatus = errors.New("invalid status")

// JobRepository defines the persistence operations required by the
// job service.
type JobRepository interface {
	GetJobsByUser(ctx context.Context, userID string) ([]models.Job, error)
	GetJobByID(ctx context.Context, userID, id string) (*models.Job, error)
	CreateJob(ctx context.Context, userID string, j models.Job) error
	UpdateJob(ctx context.Context, userID string, j models.Job) error
	SetJobStatus(ctx context.Context, userID, id string, status models.JobStatus) error
	DeleteJob(ctx context.Context, userID, id string) error
}

// JobService implements job CRUD scoped to the owning user.
type JobService struct {
	repo JobRepository
}

// NewJobService constructs a JobService over the given repository.
func NewJobService(repo JobRepository) *JobService {
	return &JobService{repo: repo}
}

// Get returns one job owned by userID.
func (s *JobService) Get(ctx context.Context, userID, id string) (*models.Job, error) {
	j, err := s.repo.GetJobByID(ctx, userID, id)
	if errors.Is(err, repository.ErrNoRows) {
		return nil, ErrNotFound
	}
	return j, err
}

// List returns every job owned by userID.
func (s *JobService) List(ctx context.Context, userID string) ([]models.Job, error) {
	return s.repo.GetJobsByUser(ctx, userID)
}

// Create stores a new job and returns it with its assigned id. An
// empty status defaults to Open.
func (s *JobService) Create(ctx context.Context, userID string, j models.Job) (*models.Job, error) {
	if j.Status == "" {
		j.Status = models.JobOpen
	}
	if !j.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	j.ID = uuid.NewString()
	if err := s.repo.CreateJob(ctx, userID, j); err != nil {
		return nil, err
	}
	return &j, nil
}

// Update replaces the editable fields of a job owned by userID and
// returns the stored result.
func (s *JobService) Update(ctx context.Context, userID string, j models.Job) (*models.Job, error) {
	if !j.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	err := s.repo.UpdateJob(ctx, userID, j)
	if errors.Is(err, repository.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Delete removes a job owned by userID.
func (s *JobService) Delete(ctx context.Context, userID, id string) error {
	err := s.repo.DeleteJob(ctx, userID, id)
	if errors.Is(err, repository.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
