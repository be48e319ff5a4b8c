package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkravets/jobtrack/internal/models"
)

// PostgresJobRepository implements job persistence scoped to the
// owning user.
type PostgresJobRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresJobRepository creates a repository over the given *sql.DB.
func NewPostgresJobRepository(db *sql.DB) *PostgresJobRepository {
	return &PostgresJobRepository{DB: db}
}

// GetJobsByUser fetches all jobs owned by userID.
func (r *PostgresJobRepository) GetJobsByUser(ctx context.Context, userID string) ([]models.Job, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, company, position, status, date_applied, notes
		  FROM jobs WHERE user_id = $1 ORDER BY date_applied DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("GetJobsByUser: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(&j.ID, &j.Company, &j.Position, &j.Status, &j.DateApplied, &j.Notes); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// GetJobByID fetches one job owned by userID.
func (r *PostgresJobRepository) GetJobByID(ctx context.Context, userID, id string) (*models.Job, error) {
	var j models.Job
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, company, position, status, date_applied, notes
		  FROM jobs WHERE user_id = $1 AND id = $2
	`, userID, id).Scan(&j.ID, &j.Company, &j.Position, &j.Status, &j.DateApplied, &j.Notes)
	if err == sql.ErrNoRows {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("GetJobByID: %w", err)
	}
	return &j, nil
}

// CreateJob inserts a job for userID.
func (r *PostgresJobRepository) CreateJob(ctx context.Context, userID string, j models.Job) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO jobs (id, user_id, company, position, status, date_applied, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, j.ID, userID, j.Company, j.Position, j.Status, j.DateApplied, j.Notes)
	if err != nil {
		return fmt.Errorf("CreateJob: %w", err)
	}
	return nil
}

// UpdateJob replaces the editable fields of a job owned by userID.
func (r *PostgresJobRepository) UpdateJob(ctx context.Context, userID string, j models.Job) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE jobs SET company = $1, position = $2, status = $3, date_applied = $4, notes = $5
		 WHERE user_id = $6 AND id = $7
	`, j.Company, j.Position, j.Status, j.DateApplied, j.Notes, userID, j.ID)
	if err != nil {
		return fmt.Errorf("UpdateJob: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNoRows
	}
	return nil
}

// SetJobStatus updates only the status of a job owned by userID.
func (r *PostgresJobRepository) SetJobStatus(ctx context.Context, userID, id string, status models.JobStatus) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE jobs SET status = $1 WHERE user_id = $2 AND id = $3
	`, status, userID, id)
	if err != nil {
		return fmt.Errorf("SetJobStatus: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNoRows
	}
	return nil
}

// DeleteJob removes a job owned by userID.
func (r *PostgresJobRepository) DeleteJob(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM jobs WHERE user_id = $1 AND id = $2
	`, userID, id)
	if err != nil {
		return fmt.Errorf("DeleteJob: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNoRows
	}
	return nil
}
