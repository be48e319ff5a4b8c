package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/mkravets/jobtrack/internal/models"
)

// ApplicationFilter narrows the admin application listing. Zero values
// mean "no constraint".
type ApplicationFilter struct {
	Status      models.ApplicationStatus
	AgeMin      int
	AgeMax      int
	DegreeClass string
}

// PostgresApplicationRepository implements application persistence and
// the admin summary queries.
type PostgresApplicationRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresApplicationRepository creates a repository over the given *sql.DB.
func NewPostgresApplicationRepository(db *sql.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{DB: db}
}

// CreateApplication inserts a new application for userID.
func (r *PostgresApplicationRepository) CreateApplication(ctx context.Context, userID string, a models.Application) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO applications (id, job_id, user_id, name, email, age, degree_class,
		                          profile_picture, cover_letter, cv, status, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, a.ID, a.JobID, userID, a.Name, a.Email, a.Age, a.DegreeClass,
		a.ProfilePicture, a.CoverLetter, a.CV, a.Status, a.AppliedAt)
	if err != nil {
		return fmt.Errorf("CreateApplication: %w", err)
	}
	return nil
}

// HasApplied reports whether userID already applied to jobID.
func (r *PostgresApplicationRepository) HasApplied(ctx context.Context, userID, jobID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM applications WHERE user_id = $1 AND job_id = $2)
	`, userID, jobID).Scan(&exists)
	return exists, err
}

// ListApplications fetches applications matching the filter, newest first.
func (r *PostgresApplicationRepository) ListApplications(ctx context.Context, f ApplicationFilter) ([]models.Application, error) {
	query := `
		SELECT id, job_id, name, email, age, degree_class, profile_picture,
		       cover_letter, cv, status, applied_at
		  FROM applications`
	var conds []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if f.AgeMin > 0 {
		args = append(args, f.AgeMin)
		conds = append(conds, "age >= $"+strconv.Itoa(len(args)))
	}
	if f.AgeMax > 0 {
		args = append(args, f.AgeMax)
		conds = append(conds, "age <= $"+strconv.Itoa(len(args)))
	}
	if f.DegreeClass != "" {
		args = append(args, f.DegreeClass)
		conds = append(conds, "degree_class = $"+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY applied_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListApplications: %w", err)
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var a models.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.Name, &a.Email, &a.Age, &a.DegreeClass,
			&a.ProfilePicture, &a.CoverLetter, &a.CV, &a.Status, &a.AppliedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// UpdateStatus moves one application to a new status and returns the
// owning user id for notification purposes.
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (string, error) {
	var userID string
	err := r.DB.QueryRowContext(ctx, `
		UPDATE applications SET status = $1 WHERE id = $2 RETURNING user_id
	`, status, id).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", ErrNoRows
	}
	if err != nil {
		return "", fmt.Errorf("UpdateStatus: %w", err)
	}
	return userID, nil
}

// UpdateStatusBatch moves every listed application to status in one
// statement and returns the owning user ids of the rows that changed.
func (r *PostgresApplicationRepository) UpdateStatusBatch(ctx context.Context, ids []string, status models.ApplicationStatus) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		UPDATE applications SET status = $1 WHERE id = ANY($2) RETURNING user_id
	`, status, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("UpdateStatusBatch: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		userIDs = append(userIDs, uid)
	}
	return userIDs, rows.Err()
}

// GetStats computes the total application count and the status-keyed
// breakdown.
func (r *PostgresApplicationRepository) GetStats(ctx context.Context) (models.AdminStats, error) {
	stats := models.AdminStats{
		StatusBreakdown: map[models.ApplicationStatus]int{
			models.ApplicationPending:     0,
			models.ApplicationShortlisted: 0,
			models.ApplicationAccepted:    0,
			models.ApplicationRejected:    0,
		},
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM applications GROUP BY status
	`)
	if err != nil {
		return stats, fmt.Errorf("GetStats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status models.ApplicationStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return stats, fmt.Errorf("scan: %w", err)
		}
		stats.StatusBreakdown[status] = count
		stats.TotalApplications += count
	}
	return stats, rows.Err()
}
