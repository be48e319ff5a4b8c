package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkravets/jobtrack/internal/models"
)

// PostgresNotificationRepository implements notification persistence.
type PostgresNotificationRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresNotificationRepository creates a repository over the given *sql.DB.
func NewPostgresNotificationRepository(db *sql.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{DB: db}
}

// ListByUser fetches all notifications for userID, newest first.
func (r *PostgresNotificationRepository) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, message, read, created_at
		  FROM notifications WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: %w", err)
	}
	defer rows.Close()

	var notes []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Create inserts a notification for userID.
func (r *PostgresNotificationRepository) Create(ctx context.Context, userID string, n models.Notification) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, message, read, created_at)
		VALUES ($1, $2, $3, false, $4)
	`, n.ID, userID, n.Message, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// MarkRead flips the read flag of a notification owned by userID.
// The flip is one-way; rows already read are matched too so repeated
// marks stay idempotent.
func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE notifications SET read = true WHERE user_id = $1 AND id = $2
	`, userID, id)
	if err != nil {
		return fmt.Errorf("MarkRead: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNoRows
	}
	return nil
}
