package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/mkravets/jobtrack/internal/models"
)

func setupAppMock(t *testing.T) (*PostgresApplicationRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresApplicationRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestUpdateStatusBatch_UsesArrayAndReturnsOwners(t *testing.T) {
	repo, mock, cleanup := setupAppMock(t)
	defer cleanup()

	ids := []string{"a1", "a2"}
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE applications SET status = $1 WHERE id = ANY($2) RETURNING user_id`)).
		WithArgs(models.ApplicationAccepted, pq.Array(ids)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1").AddRow("u2"))

	owners, err := repo.UpdateStatusBatch(context.Background(), ids, models.ApplicationAccepted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(owners) != 2 || owners[0] != "u1" || owners[1] != "u2" {
		t.Errorf("owners = %v; want [u1 u2]", owners)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdateStatusBatch_Error(t *testing.T) {
	repo, mock, cleanup := setupAppMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE applications SET status = $1 WHERE id = ANY($2) RETURNING user_id`)).
		WillReturnError(errors.New("query failed"))

	if _, err := repo.UpdateStatusBatch(context.Background(), []string{"a1"}, models.ApplicationRejected); err == nil {
		t.Error("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdateStatus_ReturnsOwner(t *testing.T) {
	repo, mock, cleanup := setupAppMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE applications SET status = $1 WHERE id = $2 RETURNING user_id`)).
		WithArgs(models.ApplicationShortlisted, "a1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u9"))

	owner, err := repo.UpdateStatus(context.Background(), "a1", models.ApplicationShortlisted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner != "u9" {
		t.Errorf("owner = %q; want u9", owner)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListApplications_AllFilters(t *testing.T) {
	repo, mock, cleanup := setupAppMock(t)
	defer cleanup()

	applied := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	cols := []string{"id", "job_id", "name", "email", "age", "degree_class",
		"profile_picture", "cover_letter", "cv", "status", "applied_at"}
	mock.ExpectQuery("SELECT (.+) FROM applications WHERE status = \\$1 AND age >= \\$2 AND age <= \\$3 AND degree_class = \\$4").
		WithArgs(models.ApplicationPending, 21, 30, "First").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("a1", "j1", "Ada", "ada@x.io", 25, "First", "", "letter", "cv.pdf", "Pending", applied))

	apps, err := repo.ListApplications(context.Background(), ApplicationFilter{
		Status: models.ApplicationPending, AgeMin: 21, AgeMax: 30, DegreeClass: "First",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(apps) != 1 || apps[0].ID != "a1" || apps[0].Status != models.ApplicationPending {
		t.Errorf("apps = %+v", apps)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListApplications_NoFilters(t *testing.T) {
	repo, mock, cleanup := setupAppMock(t)
	defer cleanup()

	cols := []string{"id", "job_id", "name", "email", "age", "degree_class",
		"profile_picture", "cover_letter", "cv", "status", "applied_at"}
	mock.ExpectQuery("SELECT (.+) FROM applications ORDER BY applied_at DESC").
		WillReturnRows(sqlmock.NewRows(cols))

	apps, err := repo.ListApplications(context.Background(), ApplicationFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(apps) != 0 {
		t.Errorf("apps = %+v; want empty", apps)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetStats(t *testing.T) {
	repo, mock, cleanup := setupAppMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status, COUNT(*) FROM applications GROUP BY status`)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("Pending", 3).
			AddRow("Accepted", 2))

	stats, err := repo.GetStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalApplications != 5 {
		t.Errorf("TotalApplications = %d; want 5", stats.TotalApplications)
	}
	if stats.StatusBreakdown[models.ApplicationPending] != 3 {
		t.Errorf("Pending = %d; want 3", stats.StatusBreakdown[models.ApplicationPending])
	}
	// Statuses with no rows stay present at zero.
	if got, ok := stats.StatusBreakdown[models.ApplicationRejected]; !ok || got != 0 {
		t.Errorf("Rejected = %d, present=%v; want 0, true", got, ok)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
