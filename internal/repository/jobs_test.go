package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mkravets/jobtrack/internal/models"
)

func setupJobMock(t *testing.T) (*PostgresJobRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresJobRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestGetJobsByUser(t *testing.T) {
	repo, mock, cleanup := setupJobMock(t)
	defer cleanup()

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM jobs WHERE user_id = \\$1").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "company", "position", "status", "date_applied", "notes"}).
			AddRow("j1", "Initech", "Go Developer", "Open", date, "").
			AddRow("j2", "Globex", "SRE", "Applied", date, "phone screen done"))

	jobs, err := repo.GetJobsByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 || jobs[0].Company != "Initech" || jobs[1].Status != models.JobApplied {
		t.Errorf("jobs = %+v", jobs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSetJobStatus_UnknownJob(t *testing.T) {
	repo, mock, cleanup := setupJobMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE jobs SET status = $1 WHERE user_id = $2 AND id = $3`)).
		WithArgs(models.JobApplied, "u1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetJobStatus(context.Background(), "u1", "missing", models.JobApplied)
	if !errors.Is(err, ErrNoRows) {
		t.Fatalf("error = %v; want ErrNoRows", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDeleteJob_ScopedToOwner(t *testing.T) {
	repo, mock, cleanup := setupJobMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM jobs WHERE user_id = $1 AND id = $2`)).
		WithArgs("u1", "j1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteJob(context.Background(), "u1", "j1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
