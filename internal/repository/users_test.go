package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupUserMock(t *testing.T) (*PostgresUserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresUserRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("ghost@x.io").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "is_admin", "verified"}))

	_, err := repo.GetUserByEmail(context.Background(), "ghost@x.io")
	if !errors.Is(err, ErrNoRows) {
		t.Fatalf("error = %v; want ErrNoRows", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestVerifyUser_ConsumesToken(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET verified = true, verify_token = NULL WHERE verify_token = $1`)).
		WithArgs("tok-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.VerifyUser(context.Background(), "tok-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetProfile_SplitsSkills(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	cols := []string{"name", "email", "phone", "bio", "location", "age",
		"education_level", "education_grade", "experience",
		"skills", "profile_picture", "cv"}
	mock.ExpectQuery("SELECT (.+) FROM profiles p JOIN users u").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("Ada", "ada@x.io", "", "", "", 25, "BSc", "First", "", "Go, SQL", "", ""))

	p, err := repo.GetProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Skills) != 2 || p.Skills[0] != "Go" || p.Skills[1] != "SQL" {
		t.Errorf("skills = %v; want [Go SQL]", p.Skills)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetProfile_NoRowFallsBackToEmail(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM profiles p JOIN users u").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT email FROM users WHERE id = $1`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("ada@x.io"))

	p, err := repo.GetProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Email != "ada@x.io" || p.Name != "" {
		t.Errorf("profile = %+v; want zero profile with email", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
