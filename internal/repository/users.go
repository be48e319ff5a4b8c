// Package repository provides PostgreSQL persistence for users, jobs,
// applications and notifications.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkravets/jobtrack/internal/models"
)

// ErrNoRows is returned when a lookup matches nothing.
var ErrNoRows = errors.New("no rows")

// PostgresUserRepository implements account and profile persistence.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a repository over the given *sql.DB.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// CreateUser inserts a new unverified account with its verification token.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, u models.User, verifyToken string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, is_admin, verified, verify_token)
		VALUES ($1, $2, $3, $4, false, $5)
	`, u.ID, u.Email, u.PasswordHash, u.IsAdmin, verifyToken)
	if err != nil {
		return fmt.Errorf("CreateUser: %w", err)
	}
	return nil
}

// GetUserByEmail fetches an account by login email.
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, password_hash, is_admin, verified FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.Verified)
	if err == sql.ErrNoRows {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return &u, nil
}

// VerifyUser marks the account holding verifyToken as verified and
// clears the token. Returns ErrNoRows for an unknown token.
func (r *PostgresUserRepository) VerifyUser(ctx context.Context, verifyToken string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET verified = true, verify_token = NULL WHERE verify_token = $1
	`, verifyToken)
	if err != nil {
		return fmt.Errorf("VerifyUser: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNoRows
	}
	return nil
}

// SetResetToken stores a password-reset token for the account.
// Returns ErrNoRows for an unknown email.
func (r *PostgresUserRepository) SetResetToken(ctx context.Context, email, resetToken string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET reset_token = $1 WHERE email = $2
	`, resetToken, email)
	if err != nil {
		return fmt.Errorf("SetResetToken: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNoRows
	}
	return nil
}

// ResetPassword replaces the password hash for the account holding
// resetToken and consumes the token.
func (r *PostgresUserRepository) ResetPassword(ctx context.Context, resetToken string, hash []byte) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET password_hash = $1, reset_token = NULL WHERE reset_token = $2
	`, hash, resetToken)
	if err != nil {
		return fmt.Errorf("ResetPassword: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNoRows
	}
	return nil
}

// GetProfile fetches the profile for a user. A user without a profile
// row gets a zero profile with their login email filled in.
func (r *PostgresUserRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	var skills string
	err := r.DB.QueryRowContext(ctx, `
		SELECT p.name, u.email, p.phone, p.bio, p.location, p.age,
		       p.education_level, p.education_grade, p.experience,
		       p.skills, p.profile_picture, p.cv
		  FROM profiles p JOIN users u ON u.id = p.user_id
		 WHERE p.user_id = $1
	`, userID).Scan(&p.Name, &p.Email, &p.Phone, &p.Bio, &p.Location, &p.Age,
		&p.EducationLevel, &p.EducationGrade, &p.Experience,
		&skills, &p.ProfilePicture, &p.CV)
	if err == sql.ErrNoRows {
		var email string
		if err := r.DB.QueryRowContext(ctx,
			`SELECT email FROM users WHERE id = $1`, userID).Scan(&email); err != nil {
			return nil, ErrNoRows
		}
		return &models.Profile{Email: email}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetProfile: %w", err)
	}
	p.Skills = models.SplitSkills(skills)
	return &p, nil
}

// UpsertProfile replaces the profile row wholesale. Empty picture or
// CV references keep the stored value, everything else overwrites.
func (r *PostgresUserRepository) UpsertProfile(ctx context.Context, userID string, p models.Profile) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO profiles (user_id, name, phone, bio, location, age,
		                      education_level, education_grade, experience,
		                      skills, profile_picture, cv)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			bio = EXCLUDED.bio,
			location = EXCLUDED.location,
			age = EXCLUDED.age,
			education_level = EXCLUDED.education_level,
			education_grade = EXCLUDED.education_grade,
			experience = EXCLUDED.experience,
			skills = EXCLUDED.skills,
			profile_picture = CASE WHEN EXCLUDED.profile_picture = '' THEN profiles.profile_picture ELSE EXCLUDED.profile_picture END,
			cv = CASE WHEN EXCLUDED.cv = '' THEN profiles.cv ELSE EXCLUDED.cv END
	`, userID, p.Name, p.Phone, p.Bio, p.Location, p.Age,
		p.EducationLevel, p.EducationGrade, p.Experience,
		models.JoinSkills(p.Skills), p.ProfilePicture, p.CV)
	if err != nil {
		return fmt.Errorf("UpsertProfile: %w", err)
	}
	return nil
}
