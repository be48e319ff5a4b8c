// Package service implements the business logic of jobtrack,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkravets/jobtrack/internal/models"
	"github.com/mkravets/jobtrack/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when the email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotVerified is returned on login before the email is verified.
	ErrNotVerified = errors.New("account not verified")
	// ErrNotFound is returned when the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	CreateUser(ctx context.Context, u models.User, verifyToken string) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyUser(ctx context.Context, verifyToken string) error
	SetResetToken(ctx context.Context, email, resetToken string) error
	ResetPassword(ctx context.Context, resetToken string, hash []byte) error
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, userID string, p models.Profile) error
}

// TokenIssuer mints access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, email string, isAdmin bool) (string, error)
}

// Mailer delivers verification and password-reset tokens out of band.
type Mailer interface {
	SendVerification(email, token string) error
	SendPasswordReset(email, token string) error
}

// AuthService implements registration, login, email verification,
// password reset and profile management.
type AuthService struct {
	repo   UserRepository
	tokens TokenIssuer
	mailer Mailer
}

// NewAuthService constructs an AuthService over the given repository,
// token issuer and mailer.
func NewAuthService(repo UserRepository, tokens TokenIssuer, mailer Mailer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, mailer: mailer}
}

// Register creates an unverified account, seeds the profile with the
// given name and sends the verification token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}
	verifyToken := uuid.NewString()
	if err := s.repo.CreateUser(ctx, u, verifyToken); err != nil {
		return err
	}
	if name != "" {
		if err := s.repo.UpsertProfile(ctx, u.ID, models.Profile{Name: name}); err != nil {
			return err
		}
	}
	return s.mailer.SendVerification(email, verifyToken)
}

// Login checks the credentials and returns a signed token plus the
// account's admin flag.
func (s *AuthService) Login(ctx context.Context, email, password string) (token string, isAdmin bool, err error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNoRows) {
		return "", false, ErrInvalidCredentials
	}
	if err != nil {
		return "", false, err
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return "", false, ErrInvalidCredentials
	}
	if !u.Verified {
		return "", false, ErrNotVerified
	}
	token, err = s.tokens.Issue(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return "", false, err
	}
	return token, u.IsAdmin, nil
}

// Verify consumes a verification token and activates the account.
func (s *AuthService) Verify(ctx context.Context, verifyToken string) error {
	err := s.repo.VerifyUser(ctx, verifyToken)
	if errors.Is(err, repository.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// ForgotPassword issues a reset token for the account and mails it.
// An unknown email is reported as ErrNotFound.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	resetToken := uuid.NewString()
	err := s.repo.SetResetToken(ctx, email, resetToken)
	if errors.Is(err, repository.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(email, resetToken)
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	err = s.repo.ResetPassword(ctx, resetToken, hash)
	if errors.Is(err, repository.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Profile fetches the profile of the authenticated user.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if errors.Is(err, repository.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// UpdateProfile replaces the profile wholesale and returns the stored
// result.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, p models.Profile) (*models.Profile, error) {
	if err := s.repo.UpsertProfile(ctx, userID, p); err != nil {
		return nil, err
	}
	return s.repo.GetProfile(ctx, userID)
}
