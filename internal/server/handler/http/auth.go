package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mkravets/jobtrack/internal/middleware"
	"github.com/mkravets/jobtrack/internal/models"
	"github.com/mkravets/jobtrack/internal/service"
)

// AuthService defines the operations required by the authentication
// and profile handlers.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (token string, isAdmin bool, err error)
	Verify(ctx context.Context, verifyToken string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	Profile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, p models.Profile) (*models.Profile, error)
}

// AuthHandler handles registration, login, account recovery and the
// profile endpoints.
type AuthHandler struct {
	// Auth performs the underlying account operations.
	Auth AuthService
	// UploadDir is where profile pictures and CVs are stored.
	UploadDir string
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an unverified account and triggers the
// verification mail.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if err := h.Auth.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	writeMessage(w, http.StatusCreated, "registered, check your email to verify the account")
}

// Login exchanges credentials for a signed token and the admin flag.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	token, isAdmin, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	case errors.Is(err, service.ErrNotVerified):
		writeError(w, http.StatusForbidden, "account not verified")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "isAdmin": isAdmin})
}

// Verify redeems the emailed verification token.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}
	err := h.Auth.Verify(r.Context(), token)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "unknown verification token")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "verification failed")
		return
	}
	writeMessage(w, http.StatusOK, "account verified")
}

// ForgotPassword issues a password-reset token. Unknown emails get the
// same response as known ones so addresses cannot be probed.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	err := h.Auth.ForgotPassword(r.Context(), req.Email)
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "reset request failed")
		return
	}
	writeMessage(w, http.StatusOK, "if the account exists, a reset email was sent")
}

// ResetPassword redeems a reset token for a new password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "token and password are required")
		return
	}
	err := h.Auth.ResetPassword(r.Context(), req.Token, req.Password)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "unknown reset token")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "password reset failed")
		return
	}
	writeMessage(w, http.StatusOK, "password updated")
}

// Profile returns the authenticated user's profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	p, err := h.Auth.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProfile replaces the profile wholesale from a multipart form.
// Every scalar field is taken from the form as sent; omitted picture
// and CV parts keep the stored files.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	age, _ := strconv.Atoi(r.FormValue("age"))
	p := models.Profile{
		Name:           r.FormValue("name"),
		Phone:          r.FormValue("phone"),
		Bio:            r.FormValue("bio"),
		Location:       r.FormValue("location"),
		Age:            age,
		EducationLevel: r.FormValue("education_level"),
		EducationGrade: r.FormValue("education_grade"),
		Experience:     r.FormValue("experience"),
		Skills:         models.SplitSkills(r.FormValue("skills")),
	}

	picture, err := saveUpload(r, "profile_picture", h.UploadDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store picture")
		return
	}
	p.ProfilePicture = picture

	cv, err := saveUpload(r, "cv", h.UploadDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store cv")
		return
	}
	p.CV = cv

	if _, err := h.Auth.UpdateProfile(r.Context(), userID, p); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	writeMessage(w, http.StatusOK, "profile updated")
}
