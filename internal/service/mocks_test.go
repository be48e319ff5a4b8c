package service

import (
	"context"

	"github.com/mkravets/jobtrack/internal/models"
	"github.com/mkravets/jobtrack/internal/repository"
)

type mockUserRepo struct {
	CreateUserFunc    func(ctx context.Context, u models.User, verifyToken string) error
	GetUserByEmailFn  func(ctx context.Context, email string) (*models.User, error)
	VerifyUserFunc    func(ctx context.Context, verifyToken string) error
	SetResetTokenFn   func(ctx context.Context, email, resetToken string) error
	ResetPasswordFn   func(ctx context.Context, resetToken string, hash []byte) error
	GetProfileFunc    func(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfileFunc func(ctx context.Context, userID string, p models.Profile) error
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u models.User, verifyToken string) error {
	return m.CreateUserFunc(ctx, u, verifyToken)
}
func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetUserByEmailFn(ctx, email)
}
func (m *mockUserRepo) VerifyUser(ctx context.Context, verifyToken string) error {
	return m.VerifyUserFunc(ctx, verifyToken)
}
func (m *mockUserRepo) SetResetToken(ctx context.Context, email, resetToken string) error {
	return m.SetResetTokenFn(ctx, email, resetToken)
}
func (m *mockUserRepo) ResetPassword(ctx context.Context, resetToken string, hash []byte) error {
	return m.ResetPasswordFn(ctx, resetToken, hash)
}
func (m *mockUserRepo) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return m.GetProfileFunc(ctx, userID)
}
func (m *mockUserRepo) UpsertProfile(ctx context.Context, userID string, p models.Profile) error {
	return m.UpsertProfileFunc(ctx, userID, p)
}

type mockJobRepo struct {
	GetJobsByUserFunc func(ctx context.Context, userID string) ([]models.Job, error)
	GetJobByIDFunc    func(ctx context.Context, userID, id string) (*models.Job, error)
	CreateJobFunc     func(ctx context.Context, userID string, j models.Job) error
	UpdateJobFunc     func(ctx context.Context, userID string, j models.Job) error
	SetJobStatusFunc  func(ctx context.Context, userID, id string, status models.JobStatus) error
	DeleteJobFunc     func(ctx context.Context, userID, id string) error
}

func (m *mockJobRepo) GetJobsByUser(ctx context.Context, userID string) ([]models.Job, error) {
	return m.GetJobsByUserFunc(ctx, userID)
}
func (m *mockJobRepo) GetJobByID(ctx context.Context, userID, id string) (*models.Job, error) {
	return m.GetJobByIDFunc(ctx, userID, id)
}
func (m *mockJobRepo) CreateJob(ctx context.Context, userID string, j models.Job) error {
	return m.CreateJobFunc(ctx, userID, j)
}
func (m *mockJobRepo) UpdateJob(ctx context.Context, userID string, j models.Job) error {
	return m.UpdateJobFunc(ctx, userID, j)
}
func (m *mockJobRepo) SetJobStatus(ctx context.Context, userID, id string, status models.JobStatus) error {
	return m.SetJobStatusFunc(ctx, userID, id, status)
}
func (m *mockJobRepo) DeleteJob(ctx context.Context, userID, id string) error {
	return m.DeleteJobFunc(ctx, userID, id)
}

type mockAppRepo struct {
	CreateApplicationFn func(ctx context.Context, userID string, a models.Application) error
	HasAppliedFunc      func(ctx context.Context, userID, jobID string) (bool, error)
	ListApplicationsFn  func(ctx context.Context, f repository.ApplicationFilter) ([]models.Application, error)
	UpdateStatusFunc    func(ctx context.Context, id string, status models.ApplicationStatus) (string, error)
	UpdateStatusBatchFn func(ctx context.Context, ids []string, status models.ApplicationStatus) ([]string, error)
	GetStatsFunc        func(ctx context.Context) (models.AdminStats, error)
}

func (m *mockAppRepo) CreateApplication(ctx context.Context, userID string, a models.Application) error {
	return m.CreateApplicationFn(ctx, userID, a)
}
func (m *mockAppRepo) HasApplied(ctx context.Context, userID, jobID string) (bool, error) {
	return m.HasAppliedFunc(ctx, userID, jobID)
}
func (m *mockAppRepo) ListApplications(ctx context.Context, f repository.ApplicationFilter) ([]models.Application, error) {
	return m.ListApplicationsFn(ctx, f)
}
func (m *mockAppRepo) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (string, error) {
	return m.UpdateStatusFunc(ctx, id, status)
}
func (m *mockAppRepo) UpdateStatusBatch(ctx context.Context, ids []string, status models.ApplicationStatus) ([]string, error) {
	return m.UpdateStatusBatchFn(ctx, ids, status)
}
func (m *mockAppRepo) GetStats(ctx context.Context) (models.AdminStats, error) {
	return m.GetStatsFunc(ctx)
}

type mockNoteRepo struct {
	ListByUserFunc func(ctx context.Context, userID string) ([]models.Notification, error)
	CreateFunc     func(ctx context.Context, userID string, n models.Notification) error
	MarkReadFunc   func(ctx context.Context, userID, id string) error
}

func (m *mockNoteRepo) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return m.ListByUserFunc(ctx, userID)
}
func (m *mockNoteRepo) Create(ctx context.Context, userID string, n models.Notification) error {
	return m.CreateFunc(ctx, userID, n)
}
func (m *mockNoteRepo) MarkRead(ctx context.Context, userID, id string) error {
	return m.MarkReadFunc(ctx, userID, id)
}

type mockMailer struct {
	SendVerificationFunc  func(email, token string) error
	SendPasswordResetFunc func(email, token string) error
}

func (m *mockMailer) SendVerification(email, token string) error {
	return m.SendVerificationFunc(email, token)
}
func (m *mockMailer) SendPasswordReset(email, token string) error {
	return m.SendPasswordResetFunc(email, token)
}

type mockIssuer struct {
	IssueFunc func(userID, email string, isAdmin bool) (string, error)
}

func (m *mockIssuer) Issue(userID, email string, isAdmin bool) (string, error) {
	return m.IssueFunc(userID, email, isAdmin)
}
