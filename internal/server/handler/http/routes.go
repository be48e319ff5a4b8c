package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"

	"github.com/mkravets/jobtrack/internal/middleware"
	"github.com/mkravets/jobtrack/internal/token"
)

// NewRouter constructs the HTTP handler serving the jobtrack API.
//
// Routes:
//
//	POST /auth/register                           → AuthHandler.Register
//	POST /auth/login                              → AuthHandler.Login
//	GET  /auth/verify                             → AuthHandler.Verify
//	POST /auth/forgot-password                    → AuthHandler.ForgotPassword
//	POST /auth/reset-password                     → AuthHandler.ResetPassword
//	GET  /auth/profile                            → AuthHandler.Profile        (auth)
//	PUT  /auth/profile                            → AuthHandler.UpdateProfile  (auth)
//	GET  /api/jobs                                → JobHandler.List            (auth)
//	POST /api/jobs                                → JobHandler.Create          (auth)
//	PUT  /api/jobs/{id}                           → JobHandler.Update          (auth)
//	DELETE /api/jobs/{id}                         → JobHandler.Delete          (auth)
//	POST /api/jobs/apply/{id}                     → JobHandler.ApplyWithDocuments (auth)
//	POST /api/applications/apply/{id}             → JobHandler.Apply           (auth)
//	GET  /api/notifications                       → NotificationHandler.List   (auth)
//	PUT  /api/notifications/{id}/read             → NotificationHandler.MarkRead (auth)
//	PATCH /api/notifications/{id}/read            → NotificationHandler.MarkRead (auth)
//	GET  /api/admin/applications                  → AdminHandler.List          (admin)
//	GET  /api/admin/stats                         → AdminHandler.Stats         (admin)
//	PUT  /api/admin/applications/{id}/status      → AdminHandler.UpdateStatus  (admin)
//	POST /api/admin/applications/batch-status     → AdminHandler.BatchUpdateStatus (admin)
func NewRouter(
	authHandler *AuthHandler,
	jobHandler *JobHandler,
	noteHandler *NotificationHandler,
	adminHandler *AdminHandler,
	tokens *token.Manager,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/verify", authHandler.Verify)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/reset-password", authHandler.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(tokens))
			r.Get("/profile", authHandler.Profile)
			r.Put("/profile", authHandler.UpdateProfile)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.JWTAuth(tokens))

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", jobHandler.List)
			r.Post("/", jobHandler.Create)
			r.Put("/{id}", jobHandler.Update)
			r.Delete("/{id}", jobHandler.Delete)
			r.Post("/apply/{id}", jobHandler.ApplyWithDocuments)
		})

		r.Post("/applications/apply/{id}", jobHandler.Apply)

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", noteHandler.List)
			r.Put("/{id}/read", noteHandler.MarkRead)
			r.Patch("/{id}/read", noteHandler.MarkRead)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/applications", adminHandler.List)
			r.Get("/stats", adminHandler.Stats)
			r.Put("/applications/{id}/status", adminHandler.UpdateStatus)
			r.Post("/applications/batch-status", adminHandler.BatchUpdateStatus)
		})
	})

	return r
}
