// Package main initializes and starts the jobtrack API server,
// setting up configuration, logging, the database connection,
// repositories, services and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/mkravets/jobtrack/internal/config"
	"github.com/mkravets/jobtrack/internal/db"
	"github.com/mkravets/jobtrack/internal/logger"
	"github.com/mkravets/jobtrack/internal/repository"
	"github.com/mkravets/jobtrack/internal/server/handler/http"
	"github.com/mkravets/jobtrack/internal/service"
	"github.com/mkravets/jobtrack/internal/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Read notifications older than the retention window get purged.
	db.StartReadNotificationCleaner(context.Background(), postgresDB,
		time.Hour,
		30*24*time.Hour,
		zapLogger,
	)

	userRepo := repository.NewPostgresUserRepository(postgresDB)
	jobRepo := repository.NewPostgresJobRepository(postgresDB)
	appRepo := repository.NewPostgresApplicationRepository(postgresDB)
	noteRepo := repository.NewPostgresNotificationRepository(postgresDB)

	tokens := token.NewManager(options.JWTSecret, token.DefaultTTL)
	mailer := service.NewLogMailer(zapLogger)

	authService := service.NewAuthService(userRepo, tokens, mailer)
	jobService := service.NewJobService(jobRepo)
	appService := service.NewApplicationService(appRepo, jobRepo, userRepo, noteRepo)
	noteService := service.NewNotificationService(noteRepo)
	adminService := service.NewAdminService(appRepo, noteRepo)

	const uploadDir = "uploads"
	authHandler := &http.AuthHandler{Auth: authService, UploadDir: uploadDir}
	jobHandler := &http.JobHandler{Jobs: jobService, Applications: appService, UploadDir: uploadDir}
	noteHandler := &http.NotificationHandler{Notifications: noteService}
	adminHandler := &http.AdminHandler{Admin: adminService}

	router := http.NewRouter(authHandler, jobHandler, noteHandler, adminHandler, tokens, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
