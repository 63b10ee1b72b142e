package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	apimiddleware "github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/generation"
	"github.com/taskdeck/taskdeck-api/internal/platform/gemini"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// application holds the wired dependencies for the running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	db        *sql.DB
	userStore store.UserStore
	taskStore store.TaskStore

	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher

	authService *service.AuthService
	userService *service.UserService
	taskService *service.TaskService
	summarizer  generation.Summarizer

	registry *prometheus.Registry
	metrics  *apimiddleware.RequestMetrics
}

// newApplication constructs the full dependency graph from configuration.
// Construction fails fast on a bad secret key, an unreachable database, or
// a misconfigured LLM client.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logger); err != nil {
		closeDatabase(db, logger)
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	summarizer, err := gemini.NewSummarizer(ctx, logger, cfg.LLM)
	if err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to initialize summarizer: %w", err)
	}

	userStore := postgres.NewUserStore(db, logger)
	taskStore := postgres.NewTaskStore(db, logger)
	passwordHasher := auth.NewBcryptPasswordHasher(0)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		userStore:      userStore,
		taskStore:      taskStore,
		jwtService:     jwtService,
		passwordHasher: passwordHasher,
		authService:    service.NewAuthService(userStore, passwordHasher, jwtService, logger),
		userService:    service.NewUserService(db, userStore, passwordHasher, logger),
		taskService:    service.NewTaskService(taskStore, logger),
		summarizer:     summarizer,
		registry:       registry,
		metrics:        apimiddleware.NewRequestMetrics(registry),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}
