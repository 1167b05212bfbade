package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/forum-api/internal/config"
	"github.com/phrazzld/forum-api/internal/platform/postgres"
	"github.com/phrazzld/forum-api/internal/service"
	"github.com/phrazzld/forum-api/internal/service/auth"
	"github.com/phrazzld/forum-api/internal/store"
)

// application holds the shared application dependencies so wiring happens
// in one place and cleanup runs in one place on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore   store.UserStore
	courseStore store.CourseStore
	topicStore  store.TopicStore
	replyStore  store.ReplyStore

	// Services
	jwtService    auth.JWTService
	hasher        auth.PasswordHasher
	authenticator *auth.Authenticator
	userService   service.UserService
	topicService  service.TopicService
	replyService  service.ReplyService
	courseService service.CourseService
}

// newApplication creates an application instance with all dependencies
// initialized. Configuration, logging and the database connection must
// already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.hasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.courseStore = postgres.NewPostgresCourseStore(db, logger)
	app.topicStore = postgres.NewPostgresTopicStore(db, logger)
	app.replyStore = postgres.NewPostgresReplyStore(db, logger)

	app.authenticator = auth.NewAuthenticator(app.userStore, app.hasher, app.jwtService)

	app.userService, err = service.NewUserService(app.userStore, app.hasher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.topicService, err = service.NewTopicService(app.topicStore, app.courseStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create topic service: %w", err)
	}

	app.replyService, err = service.NewReplyService(db, app.replyStore, app.topicStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create reply service: %w", err)
	}

	app.courseService, err = service.NewCourseService(app.courseStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create course service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources during shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
