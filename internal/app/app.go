package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/config"
	"github.com/codewatch/exam-service/internal/delivery/httpd"
	"github.com/codewatch/exam-service/internal/repository"
	"github.com/codewatch/exam-service/internal/runner"
	"github.com/codewatch/exam-service/internal/service"
	"github.com/codewatch/exam-service/internal/service/integration"
)

type App struct {
	server         *http.Server
	logger         zerolog.Logger
	config         *config.Config
	db             *sql.DB
	rabbitmqClient integration.RabbitMQClient
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	mailClient, err := integration.NewMailClient(cfg.Mail, log)
	if err != nil {
		return nil, err
	}

	rabbitmqClient, err := integration.NewRabbitMQClient(
		cfg.RabbitMQ.URL,
		cfg.RabbitMQ.Exchange,
		cfg.RabbitMQ.RoutingKey,
		cfg.RabbitMQ.QueueName,
		log,
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create RabbitMQ client")
		// Submissions still persist without the broker; fan-out resumes on restart.
		rabbitmqClient = nil
	}

	userRepo := repository.NewUserRepository(db, cfg.Database, log)
	examRepo := repository.NewExamRepository(db, cfg.Database, log)
	questionRepo := repository.NewQuestionRepository(db, cfg.Database, log)
	submissionRepo := repository.NewSubmissionRepository(db, cfg.Database, log)
	eventRepo := repository.NewEventRepository(db, cfg.Database, log)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.Auth.JWTSecret), nil)

	authService := service.NewAuthService(userRepo, tokenAuth, cfg.Auth, log)
	tokenService := service.NewTokenService(userRepo, mailClient, cfg.Auth, log)
	examService := service.NewExamService(examRepo, submissionRepo, log)
	questionService := service.NewQuestionService(questionRepo, log)
	submissionService := service.NewSubmissionService(submissionRepo, rabbitmqClient, log)
	eventService := service.NewEventService(eventRepo, log)
	userService := service.NewUserService(userRepo, cfg.Auth, log)

	codeRunner := runner.New(cfg.Runner, log)

	handler := httpd.NewHandler(
		authService,
		tokenService,
		examService,
		questionService,
		submissionService,
		eventService,
		userService,
		codeRunner,
		tokenAuth,
		log,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:         server,
		logger:         log,
		config:         cfg,
		db:             db,
		rabbitmqClient: rabbitmqClient,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting exam service on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down exam service...")

	if a.rabbitmqClient != nil {
		if err := a.rabbitmqClient.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	return a.server.Shutdown(ctx)
}
