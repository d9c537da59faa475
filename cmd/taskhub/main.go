package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/application/auth"
	"github.com/amirhosseinghanipour/taskhub/internal/application/project"
	"github.com/amirhosseinghanipour/taskhub/internal/application/task"
	"github.com/amirhosseinghanipour/taskhub/internal/application/user"
	"github.com/amirhosseinghanipour/taskhub/internal/config"
	infraauth "github.com/amirhosseinghanipour/taskhub/internal/infrastructure/auth"
	httprouter "github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/persistence/postgres"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}

	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	hasher := security.NewBcryptHasher(cfg.Bcrypt.Cost)
	issuer := infraauth.NewTokenIssuer(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	verifier := auth.NewCredentialVerifier(userRepo, hasher)
	loginUC := auth.NewLogin(verifier, issuer)
	refreshUC := auth.NewRefresh(userRepo, issuer)
	userSvc := user.NewService(userRepo, hasher)
	projectSvc := project.NewService(projectRepo)
	taskSvc := task.NewService(taskRepo)

	authHandler := handlers.NewAuthHandler(loginUC, refreshUC, log)
	usersHandler := handlers.NewUsersHandler(userSvc, log)
	projectsHandler := handlers.NewProjectsHandler(projectSvc, log)
	tasksHandler := handlers.NewTasksHandler(taskSvc, log)
	healthHandler := handlers.NewHealthHandler(pool)

	requireJWT := middleware.NewAuthValidator(issuer).Handler
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Server.IsDevelopment))

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:     authHandler,
		UsersHandler:    usersHandler,
		ProjectsHandler: projectsHandler,
		TasksHandler:    tasksHandler,
		HealthHandler:   healthHandler,
		RequireJWT:      requireJWT,
		Secure:          secureMiddleware,
		Log:             log,
		Metrics:         true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
