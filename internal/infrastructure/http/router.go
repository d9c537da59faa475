package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	UsersHandler    *handlers.UsersHandler
	ProjectsHandler *handlers.ProjectsHandler
	TasksHandler    *handlers.TasksHandler
	HealthHandler   *handlers.HealthHandler
	RequireJWT      func(http.Handler) http.Handler
	Secure          func(http.Handler) http.Handler
	Log             zerolog.Logger
	Metrics         bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	r.Use(chimid.AllowContentType("application/json"))
	r.Use(chimid.SetHeader("Content-Type", "application/json"))

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/refresh", cfg.AuthHandler.Refresh)
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Post("/logout", cfg.AuthHandler.Logout)
			r.Post("/me", cfg.AuthHandler.Me)
		})
	})

	r.Route("/user", func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Post("/", cfg.UsersHandler.Create)
		r.Get("/", cfg.UsersHandler.List)
		r.Get("/{id}", cfg.UsersHandler.Get)
		r.Patch("/{id}", cfg.UsersHandler.Update)
		r.Delete("/{id}", cfg.UsersHandler.Delete)
	})

	r.Route("/project", func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Post("/", cfg.ProjectsHandler.Create)
		r.Get("/", cfg.ProjectsHandler.List)
		r.Get("/{id}", cfg.ProjectsHandler.Get)
		r.Patch("/{id}", cfg.ProjectsHandler.Update)
		r.Delete("/{id}", cfg.ProjectsHandler.Delete)
	})

	r.Route("/task", func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Post("/", cfg.TasksHandler.Create)
		r.Get("/", cfg.TasksHandler.List)
		r.Get("/{id}", cfg.TasksHandler.Get)
		r.Patch("/{id}", cfg.TasksHandler.Update)
		r.Delete("/{id}", cfg.TasksHandler.Delete)
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
