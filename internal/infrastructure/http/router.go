package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gatekit/gatekit/internal/infrastructure/http/handlers"
	"github.com/gatekit/gatekit/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler   *handlers.AuthHandler
	HealthHandler *handlers.HealthHandler
	UsersHandler  *handlers.UsersHandler
	GroupsHandler *handlers.GroupsHandler
	RolesHandler  *handlers.RolesHandler
	RequireJWT    func(http.Handler) http.Handler // JWT auth for everything except /auth and /health
	Log           zerolog.Logger
	Secure        func(http.Handler) http.Handler
	CORS          func(http.Handler) http.Handler
	IPRateLimit   func(http.Handler) http.Handler
	Metrics       bool // expose /metrics
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
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.SetHeader("Content-Type", "application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

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
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/sign-in", cfg.AuthHandler.SignIn)
	})

	r.Group(func(r chi.Router) {
		r.Use(cfg.RequireJWT)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", cfg.UsersHandler.List)
			r.Get("/{id}", cfg.UsersHandler.Get)
			r.Put("/{id}", cfg.UsersHandler.Update)
			r.Put("/{id}/status", cfg.UsersHandler.ToggleStatus)
			r.Delete("/{id}", cfg.UsersHandler.Delete)
		})

		r.Route("/user-groups", func(r chi.Router) {
			r.Get("/", cfg.GroupsHandler.List)
			r.Post("/", cfg.GroupsHandler.Create)
			r.Get("/{id}", cfg.GroupsHandler.Get)
			r.Put("/{id}", cfg.GroupsHandler.Update)
			r.Delete("/{id}", cfg.GroupsHandler.Delete)
			r.Post("/{id}/roles/{roleId}", cfg.GroupsHandler.AddRole)
			r.Delete("/{id}/roles/{roleId}", cfg.GroupsHandler.RemoveRole)
			r.Post("/{id}/users/{userId}", cfg.GroupsHandler.AddUser)
			r.Delete("/{id}/users/{userId}", cfg.GroupsHandler.RemoveUser)
		})

		r.Get("/roles", cfg.RolesHandler.List)
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
