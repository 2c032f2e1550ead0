package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/GoArmGo/UserRegistry/internal/metrics"
)

// RouterOptions задает настройки middleware роутера.
type RouterOptions struct {
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
}

// NewRouter собирает chi-роутер со всеми маршрутами сервиса.
func NewRouter(h *UserHandler, m *metrics.Metrics, opts RouterOptions, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	if m != nil {
		r.Use(CountRequests(m))
	}
	r.Use(Recoverer(logger))
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Get("/users", h.ListUsers)
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	return r
}
