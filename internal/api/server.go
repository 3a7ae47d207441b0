package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octofit/dashboard/internal/config"
	"github.com/octofit/dashboard/internal/health"
	"github.com/octofit/dashboard/internal/loader"
	"github.com/octofit/dashboard/internal/models"
	"github.com/octofit/dashboard/internal/resource"
	"github.com/octofit/dashboard/internal/view"
)

// WarningSource lists recorded payload warnings, newest first
type WarningSource interface {
	Recent(ctx context.Context, limit int) ([]models.Warning, error)
}

// Server represents the dashboard HTTP server
type Server struct {
	config   config.ServerConfig
	router   *chi.Mux
	registry *resource.Registry
	fetcher  loader.Fetcher
	observer loader.Observer
	warnings WarningSource
	checks   *health.Registry
}

// NewServer creates a new dashboard server
func NewServer(
	cfg config.ServerConfig,
	registry *resource.Registry,
	fetcher loader.Fetcher,
	observer loader.Observer,
	warnings WarningSource,
	checks *health.Registry,
) *Server {
	if checks == nil {
		checks = health.NewRegistry()
	}
	s := &Server{
		config:   cfg,
		registry: registry,
		fetcher:  fetcher,
		observer: observer,
		warnings: warnings,
		checks:   checks,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// The live socket stays open for the whole load, so it is kept out of the timeout group
	r.With(s.resolveResource).Get("/ws/{resource}", s.handleLiveView)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/health", s.handleHealth)
		r.Get("/ready", s.handleReady)
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/resources", s.handleListResources)
			r.Get("/diagnostics", s.handleListWarnings)
			r.With(s.resolveResource).Get("/views/{resource}", s.handleViewSnapshot)
		})

		// Pages
		r.Get("/", s.handleLanding)
		r.Route("/{resource}", func(r chi.Router) {
			r.Use(s.resolveResource)
			r.Get("/", s.handleResourcePage)
			r.Get("/fragment", s.handleFragment)
		})
	})

	s.router = r
}

// newView creates a fresh view wired to the shared fetcher and observer
func (s *Server) newView(p resource.Presenter, opts ...view.Option) *view.View {
	opts = append([]view.Option{view.WithObserver(s.observer)}, opts...)
	return view.New(p, s.fetcher, opts...)
}

func (s *Server) nav() []resource.Meta {
	presenters := s.registry.All()
	metas := make([]resource.Meta, 0, len(presenters))
	for _, p := range presenters {
		metas = append(metas, p.Describe())
	}
	return metas
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
