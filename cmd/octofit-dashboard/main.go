package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/octofit/dashboard/internal/api"
	"github.com/octofit/dashboard/internal/catalog"
	"github.com/octofit/dashboard/internal/config"
	"github.com/octofit/dashboard/internal/diagnostics"
	"github.com/octofit/dashboard/internal/health"
	"github.com/octofit/dashboard/internal/loader"
	"github.com/octofit/dashboard/internal/observability"
	"github.com/octofit/dashboard/internal/resource"
	"github.com/octofit/dashboard/internal/upstream"
	"github.com/octofit/dashboard/pkg/client"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting octofit-dashboard",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"api_base_url", cfg.API.BaseURL,
		"diagnostics_backend", cfg.Diagnostics.Backend,
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Load catalog overrides
	catalogLoader := catalog.NewLoader()
	if err := catalogLoader.LoadFromFile(cfg.Catalog.File); err != nil {
		slog.Error("failed to load catalog", "file", cfg.Catalog.File, "error", err)
		os.Exit(1)
	}

	registry, err := resource.Builtin().Apply(catalogLoader.Overrides())
	if err != nil {
		slog.Error("invalid catalog overrides", "file", cfg.Catalog.File, "error", err)
		os.Exit(1)
	}

	// Initialize diagnostics store
	store, err := newDiagnosticsStore(initCtx, cfg)
	if err != nil {
		slog.Error("failed to create diagnostics store", "backend", cfg.Diagnostics.Backend, "error", err)
		os.Exit(1)
	}
	recorder := diagnostics.NewRecorder(store)

	// API client shared by every view; its timeout bounds each load
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 16
	apiClient := client.NewClient(cfg.API.BaseURL, cfg.API.Token, client.WithHTTPClient(&http.Client{
		Timeout:   cfg.API.Timeout,
		Transport: transport,
	}))

	observer := loader.Observers{
		loader.NewLogObserver(logger),
		observability.NewMetricsObserver(),
		recorder,
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start upstream monitor
	monitor := upstream.NewMonitor(apiClient, cfg.Upstream.CheckInterval)
	monitor.Start(ctx)

	checks := health.NewRegistry()
	checks.Register("upstream", monitor)
	checks.Register("diagnostics", health.CheckerFunc(store.Ping))

	// Setup HTTP server
	server := api.NewServer(cfg.Server, registry, apiClient, observer, recorder, checks)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.API.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if err := store.Close(); err != nil {
		slog.Error("diagnostics store close error", "error", err)
	}

	slog.Info("octofit-dashboard stopped")
}

func newDiagnosticsStore(ctx context.Context, cfg *config.Config) (diagnostics.Store, error) {
	switch cfg.Diagnostics.Backend {
	case config.BackendRedis:
		return diagnostics.NewRedisStore(ctx, diagnostics.RedisConfig{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Capacity: cfg.Diagnostics.Capacity,
		})
	case config.BackendPostgres:
		slog.Info("connecting diagnostics database")
		return diagnostics.NewPostgresStore(ctx, diagnostics.PostgresConfig{
			DSN:      cfg.Database.DSN,
			Capacity: cfg.Diagnostics.Capacity,
		})
	default:
		return diagnostics.NewMemoryStore(cfg.Diagnostics.Capacity), nil
	}
}
