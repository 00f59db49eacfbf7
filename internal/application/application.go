package application

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/content-studio/internal/api"
	"github.com/eugenenazirov/content-studio/internal/assets"
	"github.com/eugenenazirov/content-studio/internal/config"
	"github.com/eugenenazirov/content-studio/internal/metrics"
	"github.com/eugenenazirov/content-studio/internal/settings"
)

// ErrNilSettings is returned by New when no settings snapshot is supplied.
var ErrNilSettings = errors.New("settings manager is required")

// App encapsulates the application dependencies and HTTP server.
type App struct {
	settings  *settings.Manager
	validator assets.Validator
	handler   *api.Handler
	router    http.Handler
	logger    *zap.Logger
	server    *http.Server
}

// New initializes the application from the runtime configuration and the
// settings snapshot built once at startup.
func New(cfg config.Config, manager *settings.Manager, logger *zap.Logger) (*App, error) {
	if manager == nil {
		return nil, ErrNilSettings
	}

	validator := assets.New(manager)
	handler := api.NewHandler(manager, validator)
	monitoring := manager.Monitoring()
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithThresholds(monitoring.Enabled, manager.PerformanceThresholds()),
	)

	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		metricsHandler = metrics.Handler()
	}

	return &App{
		settings:  manager,
		validator: validator,
		handler:   handler,
		router:    apiRouter,
		logger:    logger,
		server:    NewServer(cfg, BuildRootHandler(apiRouter, metricsHandler)),
	}, nil
}

// BuildRootHandler routes API requests and, when metricsHandler is not nil,
// serves Prometheus metrics on /metrics.
func BuildRootHandler(apiHandler, metricsHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Settings returns the settings snapshot the application was built with.
func (a *App) Settings() *settings.Manager {
	return a.settings
}
