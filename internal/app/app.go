package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"kpicast/internal/config"
	apierrors "kpicast/internal/errors"
	"kpicast/internal/infrastructure"
	customMiddleware "kpicast/internal/middleware"
	"kpicast/internal/services"
	httpHandlers "kpicast/internal/transport/http"
	"kpicast/pkg/contracts"
)

// Application represents the main application
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	Router        chi.Router
	Server        *http.Server

	ForecastService *services.ForecastService
	ExportService   *services.ExportService
	HealthService   *services.HealthService

	closeLog func() error
}

// NewApplication creates a new application instance from the process
// configuration
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, closeLog, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("addr", cfg.Server.Addr()))

	app, err := NewApplicationFromConfig(cfg, logger)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	app.closeLog = closeLog

	return app, nil
}

// NewApplicationFromConfig wires an application from an already loaded
// configuration and logger
func NewApplicationFromConfig(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		closeLog:      func() error { return nil },
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	a.ForecastService = services.NewForecastService(a.Logger, a.OTelProviders.Tracer, a.Metrics)
	a.ExportService = services.NewExportService(a.ForecastService, a.Metrics, a.Logger)
	a.HealthService = services.NewHealthService(a.Logger)
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Telemetry.Environment == "development")

	// Prometheus scrapes stay out of request metrics and logs
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	r.Group(func(r chi.Router) {
		// RequestID → RealIP → OTel → Logger → Recoverer
		r.Use(customMiddleware.RequestID)
		r.Use(customMiddleware.RealIP)
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics).Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(errorHandler))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
			}))
		}

		r.Use(customMiddleware.BodyLimit(a.Config.Server.MaxBodyBytes))

		healthHandler := httpHandlers.NewHealthHandler(a.HealthService, a.Logger)
		healthHandler.RegisterRoutes(r)

		forecastHandler := httpHandlers.NewForecastHandler(
			a.ForecastService,
			a.ExportService,
			customMiddleware.NewValidator(),
			errorHandler,
			a.Metrics,
			a.Logger,
		)
		forecastHandler.RegisterRoutes(r)

		r.NotFound(errorHandler.NotFound)
		r.MethodNotAllowed(errorHandler.MethodNotAllowed)
	})

	a.Router = r
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Server.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Handler returns the root HTTP handler
func (a *Application) Handler() http.Handler {
	return a.Router
}

// Run serves HTTP until ctx is cancelled or the process receives SIGINT
// or SIGTERM, then shuts down gracefully
func (a *Application) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	return a.Serve(ctx, listener)
}

// Serve is Run on an existing listener
func (a *Application) Serve(ctx context.Context, listener net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "Server listening",
			slog.String("address", listener.Addr().String()))

		if err := a.Server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.InfoContext(context.Background(), "Shutdown signal received")
		return a.Stop(context.Background())
	})

	return g.Wait()
}

// Stop gracefully stops the server and flushes telemetry
func (a *Application) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")

	if a.closeLog != nil {
		if err := a.closeLog(); err != nil {
			errs = append(errs, fmt.Errorf("log close error: %w", err))
		}
	}

	return errors.Join(errs...)
}
