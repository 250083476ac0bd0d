package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"kpicast/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus is the body of the basic health probe
type HealthStatus struct {
	Status string `json:"status"`
}

// LivenessStatus is the body of the liveness probe
type LivenessStatus struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Version       string    `json:"version"`
	UptimeSeconds float64   `json:"uptime"`
	GoVersion     string    `json:"go_version"`
	Goroutines    int       `json:"goroutines"`
}

// NewHealthService creates a new health service
func NewHealthService(logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &HealthService{
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthCheck reports that the process is serving requests
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "health check",
		slog.Duration("uptime", time.Since(hs.startTime)))

	return HealthStatus{Status: "ok"}
}

// LivenessCheck returns liveness status with runtime details
func (hs *HealthService) LivenessCheck(ctx context.Context) LivenessStatus {
	return LivenessStatus{
		Status:        "alive",
		Timestamp:     time.Now().UTC(),
		Version:       contracts.Version,
		UptimeSeconds: time.Since(hs.startTime).Seconds(),
		GoVersion:     runtime.Version(),
		Goroutines:    runtime.NumGoroutine(),
	}
}

// Version returns build and runtime version information
func (hs *HealthService) Version() contracts.VersionInfo {
	return contracts.GetVersionInfo()
}
