package config

import "time"

// Application constants
const (
	// Application Info
	AppName    = "kpicast"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. KPI_SERVER_PORT
	EnvPrefix = "KPI"

	// ConfigFileEnv names an explicit YAML config file
	ConfigFileEnv = "KPI_CONFIG_FILE"

	// Server defaults
	DefaultPort            = 8000
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1 << 20 // 1MB
	DefaultMaxBodyBytes    = 4 << 20 // 4MB

	// Logging defaults
	DefaultLogFile = "logs/kpicast.log"
)

// Telemetry exporters
const (
	ExporterNone       = "none"
	ExporterStdout     = "stdout"
	ExporterPrometheus = "prometheus"
)
