// Package config provides centralized configuration management for the
// KPI forecast service.
//
// # Configuration Sources
//
// Configuration is layered in the following order, later layers winning:
//
//	1. Default values (Default)
//	2. YAML configuration file
//	3. Environment variables
//
// An environment variable that is not set never overrides a value from an
// earlier layer.
//
// # Environment Variables
//
// All environment variables follow the pattern KPI_<SECTION>_<KEY>:
//
//	KPI_SERVER_PORT=8000
//	KPI_SERVER_MAX_BODY_BYTES=4194304
//	KPI_LOGGING_LEVEL=debug
//	KPI_TELEMETRY_TRACE_EXPORTER=stdout
//	KPI_SECURITY_ALLOWED_ORIGINS=https://a.example,https://b.example
//
// # Configuration File
//
// The file named by KPI_CONFIG_FILE is used when set, otherwise the first
// of config.yaml and configs/config.yaml that exists:
//
//	server:
//	  port: 8000
//	  read_timeout: 15s
//	logging:
//	  level: info
//	  format: json
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
