// Package app wires the KPI forecast service together and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, an optional YAML file and KPI_* variables
//	2. Initialize logging and OpenTelemetry
//	3. Create the forecast, export and health services
//	4. Set up HTTP handlers and middleware
//	5. Configure the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// # Graceful Shutdown
//
// Run returns after SIGINT, SIGTERM or cancellation of its context. In-flight
// requests are drained within the configured shutdown timeout and telemetry
// providers are flushed. The package never calls os.Exit.
package app
