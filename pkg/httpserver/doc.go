// Package httpserver runs the router's HTTP surface with graceful shutdown.
//
// Server wraps http.Server: Run blocks until the context is cancelled or the
// server fails, then drains in-flight requests within the shutdown timeout.
// Options set the listen address, timeouts, a pre-opened listener and
// lifecycle hooks; NewFromConfig applies an env-loaded Config.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// HealthCheckHandler serves liveness ("ALIVE") and readiness ("READY") checks.
//
// Errors are wrapped with ErrStart and ErrShutdown.
package httpserver
