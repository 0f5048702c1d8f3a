// Package requestid attaches a correlation ID to every request.
//
// Middleware reuses a well-formed incoming X-Request-ID header or generates a
// UUIDv4, stores the ID in the request context and echoes it in the response.
// LoggerExtractor plugs the ID into loggers built by pkg/logger:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware())
//
// Malformed client IDs are replaced silently; the package returns no errors.
package requestid
