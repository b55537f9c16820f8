// Package observability groups the dashboard's logging, metrics and tracing.
//
// Subpackages:
//   - logging: slog logger construction and request-scoped loggers
//   - metrics: Prometheus collectors for HTTP, news fetches, cards and updates
//   - tracing: OpenTelemetry provider setup and HTTP span middleware
package observability
