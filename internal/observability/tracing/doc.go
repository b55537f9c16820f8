// Package tracing wires OpenTelemetry into the dashboard.
//
// Setup installs an SDK tracer provider and the W3C trace-context
// propagator. Middleware opens one server span per request, and StartSpan
// opens child spans such as the per-company news fetch. No exporter is
// configured, so spans exist only to correlate log lines through trace_id.
package tracing
