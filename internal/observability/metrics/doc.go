// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - News fetch metrics per provider
//   - Card rendering and update submission counters
//   - Update store operation metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "climate-dashboard/internal/observability/metrics"
//
//	start := time.Now()
//	items, err := source.Fetch(ctx, company)
//	metrics.RecordNewsFetch("rss", err == nil, time.Since(start))
package metrics
