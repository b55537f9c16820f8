// Package http provides the dashboard's HTTP handlers and middleware:
// health checks, Prometheus metrics, request logging and panic recovery.
// Feature handlers live in sub-packages.
package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"climate-dashboard/internal/repository"
	"climate-dashboard/internal/usecase/notify"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"` // "healthy", "degraded" or "unhealthy"
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ChannelHealthReporter exposes notification channel state.
type ChannelHealthReporter interface {
	ChannelHealth() []notify.ChannelHealthStatus
}

// HealthHandler reports whether the update store can be read.
// DB is set only for the postgres store and adds pool statistics.
type HealthHandler struct {
	Store         repository.UpdateRepository
	StoreDriver   string
	DB            *sql.DB
	Notifications ChannelHealthReporter
	Version       string
}

// ServeHTTP returns 200 when every check passes and 503 otherwise.
// Notification channels are informational and never fail the check.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	allHealthy := true

	storeCheck := checkStore(ctx, h.Store, h.StoreDriver)
	checks["update_store"] = storeCheck
	if storeCheck.Status == "unhealthy" {
		allHealthy = false
	}

	if h.DB != nil {
		dbCheck := h.checkDatabase(ctx)
		checks["database"] = dbCheck
		if dbCheck.Status == "unhealthy" {
			allHealthy = false
		}
	}

	if h.Notifications != nil {
		checks["notifications"] = checkNotifications(h.Notifications)
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("health: failed to encode response", slog.Any("error", err))
	}
}

// checkStore loads the whole update store; a corrupt file is unhealthy.
func checkStore(ctx context.Context, store repository.UpdateRepository, driver string) CheckStatus {
	if store == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}

	updates, err := store.Load(ctx)
	if err != nil {
		return CheckStatus{
			Status:  "unhealthy",
			Message: "update store unreadable",
			Details: map[string]interface{}{"driver": driver},
		}
	}

	total := 0
	for _, list := range updates {
		total += len(list)
	}
	return CheckStatus{
		Status: "healthy",
		Details: map[string]interface{}{
			"driver":    driver,
			"companies": len(updates),
			"updates":   total,
		},
	}
}

// checkDatabase checks database connectivity and returns connection pool statistics.
func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{
			Status:  "unhealthy",
			Message: "database ping failed",
		}
	}

	stats := h.DB.Stats()
	details := map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
	}

	// MaxOpenConnections == 0 は無制限
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool max connections not configured",
			Details: details,
		}
	}

	utilizationPercent := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilizationPercent
	if utilizationPercent >= 80.0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}

	return CheckStatus{Status: "healthy", Details: details}
}

func checkNotifications(r ChannelHealthReporter) CheckStatus {
	channels := r.ChannelHealth()
	status := "healthy"
	details := make(map[string]interface{}, len(channels))
	for _, ch := range channels {
		details[ch.Name] = ch
		if ch.Enabled && ch.CircuitBreakerOpen {
			status = "degraded"
		}
	}
	return CheckStatus{Status: status, Details: details}
}

// ReadyHandler reports readiness once the update store is readable.
type ReadyHandler struct {
	Store repository.UpdateRepository
	DB    *sql.DB
}

// ServeHTTP returns 200 "ready" or 503 with a short reason.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Store == nil {
		http.Error(w, "update store not configured", http.StatusServiceUnavailable)
		return
	}
	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			http.Error(w, "database not ready", http.StatusServiceUnavailable)
			return
		}
	}
	if _, err := h.Store.Load(ctx); err != nil {
		http.Error(w, "update store not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.Error("ready: failed to write response", slog.Any("error", err))
	}
}

// LiveHandler always answers 200 while the process can serve requests.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Error("alive: failed to write response", slog.Any("error", err))
	}
}
