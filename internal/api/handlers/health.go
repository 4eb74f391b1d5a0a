// Package handlers provides HTTP request handlers for the calculator API.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"calculator-service/internal/config"
	"calculator-service/internal/storage"
)

// HealthHandler provides health check functionality
type HealthHandler struct {
	config    *config.Config
	history   *storage.HistoryStore
	startTime time.Time
}

// HealthStatus represents the health check response structure
type HealthStatus struct {
	Status      string           `json:"status"`
	Server      string           `json:"server"`
	Version     string           `json:"version"`
	Environment string           `json:"environment"`
	Uptime      string           `json:"uptime"`
	Timestamp   string           `json:"timestamp"`
	Checks      map[string]Check `json:"checks"`
	System      SystemInfo       `json:"system"`
}

// Check represents an individual health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo represents system information
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemoryMB     uint64 `json:"memory_mb"`
}

// NewHealthHandler creates a new health check handler. The history store
// may be nil when calculation history is disabled.
func NewHealthHandler(cfg *config.Config, history *storage.HistoryStore) *HealthHandler {
	return &HealthHandler{
		config:    cfg,
		history:   history,
		startTime: time.Now(),
	}
}

// Handle processes health check requests
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	status := h.buildHealthStatus(ctx)
	status.Status = h.determineOverallStatus(status.Checks)

	statusCode := http.StatusOK
	if status.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	writeHealthJSON(w, statusCode, status)
}

// HandleLiveness always reports success while the process is running.
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	writeHealthJSON(w, http.StatusOK, map[string]string{
		"status": "alive",
		"server": "calculator-service",
	})
}

// HandleReadiness reports whether the service can serve calculations.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	check := h.checkHistory(ctx)
	statusCode := http.StatusOK
	if check.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	writeHealthJSON(w, statusCode, map[string]interface{}{
		"status": check.Status,
		"checks": map[string]Check{"history": check},
	})
}

// buildHealthStatus constructs the complete health status
func (h *HealthHandler) buildHealthStatus(ctx context.Context) HealthStatus {
	return HealthStatus{
		Server:      "calculator-service",
		Version:     "1.0.0",
		Environment: h.getEnvironment(),
		Uptime:      h.getUptime(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Checks:      h.performHealthChecks(ctx),
		System:      h.getSystemInfo(),
	}
}

// getEnvironment determines the current environment
func (h *HealthHandler) getEnvironment() string {
	if h.config.Server.Host == "localhost" || h.config.Server.Host == "127.0.0.1" {
		return "development"
	}
	return "production"
}

// getUptime calculates server uptime
func (h *HealthHandler) getUptime() string {
	uptime := time.Since(h.startTime)
	return uptime.Round(time.Second).String()
}

// performHealthChecks runs various health checks
func (h *HealthHandler) performHealthChecks(ctx context.Context) map[string]Check {
	checks := make(map[string]Check)

	checks["history"] = h.checkHistory(ctx)
	checks["memory"] = h.checkMemory()
	checks["config"] = h.checkConfiguration()

	return checks
}

// checkHistory verifies the calculation history store responds.
func (h *HealthHandler) checkHistory(ctx context.Context) Check {
	if h.history == nil {
		return Check{
			Status:  "healthy",
			Message: "Calculation history disabled",
		}
	}

	start := time.Now()
	if _, err := h.history.Count(ctx); err != nil {
		return Check{
			Status:  "unhealthy",
			Message: "History store unreachable: " + err.Error(),
		}
	}

	return Check{
		Status:  "healthy",
		Message: "History store reachable",
		Latency: time.Since(start).Round(time.Millisecond).String(),
	}
}

// checkMemory performs memory usage health check
func (h *HealthHandler) checkMemory() Check {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	memoryMB := m.Alloc / 1024 / 1024

	if memoryMB > 500 {
		return Check{
			Status:  "warning",
			Message: "High memory usage",
		}
	}

	return Check{
		Status:  "healthy",
		Message: "Memory usage normal",
	}
}

// checkConfiguration validates configuration health
func (h *HealthHandler) checkConfiguration() Check {
	if err := h.config.Validate(); err != nil {
		return Check{
			Status:  "warning",
			Message: "Configuration validation warning: " + err.Error(),
		}
	}

	return Check{
		Status:  "healthy",
		Message: "Configuration valid",
	}
}

// getSystemInfo collects system information
func (h *HealthHandler) getSystemInfo() SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		MemoryMB:     m.Alloc / 1024 / 1024,
	}
}

// determineOverallStatus determines overall health based on individual checks
func (h *HealthHandler) determineOverallStatus(checks map[string]Check) string {
	hasUnhealthy := false
	hasWarning := false

	for _, check := range checks {
		switch check.Status {
		case "unhealthy":
			hasUnhealthy = true
		case "warning":
			hasWarning = true
		}
	}

	if hasUnhealthy {
		return "unhealthy"
	}
	if hasWarning {
		return "warning"
	}
	return "healthy"
}

func writeHealthJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
