package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// HealthStatus represents the health state reported by the detailed
// health endpoint.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthChecker serves liveness and readiness probes for the HTTP
// transport.
type HealthChecker struct {
	sc *ServerContext
}

// NewHealthChecker creates a health checker backed by the given server
// context.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	return &HealthChecker{sc: sc}
}

// RegisterHealthEndpoints registers /healthz, /readyz, and /health on
// the mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.LivenessHandler)
	mux.HandleFunc("/readyz", h.ReadinessHandler)
	mux.HandleFunc("/health", h.DetailedHandler)
}

// LivenessHandler reports whether the process is alive. It stays
// healthy as long as the server context exists and has not shut down.
func (h *HealthChecker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	if h.sc.IsShutdown() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ReadinessHandler reports whether the server can accept traffic. The
// server is ready once the context is up; the TickTick client is
// created lazily, so a missing token surfaces per request rather than
// failing readiness.
func (h *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	if h.sc.IsShutdown() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}

	select {
	case <-h.sc.Context().Done():
		http.Error(w, "context cancelled", http.StatusServiceUnavailable)
	default:
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}

// DetailedHandler reports component-level status as JSON.
func (h *HealthChecker) DetailedHandler(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Checks:    map[string]string{},
	}

	if h.sc.IsShutdown() {
		status.Status = "unhealthy"
		status.Checks["server_context"] = "shut down"
	} else {
		status.Checks["server_context"] = "ok"
	}

	if h.sc.HasClient() {
		status.Checks["ticktick_client"] = "initialized"
	} else {
		status.Checks["ticktick_client"] = "not yet initialized"
	}

	if tz := h.sc.Resolver().Display(); tz != "" {
		status.Checks["display_timezone"] = tz
	} else {
		status.Checks["display_timezone"] = "host-local"
	}

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		slog.Warn("failed to encode health response", "error", err)
	}
}
