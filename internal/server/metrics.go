package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tickdo/tickdo/internal/instrumentation"
)

// MetricsServerConfig holds configuration for the standalone metrics
// server.
type MetricsServerConfig struct {
	// Addr is the listen address (e.g., ":9090").
	Addr string

	// Enabled determines whether Start actually serves.
	Enabled bool

	// InstrumentationProvider is the OpenTelemetry provider whose
	// Prometheus exporter feeds the /metrics endpoint.
	InstrumentationProvider *instrumentation.Provider
}

// MetricsServer exposes Prometheus metrics on a dedicated port,
// separate from the MCP transport.
type MetricsServer struct {
	config     MetricsServerConfig
	httpServer *http.Server

	mu       sync.Mutex
	listener net.Listener
}

// NewMetricsServer creates a metrics server. It does not listen until
// Start is called.
func NewMetricsServer(config MetricsServerConfig) (*MetricsServer, error) {
	if config.Addr == "" {
		return nil, fmt.Errorf("metrics server address is required")
	}

	mux := http.NewServeMux()
	// The OTel Prometheus exporter registers with the default registry,
	// which promhttp.Handler serves.
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &MetricsServer{
		config: config,
		httpServer: &http.Server{
			Addr:              config.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Start listens and serves. It blocks until the server stops and
// returns http.ErrServerClosed on graceful shutdown.
func (m *MetricsServer) Start() error {
	if !m.config.Enabled {
		return nil
	}

	listener, err := net.Listen("tcp", m.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", m.config.Addr, err)
	}

	m.mu.Lock()
	m.listener = listener
	m.mu.Unlock()

	return m.httpServer.Serve(listener)
}

// Shutdown gracefully stops the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.httpServer.Shutdown(ctx)
}

// Addr returns the actual listen address. Useful when the configured
// address uses port 0.
func (m *MetricsServer) Addr() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listener != nil {
		return m.listener.Addr().String()
	}
	return m.config.Addr
}
