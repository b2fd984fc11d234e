// Package server provides shared state and supporting HTTP servers for
// the tickdo MCP server.
//
// ServerContext holds the lazily-created TickTick client, the timezone
// resolver, and the metrics recorder that tool handlers share.
// HealthChecker and MetricsServer expose the liveness, readiness, and
// Prometheus endpoints for the HTTP transport.
package server
