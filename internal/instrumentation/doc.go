// Package instrumentation provides OpenTelemetry metrics and tracing
// for the tickdo MCP server.
//
// The Provider wires a meter provider (Prometheus, OTLP, or stdout
// exporter) and a tracer provider (OTLP, stdout, or none), configured
// from environment variables. Metrics records MCP tool invocations and
// TickTick API operations.
package instrumentation
