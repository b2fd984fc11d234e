package instrumentation

import (
	"os"
	"strconv"
)

// Exporter types for metrics and tracing.
const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: tickdo)
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// ServiceInstanceID is the unique instance identifier (default: hostname)
	ServiceInstanceID string

	// Enabled determines if instrumentation is active (default: true)
	// Set to false via INSTRUMENTATION_ENABLED=false to disable metrics and tracing
	Enabled bool

	// MetricsExporter specifies the metrics exporter type
	// Options: "prometheus", "otlp", "stdout" (default: "prometheus")
	MetricsExporter string

	// TracingExporter specifies the tracing exporter type
	// Options: "otlp", "stdout", "none" (default: "none")
	TracingExporter string

	// OTLPEndpoint is the OTLP collector endpoint (host:port)
	OTLPEndpoint string

	// OTLPInsecure disables TLS for the OTLP exporter (development only)
	OTLPInsecure bool

	// TraceSamplingRate is the ratio of traces to sample (default: 0.1)
	TraceSamplingRate float64

	// DetailedLabels controls whether high-cardinality metric labels
	// (e.g. project IDs) are recorded (default: false)
	DetailedLabels bool
}

// DefaultConfig returns a Config populated from environment variables
// with sensible defaults.
func DefaultConfig() Config {
	config := Config{
		ServiceName:       "tickdo",
		ServiceVersion:    "dev",
		Enabled:           true,
		MetricsExporter:   ExporterPrometheus,
		TracingExporter:   ExporterNone,
		TraceSamplingRate: 0.1,
	}

	if os.Getenv("INSTRUMENTATION_ENABLED") == "false" {
		config.Enabled = false
	}
	if v := os.Getenv("METRICS_EXPORTER"); v != "" {
		config.MetricsExporter = v
	}
	if v := os.Getenv("TRACING_EXPORTER"); v != "" {
		config.TracingExporter = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		config.OTLPEndpoint = v
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true" {
		config.OTLPInsecure = true
	}
	if v := os.Getenv("TRACE_SAMPLING_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil && rate >= 0 && rate <= 1 {
			config.TraceSamplingRate = rate
		}
	}
	if os.Getenv("DETAILED_METRIC_LABELS") == "true" {
		config.DetailedLabels = true
	}
	if v := os.Getenv("SERVICE_INSTANCE_ID"); v != "" {
		config.ServiceInstanceID = v
	}

	return config
}
