package instrumentation

import "testing"

func TestDefaultConfig(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "")
	t.Setenv("METRICS_EXPORTER", "")
	t.Setenv("TRACING_EXPORTER", "")
	t.Setenv("TRACE_SAMPLING_RATE", "")
	t.Setenv("DETAILED_METRIC_LABELS", "")

	config := DefaultConfig()

	if !config.Enabled {
		t.Error("Enabled = false, want true by default")
	}
	if config.MetricsExporter != ExporterPrometheus {
		t.Errorf("MetricsExporter = %q, want %q", config.MetricsExporter, ExporterPrometheus)
	}
	if config.TracingExporter != ExporterNone {
		t.Errorf("TracingExporter = %q, want %q", config.TracingExporter, ExporterNone)
	}
	if config.TraceSamplingRate != 0.1 {
		t.Errorf("TraceSamplingRate = %v, want 0.1", config.TraceSamplingRate)
	}
	if config.DetailedLabels {
		t.Error("DetailedLabels = true, want false by default")
	}
}

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("METRICS_EXPORTER", ExporterOTLP)
	t.Setenv("TRACING_EXPORTER", ExporterStdout)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")
	t.Setenv("TRACE_SAMPLING_RATE", "0.5")
	t.Setenv("DETAILED_METRIC_LABELS", "true")
	t.Setenv("SERVICE_INSTANCE_ID", "worker-1")

	config := DefaultConfig()

	if config.Enabled {
		t.Error("Enabled = true, want false")
	}
	if config.MetricsExporter != ExporterOTLP {
		t.Errorf("MetricsExporter = %q", config.MetricsExporter)
	}
	if config.TracingExporter != ExporterStdout {
		t.Errorf("TracingExporter = %q", config.TracingExporter)
	}
	if config.OTLPEndpoint != "collector:4318" {
		t.Errorf("OTLPEndpoint = %q", config.OTLPEndpoint)
	}
	if !config.OTLPInsecure {
		t.Error("OTLPInsecure = false, want true")
	}
	if config.TraceSamplingRate != 0.5 {
		t.Errorf("TraceSamplingRate = %v", config.TraceSamplingRate)
	}
	if !config.DetailedLabels {
		t.Error("DetailedLabels = false, want true")
	}
	if config.ServiceInstanceID != "worker-1" {
		t.Errorf("ServiceInstanceID = %q", config.ServiceInstanceID)
	}
}

func TestDefaultConfigRejectsBadSamplingRate(t *testing.T) {
	for _, v := range []string{"2.0", "-0.1", "lots"} {
		t.Setenv("TRACE_SAMPLING_RATE", v)
		if rate := DefaultConfig().TraceSamplingRate; rate != 0.1 {
			t.Errorf("TRACE_SAMPLING_RATE=%q: rate = %v, want default 0.1", v, rate)
		}
	}
}

func TestZeroValueMetricsIsNoop(t *testing.T) {
	var m Metrics
	ctx := t.Context()

	// Must not panic.
	m.RecordToolInvocation(ctx, "t", StatusSuccess, 0)
	m.RecordAPIOperation(ctx, "list", StatusError, 0)
	m.RecordQueryExecution(ctx, "global", StatusSuccess)
	m.RecordCollectionFailure(ctx, "p1")
}
