package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"acxroyalty/internal/config"
)

// MeterName is the instrumentation scope for run metrics and spans
const MeterName = "acxroyalty"

// File outcomes recorded on acx_files_total
const (
	OutcomeParsed       = "parsed"
	OutcomeUnrecognized = "unrecognized"
	OutcomeFailed       = "failed"
)

// Telemetry holds the OpenTelemetry providers for one run.
// Metrics are always recorded into a private Prometheus registry and written
// as a node-exporter textfile on Shutdown when MetricsFile is set. Spans are
// exported as JSON to TraceFile when set, otherwise dropped.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Metrics        *RunMetrics

	registry    *prometheus.Registry
	metricsFile string
	traceFile   *os.File
	logger      *slog.Logger
}

// RunMetrics are the instruments recorded by the pipeline
type RunMetrics struct {
	FilesTotal       metric.Int64Counter
	RecordsExtracted metric.Int64Counter
	TitlesAggregated metric.Int64Gauge
	FileDuration     metric.Float64Histogram
}

// InitializeTelemetry sets up tracing and metrics from configuration
func InitializeTelemetry(cfg config.TelemetryConfig, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(config.AppVersion),
	)

	t := &Telemetry{
		registry:    prometheus.NewRegistry(),
		metricsFile: cfg.MetricsFile,
		logger:      logger,
	}

	if err := t.initializeTracing(cfg, res); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := t.initializeMetrics(res); err != nil {
		t.closeTraceFile()
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.Debug("Telemetry initialized",
		slog.Bool("tracing_enabled", t.TracerProvider != nil),
		slog.String("metrics_file", cfg.MetricsFile))

	return t, nil
}

// initializeTracing exports spans to the configured trace file
func (t *Telemetry) initializeTracing(cfg config.TelemetryConfig, res *resource.Resource) error {
	if cfg.TraceFile == "" {
		t.Tracer = noop.NewTracerProvider().Tracer(MeterName)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.TraceFile), 0755); err != nil {
		return fmt.Errorf("failed to create trace directory: %w", err)
	}
	file, err := os.Create(cfg.TraceFile)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(file))
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	t.traceFile = file
	t.TracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	t.Tracer = t.TracerProvider.Tracer(MeterName, trace.WithInstrumentationVersion(config.AppVersion))
	return nil
}

// initializeMetrics wires the OTel meter to the private Prometheus registry
func (t *Telemetry) initializeMetrics(res *resource.Resource) error {
	exporter, err := otelprom.New(otelprom.WithRegisterer(t.registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	t.MeterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	t.Meter = t.MeterProvider.Meter(MeterName, metric.WithInstrumentationVersion(config.AppVersion))

	m, err := createRunMetrics(t.Meter)
	if err != nil {
		return err
	}
	t.Metrics = m
	return nil
}

// createRunMetrics creates the pipeline instruments
func createRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	filesTotal, err := meter.Int64Counter(
		"acx_files",
		metric.WithDescription("Report files seen by outcome"),
	)
	if err != nil {
		return nil, err
	}

	recordsExtracted, err := meter.Int64Counter(
		"acx_records_extracted",
		metric.WithDescription("Canonical records extracted before merging"),
	)
	if err != nil {
		return nil, err
	}

	titles, err := meter.Int64Gauge(
		"acx_titles_aggregated",
		metric.WithDescription("Unique titles in the merged table"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"acx_file_duration",
		metric.WithDescription("Time spent reading and adapting one report file"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &RunMetrics{
		FilesTotal:       filesTotal,
		RecordsExtracted: recordsExtracted,
		TitlesAggregated: titles,
		FileDuration:     duration,
	}, nil
}

// RecordFile records the outcome of one processed file
func (t *Telemetry) RecordFile(ctx context.Context, outcome string, records int, elapsed time.Duration) {
	if t == nil || t.Metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	t.Metrics.FilesTotal.Add(ctx, 1, attrs)
	t.Metrics.RecordsExtracted.Add(ctx, int64(records))
	t.Metrics.FileDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordTitles records the size of the merged table
func (t *Telemetry) RecordTitles(ctx context.Context, titles int) {
	if t == nil || t.Metrics == nil {
		return
	}
	t.Metrics.TitlesAggregated.Record(ctx, int64(titles))
}

// StartSpan starts a span; it is a no-op when tracing is disabled
func (t *Telemetry) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if t == nil || t.Tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordError marks span as failed with err
func RecordError(span trace.Span, err error) {
	if err == nil || !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Shutdown writes the metrics textfile and flushes the providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error

	if t.metricsFile != "" {
		if err := os.MkdirAll(filepath.Dir(t.metricsFile), 0755); err != nil {
			errs = append(errs, fmt.Errorf("metrics directory: %w", err))
		} else if err := prometheus.WriteToTextfile(t.metricsFile, t.registry); err != nil {
			errs = append(errs, fmt.Errorf("metrics textfile: %w", err))
		}
	}

	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	if err := t.closeTraceFile(); err != nil {
		errs = append(errs, fmt.Errorf("trace file: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("telemetry shutdown errors: %v", errs)
	}

	t.logger.DebugContext(ctx, "Telemetry shutdown complete")
	return nil
}

func (t *Telemetry) closeTraceFile() error {
	if t.traceFile == nil {
		return nil
	}
	err := t.traceFile.Close()
	t.traceFile = nil
	return err
}
