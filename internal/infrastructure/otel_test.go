package infrastructure

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"acxroyalty/internal/config"
)

func TestInitializeTelemetry_Disabled(t *testing.T) {
	tel, err := InitializeTelemetry(config.TelemetryConfig{ServiceName: "test"}, nil)
	require.NoError(t, err)
	require.NotNil(t, tel.Metrics)
	assert.Nil(t, tel.TracerProvider)

	ctx, span := tel.StartSpan(context.Background(), "run")
	assert.False(t, span.IsRecording())
	span.End()

	tel.RecordFile(ctx, OutcomeParsed, 3, time.Millisecond)
	assert.NoError(t, tel.Shutdown(ctx))
}

func TestTelemetry_MetricsTextfile(t *testing.T) {
	dir := t.TempDir()
	metricsFile := filepath.Join(dir, "prom", "acxmerge.prom")

	tel, err := InitializeTelemetry(config.TelemetryConfig{
		ServiceName: "test",
		MetricsFile: metricsFile,
	}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	tel.RecordFile(ctx, OutcomeParsed, 4, 20*time.Millisecond)
	tel.RecordFile(ctx, OutcomeParsed, 1, 10*time.Millisecond)
	tel.RecordFile(ctx, OutcomeUnrecognized, 0, time.Millisecond)
	tel.RecordTitles(ctx, 2)

	require.NoError(t, tel.Shutdown(ctx))

	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "acx_files_total")
	assert.Contains(t, text, `outcome="parsed"`)
	assert.Contains(t, text, `outcome="unrecognized"`)
	assert.Contains(t, text, "acx_records_extracted_total")
	assert.Contains(t, text, "acx_titles_aggregated")
	assert.Contains(t, text, "acx_file_duration_seconds")
}

func TestTelemetry_TraceFile(t *testing.T) {
	traceFile := filepath.Join(t.TempDir(), "trace.json")

	tel, err := InitializeTelemetry(config.TelemetryConfig{
		ServiceName: "test",
		TraceFile:   traceFile,
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, tel.TracerProvider)

	ctx, span := tel.StartSpan(context.Background(), "process_file", attribute.String("file", "a.xlsx"))
	assert.True(t, span.IsRecording())
	RecordError(span, errors.New("corrupt workbook"))
	span.End()

	require.NoError(t, tel.Shutdown(ctx))

	content, err := os.ReadFile(traceFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "process_file")
	assert.Contains(t, string(content), "corrupt workbook")
}

func TestTelemetry_NilSafe(t *testing.T) {
	var tel *Telemetry
	ctx := context.Background()

	tel.RecordFile(ctx, OutcomeFailed, 0, 0)
	tel.RecordTitles(ctx, 1)
	_, span := tel.StartSpan(ctx, "noop")
	span.End()
	assert.NoError(t, tel.Shutdown(ctx))
}
