package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestOTelInitializationDefaults(t *testing.T) {
	providers, err := InitializeOTel(nil, quietLogger())
	require.NoError(t, err)
	require.NotNil(t, providers)

	assert.Nil(t, providers.TracerProvider, "tracing is off by default")
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Registry)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelDisabled(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.EnableMetrics = false

	providers, err := InitializeOTel(cfg, quietLogger())
	require.NoError(t, err)

	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.Registry)

	// No-op instruments still work
	metrics, err := CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordRowsWritten(context.Background(), 3)

	err = providers.WriteMetricsTextfile(filepath.Join(t.TempDir(), "m.prom"))
	assert.Error(t, err)
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestUnsupportedTraceExporter(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "zipkin"

	_, err := InitializeOTel(cfg, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported trace exporter")
}

func TestStdoutTracing(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "stdout"
	cfg.TraceWriter = &buf
	cfg.EnableMetrics = false

	providers, err := InitializeOTel(cfg, quietLogger())
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)

	ctx, span := providers.Tracer.Start(context.Background(), "combine")
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	assert.Equal(t, span.SpanContext().TraceID().String(), TraceIDFromContext(ctx))
	RecordError(ctx, errors.New("bad file"))
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "combine")
	assert.Contains(t, buf.String(), "bad file")
}

func TestTraceIDFromContextWithoutSpan(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
	// Recording on a context without a span is a no-op
	RecordError(context.Background(), errors.New("ignored"))
}

func TestPipelineMetricsTextfile(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), quietLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordFile(ctx, 120, 2, []string{"pressure", "current"}, 15*time.Millisecond, nil)
	metrics.RecordFile(ctx, 0, 0, nil, time.Millisecond, errors.New("malformed"))
	metrics.RecordRowsWritten(ctx, 118)

	path := filepath.Join(t.TempDir(), "textfile", "cira.prom")
	require.NoError(t, providers.WriteMetricsTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "cira_files_processed")
	assert.Contains(t, text, `status="ok"`)
	assert.Contains(t, text, `status="error"`)
	assert.Contains(t, text, "cira_rows_read")
	assert.Contains(t, text, "cira_rows_dropped")
	assert.Contains(t, text, "cira_rows_written")
	assert.Contains(t, text, `signal="pressure"`)
	assert.Contains(t, text, "cira_file_duration")
}

func TestNilPipelineMetrics(t *testing.T) {
	var metrics *PipelineMetrics
	metrics.RecordFile(context.Background(), 1, 0, nil, time.Second, nil)
	metrics.RecordRowsWritten(context.Background(), 1)
}
