package dataprocessing

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"cirapipe/internal/errors"
	"cirapipe/internal/files"
	"cirapipe/internal/infrastructure"
	"cirapipe/internal/shared/testutil"
)

func writeInputs(t *testing.T, contents map[string]string) []files.FileInfo {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteCSVFixtures(t, dir, contents)

	found, err := files.NewDiscovery("").FindCSVFiles(dir)
	require.NoError(t, err)
	return found
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestProcessorRun(t *testing.T) {
	inputs := writeInputs(t, map[string]string{
		"b_pump.csv": "time,temp,motor_current\nb0,1,2\nb1,2,2\nb2,3,2\nb3,4,2\nb4,5,2\n",
		"a_pump.csv": "Timestamp,X_PRES.PV,Vib\na0,1,1\na1,2,1\na2,3,1\n",
	})
	require.Len(t, inputs, 2)

	for _, workers := range []int{1, 4} {
		p := NewProcessor(ProcessorOptions{Workers: workers, Logger: quietLogger()})
		result, err := p.Run(context.Background(), inputs)
		require.NoError(t, err)

		require.Len(t, result.Records, 8)
		want := []string{"a0", "a1", "a2", "b0", "b1", "b2", "b3", "b4"}
		for i, rec := range result.Records {
			assert.Equal(t, want[i], rec.Timestamp.String(), "workers=%d row %d", workers, i)
		}

		require.Len(t, result.Files, 2)
		a := result.Files[0]
		assert.Equal(t, "a_pump.csv", a.Name)
		assert.Equal(t, map[string]string{
			"timestamp": "Timestamp",
			"pressure":  "X_PRES.PV",
			"vibration": "Vib",
		}, a.Columns)
		assert.Equal(t, []string{"temperature", "current"}, a.Absent)
		assert.Equal(t, 3, a.RowsIn)
		assert.Equal(t, 3, a.RowsKept)

		b := result.Files[1]
		assert.Equal(t, []string{"pressure", "vibration"}, b.Absent)
		assert.Equal(t, 5, b.RowsKept)
		assert.Equal(t, 0, result.RowsDropped())
	}
}

func TestProcessorRun_LogsPerFile(t *testing.T) {
	inputs := writeInputs(t, map[string]string{
		"pump.csv": "timestamp,temperature\nt0,4\n,\n",
	})
	logger, handler := testutil.NewTestLogger(t)

	_, err := NewProcessor(ProcessorOptions{Logger: logger}).Run(context.Background(), inputs)
	require.NoError(t, err)

	testutil.AssertNoErrors(t, handler)
	absent := handler.FindMessage("Signals absent from file")
	require.Len(t, absent, 1)
	assert.Equal(t, inputs[0].Path, absent[0].Attrs["file"])
	assert.Equal(t, "processor", absent[0].Attrs["component"])

	assembled := handler.FindMessage("Assembled file")
	require.Len(t, assembled, 1)
	assert.Equal(t, int64(1), assembled[0].Attrs["rows_dropped"])
	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Processing progress")
}

func TestProcessorRun_ReportsDroppedRows(t *testing.T) {
	inputs := writeInputs(t, map[string]string{
		"pump.csv": "timestamp,temperature\nt0,4\n,\n,\n",
	})

	result, err := NewProcessor(ProcessorOptions{Logger: quietLogger()}).Run(context.Background(), inputs)
	require.NoError(t, err)
	assert.Len(t, result.Records, 1)
	assert.Equal(t, 2, result.RowsDropped())
	assert.Equal(t, 3, result.Files[0].RowsIn)
}

func TestProcessorRun_FailsOnMalformedFile(t *testing.T) {
	inputs := writeInputs(t, map[string]string{
		"a.csv": "timestamp,temperature\nt0,1\n",
		"b.csv": "timestamp,temperature\nt0,1,extra\n",
		"c.csv": "timestamp,temperature\nt0,1\n",
	})

	for _, workers := range []int{1, 3} {
		p := NewProcessor(ProcessorOptions{Workers: workers, Logger: quietLogger()})
		result, err := p.Run(context.Background(), inputs)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, errors.ErrTypeParsing, errors.GetErrorType(err))
		assert.Contains(t, err.Error(), "b.csv")
	}
}

func TestProcessorRun_LogsReadFailure(t *testing.T) {
	inputs := writeInputs(t, map[string]string{"bad.csv": ""})
	logger, handler := testutil.NewTestLogger(t)

	_, err := NewProcessor(ProcessorOptions{Logger: logger}).Run(context.Background(), inputs)
	require.Error(t, err)

	failed := handler.FindMessage("Failed to read input file")
	require.Len(t, failed, 1)
	assert.Equal(t, err.Error(), failed[0].Attrs["error"])
	assert.Equal(t, inputs[0].Path, failed[0].Attrs["file"])
}

func TestProcessorRun_SpanTraceID(t *testing.T) {
	inputs := writeInputs(t, map[string]string{"a.csv": "timestamp\nt0\n"})

	result, err := NewProcessor(ProcessorOptions{Logger: quietLogger()}).Run(context.Background(), inputs)
	require.NoError(t, err)
	assert.Empty(t, result.SpanTraceID, "noop tracer has no trace")

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	p := NewProcessor(ProcessorOptions{Tracer: tp.Tracer("test"), Logger: quietLogger()})
	result, err = p.Run(context.Background(), inputs)
	require.NoError(t, err)
	assert.Len(t, result.SpanTraceID, 32)
}

func TestProcessorRun_Cancelled(t *testing.T) {
	inputs := writeInputs(t, map[string]string{"a.csv": "timestamp\nt0\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProcessor(ProcessorOptions{Logger: quietLogger()}).Run(ctx, inputs)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessorRun_NoInputs(t *testing.T) {
	result, err := NewProcessor(ProcessorOptions{Logger: quietLogger()}).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Files)
}

func TestProcessorRun_RecordsMetrics(t *testing.T) {
	providers, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), quietLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)

	inputs := writeInputs(t, map[string]string{
		"pump.csv": "timestamp,temperature\nt0,4\n,\n",
	})

	p := NewProcessor(ProcessorOptions{
		Tracer:  providers.Tracer,
		Metrics: metrics,
		Logger:  quietLogger(),
	})
	_, err = p.Run(context.Background(), inputs)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cira.prom")
	require.NoError(t, providers.WriteMetricsTextfile(path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(content), "cira_rows_read")
	assert.Contains(t, string(content), `signal="pressure"`)
}
