package dataprocessing

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"cirapipe/internal/files"
	"cirapipe/internal/infrastructure"
	"cirapipe/internal/schema"
	"cirapipe/pkg/contracts/domain"
)

// FileSummary describes how one input file was mapped and assembled
type FileSummary struct {
	Path        string
	Name        string
	Checksum    string
	Columns     map[string]string // signal -> source column name
	Absent      []string
	RowsIn      int
	RowsKept    int
	RowsDropped int
	Duration    time.Duration
}

// Result is the outcome of a successful run
type Result struct {
	Records []domain.CanonicalRecord
	Files   []FileSummary
	// SpanTraceID is the OpenTelemetry trace of the run, empty when tracing is off
	SpanTraceID string
}

// RowsDropped returns the number of rows discarded across all files
func (r *Result) RowsDropped() int {
	total := 0
	for _, f := range r.Files {
		total += f.RowsDropped
	}
	return total
}

// ProcessorOptions configures a Processor. Zero values are usable.
type ProcessorOptions struct {
	Workers          int
	ProgressInterval time.Duration
	Tracer           trace.Tracer
	Metrics          *infrastructure.PipelineMetrics
	Logger           *slog.Logger
}

// Processor reads, maps and assembles raw exports into one canonical table
type Processor struct {
	workers  int
	tracer   trace.Tracer
	metrics  *infrastructure.PipelineMetrics
	logger   *slog.Logger
	progress *rate.Sometimes
}

// NewProcessor creates a processor. Fewer than one worker means sequential.
func NewProcessor(opts ProcessorOptions) *Processor {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer("cirapipe")
	}
	logger := opts.Logger
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	return &Processor{
		workers:  workers,
		tracer:   tracer,
		metrics:  opts.Metrics,
		logger:   infrastructure.WithComponent(logger, "processor"),
		progress: &rate.Sometimes{Interval: opts.ProgressInterval},
	}
}

// Run processes inputs and concatenates their records in input order.
// Files may be processed concurrently but each result is slotted by its
// position, so the output never depends on scheduling. The first failure
// cancels the remaining work and is returned without partial results.
func (p *Processor) Run(ctx context.Context, inputs []files.FileInfo) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "combine",
		trace.WithAttributes(
			attribute.Int("cira.files", len(inputs)),
			attribute.Int("cira.workers", p.workers),
		))
	defer span.End()

	tables := make([][]domain.CanonicalRecord, len(inputs))
	summaries := make([]FileSummary, len(inputs))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			records, summary, err := p.processFile(gctx, input)
			if err != nil {
				return err
			}
			tables[i] = records
			summaries[i] = summary

			n := done.Add(1)
			p.progress.Do(func() {
				p.logger.InfoContext(gctx, "Processing progress",
					slog.Int64("completed", n),
					slog.Int("total", len(inputs)))
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	result := &Result{
		Records:     Combine(tables),
		Files:       summaries,
		SpanTraceID: infrastructure.TraceIDFromContext(ctx),
	}

	span.SetAttributes(
		attribute.Int("cira.rows.combined", len(result.Records)),
		attribute.Int("cira.rows.dropped", result.RowsDropped()),
	)
	p.logger.InfoContext(ctx, "Combined input files",
		slog.Int("files", len(inputs)),
		slog.Int("rows", len(result.Records)),
		slog.Int("dropped", result.RowsDropped()),
		slog.String("span_trace_id", result.SpanTraceID))

	return result, nil
}

// processFile reads and assembles one input file
func (p *Processor) processFile(ctx context.Context, input files.FileInfo) ([]domain.CanonicalRecord, FileSummary, error) {
	ctx, span := p.tracer.Start(ctx, "combine.file",
		trace.WithAttributes(attribute.String("cira.file", input.Name)))
	defer span.End()

	start := time.Now()
	logger := infrastructure.WithFile(p.logger, input.Path)

	table, err := ReadFile(input.Path)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		p.metrics.RecordFile(ctx, 0, 0, nil, time.Since(start), err)
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Failed to read input file")
		return nil, FileSummary{}, err
	}

	mapping := schema.Detect(table.Header)
	assembled := Assemble(table, mapping)

	absent := make([]string, 0, len(schema.Signals))
	for _, s := range mapping.Absent() {
		absent = append(absent, string(s))
	}

	summary := FileSummary{
		Path:        input.Path,
		Name:        input.Name,
		Checksum:    table.Checksum,
		Columns:     mapping.SourceNames(),
		Absent:      absent,
		RowsIn:      assembled.RowsIn,
		RowsKept:    len(assembled.Records),
		RowsDropped: assembled.Dropped,
		Duration:    time.Since(start),
	}

	span.SetAttributes(
		attribute.Int("cira.rows.in", summary.RowsIn),
		attribute.Int("cira.rows.kept", summary.RowsKept),
		attribute.StringSlice("cira.signals.absent", absent),
	)
	p.metrics.RecordFile(ctx, summary.RowsIn, summary.RowsDropped, absent, summary.Duration, nil)

	logger.DebugContext(ctx, "Detected columns", slog.Any("columns", summary.Columns))
	if len(absent) > 0 {
		logger.InfoContext(ctx, "Signals absent from file", slog.Any("signals", absent))
	}
	logger.InfoContext(ctx, "Assembled file",
		slog.Int("rows_in", summary.RowsIn),
		slog.Int("rows_kept", summary.RowsKept),
		slog.Int("rows_dropped", summary.RowsDropped))

	return assembled.Records, summary, nil
}
