package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"cirapipe/internal/config"
	"cirapipe/internal/dataprocessing"
	"cirapipe/internal/errors"
	"cirapipe/internal/exporter"
	"cirapipe/internal/files"
	"cirapipe/internal/infrastructure"
	"cirapipe/pkg/contracts"
)

// options holds the command-line flags. Flags that were not set leave the
// loaded configuration untouched.
type options struct {
	configFile  string
	inDir       string
	outPath     string
	workbook    string
	manifest    string
	metricsFile string
	excelBOM    bool
	workers     int
	showVersion bool
	set         map[string]bool
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout))
}

// run executes one combiner invocation and returns the process exit code
func run(ctx context.Context, args []string, stdout io.Writer) int {
	opts, err := parseFlags(args)
	if stderrors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 1
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		infrastructure.WithError(slog.Default(), err).Error("Failed to load configuration")
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		infrastructure.WithError(slog.Default(), err).Error("Failed to initialize logger")
		return 1
	}
	defer infrastructure.CloseLogFile()
	logger = infrastructure.WithComponent(logger, "combiner")

	ctx = infrastructure.EnsureTraceID(ctx)
	logger.InfoContext(ctx, "Starting CIRA sensor combiner",
		slog.String("version", contracts.Version),
		slog.String("input_dir", cfg.Paths.InputDir),
		slog.String("output_path", cfg.Paths.OutputPath),
		slog.Int("workers", cfg.Pipeline.Workers))

	if err := combine(ctx, cfg, logger, stdout); err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Combiner failed",
			slog.String("error_type", string(errors.GetErrorType(err))))
		return 1
	}
	return 0
}

// combine runs discovery, processing and export for one configuration
func combine(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	manager := files.NewManager("")

	telemetry, closeTraceFile, err := setupTelemetry(cfg, manager, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			infrastructure.WithError(logger, err).WarnContext(ctx, "Telemetry shutdown failed")
		}
		closeTraceFile()
	}()

	metrics, err := infrastructure.CreatePipelineMetrics(telemetry.Meter)
	if err != nil {
		return errors.NewTelemetryError("cannot create metrics", err)
	}

	inputs, err := discoverInputs(cfg.Paths.InputDir)
	if errors.IsNoInputFiles(err) {
		logger.WarnContext(ctx, "No CSV files found in input directory",
			slog.String("input_dir", cfg.Paths.InputDir),
			slog.String("pattern", "*.csv"))
		fmt.Fprintf(stdout, "No CSV files found in %s\n", cfg.Paths.InputDir)
		return nil
	}
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "CSV files discovered",
		slog.Int("count", len(inputs)),
		slog.Int64("total_bytes", files.TotalSize(inputs)),
		slog.Any("files", files.Names(inputs)))

	processor := dataprocessing.NewProcessor(dataprocessing.ProcessorOptions{
		Workers:          cfg.Pipeline.Workers,
		ProgressInterval: cfg.Pipeline.ProgressInterval,
		Tracer:           telemetry.Tracer,
		Metrics:          metrics,
		Logger:           logger,
	})

	result, err := processor.Run(ctx, inputs)
	if err != nil {
		return err
	}

	csvWriter := exporter.NewCSVWriter(manager)
	writeCSV := csvWriter.WriteCombined
	if cfg.Paths.ExcelBOM {
		writeCSV = csvWriter.WriteCombinedForExcel
	}
	if err := writeCSV(cfg.Paths.OutputPath, result.Records); err != nil {
		return err
	}
	metrics.RecordRowsWritten(ctx, len(result.Records))

	if cfg.Paths.WorkbookPath != "" {
		if err := exporter.NewWorkbookWriter(manager).WriteCombined(cfg.Paths.WorkbookPath, result.Records); err != nil {
			return err
		}
	}

	if cfg.Paths.ManifestPath != "" {
		manifest := exporter.NewManifest(result, cfg.Paths.OutputPath, infrastructure.GetTraceID(ctx))
		if err := exporter.NewManifestWriter(manager).Write(cfg.Paths.ManifestPath, manifest); err != nil {
			return err
		}
	}

	if cfg.Telemetry.MetricsFile != "" {
		if err := telemetry.WriteMetricsTextfile(cfg.Telemetry.MetricsFile); err != nil {
			// Metrics are best effort; the combined output already exists
			infrastructure.WithError(logger, err).WarnContext(ctx, "Failed to write metrics textfile",
				slog.String("path", cfg.Telemetry.MetricsFile))
		}
	}

	logger.InfoContext(ctx, "Combined dataset written",
		slog.String("path", cfg.Paths.OutputPath),
		slog.Int("rows", len(result.Records)),
		slog.Int("dropped", result.RowsDropped()))
	fmt.Fprintf(stdout, "Created: %s (rows=%d)\n", cfg.Paths.OutputPath, len(result.Records))

	return nil
}

// discoverInputs lists the CSV files to combine. A missing directory is
// treated the same as an empty one.
func discoverInputs(dir string) ([]files.FileInfo, error) {
	inputs, err := files.NewDiscovery("").FindCSVFiles(dir)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.ErrNoInputFiles
	}
	if err != nil {
		return nil, errors.NewDiscoveryError(dir, err)
	}
	if len(inputs) == 0 {
		return nil, errors.ErrNoInputFiles
	}
	return inputs, nil
}

// setupTelemetry initializes tracing and metrics from the telemetry config.
// The returned func closes the trace file, if one was opened, and must run
// after the providers are shut down.
func setupTelemetry(cfg *config.Config, manager *files.Manager, logger *slog.Logger) (*infrastructure.OTelProviders, func(), error) {
	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.ServiceName = config.ServiceName
	otelCfg.ServiceVersion = contracts.Version
	otelCfg.TraceExporter = cfg.Telemetry.TraceExporter
	otelCfg.EnableMetrics = cfg.Telemetry.MetricsFile != ""

	closeFile := func() {}
	if cfg.Telemetry.TraceExporter == "stdout" && cfg.Telemetry.TraceFile != "" {
		traceFile, err := manager.Create(cfg.Telemetry.TraceFile)
		if err != nil {
			return nil, nil, errors.NewTelemetryError("cannot open trace file", err)
		}
		otelCfg.TraceWriter = traceFile
		closeFile = func() { traceFile.Close() }
	}

	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		closeFile()
		return nil, nil, errors.NewTelemetryError("cannot initialize telemetry", err)
	}
	return providers, closeFile, nil
}

// parseFlags parses the command line and records which flags were set
func parseFlags(args []string) (*options, error) {
	opts := &options{set: make(map[string]bool)}

	flags := flag.NewFlagSet("combiner", flag.ContinueOnError)
	flags.StringVar(&opts.configFile, "config", "", "path to a YAML config file (defaults to config.yaml or configs/config.yaml if present)")
	flags.StringVar(&opts.inDir, "in", "", "input directory holding raw CIRA CSV exports (default data/raw/cira)")
	flags.StringVar(&opts.outPath, "out", "", "combined CSV output path (default data/processed/combined_cira.csv)")
	flags.StringVar(&opts.workbook, "workbook", "", "optional .xlsx copy of the combined table")
	flags.StringVar(&opts.manifest, "manifest", "", "optional YAML manifest describing the column mapping of each file")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "optional Prometheus textfile written at the end of the run")
	flags.BoolVar(&opts.excelBOM, "bom", false, "prefix the combined CSV with a UTF-8 byte order mark for Excel")
	flags.IntVar(&opts.workers, "workers", 0, "number of files processed concurrently (default 1)")
	flags.BoolVar(&opts.showVersion, "version", false, "print version information and exit")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	flags.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	return opts, nil
}

// loadConfig loads configuration and applies flag overrides on top
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, errors.NewConfigError("cannot load configuration", err)
	}

	if opts.set["in"] {
		cfg.Paths.InputDir = opts.inDir
	}
	if opts.set["out"] {
		cfg.Paths.OutputPath = opts.outPath
	}
	if opts.set["workbook"] {
		cfg.Paths.WorkbookPath = opts.workbook
	}
	if opts.set["manifest"] {
		cfg.Paths.ManifestPath = opts.manifest
	}
	if opts.set["bom"] {
		cfg.Paths.ExcelBOM = opts.excelBOM
	}
	if opts.set["metrics-file"] {
		cfg.Telemetry.MetricsFile = opts.metricsFile
	}
	if opts.set["workers"] {
		cfg.Pipeline.Workers = opts.workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError("invalid flags", err)
	}
	return cfg, nil
}
