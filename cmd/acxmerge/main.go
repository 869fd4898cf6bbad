// Command acxmerge merges ACX royalty reports into the Amazon template CSV.
//
// Usage:
//
//	acxmerge --in data/acx/incoming --out reports
//	acxmerge --in reports/acx --workers 4 --sqlite data/acx/ledger.db
//	acxmerge --config configs/acxmerge.yaml --metrics-file /var/lib/node_exporter/acx.prom
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"acxroyalty/internal/config"
	"acxroyalty/internal/dataprocessing"
	apperrors "acxroyalty/internal/errors"
	"acxroyalty/internal/exporter"
	"acxroyalty/internal/files"
	"acxroyalty/internal/infrastructure"
	"acxroyalty/internal/store"
	"acxroyalty/internal/validation"
	"acxroyalty/pkg/contracts"
	"acxroyalty/pkg/contracts/domain"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// options holds the command-line overrides; zero values leave config alone
type options struct {
	configFile  string
	inDir       string
	outDir      string
	outputFile  string
	workers     int
	preview     int
	bom         bool
	sqlitePath  string
	metricsFile string
	traceFile   string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Merge ACX royalty reports into the Amazon template CSV",
		Version:       contracts.GetFullVersionString(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			return run(ctx, cfg, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configFile, "config", "", "YAML config file (default: acxmerge.yaml or configs/acxmerge.yaml if present)")
	f.StringVar(&opts.inDir, "in", "", "directory searched recursively for royalty reports")
	f.StringVar(&opts.outDir, "out", "", "directory for the merged CSV")
	f.StringVar(&opts.outputFile, "output-file", "", "merged CSV file name")
	f.IntVar(&opts.workers, "workers", 0, "files parsed concurrently")
	f.IntVar(&opts.preview, "preview", 0, "rows shown in the console preview (0 disables)")
	f.BoolVar(&opts.bom, "bom", false, "prefix the CSV with a UTF-8 BOM for Excel")
	f.StringVar(&opts.sqlitePath, "sqlite", "", "record the run in this SQLite ledger")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "write run metrics in Prometheus textfile format")
	f.StringVar(&opts.traceFile, "trace-file", "", "write run spans as JSON")
	f.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	return cmd
}

// loadConfig applies flags that were set on top of file and environment config
func loadConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("in") {
		cfg.Pipeline.InputDir = opts.inDir
	}
	if f.Changed("out") {
		cfg.Pipeline.OutputDir = opts.outDir
	}
	if f.Changed("output-file") {
		cfg.Pipeline.OutputFile = opts.outputFile
	}
	if f.Changed("workers") {
		cfg.Pipeline.Workers = opts.workers
	}
	if f.Changed("preview") {
		cfg.Pipeline.PreviewRows = opts.preview
	}
	if f.Changed("bom") {
		cfg.Pipeline.BOMPrefix = opts.bom
	}
	if f.Changed("sqlite") {
		cfg.Storage.SQLitePath = opts.sqlitePath
	}
	if f.Changed("metrics-file") {
		cfg.Telemetry.MetricsFile = opts.metricsFile
	}
	if f.Changed("trace-file") {
		cfg.Telemetry.TraceFile = opts.traceFile
	}
	if f.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigError("invalid options", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()

	started := time.Now()
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)

	telemetry, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := telemetry.Shutdown(context.Background()); err != nil {
			infrastructure.WithError(logger, err).Error("failed to flush telemetry")
		}
	}()

	ctx, span := telemetry.StartSpan(ctx, "acxmerge.run", attribute.String("run_id", runID))
	defer span.End()

	pc := cfg.Pipeline
	logger.InfoContext(ctx, "starting ACX royalty merge",
		slog.String("input_dir", pc.InputDir),
		slog.String("output", pc.OutputPath()),
		slog.Int("workers", pc.Workers))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(pc.InputDir); err != nil {
		infrastructure.RecordError(span, err)
		return err
	}
	if err := validator.ValidateOutputDirectory(filepath.Dir(pc.OutputPath())); err != nil {
		infrastructure.RecordError(span, err)
		return err
	}

	reports, err := files.NewDiscovery("").FindReportFiles(pc.InputDir, pc.Extensions)
	if err != nil {
		infrastructure.RecordError(span, err)
		return err
	}
	fmt.Fprintf(out, "Found %d files across all subfolders to process.\n", len(reports))

	pipeline := dataprocessing.NewPipeline(logger, telemetry, dataprocessing.PipelineConfig{
		Workers: pc.Workers,
		Progress: func(index, total int, f files.FileInfo) {
			fmt.Fprintf(out, "Processing file %d of %d: %s\n", index+1, total, f.Name)
		},
	})

	result, err := pipeline.Run(ctx, reports)
	if errors.Is(err, dataprocessing.ErrNoDataExtracted) {
		logger.WarnContext(ctx, "no data was extracted",
			slog.Int("files", len(reports)))
		fmt.Fprintln(out, "No data was extracted.")
		return recordRun(ctx, cfg, logger, store.Run{
			ID:         runID,
			StartedAt:  started,
			InputDir:   pc.InputDir,
			FilesFound: len(reports),
		}, result, nil)
	}
	if err != nil {
		infrastructure.RecordError(span, err)
		return err
	}

	table := dataprocessing.Aggregate(result.Records)
	telemetry.RecordTitles(ctx, len(table))

	path, err := exporter.NewTemplateExporter(pc.OutputDir, pc.BOMPrefix, logger).Export(pc.OutputFile, table)
	if err != nil {
		infrastructure.RecordError(span, err)
		return err
	}

	logger.InfoContext(ctx, "merge complete",
		slog.String("output", path),
		slog.Int("files_used", result.FilesUsed()),
		slog.Int("titles", len(table)),
		slog.Duration("elapsed", time.Since(started)))

	fmt.Fprintf(out, "Successfully merged %d titles from %d files into %s\n", len(table), result.FilesUsed(), path)
	if pc.PreviewRows > 0 {
		fmt.Fprintf(out, "\nTop %d titles by net royalties:\n", min(pc.PreviewRows, len(table)))
		if err := exporter.WritePreview(out, table, pc.PreviewRows); err != nil {
			return err
		}
	}

	return recordRun(ctx, cfg, logger, store.Run{
		ID:         runID,
		StartedAt:  started,
		InputDir:   pc.InputDir,
		OutputPath: path,
		FilesFound: len(reports),
		FilesUsed:  result.FilesUsed(),
		Titles:     len(table),
	}, result, table)
}

// recordRun writes the run to the SQLite ledger when one is configured
func recordRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, run store.Run,
	result *dataprocessing.RunResult, table []domain.RoyaltyRecord) error {
	if cfg.Storage.SQLitePath == "" || result == nil {
		return nil
	}

	ledger, err := store.Open(cfg.Storage.SQLitePath, logger)
	if err != nil {
		return err
	}
	defer ledger.Close()

	sources := make([]store.SourceFile, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		sf := store.SourceFile{
			Path:    o.File.Path,
			Layout:  o.Layout.String(),
			Status:  o.Status,
			Records: len(o.Records),
		}
		if o.Err != nil {
			sf.Error = o.Err.Error()
		}

		fingerprint, err := files.Fingerprint(o.File.Path)
		if err != nil {
			infrastructure.WithError(logger, err).WarnContext(ctx, "failed to fingerprint report",
				slog.String("file", o.File.Name))
		}
		sf.Fingerprint = fingerprint

		prior, err := ledger.FindPriorIngest(ctx, fingerprint)
		if err != nil {
			return err
		}
		if prior != nil {
			logger.InfoContext(ctx, "report was read by an earlier run",
				slog.String("file", o.File.Name),
				slog.String("prior_run_id", prior.RunID),
				slog.String("prior_path", prior.Path))
		}
		sources = append(sources, sf)
	}

	return ledger.SaveRun(ctx, run, sources, table)
}
