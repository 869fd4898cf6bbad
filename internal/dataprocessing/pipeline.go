package dataprocessing

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	apperrors "acxroyalty/internal/errors"
	"acxroyalty/internal/files"
	"acxroyalty/internal/infrastructure"
	"acxroyalty/pkg/contracts/domain"
)

// ErrNoDataExtracted is returned when no file in a run yielded a record
var ErrNoDataExtracted = errors.New("no data was extracted")

// ParseFunc reads one report file. ParseFile is the production implementation.
type ParseFunc func(path string) (Layout, []domain.RoyaltyRecord, error)

// ProgressFunc is called once per file, before it is parsed. Calls are serialized.
type ProgressFunc func(index, total int, file files.FileInfo)

// PipelineConfig configures a Pipeline
type PipelineConfig struct {
	Workers  int // files parsed concurrently; values below 1 mean 1
	Parse    ParseFunc
	Progress ProgressFunc
}

// FileOutcome is what one input file contributed to a run
type FileOutcome struct {
	File    files.FileInfo
	Layout  Layout
	Status  string // infrastructure.OutcomeParsed, OutcomeUnrecognized or OutcomeFailed
	Records []domain.RoyaltyRecord
	Err     error
	Elapsed time.Duration
}

// RunResult collects every file outcome in discovery order
type RunResult struct {
	Outcomes []FileOutcome
	Records  []domain.RoyaltyRecord
}

// FilesUsed counts files that contributed at least one record
func (r *RunResult) FilesUsed() int {
	n := 0
	for _, o := range r.Outcomes {
		if len(o.Records) > 0 {
			n++
		}
	}
	return n
}

// Pipeline runs detection and extraction over a set of report files
type Pipeline struct {
	logger    *slog.Logger
	telemetry *infrastructure.Telemetry
	workers   int
	parse     ParseFunc
	progress  ProgressFunc
	mu        sync.Mutex
}

// NewPipeline creates a pipeline. telemetry may be nil.
func NewPipeline(logger *slog.Logger, telemetry *infrastructure.Telemetry, cfg PipelineConfig) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Parse == nil {
		cfg.Parse = ParseFile
	}

	return &Pipeline{
		logger:    infrastructure.WithComponent(logger, "pipeline"),
		telemetry: telemetry,
		workers:   cfg.Workers,
		parse:     cfg.Parse,
		progress:  cfg.Progress,
	}
}

// Run parses every file and fans the records back in using the order of
// reports, whatever the worker count. Failed and unrecognized files are
// logged and skipped. When no file produced a record it returns the result
// with a NO_DATA AppError wrapping ErrNoDataExtracted.
func (p *Pipeline) Run(ctx context.Context, reports []files.FileInfo) (*RunResult, error) {
	ctx, span := p.telemetry.StartSpan(ctx, "pipeline.run",
		attribute.Int("files", len(reports)),
		attribute.Int("workers", p.workers))
	defer span.End()

	outcomes := make([]FileOutcome, len(reports))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, report := range reports {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p.reportProgress(i, len(reports), report)
			outcomes[i] = p.processFile(gctx, report)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		infrastructure.RecordError(span, err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &RunResult{Outcomes: outcomes}
	for _, o := range outcomes {
		result.Records = append(result.Records, o.Records...)
	}

	span.SetAttributes(attribute.Int("records", len(result.Records)))
	p.logger.InfoContext(ctx, "extraction complete",
		slog.Int("files", len(reports)),
		slog.Int("files_used", result.FilesUsed()),
		slog.Int("records", len(result.Records)))

	if len(result.Records) == 0 {
		err := apperrors.NewNoDataError("no report yielded a record", ErrNoDataExtracted).
			WithContext("files", len(reports))
		infrastructure.RecordError(span, err)
		return result, err
	}
	return result, nil
}

func (p *Pipeline) processFile(ctx context.Context, report files.FileInfo) FileOutcome {
	ctx, span := p.telemetry.StartSpan(ctx, "pipeline.file",
		attribute.String("file", report.Name))
	defer span.End()

	start := time.Now()
	layout, records, err := p.parse(report.Path)
	outcome := FileOutcome{
		File:    report,
		Layout:  layout,
		Records: records,
		Err:     err,
		Elapsed: time.Since(start),
	}

	switch {
	case errors.Is(err, ErrUnrecognizedLayout):
		outcome.Status = infrastructure.OutcomeUnrecognized
		p.logger.InfoContext(ctx, "skipping file with unrecognized layout",
			slog.String("file", report.Name))
	case err != nil:
		outcome.Status = infrastructure.OutcomeFailed
		outcome.Records = nil
		infrastructure.RecordError(span, err)
		infrastructure.WithError(p.logger, err).ErrorContext(ctx, "failed to process file",
			slog.String("file", report.Name))
	default:
		outcome.Status = infrastructure.OutcomeParsed
		p.logger.DebugContext(ctx, "file processed",
			slog.String("file", report.Name),
			slog.String("layout", layout.String()),
			slog.Int("records", len(records)))
	}

	span.SetAttributes(
		attribute.String("layout", layout.String()),
		attribute.String("outcome", outcome.Status),
		attribute.Int("records", len(outcome.Records)))
	p.telemetry.RecordFile(ctx, outcome.Status, len(outcome.Records), outcome.Elapsed)
	return outcome
}

func (p *Pipeline) reportProgress(index, total int, report files.FileInfo) {
	if p.progress == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress(index, total, report)
}
