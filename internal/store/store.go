package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "acxroyalty/internal/errors"
	"acxroyalty/internal/infrastructure"
	"acxroyalty/pkg/contracts/domain"
)

// Run is one invocation of the merge
type Run struct {
	ID         string
	StartedAt  time.Time
	InputDir   string
	OutputPath string
	FilesFound int
	FilesUsed  int
	Titles     int
}

// SourceFile records what one report contributed to a run
type SourceFile struct {
	Path        string
	Layout      string
	Status      string
	Records     int
	Error       string
	Fingerprint string
}

// PriorIngest identifies an earlier run that read a file with the same contents
type PriorIngest struct {
	RunID     string
	Path      string
	StartedAt time.Time
}

// Store is the SQLite run ledger
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the ledger at path and applies migrations.
// ":memory:" opens a private in-memory ledger.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "store")
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, apperrors.NewStorageError("failed to create ledger directory", err)
		}
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite3", path+sep+"_foreign_keys=on")
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open ledger", err)
	}
	// Single connection: SQLite serializes writers and ":memory:" is per-connection.
	db.SetMaxOpenConns(1)

	if err := InitDB(db); err != nil {
		db.Close()
		return nil, apperrors.NewStorageError("failed to migrate ledger", err).WithContext("path", path)
	}

	logger.Debug("run ledger opened", slog.String("path", path))
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a run, its source files and its merged table in one transaction
func (s *Store) SaveRun(ctx context.Context, run Run, sources []SourceFile, table []domain.RoyaltyRecord) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStorageError("failed to begin transaction", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, input_dir, output_path, files_found, files_used, titles)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.InputDir, run.OutputPath, run.FilesFound, run.FilesUsed, run.Titles)
	if err != nil {
		return apperrors.NewStorageError("failed to insert run", err).WithContext("run_id", run.ID)
	}

	for i, f := range sources {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO source_files (run_id, position, path, layout, status, records, error, blake2b)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, f.Path, f.Layout, f.Status, f.Records, f.Error, f.Fingerprint)
		if err != nil {
			return apperrors.NewStorageError("failed to insert source file", err).WithContext("file", f.Path)
		}
	}

	for i := range table {
		r := &table[i]
		_, err = tx.ExecContext(ctx,
			`INSERT INTO title_summaries (run_id, position, title, asin, series, series_order, series_name,
			   distribution, audiobooks, gross_royalties, net_royalties)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, r.Title, nullString(r.ASIN), nullString(r.Series), nullString(r.SeriesOrder),
			nullString(r.SeriesName), nullString(r.Distribution),
			r.Audiobooks.String(), r.GrossRoyalties.String(), r.NetRoyalties.String())
		if err != nil {
			return apperrors.NewStorageError("failed to insert title summary", err).WithContext("title", r.Title)
		}
	}

	if err = tx.Commit(); err != nil {
		return apperrors.NewStorageError("failed to commit run", err)
	}

	s.logger.InfoContext(ctx, "run recorded in ledger",
		slog.String("run_id", run.ID),
		slog.Int("source_files", len(sources)),
		slog.Int("titles", len(table)))
	return nil
}

// GetRun loads a run by id
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, started_at, input_dir, output_path, files_found, files_used, titles
		 FROM runs WHERE run_id = ?`, id).
		Scan(&run.ID, &run.StartedAt, &run.InputDir, &run.OutputPath, &run.FilesFound, &run.FilesUsed, &run.Titles)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("run %s", id))
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to load run", err)
	}
	return &run, nil
}

// LatestRun loads the most recently started run
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT run_id FROM runs ORDER BY started_at DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("run")
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query runs", err)
	}
	return s.GetRun(ctx, id)
}

// SourceFiles lists a run's source files in discovery order
func (s *Store) SourceFiles(ctx context.Context, runID string) ([]SourceFile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, layout, status, records, error, blake2b
		 FROM source_files WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query source files", err)
	}
	defer rows.Close()

	var out []SourceFile
	for rows.Next() {
		var f SourceFile
		if err := rows.Scan(&f.Path, &f.Layout, &f.Status, &f.Records, &f.Error, &f.Fingerprint); err != nil {
			return nil, apperrors.NewStorageError("failed to scan source file", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// TitleSummaries loads a run's merged table in output order
func (s *Store) TitleSummaries(ctx context.Context, runID string) ([]domain.RoyaltyRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, asin, series, series_order, series_name, distribution,
		   audiobooks, gross_royalties, net_royalties
		 FROM title_summaries WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query title summaries", err)
	}
	defer rows.Close()

	var out []domain.RoyaltyRecord
	for rows.Next() {
		var (
			title                                         string
			asin, series, seriesOrder, seriesName, distro sql.NullString
			units, gross, net                             string
		)
		if err := rows.Scan(&title, &asin, &series, &seriesOrder, &seriesName, &distro, &units, &gross, &net); err != nil {
			return nil, apperrors.NewStorageError("failed to scan title summary", err)
		}

		r := domain.NewRoyaltyRecord(title)
		r.ASIN = fromNull(asin)
		r.Series = fromNull(series)
		r.SeriesOrder = fromNull(seriesOrder)
		r.SeriesName = fromNull(seriesName)
		r.Distribution = fromNull(distro)
		if r.Audiobooks, err = decimal.NewFromString(units); err != nil {
			return nil, apperrors.NewStorageError("corrupt audiobooks value", err).WithContext("title", title)
		}
		if r.GrossRoyalties, err = decimal.NewFromString(gross); err != nil {
			return nil, apperrors.NewStorageError("corrupt gross royalties value", err).WithContext("title", title)
		}
		if r.NetRoyalties, err = decimal.NewFromString(net); err != nil {
			return nil, apperrors.NewStorageError("corrupt net royalties value", err).WithContext("title", title)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FindPriorIngest returns the most recent earlier run that read a file with
// the given fingerprint, or nil when there is none
func (s *Store) FindPriorIngest(ctx context.Context, fingerprint string) (*PriorIngest, error) {
	if fingerprint == "" {
		return nil, nil
	}

	var p PriorIngest
	err := s.db.QueryRowContext(ctx,
		`SELECT r.run_id, f.path, r.started_at
		 FROM source_files f JOIN runs r ON r.run_id = f.run_id
		 WHERE f.blake2b = ?
		 ORDER BY r.started_at DESC LIMIT 1`, fingerprint).
		Scan(&p.RunID, &p.Path, &p.StartedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to look up fingerprint", err)
	}
	return &p, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
