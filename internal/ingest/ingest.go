// Package ingest runs a statement import end to end: parse, categorize,
// store in the ledger, and record the run.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/spendcat/internal/categorize"
	"github.com/cleared-dev/spendcat/internal/config"
	"github.com/cleared-dev/spendcat/internal/importer"
	"github.com/cleared-dev/spendcat/internal/importlog"
	"github.com/cleared-dev/spendcat/internal/ledger"
	"github.com/cleared-dev/spendcat/internal/model"
	"github.com/cleared-dev/spendcat/internal/rules"
)

// Report summarizes one imported file.
type Report struct {
	RunID         string
	File          string
	Expenses      []model.Expense // with IDs unless the run was dry
	Skipped       []importer.SkippedRow
	Categorized   int
	Uncategorized int
	ProcessedPath string
}

// Service wires the parser registry, rule set and ledger for one repo.
type Service struct {
	repoRoot string
	cfg      *config.Config
	registry *importer.Registry
	rules    *rules.Service
	ledger   *ledger.Service
	logger   zerolog.Logger
	dryRun   bool
	now      func() time.Time
}

// NewService loads the rule set from repoRoot. In a dry run nothing is
// written or moved.
func NewService(repoRoot string, cfg *config.Config, logger zerolog.Logger, dryRun bool) (*Service, error) {
	rs, err := rules.Load(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}
	return &Service{
		repoRoot: repoRoot,
		cfg:      cfg,
		registry: importer.DefaultRegistry(logger),
		rules:    rs,
		ledger:   ledger.NewService(repoRoot),
		logger:   logger,
		dryRun:   dryRun,
		now:      time.Now,
	}, nil
}

// ImportFile imports the statement at path. The file itself is left in place.
func (s *Service) ImportFile(ctx context.Context, path string) (*Report, error) {
	parser := s.registry.Get(s.cfg.Import.Format)
	if parser == nil {
		return nil, fmt.Errorf("no parser for format %q", s.cfg.Import.Format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	res, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	report := &Report{
		RunID:   uuid.NewString(),
		File:    filepath.Base(path),
		Skipped: res.Skipped,
	}
	log := s.logger.With().Str("run_id", report.RunID).Str("file", report.File).Logger()

	// Rules are loaded and ordered once for the whole batch.
	active := s.rules.Active()
	expenses, err := CategorizeAll(ctx, res.Expenses, active, s.cfg.Import.Concurrency)
	if err != nil {
		return nil, err
	}

	for i := range expenses {
		expenses[i].Source = report.File
		if expenses[i].ProjectID == "" {
			expenses[i].ProjectID = s.cfg.Import.DefaultProjectID
		}
		if expenses[i].IsCategorized() {
			report.Categorized++
		} else {
			report.Uncategorized++
		}
	}

	if s.dryRun {
		report.Expenses = expenses
		log.Info().Int("parsed", len(expenses)).Msg("dry run, nothing written")
		return report, nil
	}

	stored, err := s.ledger.Append(expenses)
	if err != nil {
		return nil, fmt.Errorf("storing expenses: %w", err)
	}
	report.Expenses = stored

	entry := importlog.Entry{
		Timestamp:     s.now(),
		RunID:         report.RunID,
		File:          report.File,
		Parsed:        len(stored),
		Skipped:       len(report.Skipped),
		Categorized:   report.Categorized,
		Uncategorized: report.Uncategorized,
	}
	if err := importlog.Append(s.repoRoot, []importlog.Entry{entry}); err != nil {
		log.Warn().Err(err).Msg("failed to write import log")
	}

	log.Info().
		Int("parsed", len(stored)).
		Int("skipped", len(report.Skipped)).
		Int("categorized", report.Categorized).
		Msg("import complete")
	return report, nil
}

// ImportPending imports every CSV in <repoRoot>/import/ in name order,
// moving each to import/processed/ after it is stored. It stops at the
// first failure; reports for files already imported are still returned.
func (s *Service) ImportPending(ctx context.Context) ([]*Report, error) {
	files, err := importer.Scan(s.repoRoot)
	if err != nil {
		return nil, err
	}

	var reports []*Report
	for _, fi := range files {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		report, err := s.ImportFile(ctx, fi.Path)
		if err != nil {
			return reports, err
		}
		if !s.dryRun && s.cfg.Import.MoveProcessed {
			dst, err := importer.MarkProcessed(s.repoRoot, fi.Name)
			if err != nil {
				return reports, err
			}
			report.ProcessedPath = dst
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// CategorizeAll assigns categories to a copy of expenses using at most
// limit goroutines. Rows already carrying a category keep it.
func CategorizeAll(ctx context.Context, expenses []model.Expense, active []model.Rule, limit int) ([]model.Expense, error) {
	out := make([]model.Expense, len(expenses))
	copy(out, expenses)

	if limit <= 0 {
		limit = 1
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range out {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if out[i].IsCategorized() {
				return nil
			}
			if cat, ok := categorize.Categorize(categorize.FromExpense(out[i]), active); ok {
				out[i].Category = cat
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("categorizing: %w", err)
	}
	return out, nil
}
