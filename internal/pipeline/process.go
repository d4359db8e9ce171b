package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vmolist/internal"
	"vmolist/internal/catalog"
	"vmolist/internal/config"
	"vmolist/internal/connectors"
	"vmolist/internal/storage"
)

type ConversionService struct {
	db     *storage.DB
	cfg    config.Config
	rules  Ruleset
	logger *zap.Logger
}

// NewConversionService wires the sinks. db may be nil to write the JSON catalog only.
func NewConversionService(db *storage.DB, cfg config.Config, rules config.Rules, logger *zap.Logger) *ConversionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversionService{db: db, cfg: cfg, rules: NewRuleset(rules), logger: logger}
}

type RunResult struct {
	RunID         string
	Stats         internal.RunStats
	Skipped       []internal.SkippedRow
	CatalogPath   string
	SkippedReport string
}

func (s *ConversionService) Run(ctx context.Context, reader connectors.RowReader, source string, inputType internal.InputType) (RunResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("runId", runID), zap.String("source", source))

	rows, err := reader.ReadRows(ctx)
	if err != nil {
		return RunResult{}, sourceError(err)
	}
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	logger.Debug("rows loaded", zap.Int("rows", len(rows)))

	res := Convert(rows, s.rules, logger)

	// The JSON catalog only replaces the old one once the database has the run.
	staged, err := catalog.StageJSON(s.cfg.CatalogPath, res.Entries)
	if err != nil {
		return RunResult{}, err
	}
	defer staged.Discard()
	if err := s.store(runID, source, inputType, res); err != nil {
		return RunResult{}, fmt.Errorf("%w: %v", internal.ErrSinkFailed, err)
	}
	if err := staged.Commit(); err != nil {
		return RunResult{}, err
	}

	out := RunResult{RunID: runID, Stats: res.Stats, Skipped: res.Skipped, CatalogPath: s.cfg.CatalogPath}
	if s.cfg.ExportSkipped && len(res.Skipped) > 0 {
		out.SkippedReport = filepath.Join(s.cfg.OutputDir, fmt.Sprintf("skipped_%s.xlsx", runID))
		if err := ExportSkippedToXLSX(res.Skipped, out.SkippedReport); err != nil {
			return RunResult{}, fmt.Errorf("%w: %v", internal.ErrSinkFailed, err)
		}
	}

	logger.Info("catalog converted",
		zap.Int("rows", res.Stats.Rows),
		zap.Int("makes", res.Stats.MakesKept),
		zap.Int("makesDropped", res.Stats.MakesDropped),
		zap.Int("models", res.Stats.Models),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("entries", res.Stats.Entries),
		zap.Duration("took", time.Since(start)),
	)
	return out, nil
}

func (s *ConversionService) store(runID, source string, inputType internal.InputType, res Result) error {
	if s.db == nil {
		return nil
	}
	return s.db.SaveRun(storage.RunRecord{
		RunID:     runID,
		Source:    source,
		InputType: inputType,
		Entries:   res.Entries,
		Skipped:   res.Skipped,
		Stats:     res.Stats,
	})
}

func sourceError(err error) error {
	if errors.Is(err, internal.ErrSourceUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", internal.ErrSourceUnavailable, err)
}
