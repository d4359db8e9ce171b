package pipeline

import (
	"go.uber.org/zap"

	"vmolist/internal"
)

type Result struct {
	Entries []internal.CatalogEntry
	Skipped []internal.SkippedRow
	Stats   internal.RunStats
}

// Convert runs every row through a fresh Builder and dedupes what it emitted.
func Convert(rows []internal.RawRow, rules Ruleset, logger *zap.Logger) Result {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := NewBuilder(rules, logger)

	res := Result{Stats: internal.RunStats{Rows: len(rows)}}
	emitted := make([]internal.CatalogEntry, 0, len(rows))
	sources := make([]internal.RawRow, 0, len(rows))

	for _, row := range rows {
		out := b.Step(row)
		switch {
		case out.Kind == RowBlank || out.Kind == RowCaption || out.Orphan:
			res.Stats.Ignored++
		case out.MakeDropped:
			res.Stats.MakesDropped++
		case out.Skip != nil:
			res.addSkip(*out.Skip)
		}

		if out.Entry == nil {
			continue
		}
		emitted = append(emitted, *out.Entry)
		sources = append(sources, row)
	}

	kept, dropped := Dedupe(emitted)
	for _, idx := range dropped {
		src := sources[idx]
		logger.Debug("duplicate id dropped", zap.String("id", emitted[idx].ID), zap.Int("row", src.RowNumber))
		res.addSkip(internal.SkippedRow{
			RowNumber: src.RowNumber,
			Col0:      src.Col0,
			Col1:      src.Col1,
			ID:        emitted[idx].ID,
			Reason:    internal.SkipDuplicateID,
		})
	}

	// Make and model counts describe the written catalog.
	for _, e := range kept {
		if e.Type == internal.EntryMake {
			res.Stats.MakesKept++
		} else {
			res.Stats.Models++
		}
	}
	res.Entries = kept
	res.Stats.Entries = len(kept)
	return res
}

func (r *Result) addSkip(s internal.SkippedRow) {
	r.Skipped = append(r.Skipped, s)
	switch s.Reason {
	case internal.SkipTooLong:
		r.Stats.SkippedLong++
	case internal.SkipWhitespace:
		r.Stats.SkippedSpaced++
	case internal.SkipDuplicateID:
		r.Stats.Duplicates++
	}
}
