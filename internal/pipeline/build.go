package pipeline

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"vmolist/internal"
	"vmolist/internal/config"
)

// Ruleset is config.Rules prepared for matching.
type Ruleset struct {
	Allow    AllowList
	Markers  []string
	Captions []string
}

func NewRuleset(rules config.Rules) Ruleset {
	return Ruleset{
		Allow:    NewAllowList(rules.MajorMakes),
		Markers:  rules.NoiseMarkers,
		Captions: rules.HeaderCaptions,
	}
}

// State is the make context carried from one row to the next.
type State struct {
	Current  *internal.MakeRecord
	Included bool
}

// Outcome describes what a single row did to the catalog.
type Outcome struct {
	Kind  RowKind
	Entry *internal.CatalogEntry
	Skip  *internal.SkippedRow

	// Set for make headers.
	Make        *internal.MakeRecord
	MakeDropped bool

	// Model row seen while no allow-listed make was open.
	Orphan bool
}

type Builder struct {
	rules  Ruleset
	state  State
	seen   map[string]struct{}
	logger *zap.Logger
}

func NewBuilder(rules Ruleset, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{rules: rules, seen: map[string]struct{}{}, logger: logger}
}

func (b *Builder) State() State { return b.state }

// Step applies one row in source order.
func (b *Builder) Step(row internal.RawRow) Outcome {
	kind := ClassifyRow(row, b.rules.Captions)
	switch kind {
	case RowBlank, RowCaption:
		return Outcome{Kind: kind}
	case RowMakeHeader:
		return b.stepMakeHeader(row)
	default:
		if b.state.Current == nil || !b.state.Included {
			b.logger.Debug("model row without active make", zap.Int("row", row.RowNumber), zap.String("code", row.Col0))
			return Outcome{Kind: kind, Orphan: true}
		}
		return b.stepModel(row)
	}
}

func (b *Builder) stepMakeHeader(row internal.RawRow) Outcome {
	code, rawName := splitMakeHeader(strings.TrimSpace(row.Col0))
	name := NormalizeMakeName(rawName, b.rules.Markers)

	major, ok := b.rules.Allow.Match(strings.ToUpper(name))
	if !ok {
		b.state = State{}
		b.logger.Debug("make dropped", zap.Int("row", row.RowNumber), zap.String("code", code), zap.String("name", rawName))
		return Outcome{Kind: RowMakeHeader, Make: &internal.MakeRecord{Code: code, Name: name}, MakeDropped: true}
	}

	current := internal.MakeRecord{Code: code, Name: name}
	b.state = State{Current: &current, Included: true}
	b.logger.Debug("make matched", zap.Int("row", row.RowNumber), zap.String("code", code), zap.String("name", name), zap.String("major", major))

	entry := MakeEntry(current)
	return Outcome{Kind: RowMakeHeader, Entry: &entry, Make: &current}
}

func (b *Builder) stepModel(row internal.RawRow) Outcome {
	modelCode := strings.TrimSpace(row.Col0)
	description := ""
	if !isBlankCell(row.Col1) {
		description = strings.TrimSpace(row.Col1)
	}

	skip := func(reason internal.SkipReason, id string) Outcome {
		b.logger.Debug("model row skipped", zap.Int("row", row.RowNumber), zap.String("code", modelCode), zap.String("reason", string(reason)))
		return Outcome{Kind: RowModel, Skip: &internal.SkippedRow{
			RowNumber: row.RowNumber,
			Col0:      row.Col0,
			Col1:      row.Col1,
			ID:        id,
			Reason:    reason,
		}}
	}

	if utf8.RuneCountInString(modelCode) > internal.MaxModelCodeLen {
		return skip(internal.SkipTooLong, "")
	}
	if strings.IndexFunc(modelCode, unicode.IsSpace) >= 0 {
		return skip(internal.SkipWhitespace, "")
	}

	model := internal.ModelRecord{
		Code:        modelCode,
		Description: description,
		MakeCode:    b.state.Current.Code,
		MakeName:    b.state.Current.Name,
	}
	id := internal.ModelID(model.MakeCode, model.Code)
	if _, ok := b.seen[id]; ok {
		return skip(internal.SkipDuplicateID, id)
	}
	b.seen[id] = struct{}{}

	entry := ModelEntry(model)
	return Outcome{Kind: RowModel, Entry: &entry}
}

func MakeEntry(m internal.MakeRecord) internal.CatalogEntry {
	return internal.CatalogEntry{
		ID:          internal.MakeID(m.Code),
		Type:        internal.EntryMake,
		Code:        m.Code,
		Model:       "",
		Description: m.Name,
		MakeCode:    m.Code,
		MakeName:    m.Name,
		SearchTerms: m.Code + " " + m.Name,
	}
}

func ModelEntry(m internal.ModelRecord) internal.CatalogEntry {
	return internal.CatalogEntry{
		ID:          internal.ModelID(m.MakeCode, m.Code),
		Type:        internal.EntryModel,
		Code:        m.Code,
		Model:       m.Code,
		Description: m.Description,
		MakeCode:    m.MakeCode,
		MakeName:    m.MakeName,
		SearchTerms: strings.Join([]string{m.MakeCode, m.MakeName, m.Code, m.Description}, " "),
	}
}
