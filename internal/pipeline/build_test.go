package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vmolist/internal"
	"vmolist/internal/config"
)

func TestBuilderMakeHeader(t *testing.T) {
	b := NewBuilder(testRuleset(), zap.NewNop())

	out := b.Step(internal.RawRow{RowNumber: 1, Col0: "99: RAM TRUCKS CHNGD FRM DODGE", Col1: "nan"})
	require.NotNil(t, out.Entry)
	assert.Equal(t, RowMakeHeader, out.Kind)
	assert.Equal(t, internal.CatalogEntry{
		ID:          "make-99",
		Type:        internal.EntryMake,
		Code:        "99",
		Model:       "",
		Description: "RAM TRUCKS",
		MakeCode:    "99",
		MakeName:    "RAM TRUCKS",
		SearchTerms: "99 RAM TRUCKS",
	}, *out.Entry)

	state := b.State()
	assert.True(t, state.Included)
	require.NotNil(t, state.Current)
	assert.Equal(t, internal.MakeRecord{Code: "99", Name: "RAM TRUCKS"}, *state.Current)
}

func TestBuilderDroppedMakeClosesContext(t *testing.T) {
	b := NewBuilder(testRuleset(), zap.NewNop())

	b.Step(internal.RawRow{RowNumber: 1, Col0: "99: RAM"})
	out := b.Step(internal.RawRow{RowNumber: 2, Col0: "12: LADA (USSR)"})
	assert.True(t, out.MakeDropped)
	assert.Nil(t, out.Entry)
	require.NotNil(t, out.Make)
	assert.Equal(t, "LADA", out.Make.Name)
	assert.Equal(t, State{}, b.State())

	out = b.Step(internal.RawRow{RowNumber: 3, Col0: "NIVA", Col1: "Niva 4x4"})
	assert.True(t, out.Orphan)
	assert.Nil(t, out.Entry)
	assert.Nil(t, out.Skip)
}

func TestBuilderModelRows(t *testing.T) {
	b := NewBuilder(testRuleset(), zap.NewNop())
	b.Step(internal.RawRow{RowNumber: 1, Col0: "99: RAM TRUCKS CHNGD FRM DODGE"})

	t.Run("accepted", func(t *testing.T) {
		out := b.Step(internal.RawRow{RowNumber: 2, Col0: "TRK", Col1: "Truck 1500"})
		require.NotNil(t, out.Entry)
		assert.Nil(t, out.Skip)
		assert.Equal(t, internal.CatalogEntry{
			ID:          "model-99-TRK",
			Type:        internal.EntryModel,
			Code:        "TRK",
			Model:       "TRK",
			Description: "Truck 1500",
			MakeCode:    "99",
			MakeName:    "RAM TRUCKS",
			SearchTerms: "99 RAM TRUCKS TRK Truck 1500",
		}, *out.Entry)
	})

	t.Run("eight runes is still a code", func(t *testing.T) {
		out := b.Step(internal.RawRow{RowNumber: 3, Col0: "ABCDEFGH"})
		require.NotNil(t, out.Entry)
		assert.Equal(t, "", out.Entry.Description)
		assert.Equal(t, "99 RAM TRUCKS ABCDEFGH ", out.Entry.SearchTerms)
	})

	t.Run("nan description", func(t *testing.T) {
		out := b.Step(internal.RawRow{RowNumber: 4, Col0: "R1", Col1: "nan"})
		require.NotNil(t, out.Entry)
		assert.Equal(t, "", out.Entry.Description)
	})

	cases := []struct {
		name   string
		row    internal.RawRow
		reason internal.SkipReason
		id     string
	}{
		{name: "too long", row: internal.RawRow{RowNumber: 5, Col0: "TOOLONGCODE", Col1: "note"}, reason: internal.SkipTooLong},
		{name: "whitespace", row: internal.RawRow{RowNumber: 6, Col0: "A B", Col1: "x"}, reason: internal.SkipWhitespace},
		{name: "tab", row: internal.RawRow{RowNumber: 7, Col0: "A\tB"}, reason: internal.SkipWhitespace},
		{name: "duplicate", row: internal.RawRow{RowNumber: 8, Col0: "TRK", Col1: "Truck 2500"}, reason: internal.SkipDuplicateID, id: "model-99-TRK"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := b.Step(tc.row)
			assert.Nil(t, out.Entry)
			require.NotNil(t, out.Skip)
			assert.Equal(t, tc.reason, out.Skip.Reason)
			assert.Equal(t, tc.id, out.Skip.ID)
			assert.Equal(t, tc.row.RowNumber, out.Skip.RowNumber)
			assert.Equal(t, tc.row.Col0, out.Skip.Col0)
		})
	}
}

func TestBuilderModelBeforeAnyHeader(t *testing.T) {
	b := NewBuilder(testRuleset(), nil)
	out := b.Step(internal.RawRow{RowNumber: 1, Col0: "TRK", Col1: "Truck"})
	assert.True(t, out.Orphan)
	assert.Nil(t, out.Entry)
}

func TestBuilderSameModelCodeUnderTwoMakes(t *testing.T) {
	b := NewBuilder(testRuleset(), nil)
	b.Step(internal.RawRow{Col0: "99: RAM"})
	first := b.Step(internal.RawRow{Col0: "TRK"})
	b.Step(internal.RawRow{Col0: "10: FORD MOTOR CO"})
	second := b.Step(internal.RawRow{Col0: "TRK"})

	require.NotNil(t, first.Entry)
	require.NotNil(t, second.Entry)
	assert.Equal(t, "model-99-TRK", first.Entry.ID)
	assert.Equal(t, "model-10-TRK", second.Entry.ID)
	assert.Equal(t, "FORD MOTOR CO", second.Entry.MakeName)
}

func TestBuilderLowercaseRulesFile(t *testing.T) {
	rules, err := config.ParseRules([]byte("majorMakes: [ram]\nnoiseMarkers: [' chngd']\n"))
	require.NoError(t, err)

	b := NewBuilder(NewRuleset(rules), nil)
	out := b.Step(internal.RawRow{RowNumber: 1, Col0: "99: RAM TRUCKS CHNGD FRM DODGE"})
	require.NotNil(t, out.Entry)
	assert.Equal(t, "RAM TRUCKS", out.Entry.MakeName)
}
