package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vmolist/internal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestReplaceCatalog(t *testing.T) {
	db := openTestDB(t)

	first := []internal.CatalogEntry{
		{ID: "make-1", Type: internal.EntryMake, Code: "1", Description: "FORD", MakeCode: "1", MakeName: "FORD", SearchTerms: "1 FORD"},
		{ID: "model-1-F1", Type: internal.EntryModel, Code: "F1", Model: "F1", MakeCode: "1", MakeName: "FORD", SearchTerms: "1 FORD F1 "},
	}
	require.NoError(t, db.ReplaceCatalog("run-1", first))

	got, err := db.ListCatalog()
	require.NoError(t, err)
	assert.Equal(t, first, got)

	second := []internal.CatalogEntry{
		{ID: "make-99", Type: internal.EntryMake, Code: "99", Description: "RAM", MakeCode: "99", MakeName: "RAM", SearchTerms: "99 RAM"},
	}
	require.NoError(t, db.ReplaceCatalog("run-2", second))

	got, err = db.ListCatalog()
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestReplaceCatalogRollsBackOnDuplicateID(t *testing.T) {
	db := openTestDB(t)
	keep := []internal.CatalogEntry{{ID: "make-1", Type: internal.EntryMake, Code: "1"}}
	require.NoError(t, db.ReplaceCatalog("run-1", keep))

	err := db.ReplaceCatalog("run-2", []internal.CatalogEntry{{ID: "make-2"}, {ID: "make-2"}})
	require.Error(t, err)

	got, err := db.ListCatalog()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "make-1", got[0].ID)
}

func TestSkippedRows(t *testing.T) {
	db := openTestDB(t)
	skipped := []internal.SkippedRow{
		{RowNumber: 6, Col0: "TOOLONGCODE", Col1: "note", Reason: internal.SkipTooLong},
		{RowNumber: 9, Col0: "TRK", Col1: "Truck", ID: "model-99-TRK", Reason: internal.SkipDuplicateID},
	}
	require.NoError(t, db.InsertSkipped("run-1", skipped))
	require.NoError(t, db.InsertSkipped("run-2", skipped[:1]))

	got, err := db.ListSkipped("run-1")
	require.NoError(t, err)
	assert.Equal(t, skipped, got)

	got, err = db.ListSkipped("run-3")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRuns(t *testing.T) {
	db := openTestDB(t)
	stats := internal.RunStats{Rows: 10, MakesKept: 1, Models: 3, Entries: 4}
	require.NoError(t, db.InsertRun("run-1", "VMO.xlsx", internal.InputXLSX, stats))

	run, err := db.GetRun("run-1")
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "run-1", run.RunID)
	assert.Equal(t, "VMO.xlsx", run.Source)
	assert.Equal(t, "xlsx", run.InputType)
	assert.Equal(t, stats, run.Stats)
	assert.NotEmpty(t, run.CreatedAt)

	assert.Error(t, db.InsertRun("run-1", "again.xlsx", internal.InputXLSX, stats))

	missing, err := db.GetRun("run-404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMetadata(t *testing.T) {
	db := openTestDB(t)

	v, err := db.GetMetadata("catalog.last_run")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, db.SetMetadata("catalog.last_run", "run-1"))
	require.NoError(t, db.SetMetadata("catalog.last_run", "run-2"))

	v, err = db.GetMetadata("catalog.last_run")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "run-2", *v)
}

func TestSaveRun(t *testing.T) {
	db := openTestDB(t)
	run := RunRecord{
		RunID:     "run-1",
		Source:    "VMO.xlsx",
		InputType: internal.InputXLSX,
		Entries:   []internal.CatalogEntry{{ID: "make-99", Type: internal.EntryMake, Code: "99", MakeCode: "99", MakeName: "RAM"}},
		Skipped:   []internal.SkippedRow{{RowNumber: 4, Col0: "A B", Reason: internal.SkipWhitespace}},
		Stats:     internal.RunStats{Rows: 4, MakesKept: 1, SkippedSpaced: 1, Entries: 1},
	}
	require.NoError(t, db.SaveRun(run))

	entries, err := db.ListCatalog()
	require.NoError(t, err)
	assert.Equal(t, run.Entries, entries)

	skipped, err := db.ListSkipped("run-1")
	require.NoError(t, err)
	assert.Equal(t, run.Skipped, skipped)

	stored, err := db.GetRun("run-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, run.Stats, stored.Stats)

	last, err := db.GetMetadata("catalog.last_run")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "run-1", *last)
}

func TestSaveRunIsAllOrNothing(t *testing.T) {
	db := openTestDB(t)
	first := RunRecord{
		RunID:   "run-1",
		Entries: []internal.CatalogEntry{{ID: "make-1", Type: internal.EntryMake, Code: "1"}},
	}
	require.NoError(t, db.SaveRun(first))

	// The run id is taken, so the run insert fails after the catalog was replaced.
	err := db.SaveRun(RunRecord{
		RunID:   "run-1",
		Entries: []internal.CatalogEntry{{ID: "make-2", Type: internal.EntryMake, Code: "2"}},
		Skipped: []internal.SkippedRow{{RowNumber: 3, Col0: "TOOLONGCODE", Reason: internal.SkipTooLong}},
	})
	require.Error(t, err)

	entries, err := db.ListCatalog()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "make-1", entries[0].ID)

	skipped, err := db.ListSkipped("run-1")
	require.NoError(t, err)
	assert.Empty(t, skipped)
}
