package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"vmolist/internal"
)

type DB struct {
	conn *sql.DB
}

type RunRow struct {
	ID        int
	RunID     string
	Source    string
	InputType string
	Stats     internal.RunStats
	CreatedAt string
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId TEXT NOT NULL UNIQUE,
  source TEXT NOT NULL,
  inputType TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS catalog_entries (
  id TEXT PRIMARY KEY,
  runId TEXT NOT NULL,
  position INTEGER NOT NULL,
  type TEXT NOT NULL,
  code TEXT NOT NULL,
  model TEXT NOT NULL,
  description TEXT NOT NULL,
  makeCode TEXT NOT NULL,
  makeName TEXT NOT NULL,
  searchTerms TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_catalog_code ON catalog_entries(code);
CREATE INDEX IF NOT EXISTS idx_catalog_makeCode ON catalog_entries(makeCode);

CREATE TABLE IF NOT EXISTS skipped_rows (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId TEXT NOT NULL,
  rowNo INTEGER NOT NULL,
  col0 TEXT NOT NULL,
  col1 TEXT NOT NULL,
  entryId TEXT NOT NULL,
  reason TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_skipped_runId ON skipped_rows(runId);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// RunRecord is everything one conversion run writes.
type RunRecord struct {
	RunID     string
	Source    string
	InputType internal.InputType
	Entries   []internal.CatalogEntry
	Skipped   []internal.SkippedRow
	Stats     internal.RunStats
}

// SaveRun replaces the catalog and records the run, its skipped rows and the
// catalog.last_run marker in one transaction.
func (d *DB) SaveRun(run RunRecord) error {
	return d.inTx(func(tx *sql.Tx) error {
		if err := replaceCatalog(tx, run.RunID, run.Entries); err != nil {
			return err
		}
		if err := insertSkipped(tx, run.RunID, run.Skipped); err != nil {
			return err
		}
		if err := insertRun(tx, run.RunID, run.Source, run.InputType, run.Stats); err != nil {
			return err
		}
		return setMetadata(tx, "catalog.last_run", run.RunID)
	})
}

// ReplaceCatalog swaps the stored catalog for entries in one transaction.
func (d *DB) ReplaceCatalog(runID string, entries []internal.CatalogEntry) error {
	return d.inTx(func(tx *sql.Tx) error { return replaceCatalog(tx, runID, entries) })
}

func (d *DB) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceCatalog(tx *sql.Tx, runID string, entries []internal.CatalogEntry) error {
	if _, err := tx.Exec(`DELETE FROM catalog_entries`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO catalog_entries (id, runId, position, type, code, model, description, makeCode, makeName, searchTerms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.Exec(e.ID, runID, i, string(e.Type), e.Code, e.Model, e.Description, e.MakeCode, e.MakeName, e.SearchTerms); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) ListCatalog() ([]internal.CatalogEntry, error) {
	rows, err := d.conn.Query(`
SELECT id, type, code, model, description, makeCode, makeName, searchTerms
FROM catalog_entries ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.CatalogEntry
	for rows.Next() {
		var e internal.CatalogEntry
		var entryType string
		if err := rows.Scan(&e.ID, &entryType, &e.Code, &e.Model, &e.Description, &e.MakeCode, &e.MakeName, &e.SearchTerms); err != nil {
			return nil, err
		}
		e.Type = internal.EntryType(entryType)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (d *DB) InsertSkipped(runID string, skipped []internal.SkippedRow) error {
	return d.inTx(func(tx *sql.Tx) error { return insertSkipped(tx, runID, skipped) })
}

func insertSkipped(tx *sql.Tx, runID string, skipped []internal.SkippedRow) error {
	stmt, err := tx.Prepare(`INSERT INTO skipped_rows (runId, rowNo, col0, col1, entryId, reason) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range skipped {
		if _, err := stmt.Exec(runID, s.RowNumber, s.Col0, s.Col1, s.ID, string(s.Reason)); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) ListSkipped(runID string) ([]internal.SkippedRow, error) {
	rows, err := d.conn.Query(`
SELECT rowNo, col0, col1, entryId, reason
FROM skipped_rows WHERE runId = ? ORDER BY id ASC
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.SkippedRow
	for rows.Next() {
		var s internal.SkippedRow
		var reason string
		if err := rows.Scan(&s.RowNumber, &s.Col0, &s.Col1, &s.ID, &reason); err != nil {
			return nil, err
		}
		s.Reason = internal.SkipReason(reason)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (d *DB) InsertRun(runID, source string, inputType internal.InputType, stats internal.RunStats) error {
	return d.inTx(func(tx *sql.Tx) error { return insertRun(tx, runID, source, inputType, stats) })
}

func insertRun(tx *sql.Tx, runID, source string, inputType internal.InputType, stats internal.RunStats) error {
	countsJSON, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`INSERT INTO runs (runId, source, inputType, countsJson) VALUES (?, ?, ?, ?)`, runID, source, string(inputType), string(countsJSON))
	return err
}

func (d *DB) GetRun(runID string) (*RunRow, error) {
	var row RunRow
	var inputType, countsJSON string
	err := d.conn.QueryRow(`
SELECT id, runId, source, inputType, countsJson, createdAt
FROM runs WHERE runId = ?
`, runID).Scan(&row.ID, &row.RunID, &row.Source, &inputType, &countsJSON, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	row.InputType = inputType
	_ = json.Unmarshal([]byte(countsJSON), &row.Stats)
	return &row, nil
}

func (d *DB) SetMetadata(key, value string) error {
	return d.inTx(func(tx *sql.Tx) error { return setMetadata(tx, key, value) })
}

func setMetadata(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
