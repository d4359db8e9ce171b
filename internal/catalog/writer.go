package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"vmolist/internal"
)

// WriteJSON writes entries as an indented JSON array, keeping their order.
func WriteJSON(path string, entries []internal.CatalogEntry) error {
	staged, err := StageJSON(path, entries)
	if err != nil {
		return err
	}
	defer staged.Discard()
	return staged.Commit()
}

// Staged is a catalog written next to its destination and not yet visible there.
type Staged struct {
	path string
	tmp  string
}

// StageJSON writes entries to a temporary file in the directory of path.
// Commit moves it into place; Discard removes it.
func StageJSON(path string, entries []internal.CatalogEntry) (*Staged, error) {
	blob, err := MarshalEntries(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrSinkFailed, err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrSinkFailed, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrSinkFailed, err)
	}
	staged := &Staged{path: path, tmp: f.Name()}
	if _, err := f.Write(blob); err != nil {
		_ = f.Close()
		staged.Discard()
		return nil, fmt.Errorf("%w: %v", internal.ErrSinkFailed, err)
	}
	if err := f.Close(); err != nil {
		staged.Discard()
		return nil, fmt.Errorf("%w: %v", internal.ErrSinkFailed, err)
	}
	if err := os.Chmod(staged.tmp, 0o644); err != nil {
		staged.Discard()
		return nil, fmt.Errorf("%w: %v", internal.ErrSinkFailed, err)
	}
	return staged, nil
}

func (s *Staged) Commit() error {
	if err := os.Rename(s.tmp, s.path); err != nil {
		return fmt.Errorf("%w: %v", internal.ErrSinkFailed, err)
	}
	s.tmp = ""
	return nil
}

func (s *Staged) Discard() {
	if s.tmp == "" {
		return
	}
	_ = os.Remove(s.tmp)
	s.tmp = ""
}

func MarshalEntries(entries []internal.CatalogEntry) ([]byte, error) {
	if entries == nil {
		entries = []internal.CatalogEntry{}
	}
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ReadJSON(path string) ([]internal.CatalogEntry, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrSourceUnavailable, err)
	}
	return UnmarshalEntries(blob)
}

func UnmarshalEntries(blob []byte) ([]internal.CatalogEntry, error) {
	var entries []internal.CatalogEntry
	if err := json.Unmarshal(blob, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrInvalidCatalog, err)
	}
	return entries, nil
}
