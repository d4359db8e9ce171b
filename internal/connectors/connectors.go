package connectors

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vmolist/internal"
)

// RowReader yields the two leftmost cells of every source row, top to bottom.
type RowReader interface {
	ReadRows(ctx context.Context) ([]internal.RawRow, error)
}

type FileReader struct {
	Path  string
	Type  internal.InputType
	Sheet string
}

// NewFileReader picks the reader from inputType, or from the file extension when it is empty.
func NewFileReader(path, inputType, sheet string) (*FileReader, error) {
	t := internal.InputType(strings.ToLower(strings.TrimSpace(inputType)))
	if t == "" {
		detected, err := DetectInputType(path)
		if err != nil {
			return nil, err
		}
		t = detected
	}
	switch t {
	case internal.InputXLSX, internal.InputCSV, internal.InputHTML, internal.InputPDF, internal.InputEML:
	default:
		return nil, fmt.Errorf("%w: %s", internal.ErrUnsupportedInput, inputType)
	}
	return &FileReader{Path: path, Type: t, Sheet: sheet}, nil
}

func (r *FileReader) ReadRows(ctx context.Context) ([]internal.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	blob, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrSourceUnavailable, err)
	}
	rows, err := parseContent(r.Type, blob, r.Sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internal.ErrSourceUnavailable, r.Path, err)
	}
	return rows, nil
}

func DetectInputType(path string) (internal.InputType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return internal.InputXLSX, nil
	case ".csv":
		return internal.InputCSV, nil
	case ".html", ".htm":
		return internal.InputHTML, nil
	case ".pdf":
		return internal.InputPDF, nil
	case ".eml":
		return internal.InputEML, nil
	default:
		return "", fmt.Errorf("%w: %s", internal.ErrUnsupportedInput, path)
	}
}

func parseContent(t internal.InputType, blob []byte, sheet string) ([]internal.RawRow, error) {
	switch t {
	case internal.InputXLSX:
		// Older systems write HTML tables with an .xls extension.
		if looksLikeHTML(blob) {
			return parseHTMLTable(blob)
		}
		return parseXLSX(blob, sheet)
	case internal.InputCSV:
		return parseCSV(blob)
	case internal.InputHTML:
		return parseHTMLTable(blob)
	case internal.InputPDF:
		return parsePDF(blob)
	case internal.InputEML:
		return parseEML(blob, sheet)
	default:
		return nil, fmt.Errorf("%w: %s", internal.ErrUnsupportedInput, t)
	}
}

func looksLikeHTML(blob []byte) bool {
	head := bytes.TrimSpace(blob)
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.ToLower(head)
	return bytes.HasPrefix(head, []byte("<")) && (bytes.Contains(head, []byte("<html")) || bytes.Contains(head, []byte("<table")) || bytes.Contains(head, []byte("<!doctype")))
}

func toRawRow(rowNumber int, cells []string) internal.RawRow {
	row := internal.RawRow{RowNumber: rowNumber}
	if len(cells) > 0 {
		row.Col0 = strings.TrimSpace(cells[0])
	}
	if len(cells) > 1 {
		row.Col1 = strings.TrimSpace(cells[1])
	}
	return row
}
