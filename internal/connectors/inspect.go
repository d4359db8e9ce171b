package connectors

import (
	"strings"

	"vmolist/internal"
)

// FindRows returns rows where either cell contains term, ignoring case.
func FindRows(rows []internal.RawRow, term string) []internal.RawRow {
	needle := strings.ToUpper(strings.TrimSpace(term))
	if needle == "" {
		return nil
	}
	var out []internal.RawRow
	for _, row := range rows {
		if strings.Contains(strings.ToUpper(row.Col0), needle) || strings.Contains(strings.ToUpper(row.Col1), needle) {
			out = append(out, row)
		}
	}
	return out
}

// RowWindow returns rows whose RowNumber is in [from, to).
func RowWindow(rows []internal.RawRow, from, to int) []internal.RawRow {
	var out []internal.RawRow
	for _, row := range rows {
		if row.RowNumber >= from && row.RowNumber < to {
			out = append(out, row)
		}
	}
	return out
}
