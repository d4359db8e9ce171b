package pipeline

import (
	"strings"

	"vmolist/internal"
)

type RowKind string

const (
	RowBlank      RowKind = "blank"
	RowCaption    RowKind = "caption"
	RowMakeHeader RowKind = "make_header"
	RowModel      RowKind = "model"
)

const makeSeparator = ":"

// ClassifyRow looks at a single row in isolation. Whether a model row is kept
// depends on the make context carried by Builder.
func ClassifyRow(row internal.RawRow, captions []string) RowKind {
	col0 := strings.TrimSpace(row.Col0)
	if col0 == "" {
		return RowBlank
	}
	for _, caption := range captions {
		if strings.Contains(col0, caption) {
			return RowCaption
		}
	}
	if strings.Contains(col0, makeSeparator) && isBlankCell(row.Col1) {
		return RowMakeHeader
	}
	return RowModel
}

// isBlankCell treats the literal "nan" some exporters write for empty cells as blank.
func isBlankCell(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || v == "nan"
}

func splitMakeHeader(col0 string) (code, rawName string) {
	parts := strings.SplitN(col0, makeSeparator, 2)
	code = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		rawName = strings.TrimSpace(parts[1])
	}
	return code, rawName
}
