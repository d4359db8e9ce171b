package connectors

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"vmolist/internal"
)

func parseCSV(content []byte) ([]internal.RawRow, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	// Excel without a UTF-8 option saves csv as Windows-1252.
	if !utf8.Valid(content) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(content)
		if err != nil {
			return nil, err
		}
		content = decoded
	}
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	out := []internal.RawRow{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := r.FieldPos(0)
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		out = append(out, toRawRow(line, record))
	}
	return out, nil
}
