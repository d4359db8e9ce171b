package connectors

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"vmolist/internal"
)

// Columns in extracted PDF text are separated by a tab or a run of spaces.
var rePDFColumnGap = regexp.MustCompile(`\t+|\s{2,}`)

func parsePDF(content []byte) ([]internal.RawRow, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	return collectPDFRows(r.NumPage(), func(n int) (string, error) {
		p := r.Page(n)
		if p.V.IsNull() {
			return "", nil
		}
		return p.GetPlainText(nil)
	})
}

// collectPDFRows numbers lines across pages. A page that cannot be read fails the
// whole document so no rows go missing unnoticed.
func collectPDFRows(numPages int, pageText func(n int) (string, error)) ([]internal.RawRow, error) {
	out := []internal.RawRow{}
	lineNo := 0
	for i := 1; i <= numPages; i++ {
		text, err := pageText(i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		if text == "" {
			continue
		}
		for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
			lineNo++
			out = append(out, toRawRow(lineNo, splitPDFLine(line)))
		}
	}
	return out, nil
}

func splitPDFLine(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	return rePDFColumnGap.Split(line, 2)
}
