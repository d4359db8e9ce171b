package connectors

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"

	"vmolist/internal"
	"vmolist/internal/util"
)

// parseHTMLTable reads the first table that has any rows.
func parseHTMLTable(content []byte) ([]internal.RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	out := []internal.RawRow{}
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		if rows.Length() == 0 {
			return true
		}
		rows.Each(func(i int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, util.NormalizeSpaces(cell.Text()))
			})
			out = append(out, toRawRow(i+1, cells))
		})
		return false
	})
	return out, nil
}
