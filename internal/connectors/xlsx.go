package connectors

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"vmolist/internal"
)

func parseXLSX(content []byte, sheet string) ([]internal.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet not found: %s", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	out := make([]internal.RawRow, 0, len(rows))
	for i, cells := range rows {
		out = append(out, toRawRow(i+1, cells))
	}
	return out, nil
}
