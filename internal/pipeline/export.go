package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"vmolist/internal"
)

func ExportSkippedToXLSX(rows []internal.SkippedRow, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	writeHeader(f, sheet, []string{"row", "col0", "col1", "id", "reason"})
	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, row.RowNumber)
		set(2, row.Col0)
		set(3, row.Col1)
		set(4, row.ID)
		set(5, string(row.Reason))
	}

	return saveAs(f, outputPath)
}

func ExportAuditToXLSX(report AuditReport, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), "kept"); err != nil {
		return err
	}
	if _, err := f.NewSheet("dropped"); err != nil {
		return err
	}

	for sheet, names := range map[string][]MakeName{"kept": report.Kept, "dropped": report.Dropped} {
		writeHeader(f, sheet, []string{"code", "raw_name", "normalized_name"})
		for i, n := range names {
			r := i + 2
			for col, value := range []string{n.Code, n.Raw, n.Normalized} {
				cell, _ := excelize.CoordinatesToCellName(col+1, r)
				_ = f.SetCellValue(sheet, cell, value)
			}
		}
	}

	return saveAs(f, outputPath)
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
}

func saveAs(f *excelize.File, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
