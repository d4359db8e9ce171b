package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func auditRows() AuditReport {
	rows := rowsOf(
		[2]string{"Model (VMO)", "Description"},
		[2]string{"10: FORD MOTOR CO PART OF X", ""},
		[2]string{"F1", "Focus"},
		[2]string{"10: FORD MOTOR CO PART OF X", ""},
		[2]string{"12: LADA", ""},
		[2]string{"99: RAM TRUCKS CHNGD FRM DODGE", "nan"},
		[2]string{"13: CRAWFORD", ""},
	)
	return AuditMakes(rows, testRuleset())
}

func TestAuditMakes(t *testing.T) {
	report := auditRows()

	require.Len(t, report.Kept, 2)
	assert.Equal(t, MakeName{Code: "10", Raw: "FORD MOTOR CO PART OF X", Normalized: "FORD MOTOR CO"}, report.Kept[0])
	assert.Equal(t, "RAM TRUCKS CHNGD FRM DODGE", report.Kept[1].Raw)
	assert.Equal(t, "RAM TRUCKS", report.Kept[1].Normalized)

	require.Len(t, report.Dropped, 2)
	assert.Equal(t, "CRAWFORD", report.Dropped[0].Raw)
	assert.Equal(t, "LADA", report.Dropped[1].Raw)
}

func TestExportAuditToXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "audit.xlsx")
	require.NoError(t, ExportAuditToXLSX(auditRows(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	kept, err := f.GetRows("kept")
	require.NoError(t, err)
	require.Len(t, kept, 3)
	assert.Equal(t, []string{"code", "raw_name", "normalized_name"}, kept[0])
	assert.Equal(t, []string{"10", "FORD MOTOR CO PART OF X", "FORD MOTOR CO"}, kept[1])

	dropped, err := f.GetRows("dropped")
	require.NoError(t, err)
	require.Len(t, dropped, 3)
	assert.Equal(t, []string{"12", "LADA", "LADA"}, dropped[2])
}

func TestExportSkippedToXLSX(t *testing.T) {
	res := Convert(rowsOf(
		[2]string{"99: RAM", ""},
		[2]string{"TOOLONGCODE", "note"},
		[2]string{"TRK", "Truck"},
		[2]string{"TRK", "Truck"},
	), testRuleset(), nil)

	path := filepath.Join(t.TempDir(), "skipped.xlsx")
	require.NoError(t, ExportSkippedToXLSX(res.Skipped, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"row", "col0", "col1", "id", "reason"}, rows[0])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "TOOLONGCODE", rows[1][1])
	assert.Equal(t, "too long", rows[1][4])
	assert.Equal(t, []string{"4", "TRK", "Truck", "model-99-TRK", "duplicate id"}, rows[2])
}
