package report

import (
	"bytes"
	"testing"
	"time"

	"qa-warehouse-api-server/internal/kpi"
	"qa-warehouse-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRecordsWorkbook(t *testing.T) {
	f, err := Records([]models.InspectionRecord{
		{InspectionID: "INS-001", WorkOrder: "WO-101", Result: models.RecordApproved, DefectRate: 0.5},
		{InspectionID: "INS-002", WorkOrder: "WO-102", Result: models.RecordRejected, Reopened: true},
	})
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Inspection Records"}, f.GetSheetList())
	rows, err := f.GetRows("Inspection Records")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Inspection ID", rows[0][0])
	assert.Equal(t, "INS-002", rows[2][0])
	assert.Equal(t, "Rejected", rows[2][4])
	assert.Equal(t, "Yes", rows[2][11])
}

func TestSummaryWorkbookRoundTrip(t *testing.T) {
	s := QASummary{
		From: "2025-03-01", To: "2025-03-31",
		Inspections: 4, Approved: 3, Rejected: 1, RejectionRate: 25,
		TopDefects:   kpi.Ranked(map[string]int{"Loose thread": 3, "Stain": 1}),
		CAPAByStatus: map[models.CAPAStatus]int{models.CAPAOpen: 2, models.CAPAVerified: 1},
		GeneratedAt:  time.Date(2025, 3, 31, 8, 0, 0, 0, time.UTC),
	}
	f, err := Summary(s)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	f.Close()

	back, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer back.Close()

	assert.Equal(t, []string{"Overview", "Top Defects", "CAPA", "Overdue"}, back.GetSheetList())
	defects, _ := back.GetRows("Top Defects")
	require.Len(t, defects, 3)
	assert.Equal(t, "Loose thread", defects[1][0])
	assert.Equal(t, "75", defects[1][2])

	capa, _ := back.GetRows("CAPA")
	require.Len(t, capa, 5)
	assert.Equal(t, []string{"Open", "2"}, capa[1])
	assert.Equal(t, []string{"In Progress", "0"}, capa[2])

	overdue, _ := back.GetRows("Overdue")
	assert.Len(t, overdue, 1)
}

func TestFilename(t *testing.T) {
	at := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "inspection-records_2025-03-10.xlsx", Filename("inspection-records", at))
}
