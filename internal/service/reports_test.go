package service

import (
	"bytes"
	"context"
	"testing"

	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/report"
	"qa-warehouse-api-server/internal/store"
	"qa-warehouse-api-server/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func seedReportData(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	records := []models.InspectionRecord{
		{InspectionID: "INS-015", Result: models.RecordApproved, DateCompleted: "2026-02-08", DefectTypes: []models.DefectEntry{{Type: "Stitching", Count: 2}}},
		{InspectionID: "INS-014", Result: models.RecordRejected, DateCompleted: "2026-02-07", DefectTypes: []models.DefectEntry{{Type: "Fabric Defect", Count: 6}, {Type: "Stitching", Count: 2}}},
		{InspectionID: "INS-013", Result: models.RecordApproved, DateCompleted: "2026-02-05"},
		{InspectionID: "INS-010", Result: models.RecordApproved, DateCompleted: "2026-01-20", DefectTypes: []models.DefectEntry{{Type: "Color Issue", Count: 9}}},
	}
	for _, r := range records {
		_, err := f.stores.Records.Append(ctx, r)
		require.NoError(t, err)
	}
	capas := []models.CAPA{
		{CAPAID: "CAPA-001", Status: models.CAPAVerified, CreatedDate: "2026-02-03"},
		{CAPAID: "CAPA-002", Status: models.CAPAOpen, CreatedDate: "2026-02-06"},
		{CAPAID: "CAPA-003", Status: models.CAPAInProgress, CreatedDate: "2026-01-15"},
	}
	for _, c := range capas {
		_, err := f.stores.CAPAs.Append(ctx, c)
		require.NoError(t, err)
	}
	_, err := f.svc.Queue.Enqueue(ctx, workflow.QueueRequest{WorkOrderNo: "WO-108", ProductSKU: "SKU-007", Quantity: 350, DueDate: "2026-02-11"})
	require.NoError(t, err)
}

func TestReportSummary(t *testing.T) {
	f := newFixture(t)
	seedReportData(t, f)

	s, err := f.svc.Reports.Summary(context.Background(), "2026-02-01", "2026-02-12")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Inspections)
	assert.Equal(t, 2, s.Approved)
	assert.Equal(t, 1, s.Rejected)
	assert.Equal(t, 33.3, s.RejectionRate)
	require.Len(t, s.TopDefects, 2)
	assert.Equal(t, "Fabric Defect", s.TopDefects[0].Key)
	assert.Equal(t, 60.0, s.TopDefects[0].Share)
	assert.Equal(t, 4, s.TopDefects[1].Count)
	assert.Equal(t, map[models.CAPAStatus]int{models.CAPAVerified: 1, models.CAPAOpen: 1}, s.CAPAByStatus)
	assert.Equal(t, 50.0, s.CAPAClosed)
	require.Len(t, s.Overdue, 1)
	assert.Equal(t, "WO-108", s.Overdue[0].WorkOrderNo)
}

func TestReportSummaryEmptyRange(t *testing.T) {
	f := newFixture(t)
	s, err := f.svc.Reports.Summary(context.Background(), "", "")
	require.NoError(t, err)
	assert.Zero(t, s.RejectionRate)
	assert.Empty(t, s.TopDefects)
	assert.NotNil(t, s.Overdue)
}

func TestReportSummaryBadRange(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Reports.Summary(context.Background(), "2026-02-12", "2026-02-01")
	assert.True(t, workflow.IsValidation(err))
	_, err = f.svc.Reports.Summary(context.Background(), "Feb 1", "")
	assert.True(t, workflow.IsValidation(err))
}

func TestReportPublish(t *testing.T) {
	f := newFixture(t)
	seedReportData(t, f)

	url, err := f.svc.Reports.Publish(context.Background(), "2026-02-01", "2026-02-12")
	require.NoError(t, err)
	assert.Equal(t, "reports/qa-report_2026-02-12.xlsx", f.uploader.key)
	assert.Equal(t, report.ContentType, f.uploader.contentType)
	assert.Equal(t, "https://cdn.example.com/reports/qa-report_2026-02-12.xlsx", url)

	wb, err := excelize.OpenReader(bytes.NewReader(f.uploader.body))
	require.NoError(t, err)
	defer wb.Close()
	assert.Equal(t, []string{"Overview", "Top Defects", "CAPA", "Overdue"}, wb.GetSheetList())
}

func TestReportPublishDisabled(t *testing.T) {
	svc := New(Deps{Stores: store.NewMemoryStores()})
	_, err := svc.Reports.Publish(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrUploadDisabled)
}
