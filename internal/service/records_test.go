package service

import (
	"context"
	"testing"

	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/store"
	"qa-warehouse-api-server/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedRecord(t *testing.T, f *fixture) (models.InspectionQueueItem, models.InspectionRecord) {
	t.Helper()
	item, approval := f.submitted(t, 500, 0)
	got, err := f.svc.Approvals.Approve(context.Background(), approval.ID, approval.Version, "Lorna Garcia", "")
	require.NoError(t, err)
	return item, *got.Record
}

func TestReopenRequeuesBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item, rec := approvedRecord(t, f)

	saved, queued, err := f.svc.Records.Reopen(ctx, rec.ID, rec.Version, "Customer complaint on seams")
	require.NoError(t, err)
	assert.True(t, saved.Reopened)
	assert.Equal(t, "Customer complaint on seams", saved.ReopenReason)
	assert.Equal(t, item.ID, queued.ID)
	assert.Equal(t, models.InspectionPending, queued.Status)
	assert.False(t, queued.Archived)
	assert.Contains(t, f.rec.Events(), workflow.EventInspectionReopened)

	_, _, err = f.svc.Records.Reopen(ctx, rec.ID, saved.Version, "again")
	assert.True(t, isTransition(err))
}

func TestReopenRequiresReason(t *testing.T) {
	f := newFixture(t)
	_, rec := approvedRecord(t, f)
	_, _, err := f.svc.Records.Reopen(context.Background(), rec.ID, rec.Version, "")
	assert.True(t, workflow.IsValidation(err))
}

func TestReopenWithoutQueueItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec, err := f.stores.Records.Append(ctx, models.InspectionRecord{
		QueueItemID:  "gone",
		InspectionID: "INS-015",
		WorkOrder:    "WO-098",
		SKU:          "SKU-003",
		ProductName:  "Polo Shirt V1.3",
		Result:       models.RecordApproved,
	})
	require.NoError(t, err)

	_, queued, err := f.svc.Records.Reopen(ctx, rec.ID, rec.Version, "Label audit")
	require.NoError(t, err)
	assert.Equal(t, "INS-015", queued.InspectionID)
	assert.Equal(t, models.InspectionPending, queued.Status)
	assert.Equal(t, "Reopened: Label audit", queued.Notes)

	items, err := f.stores.Queue.List(ctx, store.Active)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestReopenKeepsBusyQueueItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item, rec := approvedRecord(t, f)

	cur, err := f.stores.Queue.Get(ctx, item.ID)
	require.NoError(t, err)
	cur, err = f.stores.Queue.Restore(ctx, cur.ID, cur.Version)
	require.NoError(t, err)
	cur.Status = models.InspectionInProgress
	_, err = f.stores.Queue.Update(ctx, cur.ID, cur.Version, cur)
	require.NoError(t, err)

	saved, _, err := f.svc.Records.Reopen(ctx, rec.ID, rec.Version, "Seam audit")
	require.NoError(t, err)
	assert.True(t, saved.Reopened)

	items, err := f.stores.Queue.List(ctx, store.All)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.InspectionInProgress, items[0].Status)
}

func TestRecordListActions(t *testing.T) {
	f := newFixture(t)
	_, rec := approvedRecord(t, f)
	page, err := f.svc.Records.List(context.Background(), ListQuery{Filters: map[string]string{"result": "Approved"}})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, []workflow.Action{workflow.ActionReopen}, page.AllowedActions[rec.ID])
}

func TestRecordExport(t *testing.T) {
	f := newFixture(t)
	approvedRecord(t, f)
	file, name, err := f.svc.Records.Export(context.Background(), ListQuery{})
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, "inspection-records_2026-02-12.xlsx", name)

	rows, err := file.GetRows("Inspection Records")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "WO-102", rows[1][1])
}
