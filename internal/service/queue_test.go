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

func TestQueueSubmitCreatesApproval(t *testing.T) {
	f := newFixture(t)
	item, approval := f.submitted(t, 500, 4)

	assert.Equal(t, models.InspectionForApproval, item.Status)
	assert.Equal(t, item.ID, approval.QueueItemID)
	assert.Equal(t, 0.8, approval.DefectRate)
	assert.Equal(t, 4, approval.MajorDefects)
	assert.Equal(t, 100.0, approval.ChecklistScore)
	assert.Equal(t, models.ResultFail, approval.Recommendation)
	assert.Equal(t, "Ana Reyes", approval.SubmittedBy)
	assert.Equal(t, 2, approval.Attachments)
	assert.Equal(t, models.ApprovalForApproval, approval.Status)
	assert.Equal(t, []string{workflow.EventInspectionStarted, workflow.EventInspectionSubmitted}, f.rec.Events())
}

func TestQueueSubmitIncompleteChecklist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item, err := f.svc.Queue.Enqueue(ctx, workflow.QueueRequest{WorkOrderNo: "WO-1", ProductSKU: "SKU-001", Quantity: 10, AssignedInspector: "Ana Reyes", DueDate: "2026-02-20"})
	require.NoError(t, err)
	item, err = f.svc.Queue.Start(ctx, item.ID, item.Version)
	require.NoError(t, err)

	rows := allPass()[:6]
	_, _, err = f.svc.Queue.Submit(ctx, item.ID, item.Version, workflow.InspectionForm{Checklist: rows}, 0)
	require.Error(t, err)
	assert.True(t, workflow.IsValidation(err))
	assert.EqualError(t, err, "Please complete all checklist items. 2 remaining.")

	approvals, err := f.stores.Approvals.List(ctx, store.All)
	require.NoError(t, err)
	assert.Empty(t, approvals)
}

func TestQueueStartNeedsInspector(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item, err := f.svc.Queue.Enqueue(ctx, workflow.QueueRequest{WorkOrderNo: "WO-108", ProductSKU: "SKU-007", Quantity: 350, Priority: models.PriorityUrgent, DueDate: "2026-02-11"})
	require.NoError(t, err)
	assert.Equal(t, models.Unassigned, item.AssignedInspector)

	_, err = f.svc.Queue.Start(ctx, item.ID, item.Version)
	assert.True(t, workflow.IsValidation(err))

	item, err = f.svc.Queue.Assign(ctx, item.ID, item.Version, "Carlos Tan")
	require.NoError(t, err)
	item, err = f.svc.Queue.Start(ctx, item.ID, item.Version)
	require.NoError(t, err)
	assert.Equal(t, models.InspectionInProgress, item.Status)
	require.NotNil(t, item.StartedAt)
	assert.True(t, item.StartedAt.Equal(fixedNow))
}

func TestQueueStaleVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item, err := f.svc.Queue.Enqueue(ctx, workflow.QueueRequest{WorkOrderNo: "WO-1", ProductSKU: "SKU-001", Quantity: 10, AssignedInspector: "Ana Reyes", DueDate: "2026-02-20"})
	require.NoError(t, err)
	stale := item.Version
	_, err = f.svc.Queue.Start(ctx, item.ID, stale)
	require.NoError(t, err)

	_, err = f.svc.Queue.SaveDraft(ctx, item.ID, stale, workflow.InspectionForm{Notes: "late"})
	assert.ErrorIs(t, err, store.ErrConflict)

	got, err := f.svc.Queue.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Notes)
}

func TestQueueIllegalTransition(t *testing.T) {
	f := newFixture(t)
	item, _ := f.submitted(t, 100, 0)
	_, err := f.svc.Queue.Start(context.Background(), item.ID, item.Version)
	assert.True(t, isTransition(err))
}

func TestQueueKPIs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reqs := []workflow.QueueRequest{
		{WorkOrderNo: "WO-108", ProductSKU: "SKU-007", Quantity: 350, Priority: models.PriorityUrgent, DueDate: "2026-02-11"},
		{WorkOrderNo: "WO-110", ProductSKU: "SKU-001", Quantity: 500, DueDate: "2026-02-15"},
	}
	for _, r := range reqs {
		_, err := f.svc.Queue.Enqueue(ctx, r)
		require.NoError(t, err)
	}
	f.submitted(t, 200, 0)

	k, err := f.svc.Queue.KPIs(ctx)
	require.NoError(t, err)
	assert.Equal(t, QueueKPIs{Total: 3, Pending: 2, ForApproval: 1, Urgent: 1, Overdue: 1}, k)
}

func TestQueueEnqueueValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Queue.Enqueue(context.Background(), workflow.QueueRequest{WorkOrderNo: "WO-1", ProductSKU: "SKU-001", DueDate: "2026-02-20"})
	assert.True(t, workflow.IsValidation(err))
}

func TestQueueArchiveRestore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item, err := f.svc.Queue.Enqueue(ctx, workflow.QueueRequest{WorkOrderNo: "WO-1", ProductSKU: "SKU-001", Quantity: 10, DueDate: "2026-02-20"})
	require.NoError(t, err)

	item, err = f.svc.Queue.Archive(ctx, item.ID, item.Version)
	require.NoError(t, err)
	page, err := f.svc.Queue.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	page, err = f.svc.Queue.List(ctx, ListQuery{Scope: store.Archived})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	item, err = f.svc.Queue.Restore(ctx, item.ID, item.Version)
	require.NoError(t, err)
	assert.False(t, item.Archived)
}
