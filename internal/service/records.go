package service

import (
	"context"
	"errors"

	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/query"
	"qa-warehouse-api-server/internal/report"
	"qa-warehouse-api-server/internal/store"
	"qa-warehouse-api-server/internal/workflow"

	"github.com/xuri/excelize/v2"
)

type RecordService struct {
	base
}

func recordActions(r models.InspectionRecord) []workflow.Action {
	return workflow.RecordMachine.Allowed(workflow.RecordState(r))
}

func (s *RecordService) List(ctx context.Context, q ListQuery) (Listing[models.InspectionRecord], error) {
	return listing[models.InspectionRecord](ctx, s.stores.Records, query.InspectionRecords, q, s.pages.InspectionRecords, recordActions)
}

func (s *RecordService) Get(ctx context.Context, id string) (models.InspectionRecord, error) {
	return s.stores.Records.Get(ctx, id)
}

// Reopen flags the record and puts its batch back on the inspection queue.
// A record whose queue item is gone gets a fresh Pending one.
func (s *RecordService) Reopen(ctx context.Context, id string, version int64, reason string) (models.InspectionRecord, models.InspectionQueueItem, error) {
	cur, err := s.stores.Records.Get(ctx, id)
	if err != nil {
		return cur, models.InspectionQueueItem{}, err
	}
	out, err := workflow.Reopen(cur, reason)
	if err != nil {
		return cur, models.InspectionQueueItem{}, err
	}
	saved, err := s.stores.Records.Update(ctx, id, version, out.Record)
	if err != nil {
		return cur, models.InspectionQueueItem{}, err
	}
	item, err := s.requeue(ctx, saved.QueueItemID)
	if errors.Is(err, store.ErrNotFound) {
		item, err = s.reenqueue(ctx, saved)
	}
	if err != nil {
		s.warn(ctx, "could not requeue "+saved.InspectionID, err)
	}
	s.publish(ctx, out.Events...)
	return saved, item, nil
}

func (s *RecordService) reenqueue(ctx context.Context, r models.InspectionRecord) (models.InspectionQueueItem, error) {
	return s.stores.Queue.Append(ctx, models.InspectionQueueItem{
		InspectionID:      r.InspectionID,
		WorkOrderNo:       r.WorkOrder,
		ProductSKU:        r.SKU,
		ProductName:       r.ProductName,
		Priority:          models.PriorityNormal,
		AssignedInspector: models.Unassigned,
		DueDate:           s.today(),
		Status:            models.InspectionPending,
		Checklist:         models.DefaultChecklist(),
		Defects:           []models.DefectEntry{},
		Notes:             "Reopened: " + r.ReopenReason,
	})
}

// Export renders every record matching q's search and filters.
func (s *RecordService) Export(ctx context.Context, q ListQuery) (*excelize.File, string, error) {
	records, err := s.stores.Records.List(ctx, q.Scope)
	if err != nil {
		return nil, "", err
	}
	f, err := report.Records(query.InspectionRecords.Match(records, q.Search, q.Filters))
	if err != nil {
		return nil, "", err
	}
	return f, report.Filename("inspection-records", s.now()), nil
}

func (s *RecordService) Archive(ctx context.Context, id string, version int64) (models.InspectionRecord, error) {
	return s.stores.Records.Archive(ctx, id, version)
}

func (s *RecordService) Restore(ctx context.Context, id string, version int64) (models.InspectionRecord, error) {
	return s.stores.Records.Restore(ctx, id, version)
}
