package service

import (
	"context"
	"fmt"

	"qa-warehouse-api-server/internal/kpi"
	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/query"
	"qa-warehouse-api-server/internal/store"
	"qa-warehouse-api-server/internal/workflow"
)

type QueueService struct {
	base
}

type QueueKPIs struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	InProgress  int `json:"inProgress"`
	ForApproval int `json:"forApproval"`
	Urgent      int `json:"urgent"`
	Overdue     int `json:"overdue"`
}

func (s *QueueService) List(ctx context.Context, q ListQuery) (Listing[models.InspectionQueueItem], error) {
	return listing[models.InspectionQueueItem](ctx, s.stores.Queue, query.InspectionQueue, q, s.pages.InspectionQueue, workflow.QueueActions)
}

func (s *QueueService) Get(ctx context.Context, id string) (models.InspectionQueueItem, error) {
	return s.stores.Queue.Get(ctx, id)
}

func (s *QueueService) KPIs(ctx context.Context) (QueueKPIs, error) {
	items, err := s.stores.Queue.List(ctx, store.Active)
	if err != nil {
		return QueueKPIs{}, err
	}
	by := kpi.CountBy(items, func(i models.InspectionQueueItem) string { return string(i.Status) })
	today := s.today()
	return QueueKPIs{
		Total:       len(items),
		Pending:     by[string(models.InspectionPending)],
		InProgress:  by[string(models.InspectionInProgress)],
		ForApproval: by[string(models.InspectionForApproval)],
		Urgent:      kpi.CountBy(items, func(i models.InspectionQueueItem) string { return string(i.Priority) })[string(models.PriorityUrgent)],
		Overdue:     kpi.SumBy(items, func(i models.InspectionQueueItem) int { return boolInt(i.Overdue(today)) }),
	}, nil
}

// Enqueue adds a production batch to the inspection queue.
func (s *QueueService) Enqueue(ctx context.Context, req workflow.QueueRequest) (models.InspectionQueueItem, error) {
	item, err := workflow.NewQueueItem(req, code("INS"))
	if err != nil {
		return models.InspectionQueueItem{}, err
	}
	return s.stores.Queue.Append(ctx, item)
}

func (s *QueueService) mutate(ctx context.Context, id string, version int64, decide func(models.InspectionQueueItem) (workflow.Outcome[models.InspectionQueueItem], error)) (models.InspectionQueueItem, []workflow.Event, error) {
	cur, err := s.stores.Queue.Get(ctx, id)
	if err != nil {
		return cur, nil, err
	}
	out, err := decide(cur)
	if err != nil {
		return cur, nil, err
	}
	saved, err := s.stores.Queue.Update(ctx, id, version, out.Record)
	if err != nil {
		return cur, nil, err
	}
	return saved, out.Events, nil
}

func (s *QueueService) Assign(ctx context.Context, id string, version int64, inspector string) (models.InspectionQueueItem, error) {
	saved, events, err := s.mutate(ctx, id, version, func(i models.InspectionQueueItem) (workflow.Outcome[models.InspectionQueueItem], error) {
		return workflow.AssignInspector(i, inspector)
	})
	if err != nil {
		return saved, err
	}
	s.publish(ctx, events...)
	return saved, nil
}

func (s *QueueService) Start(ctx context.Context, id string, version int64) (models.InspectionQueueItem, error) {
	saved, events, err := s.mutate(ctx, id, version, func(i models.InspectionQueueItem) (workflow.Outcome[models.InspectionQueueItem], error) {
		return workflow.StartInspection(i, s.now())
	})
	if err != nil {
		return saved, err
	}
	s.publish(ctx, events...)
	return saved, nil
}

func (s *QueueService) SaveDraft(ctx context.Context, id string, version int64, form workflow.InspectionForm) (models.InspectionQueueItem, error) {
	saved, events, err := s.mutate(ctx, id, version, func(i models.InspectionQueueItem) (workflow.Outcome[models.InspectionQueueItem], error) {
		return workflow.SaveDraft(i, form)
	})
	if err != nil {
		return saved, err
	}
	s.publish(ctx, events...)
	return saved, nil
}

// Submit moves the item to For Approval and creates its approval item.
func (s *QueueService) Submit(ctx context.Context, id string, version int64, form workflow.InspectionForm, attachments int) (models.InspectionQueueItem, models.ApprovalItem, error) {
	saved, events, err := s.mutate(ctx, id, version, func(i models.InspectionQueueItem) (workflow.Outcome[models.InspectionQueueItem], error) {
		return workflow.SubmitInspection(i, form)
	})
	if err != nil {
		return saved, models.ApprovalItem{}, err
	}
	approval, err := s.stores.Approvals.Append(ctx, workflow.ApprovalFor(saved, attachments, s.now()))
	if err != nil {
		return saved, approval, fmt.Errorf("create approval for %s: %w", saved.InspectionID, err)
	}
	s.publish(ctx, events...)
	return saved, approval, nil
}

func (s *QueueService) Archive(ctx context.Context, id string, version int64) (models.InspectionQueueItem, error) {
	return s.stores.Queue.Archive(ctx, id, version)
}

func (s *QueueService) Restore(ctx context.Context, id string, version int64) (models.InspectionQueueItem, error) {
	return s.stores.Queue.Restore(ctx, id, version)
}

// requeue sends the queue item behind a decided inspection back to Pending,
// restoring it first if it was archived.
func (b base) requeue(ctx context.Context, queueID string) (models.InspectionQueueItem, error) {
	item, err := b.stores.Queue.Get(ctx, queueID)
	if err != nil {
		return item, err
	}
	if item.Archived {
		if item, err = b.stores.Queue.Restore(ctx, item.ID, item.Version); err != nil {
			return item, err
		}
	}
	next, err := workflow.Requeue(item)
	if err != nil {
		return item, err
	}
	return b.stores.Queue.Update(ctx, item.ID, item.Version, next)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
