package service

import (
	"context"

	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/query"
	"qa-warehouse-api-server/internal/workflow"

	"go.uber.org/zap"
)

type ApprovalService struct {
	base
	policy workflow.ApprovalPolicy
}

func (s *ApprovalService) List(ctx context.Context, q ListQuery) (Listing[models.ApprovalItem], error) {
	return listing[models.ApprovalItem](ctx, s.stores.Approvals, query.Approvals, q, s.pages.Approvals, func(a models.ApprovalItem) []workflow.Action {
		return workflow.ApprovalMachine.Allowed(a.Status)
	})
}

func (s *ApprovalService) Get(ctx context.Context, id string) (models.ApprovalItem, error) {
	return s.stores.Approvals.Get(ctx, id)
}

// Decided is the result of a QA decision with the records it produced.
// Record, Intake, CAPA and Queue are set only when the decision created them.
type Decided struct {
	Approval models.ApprovalItem         `json:"approval"`
	Record   *models.InspectionRecord    `json:"record,omitempty"`
	Intake   *models.ProductionIntake    `json:"intake,omitempty"`
	CAPA     *models.CAPA                `json:"capa,omitempty"`
	Queue    *models.InspectionQueueItem `json:"queueItem,omitempty"`
}

func (s *ApprovalService) decide(ctx context.Context, id string, version int64, by, remarks string, rule func(models.ApprovalItem, workflow.Decision) (workflow.Outcome[models.ApprovalItem], error)) (models.ApprovalItem, []workflow.Event, error) {
	cur, err := s.stores.Approvals.Get(ctx, id)
	if err != nil {
		return cur, nil, err
	}
	out, err := rule(cur, workflow.Decision{By: by, Remarks: remarks, At: s.now()})
	if err != nil {
		return cur, nil, err
	}
	saved, err := s.stores.Approvals.Update(ctx, id, version, out.Record)
	if err != nil {
		return cur, nil, err
	}
	return saved, out.Events, nil
}

// close writes the inspection record of a final decision and takes the
// approval and its queue item off their pages.
func (s *ApprovalService) close(ctx context.Context, a models.ApprovalItem) (models.ApprovalItem, *models.InspectionRecord, error) {
	queued, err := s.stores.Queue.Get(ctx, a.QueueItemID)
	if err != nil {
		s.log.Debug("approval without queue item", zap.String("inspection_id", a.InspectionID), zap.Error(err))
	}
	rec, err := s.stores.Records.Append(ctx, workflow.RecordFor(a, queued))
	if err != nil {
		return a, nil, err
	}
	if queued.ID != "" && !queued.Archived {
		if _, err := s.stores.Queue.Archive(ctx, queued.ID, queued.Version); err != nil {
			s.warn(ctx, "could not archive queue item "+queued.InspectionID, err)
		}
	}
	archived, err := s.stores.Approvals.Archive(ctx, a.ID, a.Version)
	if err != nil {
		s.warn(ctx, "could not archive approval "+a.InspectionID, err)
		archived = a
	}
	return archived, &rec, nil
}

// Approve releases the batch: an Approved record and a Pending intake are created.
func (s *ApprovalService) Approve(ctx context.Context, id string, version int64, by, remarks string) (Decided, error) {
	saved, events, err := s.decide(ctx, id, version, by, remarks, s.policy.Approve)
	if err != nil {
		return Decided{Approval: saved}, err
	}
	saved, rec, err := s.close(ctx, saved)
	if err != nil {
		return Decided{Approval: saved}, err
	}
	intake, err := s.stores.Intakes.Append(ctx, workflow.IntakeFor(saved))
	if err != nil {
		return Decided{Approval: saved, Record: rec}, err
	}
	s.publish(ctx, events...)
	return Decided{Approval: saved, Record: rec, Intake: &intake}, nil
}

// Reject fails the batch: a Rejected record and an Open CAPA are created.
func (s *ApprovalService) Reject(ctx context.Context, id string, version int64, by, remarks string) (Decided, error) {
	saved, events, err := s.decide(ctx, id, version, by, remarks, s.policy.Reject)
	if err != nil {
		return Decided{Approval: saved}, err
	}
	saved, rec, err := s.close(ctx, saved)
	if err != nil {
		return Decided{Approval: saved}, err
	}
	capa, err := s.stores.CAPAs.Append(ctx, workflow.CAPAForRejection(saved, code("CAPA"), s.now()))
	if err != nil {
		return Decided{Approval: saved, Record: rec}, err
	}
	events = append(events, workflow.CAPACreated{CAPAID: capa.CAPAID, LinkedInspection: capa.LinkedInspection})
	s.publish(ctx, events...)
	return Decided{Approval: saved, Record: rec, CAPA: &capa}, nil
}

// Reinspect sends the batch back to the queue as Pending with a fresh checklist.
func (s *ApprovalService) Reinspect(ctx context.Context, id string, version int64, by, remarks string) (Decided, error) {
	saved, events, err := s.decide(ctx, id, version, by, remarks, s.policy.Reinspect)
	if err != nil {
		return Decided{Approval: saved}, err
	}
	out := Decided{Approval: saved}
	item, err := s.requeue(ctx, saved.QueueItemID)
	if err != nil {
		s.warn(ctx, "could not requeue "+saved.InspectionID, err)
	} else {
		out.Queue = &item
	}
	if archived, err := s.stores.Approvals.Archive(ctx, saved.ID, saved.Version); err == nil {
		out.Approval = archived
	}
	s.publish(ctx, events...)
	return out, nil
}
