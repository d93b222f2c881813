package service

import (
	"context"

	"qa-warehouse-api-server/internal/kpi"
	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/query"
	"qa-warehouse-api-server/internal/store"
	"qa-warehouse-api-server/internal/workflow"
)

type CAPAService struct {
	base
}

type CAPAKPIs struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Verified   int `json:"verified"`
	Overdue    int `json:"overdue"`
}

func capaActions(c models.CAPA) []workflow.Action {
	return workflow.CAPAMachine.Allowed(c.Status)
}

// capaOverdue reports an unfinished CAPA past its due date.
func capaOverdue(c models.CAPA, today string) bool {
	open := c.Status == models.CAPAOpen || c.Status == models.CAPAInProgress
	return open && c.DueDate != "" && c.DueDate < today
}

func (s *CAPAService) List(ctx context.Context, q ListQuery) (Listing[models.CAPA], error) {
	return listing[models.CAPA](ctx, s.stores.CAPAs, query.CAPAs, q, s.pages.CAPA, capaActions)
}

func (s *CAPAService) Get(ctx context.Context, id string) (models.CAPA, error) {
	return s.stores.CAPAs.Get(ctx, id)
}

func (s *CAPAService) KPIs(ctx context.Context) (CAPAKPIs, error) {
	capas, err := s.stores.CAPAs.List(ctx, store.Active)
	if err != nil {
		return CAPAKPIs{}, err
	}
	by := kpi.CountBy(capas, func(c models.CAPA) string { return string(c.Status) })
	today := s.today()
	return CAPAKPIs{
		Total:      len(capas),
		Open:       by[string(models.CAPAOpen)],
		InProgress: by[string(models.CAPAInProgress)],
		Completed:  by[string(models.CAPACompleted)],
		Verified:   by[string(models.CAPAVerified)],
		Overdue:    kpi.SumBy(capas, func(c models.CAPA) int { return boolInt(capaOverdue(c, today)) }),
	}, nil
}

func (s *CAPAService) Create(ctx context.Context, d workflow.CAPADraft) (models.CAPA, error) {
	out, err := workflow.NewCAPA(d, code("CAPA"), s.today())
	if err != nil {
		return models.CAPA{}, err
	}
	saved, err := s.stores.CAPAs.Append(ctx, out.Record)
	if err != nil {
		return saved, err
	}
	s.publish(ctx, out.Events...)
	return saved, nil
}

func (s *CAPAService) mutate(ctx context.Context, id string, version int64, decide func(models.CAPA) (workflow.Outcome[models.CAPA], error)) (models.CAPA, error) {
	cur, err := s.stores.CAPAs.Get(ctx, id)
	if err != nil {
		return cur, err
	}
	out, err := decide(cur)
	if err != nil {
		return cur, err
	}
	saved, err := s.stores.CAPAs.Update(ctx, id, version, out.Record)
	if err != nil {
		return cur, err
	}
	s.publish(ctx, out.Events...)
	return saved, nil
}

func (s *CAPAService) Edit(ctx context.Context, id string, version int64, d workflow.CAPADraft) (models.CAPA, error) {
	return s.mutate(ctx, id, version, func(c models.CAPA) (workflow.Outcome[models.CAPA], error) {
		return workflow.EditCAPA(c, d)
	})
}

func (s *CAPAService) Start(ctx context.Context, id string, version int64) (models.CAPA, error) {
	return s.mutate(ctx, id, version, workflow.StartCAPA)
}

func (s *CAPAService) Complete(ctx context.Context, id string, version int64) (models.CAPA, error) {
	return s.mutate(ctx, id, version, workflow.CompleteCAPA)
}

func (s *CAPAService) Verify(ctx context.Context, id string, version int64, by string) (models.CAPA, error) {
	return s.mutate(ctx, id, version, func(c models.CAPA) (workflow.Outcome[models.CAPA], error) {
		return workflow.VerifyCAPA(c, by)
	})
}

func (s *CAPAService) Archive(ctx context.Context, id string, version int64) (models.CAPA, error) {
	return s.stores.CAPAs.Archive(ctx, id, version)
}

func (s *CAPAService) Restore(ctx context.Context, id string, version int64) (models.CAPA, error) {
	return s.stores.CAPAs.Restore(ctx, id, version)
}
