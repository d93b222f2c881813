package service

import (
	"context"

	"qa-warehouse-api-server/internal/kpi"
	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/query"
	"qa-warehouse-api-server/internal/store"
	"qa-warehouse-api-server/internal/workflow"
)

type AdjustmentService struct {
	base
}

type AdjustmentKPIs struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

func adjustmentActions(a models.StockAdjustment) []workflow.Action {
	return workflow.AdjustmentMachine.Allowed(a.ApprovalStatus)
}

func (s *AdjustmentService) List(ctx context.Context, q ListQuery) (Listing[models.StockAdjustment], error) {
	return listing[models.StockAdjustment](ctx, s.stores.Adjustments, query.StockAdjustments, q, s.pages.StockAdjustments, adjustmentActions)
}

func (s *AdjustmentService) Get(ctx context.Context, id string) (models.StockAdjustment, error) {
	return s.stores.Adjustments.Get(ctx, id)
}

func (s *AdjustmentService) KPIs(ctx context.Context) (AdjustmentKPIs, error) {
	adjs, err := s.stores.Adjustments.List(ctx, store.Active)
	if err != nil {
		return AdjustmentKPIs{}, err
	}
	by := kpi.CountBy(adjs, func(a models.StockAdjustment) string { return string(a.ApprovalStatus) })
	return AdjustmentKPIs{
		Total:    len(adjs),
		Pending:  by[string(models.AdjustmentPending)],
		Approved: by[string(models.AdjustmentApproved)],
		Rejected: by[string(models.AdjustmentRejected)],
	}, nil
}

// Create files a Pending adjustment. The difference is always recomputed
// from the two quantities.
func (s *AdjustmentService) Create(ctx context.Context, req workflow.AdjustmentRequest) (models.StockAdjustment, error) {
	if req.ItemName == "" {
		req.ItemName = itemName(req.ItemCode)
	}
	out, err := workflow.NewAdjustment(req, code("ADJ"), s.today())
	if err != nil {
		return models.StockAdjustment{}, err
	}
	saved, err := s.stores.Adjustments.Append(ctx, out.Record)
	if err != nil {
		return saved, err
	}
	s.publish(ctx, out.Events...)
	return saved, nil
}

// Approve applies the difference to the item's stock level and writes the
// Adjustment movement to the audit trail.
func (s *AdjustmentService) Approve(ctx context.Context, id string, version int64, by string) (models.StockAdjustment, models.StockMovement, error) {
	cur, err := s.stores.Adjustments.Get(ctx, id)
	if err != nil {
		return cur, models.StockMovement{}, err
	}
	held, err := s.onHand(ctx, cur.ItemCode, cur.OldQuantity)
	if err != nil {
		return cur, models.StockMovement{}, err
	}
	out, err := workflow.ApproveAdjustment(cur, held, by, s.today())
	if err != nil {
		return cur, models.StockMovement{}, err
	}
	saved, err := s.stores.Adjustments.Update(ctx, id, version, out.Record)
	if err != nil {
		return cur, models.StockMovement{}, err
	}
	if _, err := s.applyDelta(ctx, saved.ItemCode, saved.ItemName, held, saved.Difference); err != nil {
		s.warn(ctx, "could not update stock level for "+saved.ItemCode, err)
	}
	mov, err := s.stores.Movements.Append(ctx, workflow.AdjustmentMovement(saved, code("MOV"), s.now()))
	if err != nil {
		s.warn(ctx, "could not record movement for "+saved.AdjustmentID, err)
	} else {
		s.mirror(ctx, mov)
	}
	s.publish(ctx, out.Events...)
	return saved, mov, nil
}

func (s *AdjustmentService) Reject(ctx context.Context, id string, version int64, by, reason string) (models.StockAdjustment, error) {
	cur, err := s.stores.Adjustments.Get(ctx, id)
	if err != nil {
		return cur, err
	}
	out, err := workflow.RejectAdjustment(cur, reason, by, s.today())
	if err != nil {
		return cur, err
	}
	saved, err := s.stores.Adjustments.Update(ctx, id, version, out.Record)
	if err != nil {
		return cur, err
	}
	s.publish(ctx, out.Events...)
	return saved, nil
}
