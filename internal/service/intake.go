package service

import (
	"context"

	"qa-warehouse-api-server/internal/kpi"
	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/query"
	"qa-warehouse-api-server/internal/store"
	"qa-warehouse-api-server/internal/workflow"
)

type IntakeService struct {
	base
}

type IntakeKPIs struct {
	Total         int `json:"total"`
	Pending       int `json:"pending"`
	Partial       int `json:"partial"`
	Received      int `json:"received"`
	TotalApproved int `json:"totalApproved"`
}

func intakeActions(p models.ProductionIntake) []workflow.Action {
	return workflow.IntakeMachine.Allowed(p.ReceiptStatus)
}

func (s *IntakeService) List(ctx context.Context, q ListQuery) (Listing[models.ProductionIntake], error) {
	return listing[models.ProductionIntake](ctx, s.stores.Intakes, query.ProductionIntakes, q, s.pages.ProductionIntake, intakeActions)
}

func (s *IntakeService) Get(ctx context.Context, id string) (models.ProductionIntake, error) {
	return s.stores.Intakes.Get(ctx, id)
}

func (s *IntakeService) KPIs(ctx context.Context) (IntakeKPIs, error) {
	intakes, err := s.stores.Intakes.List(ctx, store.Active)
	if err != nil {
		return IntakeKPIs{}, err
	}
	by := kpi.CountBy(intakes, func(p models.ProductionIntake) string { return string(p.ReceiptStatus) })
	return IntakeKPIs{
		Total:         len(intakes),
		Pending:       by[string(models.ReceiptPending)],
		Partial:       by[string(models.ReceiptPartial)],
		Received:      by[string(models.ReceiptReceived)],
		TotalApproved: kpi.SumBy(intakes, func(p models.ProductionIntake) int { return p.ApprovedQuantity }),
	}, nil
}

// Receive books a delivery of approved goods into storage and appends the
// matching Stock-In movement referencing the work order.
func (s *IntakeService) Receive(ctx context.Context, id string, version int64, r workflow.Receipt) (models.ProductionIntake, models.StockMovement, error) {
	cur, err := s.stores.Intakes.Get(ctx, id)
	if err != nil {
		return cur, models.StockMovement{}, err
	}
	if r.Date == "" {
		r.Date = s.today()
	}
	out, err := workflow.Receive(cur, r)
	if err != nil {
		return cur, models.StockMovement{}, err
	}
	saved, err := s.stores.Intakes.Update(ctx, id, version, out.Record)
	if err != nil {
		return cur, models.StockMovement{}, err
	}
	mov, err := s.stores.Movements.Append(ctx, workflow.IntakeMovement(saved, r, code("MOV"), s.now()))
	if err != nil {
		s.warn(ctx, "could not record movement for "+saved.WorkOrderNo, err)
	} else {
		if _, err := s.applyDelta(ctx, mov.ItemCode, mov.ItemName, 0, mov.Quantity); err != nil {
			s.warn(ctx, "could not update stock level for "+mov.ItemCode, err)
		}
		s.mirror(ctx, mov)
	}
	s.publish(ctx, out.Events...)
	return saved, mov, nil
}
