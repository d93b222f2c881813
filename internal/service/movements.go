package service

import (
	"context"

	"qa-warehouse-api-server/internal/kpi"
	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/query"
	"qa-warehouse-api-server/internal/report"
	"qa-warehouse-api-server/internal/store"
	"qa-warehouse-api-server/internal/workflow"

	"github.com/xuri/excelize/v2"
)

// MovementService owns the append-only audit trail. Entries are never
// edited, only archived.
type MovementService struct {
	base
}

type MovementKPIs struct {
	Total       int `json:"total"`
	StockIn     int `json:"stockIn"`
	StockOut    int `json:"stockOut"`
	Transfers   int `json:"transfers"`
	Adjustments int `json:"adjustments"`
}

func (s *MovementService) List(ctx context.Context, q ListQuery) (Listing[models.StockMovement], error) {
	return listing[models.StockMovement](ctx, s.stores.Movements, query.StockMovements, q, s.pages.StockMovements, noActions[models.StockMovement])
}

func (s *MovementService) Get(ctx context.Context, id string) (models.StockMovement, error) {
	return s.stores.Movements.Get(ctx, id)
}

func (s *MovementService) KPIs(ctx context.Context) (MovementKPIs, error) {
	movs, err := s.stores.Movements.List(ctx, store.Active)
	if err != nil {
		return MovementKPIs{}, err
	}
	by := kpi.CountBy(movs, func(m models.StockMovement) string { return string(m.Type) })
	return MovementKPIs{
		Total:       len(movs),
		StockIn:     by[string(models.MovementStockIn)],
		StockOut:    by[string(models.MovementStockOut)],
		Transfers:   by[string(models.MovementTransfer)],
		Adjustments: by[string(models.MovementAdjustment)],
	}, nil
}

// Record validates a manual movement against the on-hand quantity, appends
// it and applies its delta to the stock level.
func (s *MovementService) Record(ctx context.Context, req workflow.MovementRequest) (models.StockMovement, error) {
	if req.ItemName == "" {
		req.ItemName = itemName(req.ItemCode)
	}
	held, err := s.onHand(ctx, req.ItemCode, 0)
	if err != nil {
		return models.StockMovement{}, err
	}
	out, err := workflow.NewMovement(req, held, code("MOV"), s.now())
	if err != nil {
		return models.StockMovement{}, err
	}
	saved, err := s.stores.Movements.Append(ctx, out.Record)
	if err != nil {
		return saved, err
	}
	if delta := workflow.StockDelta(saved); delta != 0 {
		if _, err := s.applyDelta(ctx, saved.ItemCode, saved.ItemName, held, delta); err != nil {
			s.warn(ctx, "could not update stock level for "+saved.ItemCode, err)
		}
	}
	s.mirror(ctx, saved)
	s.publish(ctx, out.Events...)
	return saved, nil
}

// Levels lists the on-hand quantity of every item.
func (s *MovementService) Levels(ctx context.Context) ([]models.StockLevel, error) {
	return s.stores.Levels.List(ctx, store.Active)
}

func (s *MovementService) Export(ctx context.Context, q ListQuery) (*excelize.File, string, error) {
	movs, err := s.stores.Movements.List(ctx, q.Scope)
	if err != nil {
		return nil, "", err
	}
	f, err := report.Movements(query.StockMovements.Match(movs, q.Search, q.Filters))
	if err != nil {
		return nil, "", err
	}
	return f, report.Filename("stock-movements", s.now()), nil
}

func (s *MovementService) Archive(ctx context.Context, id string, version int64) (models.StockMovement, error) {
	return s.stores.Movements.Archive(ctx, id, version)
}

func (s *MovementService) Restore(ctx context.Context, id string, version int64) (models.StockMovement, error) {
	return s.stores.Movements.Restore(ctx, id, version)
}
