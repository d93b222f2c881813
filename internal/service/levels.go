package service

import (
	"context"
	"errors"
	"fmt"

	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/store"

	"go.uber.org/zap"
)

// maxLevelRetries bounds the compare-and-swap loop on a contended stock level.
const maxLevelRetries = 5

// onHand is the stored quantity of itemCode; fallback is used when the item
// has no level yet.
func (b base) onHand(ctx context.Context, itemCode string, fallback int) (int, error) {
	lvl, err := b.stores.Levels.Get(ctx, itemCode)
	if errors.Is(err, store.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return 0, err
	}
	return lvl.Quantity, nil
}

// applyDelta adds delta to the level of itemCode, creating it at start+delta
// when missing. The level is keyed by item code.
func (b base) applyDelta(ctx context.Context, itemCode, itemName string, start, delta int) (models.StockLevel, error) {
	for range maxLevelRetries {
		lvl, err := b.stores.Levels.Get(ctx, itemCode)
		if errors.Is(err, store.ErrNotFound) {
			if itemName == "" {
				itemName = displayName(itemCode)
			}
			created, err := b.stores.Levels.Append(ctx, models.StockLevel{
				Meta:     models.Meta{ID: itemCode},
				ItemCode: itemCode,
				ItemName: itemName,
				Quantity: start + delta,
			})
			if errors.Is(err, store.ErrConflict) {
				continue
			}
			return created, err
		}
		if err != nil {
			return lvl, err
		}
		next := lvl
		next.Quantity += delta
		if next.ItemName == "" {
			next.ItemName = itemName
		}
		saved, err := b.stores.Levels.Update(ctx, lvl.ID, lvl.Version, next)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		return saved, err
	}
	return models.StockLevel{}, fmt.Errorf("stock level %s: %w", itemCode, store.ErrConflict)
}

// displayName falls back to the code itself for items missing from Items.
func displayName(code string) string {
	if n := itemName(code); n != "" {
		return n
	}
	return code
}

// mirror copies m to the external ledger when one is configured.
func (b base) mirror(ctx context.Context, m models.StockMovement) {
	if b.ledger == nil {
		return
	}
	if err := b.ledger.RecordMovement(ctx, m); err != nil {
		b.warn(ctx, "could not mirror "+m.MovementID+" to the ledger", err, zap.String("movement_id", m.MovementID))
	}
}
