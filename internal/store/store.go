// Package store is the data-access layer: one collection per entity type,
// each with optimistic concurrency on models.Meta.Version.
package store

import (
	"context"
	"errors"
	"time"

	"qa-warehouse-api-server/internal/models"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("stale state, reload")
	ErrAppendOnly = errors.New("collection is append-only")
)

// Record is satisfied by a pointer to any model that embeds models.Meta.
type Record[T any] interface {
	*T
	Base() *models.Meta
}

// Scope selects records by archival state.
type Scope int

const (
	Active Scope = iota
	Archived
	All
)

func (s Scope) includes(archived bool) bool {
	switch s {
	case Archived:
		return archived
	case All:
		return true
	default:
		return !archived
	}
}

// Collection is the store of one entity type. List returns records in
// insertion order. Update, Archive and Restore succeed only when
// expectedVersion matches the stored version, otherwise ErrConflict.
type Collection[T any] interface {
	List(ctx context.Context, scope Scope) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Append(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id string, expectedVersion int64, next T) (T, error)
	Archive(ctx context.Context, id string, expectedVersion int64) (T, error)
	Restore(ctx context.Context, id string, expectedVersion int64) (T, error)
}

// Collection names, shared by both backends.
const (
	InspectionQueue   = "inspection_queue"
	Approvals         = "approvals"
	InspectionRecords = "inspection_records"
	CAPAs             = "capas"
	StockAdjustments  = "stock_adjustments"
	StockMovements    = "stock_movements"
	StockLevels       = "stock_levels"
	ProductionIntakes = "production_intakes"
	Users             = "users"
	Sessions          = "sessions"
)

// Stores bundles every collection the services use.
type Stores struct {
	Queue       Collection[models.InspectionQueueItem]
	Approvals   Collection[models.ApprovalItem]
	Records     Collection[models.InspectionRecord]
	CAPAs       Collection[models.CAPA]
	Adjustments Collection[models.StockAdjustment]
	Movements   Collection[models.StockMovement]
	Levels      Collection[models.StockLevel]
	Intakes     Collection[models.ProductionIntake]
	Users       Collection[models.User]
	Sessions    Collection[models.Session]
}

func clock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// stamp fills the bookkeeping fields of next from the stored cur.
func stamp(next, cur *models.Meta, now time.Time) {
	next.ID = cur.ID
	next.Seq = cur.Seq
	next.Version = cur.Version + 1
	next.Archived = cur.Archived
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = now
}
