package store

import (
	"context"
	"sync"
	"testing"

	"qa-warehouse-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAppendListGet(t *testing.T) {
	ctx := context.Background()
	capas := NewMemory[models.CAPA](CAPAs)

	a, err := capas.Append(ctx, models.CAPA{CAPAID: "CAPA-001", Status: models.CAPAOpen})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, int64(1), a.Version)
	assert.False(t, a.CreatedAt.IsZero())

	b, err := capas.Append(ctx, models.CAPA{Meta: models.Meta{ID: "fixed"}, CAPAID: "CAPA-002"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", b.ID)

	_, err = capas.Append(ctx, models.CAPA{Meta: models.Meta{ID: "fixed"}, CAPAID: "dup"})
	assert.ErrorIs(t, err, ErrConflict)

	list, err := capas.List(ctx, Active)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "CAPA-001", list[0].CAPAID)
	assert.Equal(t, "CAPA-002", list[1].CAPAID)

	got, err := capas.Get(ctx, "fixed")
	require.NoError(t, err)
	assert.Equal(t, "CAPA-002", got.CAPAID)

	_, err = capas.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	capas := NewMemory[models.CAPA](CAPAs)
	steps := []string{"Recalibrate"}
	c, err := capas.Append(ctx, models.CAPA{CAPAID: "CAPA-001", CorrectiveSteps: steps})
	require.NoError(t, err)

	steps[0] = "mutated"
	c.CorrectiveSteps[0] = "mutated too"

	got, err := capas.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Recalibrate"}, got.CorrectiveSteps)
}

func TestMemoryUpdateCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	capas := NewMemory[models.CAPA](CAPAs)
	c, err := capas.Append(ctx, models.CAPA{CAPAID: "CAPA-001", Status: models.CAPAOpen})
	require.NoError(t, err)

	next := c
	next.Status = models.CAPAInProgress
	next.Version = 99 // ignored: the store owns bookkeeping
	updated, err := capas.Update(ctx, c.ID, 1, next)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, c.CreatedAt, updated.CreatedAt)
	assert.Equal(t, c.Seq, updated.Seq)

	// second writer still holds version 1
	stale := c
	stale.Status = models.CAPACompleted
	_, err = capas.Update(ctx, c.ID, 1, stale)
	assert.ErrorIs(t, err, ErrConflict)

	got, _ := capas.Get(ctx, c.ID)
	assert.Equal(t, models.CAPAInProgress, got.Status)

	_, err = capas.Update(ctx, "missing", 1, stale)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryConcurrentWritersOneWins(t *testing.T) {
	ctx := context.Background()
	adj := NewMemory[models.StockAdjustment](StockAdjustments)
	a, err := adj.Append(ctx, models.StockAdjustment{AdjustmentID: "ADJ-046", ApprovalStatus: models.AdjustmentPending})
	require.NoError(t, err)

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			next := a
			next.ApprovalStatus = models.AdjustmentApproved
			_, errs[i] = adj.Update(ctx, a.ID, a.Version, next)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}
	assert.Equal(t, 1, wins)
}

func TestMemoryArchiveRestore(t *testing.T) {
	ctx := context.Background()
	recs := NewMemory[models.InspectionRecord](InspectionRecords)
	r1, _ := recs.Append(ctx, models.InspectionRecord{InspectionID: "INS-001"})
	r2, _ := recs.Append(ctx, models.InspectionRecord{InspectionID: "INS-002"})

	archived, err := recs.Archive(ctx, r1.ID, r1.Version)
	require.NoError(t, err)
	assert.True(t, archived.Archived)
	assert.Equal(t, int64(2), archived.Version)

	_, err = recs.Archive(ctx, r1.ID, r1.Version)
	assert.ErrorIs(t, err, ErrConflict)

	active, _ := recs.List(ctx, Active)
	require.Len(t, active, 1)
	assert.Equal(t, r2.ID, active[0].ID)

	hidden, _ := recs.List(ctx, Archived)
	require.Len(t, hidden, 1)
	assert.Equal(t, r1.ID, hidden[0].ID)

	restored, err := recs.Restore(ctx, r1.ID, archived.Version)
	require.NoError(t, err)
	assert.False(t, restored.Archived)

	all, _ := recs.List(ctx, All)
	require.Len(t, all, 2)
	assert.Equal(t, "INS-001", all[0].InspectionID)
}

func TestMemoryAppendOnly(t *testing.T) {
	ctx := context.Background()
	moves := NewAppendOnlyMemory[models.StockMovement](StockMovements)
	m, err := moves.Append(ctx, models.StockMovement{MovementID: "MOV-301", Quantity: 50})
	require.NoError(t, err)

	m.Quantity = 500
	_, err = moves.Update(ctx, m.ID, m.Version, m)
	assert.ErrorIs(t, err, ErrAppendOnly)

	archived, err := moves.Archive(ctx, m.ID, m.Version)
	require.NoError(t, err)
	assert.Equal(t, 50, archived.Quantity)

	active, _ := moves.List(ctx, Active)
	assert.Empty(t, active)
}

func TestNewMemoryStoresWiresEveryCollection(t *testing.T) {
	s := NewMemoryStores()
	assert.NotNil(t, s.Queue)
	assert.NotNil(t, s.Approvals)
	assert.NotNil(t, s.Records)
	assert.NotNil(t, s.CAPAs)
	assert.NotNil(t, s.Adjustments)
	assert.NotNil(t, s.Levels)
	assert.NotNil(t, s.Intakes)
	assert.NotNil(t, s.Users)
	assert.NotNil(t, s.Sessions)

	ctx := context.Background()
	m, err := s.Movements.Append(ctx, models.StockMovement{MovementID: "MOV-1"})
	require.NoError(t, err)
	_, err = s.Movements.Update(ctx, m.ID, m.Version, m)
	assert.ErrorIs(t, err, ErrAppendOnly)
}
