package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"qa-warehouse-api-server/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Memory is an in-process Collection. Records are held as BSON documents so
// callers never share slices with the store, and so that it encodes exactly
// like the Mongo backend.
type Memory[T any, P Record[T]] struct {
	mu         sync.RWMutex
	name       string
	appendOnly bool
	seq        int64
	order      []string
	docs       map[string]bson.Raw
	now        func() time.Time
}

func NewMemory[T any, P Record[T]](name string) *Memory[T, P] {
	return &Memory[T, P]{name: name, docs: map[string]bson.Raw{}, now: clock}
}

// NewAppendOnlyMemory refuses Update. Archive and Restore still work.
func NewAppendOnlyMemory[T any, P Record[T]](name string) *Memory[T, P] {
	m := NewMemory[T, P](name)
	m.appendOnly = true
	return m
}

func (m *Memory[T, P]) decode(raw bson.Raw) (T, error) {
	var rec T
	if err := bson.Unmarshal(raw, &rec); err != nil {
		return rec, fmt.Errorf("%s: decode: %w", m.name, err)
	}
	return rec, nil
}

func (m *Memory[T, P]) put(rec T) error {
	raw, err := bson.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", m.name, err)
	}
	m.docs[P(&rec).Base().ID] = raw
	return nil
}

func (m *Memory[T, P]) List(_ context.Context, scope Scope) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		rec, err := m.decode(m.docs[id])
		if err != nil {
			return nil, err
		}
		if scope.includes(P(&rec).Base().Archived) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *Memory[T, P]) Get(_ context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.get(id)
}

func (m *Memory[T, P]) get(id string) (T, error) {
	raw, ok := m.docs[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", m.name, id, ErrNotFound)
	}
	return m.decode(raw)
}

func (m *Memory[T, P]) Append(_ context.Context, rec T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	meta := P(&rec).Base()
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if _, exists := m.docs[meta.ID]; exists {
		var zero T
		return zero, fmt.Errorf("%s %q already exists: %w", m.name, meta.ID, ErrConflict)
	}
	m.seq++
	now := m.now()
	meta.Seq = m.seq
	meta.Version = 1
	meta.CreatedAt = now
	meta.UpdatedAt = now
	if err := m.put(rec); err != nil {
		var zero T
		return zero, err
	}
	m.order = append(m.order, meta.ID)
	return rec, nil
}

func (m *Memory[T, P]) Update(_ context.Context, id string, expectedVersion int64, next T) (T, error) {
	if m.appendOnly {
		var zero T
		return zero, fmt.Errorf("%s: %w", m.name, ErrAppendOnly)
	}
	return m.swap(id, expectedVersion, func(cur T) T {
		stamp(P(&next).Base(), P(&cur).Base(), m.now())
		return next
	})
}

func (m *Memory[T, P]) Archive(_ context.Context, id string, expectedVersion int64) (T, error) {
	return m.setArchived(id, expectedVersion, true)
}

func (m *Memory[T, P]) Restore(_ context.Context, id string, expectedVersion int64) (T, error) {
	return m.setArchived(id, expectedVersion, false)
}

func (m *Memory[T, P]) setArchived(id string, expectedVersion int64, archived bool) (T, error) {
	return m.swap(id, expectedVersion, func(cur T) T {
		meta := P(&cur).Base()
		meta.Version++
		meta.Archived = archived
		meta.UpdatedAt = m.now()
		return cur
	})
}

// swap is the compare-and-swap step shared by every write.
func (m *Memory[T, P]) swap(id string, expectedVersion int64, change func(cur T) T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	cur, err := m.get(id)
	if err != nil {
		return zero, err
	}
	if got := P(&cur).Base().Version; got != expectedVersion {
		return zero, fmt.Errorf("%s %q at version %d, expected %d: %w", m.name, id, got, expectedVersion, ErrConflict)
	}
	next := change(cur)
	if err := m.put(next); err != nil {
		return zero, err
	}
	return next, nil
}

// NewMemoryStores wires every collection to an in-process backend.
func NewMemoryStores() *Stores {
	return &Stores{
		Queue:       NewMemory[models.InspectionQueueItem](InspectionQueue),
		Approvals:   NewMemory[models.ApprovalItem](Approvals),
		Records:     NewMemory[models.InspectionRecord](InspectionRecords),
		CAPAs:       NewMemory[models.CAPA](CAPAs),
		Adjustments: NewMemory[models.StockAdjustment](StockAdjustments),
		Movements:   NewAppendOnlyMemory[models.StockMovement](StockMovements),
		Levels:      NewMemory[models.StockLevel](StockLevels),
		Intakes:     NewMemory[models.ProductionIntake](ProductionIntakes),
		Users:       NewMemory[models.User](Users),
		Sessions:    NewMemory[models.Session](Sessions),
	}
}
