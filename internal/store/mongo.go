package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"qa-warehouse-api-server/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// countersCollection holds one insertion counter per collection, used to keep List in insertion order.
const countersCollection = "counters"

// Mongo is a Collection backed by a MongoDB collection. Writes filter on
// {_id, version} so a concurrent writer makes the second update match nothing.
type Mongo[T any, P Record[T]] struct {
	coll       *mongo.Collection
	counters   *mongo.Collection
	appendOnly bool
	now        func() time.Time
}

func NewMongo[T any, P Record[T]](db *mongo.Database, name string) *Mongo[T, P] {
	return &Mongo[T, P]{
		coll:     db.Collection(name),
		counters: db.Collection(countersCollection),
		now:      clock,
	}
}

func NewAppendOnlyMongo[T any, P Record[T]](db *mongo.Database, name string) *Mongo[T, P] {
	m := NewMongo[T, P](db, name)
	m.appendOnly = true
	return m
}

func scopeFilter(scope Scope) bson.M {
	switch scope {
	case Archived:
		return bson.M{"archived": true}
	case All:
		return bson.M{}
	default:
		return bson.M{"archived": false}
	}
}

func (m *Mongo[T, P]) List(ctx context.Context, scope Scope) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cursor, err := m.coll.Find(ctx, scopeFilter(scope), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", m.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", m.coll.Name(), err)
	}
	return out, nil
}

func (m *Mongo[T, P]) Get(ctx context.Context, id string) (T, error) {
	var rec T
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return rec, fmt.Errorf("%s %q: %w", m.coll.Name(), id, ErrNotFound)
	}
	if err != nil {
		return rec, fmt.Errorf("%s %q: %w", m.coll.Name(), id, err)
	}
	return rec, nil
}

func (m *Mongo[T, P]) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := m.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": m.coll.Name()},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("%s: next sequence: %w", m.coll.Name(), err)
	}
	return counter.Seq, nil
}

func (m *Mongo[T, P]) Append(ctx context.Context, rec T) (T, error) {
	var zero T
	seq, err := m.nextSeq(ctx)
	if err != nil {
		return zero, err
	}
	meta := P(&rec).Base()
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	now := m.now()
	meta.Seq = seq
	meta.Version = 1
	meta.CreatedAt = now
	meta.UpdatedAt = now

	if _, err := m.coll.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return zero, fmt.Errorf("%s %q already exists: %w", m.coll.Name(), meta.ID, ErrConflict)
		}
		return zero, fmt.Errorf("%s: insert: %w", m.coll.Name(), err)
	}
	return rec, nil
}

func (m *Mongo[T, P]) Update(ctx context.Context, id string, expectedVersion int64, next T) (T, error) {
	var zero T
	if m.appendOnly {
		return zero, fmt.Errorf("%s: %w", m.coll.Name(), ErrAppendOnly)
	}
	cur, err := m.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	stamp(P(&next).Base(), P(&cur).Base(), m.now())
	// the stored version may have moved since Get; the filter decides.
	P(&next).Base().Version = expectedVersion + 1

	res, err := m.coll.ReplaceOne(ctx, bson.M{"_id": id, "version": expectedVersion}, next)
	if err != nil {
		return zero, fmt.Errorf("%s %q: replace: %w", m.coll.Name(), id, err)
	}
	if res.MatchedCount == 0 {
		return zero, m.missOrConflict(ctx, id, expectedVersion)
	}
	return next, nil
}

func (m *Mongo[T, P]) Archive(ctx context.Context, id string, expectedVersion int64) (T, error) {
	return m.setArchived(ctx, id, expectedVersion, true)
}

func (m *Mongo[T, P]) Restore(ctx context.Context, id string, expectedVersion int64) (T, error) {
	return m.setArchived(ctx, id, expectedVersion, false)
}

func (m *Mongo[T, P]) setArchived(ctx context.Context, id string, expectedVersion int64, archived bool) (T, error) {
	var rec T
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := m.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "version": expectedVersion},
		bson.M{
			"$set": bson.M{"archived": archived, "updatedAt": m.now()},
			"$inc": bson.M{"version": 1},
		},
		opts,
	).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return rec, m.missOrConflict(ctx, id, expectedVersion)
	}
	if err != nil {
		return rec, fmt.Errorf("%s %q: archive: %w", m.coll.Name(), id, err)
	}
	return rec, nil
}

func (m *Mongo[T, P]) missOrConflict(ctx context.Context, id string, expectedVersion int64) error {
	n, err := m.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s %q: %w", m.coll.Name(), id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", m.coll.Name(), id, ErrNotFound)
	}
	return fmt.Errorf("%s %q, expected version %d: %w", m.coll.Name(), id, expectedVersion, ErrConflict)
}

// NewMongoStores wires every collection to db.
func NewMongoStores(db *mongo.Database) *Stores {
	return &Stores{
		Queue:       NewMongo[models.InspectionQueueItem](db, InspectionQueue),
		Approvals:   NewMongo[models.ApprovalItem](db, Approvals),
		Records:     NewMongo[models.InspectionRecord](db, InspectionRecords),
		CAPAs:       NewMongo[models.CAPA](db, CAPAs),
		Adjustments: NewMongo[models.StockAdjustment](db, StockAdjustments),
		Movements:   NewAppendOnlyMongo[models.StockMovement](db, StockMovements),
		Levels:      NewMongo[models.StockLevel](db, StockLevels),
		Intakes:     NewMongo[models.ProductionIntake](db, ProductionIntakes),
		Users:       NewMongo[models.User](db, Users),
		Sessions:    NewMongo[models.Session](db, Sessions),
	}
}
