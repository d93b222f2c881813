// Package database opens the MongoDB connection and seeds a fresh store with
// the demo dataset.
package database

import (
	"context"
	"fmt"
	"time"

	"qa-warehouse-api-server/config"
	"qa-warehouse-api-server/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, client.Database(cfg.DBName), nil
}

// EnsureIndexes creates the insertion-order index on every collection and a
// unique index on user emails.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	names := []string{
		store.InspectionQueue, store.Approvals, store.InspectionRecords, store.CAPAs,
		store.StockAdjustments, store.StockMovements, store.StockLevels,
		store.ProductionIntakes, store.Users, store.Sessions,
	}
	for _, name := range names {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "seq", Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("index %s.seq: %w", name, err)
		}
	}
	_, err := db.Collection(store.Users).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("index users.email: %w", err)
	}
	return nil
}
