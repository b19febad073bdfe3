package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helmward/helmboard/pkg/graph"
	"github.com/helmward/helmboard/pkg/observability"
)

// Default MongoDB naming used when the config leaves them empty.
const (
	DefaultDatabase   = "helmboard"
	DefaultCollection = "subsystems"
)

// MongoConfig configures the MongoDB-backed store.
type MongoConfig struct {
	// URI is the MongoDB connection string (mongodb://...).
	URI string
	// Database name; defaults to DefaultDatabase.
	Database string
	// Collection name; defaults to DefaultCollection.
	Collection string
}

// MongoStore reads and writes subsystem records in a MongoDB collection.
// Snapshots come from a single Find per fetch, so each snapshot reflects one
// point-in-time read rather than a mix of two refreshes.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.URI, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping %s: %w", cfg.URI, err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Snapshot reads all records with a single Find, sorted by ID for a stable
// order across fetches.
func (s *MongoStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		observability.Store().OnSnapshotFetch(ctx, 0, time.Since(start), err)
		return nil, fmt.Errorf("find subsystems: %w", err)
	}
	defer cursor.Close(ctx)

	var records []graph.Record
	if err := cursor.All(ctx, &records); err != nil {
		observability.Store().OnSnapshotFetch(ctx, 0, time.Since(start), err)
		return nil, fmt.Errorf("decode subsystems: %w", err)
	}

	observability.Store().OnSnapshotFetch(ctx, len(records), time.Since(start), nil)
	return &Snapshot{
		ID:      uuid.NewString(),
		TakenAt: time.Now(),
		Records: records,
	}, nil
}

// Put inserts or replaces a record by ID.
func (s *MongoStore) Put(ctx context.Context, rec graph.Record) error {
	if rec.ID == "" {
		return graph.ErrInvalidNodeID
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "id", Value: rec.ID}},
		rec,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("put subsystem %s: %w", rec.ID, err)
	}
	return nil
}

// Delete removes a record by ID. Deleting a missing ID is not an error.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "id", Value: id}}); err != nil {
		return fmt.Errorf("delete subsystem %s: %w", id, err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var (
	_ Store  = (*MongoStore)(nil)
	_ Writer = (*MongoStore)(nil)
)
