// Package mongostore implements storage.Storage on MongoDB with mongo-go-driver v2.
package mongostore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"productapi/internal/storage"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	ColUsers    = "users"
	ColProducts = "products"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ storage.Storage = (*Store)(nil)

// NewStore connects to uri (e.g. "mongodb://localhost:27017") and uses dbName.
func NewStore(uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect failed: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ping failed: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}

	// Username uniqueness depends on the unique index, so a failure here is fatal.
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ensure indexes failed: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{ColUsers, bson.D{{Key: "username", Value: 1}}, true},

		{ColProducts, bson.D{{Key: "featured", Value: 1}}, false},
		{ColProducts, bson.D{{Key: "price", Value: 1}}, false},
		{ColProducts, bson.D{{Key: "rating", Value: -1}}, false},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}

	slog.Debug("mongostore: indexes ensured", "count", len(indexes))
	return nil
}
