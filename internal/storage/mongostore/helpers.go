package mongostore

import (
	"context"
	"errors"

	"productapi/internal/storage"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// wrapError converts MongoDB errors into storage errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrDuplicate
	}
	return err
}

// decodeOne decodes a single result, mapping a missing document to storage.ErrNotFound.
func decodeOne[T any](res *mongo.SingleResult) (*T, error) {
	var result T
	if err := res.Decode(&result); err != nil {
		return nil, wrapError(err)
	}
	return &result, nil
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.D) (*T, error) {
	return decodeOne[T](col.FindOne(ctx, filter))
}

func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.D) ([]*T, error) {
	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, wrapError(err)
	}
	defer cursor.Close(ctx)

	results := []*T{}
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, &item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func insertOne(ctx context.Context, col *mongo.Collection, doc any) error {
	_, err := col.InsertOne(ctx, doc)
	return wrapError(err)
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}
