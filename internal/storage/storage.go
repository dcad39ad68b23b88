// Package storage defines the persistence contract shared by the store drivers.
//
// Drivers (mongostore, pgstore, memstore) translate their native errors into
// ErrNotFound and ErrDuplicate so callers never depend on a particular engine.
package storage

import (
	"context"

	"productapi/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserStore interface {
	// CreateUser inserts u. It returns ErrDuplicate when the username is taken.
	CreateUser(ctx context.Context, u *model.User) error
	// GetUserByUsername returns ErrNotFound when no user matches.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

type ProductStore interface {
	CreateProduct(ctx context.Context, p *model.Product) error
	GetProducts(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error)
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	// UpdateProduct applies patch and returns the stored record after the update.
	UpdateProduct(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error)
	// DeleteProduct removes the record and returns it as it was before deletion.
	DeleteProduct(ctx context.Context, id string) (*model.Product, error)
}

type Storage interface {
	UserStore
	ProductStore
	Close() error
}

// NewID returns a fresh record identifier in ObjectID hex form.
func NewID() string {
	return bson.NewObjectID().Hex()
}

// ValidID reports whether id is a well-formed record identifier.
func ValidID(id string) bool {
	_, ok := CanonicalID(id)
	return ok
}

// CanonicalID returns id in the lowercase hex form records are stored under.
// Hex digits are accepted in either case.
func CanonicalID(id string) (string, bool) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return "", false
	}
	return oid.Hex(), true
}
