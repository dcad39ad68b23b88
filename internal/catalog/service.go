// Package catalog implements product records: creation, lookup, update,
// deletion and the featured, price and rating listings.
package catalog

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"productapi/internal/model"
	"productapi/internal/storage"
)

type Service struct {
	store storage.ProductStore
}

func NewService(store storage.ProductStore) *Service {
	return &Service{store: store}
}

// Create validates the required fields of p and persists it under a new id.
// A client-supplied id is ignored.
func (s *Service) Create(ctx context.Context, p model.Product) (*model.Product, error) {
	if p.ProductID == "" || p.Name == "" || p.Price == 0 || p.CreatedAt.IsZero() || p.Company == "" {
		return nil, &ValidationError{Message: "Please include all required fields"}
	}

	p.ID = storage.NewID()
	if err := s.store.CreateProduct(ctx, &p); err != nil {
		return nil, &OpError{Op: OpCreate, Err: err}
	}
	return &p, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Product, error) {
	return s.list(ctx, OpList, model.ProductFilter{})
}

func (s *Service) Featured(ctx context.Context) ([]*model.Product, error) {
	featured := true
	return s.list(ctx, OpFeatured, model.ProductFilter{Featured: &featured})
}

// CheaperThan lists products with price strictly below maxPrice.
func (s *Service) CheaperThan(ctx context.Context, maxPrice string) ([]*model.Product, error) {
	v, err := parseBound(maxPrice)
	if err != nil {
		return nil, &ValidationError{Message: "Invalid price"}
	}
	return s.list(ctx, OpList, model.ProductFilter{MaxPrice: &v})
}

// RatedAbove lists products with rating strictly above minRating.
func (s *Service) RatedAbove(ctx context.Context, minRating string) ([]*model.Product, error) {
	v, err := parseBound(minRating)
	if err != nil {
		return nil, &ValidationError{Message: "Invalid rating"}
	}
	return s.list(ctx, OpList, model.ProductFilter{MinRating: &v})
}

func (s *Service) Get(ctx context.Context, id string) (*model.Product, error) {
	id, ok := storage.CanonicalID(id)
	if !ok {
		return nil, ErrInvalidID
	}
	p, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, storeError(OpGet, err)
	}
	return p, nil
}

// Update writes the set fields of patch and returns the updated record.
func (s *Service) Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	id, ok := storage.CanonicalID(id)
	if !ok {
		return nil, ErrInvalidID
	}
	p, err := s.store.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, storeError(OpUpdate, err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id, ok := storage.CanonicalID(id)
	if !ok {
		return ErrInvalidID
	}
	if _, err := s.store.DeleteProduct(ctx, id); err != nil {
		return storeError(OpDelete, err)
	}
	return nil
}

func (s *Service) list(ctx context.Context, op string, filter model.ProductFilter) ([]*model.Product, error) {
	products, err := s.store.GetProducts(ctx, filter)
	if err != nil {
		return nil, &OpError{Op: op, Err: err}
	}
	return products, nil
}

func storeError(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return &OpError{Op: op, Err: err}
}

func parseBound(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("bound must be finite")
	}
	return v, nil
}
