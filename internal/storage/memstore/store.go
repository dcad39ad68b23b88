// Package memstore is an in-process storage.Storage used for local development and tests.
package memstore

import (
	"context"
	"sync"

	"productapi/internal/model"
	"productapi/internal/storage"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]*model.User // keyed by username
	products map[string]*model.Product
	order    []string // product ids in insertion order
}

var _ storage.Storage = (*Store)(nil)

func New() *Store {
	return &Store{
		users:    map[string]*model.User{},
		products: map[string]*model.Product{},
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Username]; ok {
		return storage.ErrDuplicate
	}
	cp := *u
	s.users[u.Username] = &cp
	return nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) CreateProduct(_ context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; ok {
		return storage.ErrDuplicate
	}
	s.products[p.ID] = cloneProduct(p)
	s.order = append(s.order, p.ID)
	return nil
}

func (s *Store) GetProducts(_ context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*model.Product{}
	for _, id := range s.order {
		if p := s.products[id]; filter.Match(p) {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (s *Store) GetProductByID(_ context.Context, id string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneProduct(p), nil
}

func (s *Store) UpdateProduct(_ context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	patch.Apply(p)
	return cloneProduct(p), nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	delete(s.products, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return p, nil
}

func cloneProduct(p *model.Product) *model.Product {
	cp := *p
	if p.Rating != nil {
		r := *p.Rating
		cp.Rating = &r
	}
	return &cp
}
