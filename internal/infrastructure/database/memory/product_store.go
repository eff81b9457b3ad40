// internal/infrastructure/database/memory/product_store.go

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/your-org/storefront-backend/internal/domain/product"
)

// ProductStore implements product.Store with a map keyed by product name.
type ProductStore struct {
	mu       sync.RWMutex
	products map[string]*product.Product
}

// NewProductStore creates an empty in-memory product store.
func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[string]*product.Product)}
}

func (s *ProductStore) List(_ context.Context) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]product.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *ProductStore) FindByName(_ context.Context, name string) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.products[name]; ok {
		c := *p
		return &c, nil
	}
	return nil, product.ErrNotFound
}

func (s *ProductStore) Insert(_ context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.Name]; ok {
		return product.ErrAlreadyExists
	}
	c := *p
	s.products[p.Name] = &c
	return nil
}

func (s *ProductStore) Update(_ context.Context, name string, upd product.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[name]
	if !ok {
		return product.ErrNotFound
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Img != nil {
		p.Img = *upd.Img
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	return nil
}

func (s *ProductStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[name]; !ok {
		return product.ErrNotFound
	}
	delete(s.products, name)
	return nil
}
