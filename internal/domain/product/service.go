// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Store is the persistence contract for the catalog.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	Insert(ctx context.Context, p *Product) error
	Update(ctx context.Context, name string, upd Update) error
	Delete(ctx context.Context, name string) error
}

// Cache is a read-through cache for single-product lookups. Implementations
// return ErrCacheMiss when the key is absent.
type Cache interface {
	Get(ctx context.Context, name string) (*Product, error)
	Set(ctx context.Context, p *Product) error
	Delete(ctx context.Context, name string) error
}

// Service handles catalog business logic
type Service struct {
	store  Store
	cache  Cache
	logger *logrus.Logger
	sfg    singleflight.Group // prevents cache stampede on hot products
}

// NewService creates a new catalog service. cache may be nil, in which case
// every lookup goes to the store.
func NewService(store Store, cache Cache, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// List returns the whole catalog. The list endpoint is not cached; the store
// is the source of truth for browsing.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.store.List(ctx)
}

// GetByName resolves a product name to its current price and metadata.
func (s *Service) GetByName(ctx context.Context, name string) (*Product, error) {
	if s.cache == nil {
		return s.store.FindByName(ctx, name)
	}

	v, err, _ := s.sfg.Do(name, func() (interface{}, error) {
		p, err := s.cache.Get(ctx, name)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.WithError(err).WithField("product", name).Warn("product cache read failed")
		}

		p, err = s.store.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(ctx, p); err != nil {
			s.logger.WithError(err).WithField("product", name).Warn("product cache write failed")
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Product), nil
}

// Create adds a new catalog entry. Name, price, img and description are all
// required; duplicate names are rejected.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if p.Name == "" || p.Img == "" || p.Description == "" {
		return fmt.Errorf("all product fields are required")
	}
	if p.Price <= 0 {
		return fmt.Errorf("price must be a positive integer")
	}

	if err := s.store.Insert(ctx, p); err != nil {
		return err
	}
	s.logger.WithField("product", p.Name).Info("product created")
	return nil
}

// UpdateByName applies a partial update and invalidates the cache entry.
func (s *Service) UpdateByName(ctx context.Context, name string, upd Update) error {
	if upd.IsEmpty() {
		return nil
	}
	if upd.Price != nil && *upd.Price <= 0 {
		return fmt.Errorf("price must be a positive integer")
	}

	if err := s.store.Update(ctx, name, upd); err != nil {
		return err
	}
	s.invalidate(ctx, name)
	return nil
}

// DeleteByName removes a catalog entry and invalidates the cache entry.
func (s *Service) DeleteByName(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return err
	}
	s.invalidate(ctx, name)
	return nil
}

func (s *Service) invalidate(ctx context.Context, name string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, name); err != nil {
		s.logger.WithError(err).WithField("product", name).Warn("product cache invalidation failed")
	}
}
