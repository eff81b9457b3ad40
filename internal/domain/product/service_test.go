// internal/domain/product/service_test.go
package product_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/memory"
)

// mapCache is an in-process product.Cache that counts hits and misses.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]product.Product
	hits    int
	misses  int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]product.Product)}
}

func (c *mapCache) Get(_ context.Context, name string) (*product.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.entries[name]
	if !ok {
		c.misses++
		return nil, product.ErrCacheMiss
	}
	c.hits++
	return &p, nil
}

func (c *mapCache) Set(_ context.Context, p *product.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[p.Name] = *p
	return nil
}

func (c *mapCache) Delete(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, name)
	return nil
}

func newProductService() (*product.Service, *mapCache) {
	cache := newMapCache()
	return product.NewService(memory.NewProductStore(), cache, nil), cache
}

func sample() *product.Product {
	return &product.Product{
		Name:        "mug",
		Price:       250,
		Img:         "mug.png",
		Description: "A mug.",
	}
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newProductService()

	require.NoError(t, svc.Create(context.Background(), sample()))

	p, err := svc.GetByName(context.Background(), "mug")
	require.NoError(t, err)
	assert.Equal(t, 250, p.Price)
}

func TestCreateValidatesFields(t *testing.T) {
	svc, _ := newProductService()

	p := sample()
	p.Price = 0
	assert.Error(t, svc.Create(context.Background(), p))

	p = sample()
	p.Img = ""
	assert.Error(t, svc.Create(context.Background(), p))
}

func TestCreateDuplicateName(t *testing.T) {
	svc, _ := newProductService()

	require.NoError(t, svc.Create(context.Background(), sample()))
	assert.ErrorIs(t, svc.Create(context.Background(), sample()), product.ErrAlreadyExists)
}

func TestGetByNamePopulatesCache(t *testing.T) {
	svc, cache := newProductService()
	require.NoError(t, svc.Create(context.Background(), sample()))

	_, err := svc.GetByName(context.Background(), "mug")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.misses)

	_, err = svc.GetByName(context.Background(), "mug")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
}

func TestGetByNameUnknown(t *testing.T) {
	svc, _ := newProductService()

	_, err := svc.GetByName(context.Background(), "ghost")
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	svc, cache := newProductService()
	require.NoError(t, svc.Create(context.Background(), sample()))

	// warm the cache
	_, err := svc.GetByName(context.Background(), "mug")
	require.NoError(t, err)

	price := 300
	require.NoError(t, svc.UpdateByName(context.Background(), "mug", product.Update{Price: &price}))
	assert.NotContains(t, cache.entries, "mug")

	p, err := svc.GetByName(context.Background(), "mug")
	require.NoError(t, err)
	assert.Equal(t, 300, p.Price)
}

func TestUpdateUnknownProduct(t *testing.T) {
	svc, _ := newProductService()

	price := 300
	err := svc.UpdateByName(context.Background(), "ghost", product.Update{Price: &price})
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestDeleteRemovesProductAndCacheEntry(t *testing.T) {
	svc, cache := newProductService()
	require.NoError(t, svc.Create(context.Background(), sample()))

	_, err := svc.GetByName(context.Background(), "mug")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByName(context.Background(), "mug"))
	assert.NotContains(t, cache.entries, "mug")

	_, err = svc.GetByName(context.Background(), "mug")
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestListSortsByName(t *testing.T) {
	svc, _ := newProductService()

	b := sample()
	b.Name = "pen"
	require.NoError(t, svc.Create(context.Background(), sample()))
	require.NoError(t, svc.Create(context.Background(), b))

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "mug", products[0].Name)
	assert.Equal(t, "pen", products[1].Name)
}
