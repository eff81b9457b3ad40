// internal/domain/cart/service_test.go
package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/memory"
)

type stubCatalog map[string]product.Product

func (s stubCatalog) GetByName(_ context.Context, name string) (*product.Product, error) {
	p, ok := s[name]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

func newCartService(catalog stubCatalog) (*cart.Service, *memory.CartStore) {
	store := memory.NewCartStore()
	return cart.NewService(store, catalog, nil), store
}

func TestGetMissingCartReadsEmpty(t *testing.T) {
	svc, _ := newCartService(stubCatalog{})

	view, err := svc.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.Totals.Subtotal)
	assert.Equal(t, 0, view.Totals.Count)
}

func TestAddCreatesCartAndSnapshotsPrice(t *testing.T) {
	svc, _ := newCartService(stubCatalog{
		"mug": {Name: "mug", Price: 250, Img: "mug.png"},
	})

	view, err := svc.Add(context.Background(), "alice", "mug", 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "mug", view.Items[0].Name)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 250, view.Items[0].Price)
	assert.Equal(t, "mug.png", view.Items[0].Img)
	assert.Equal(t, 500, view.Totals.Subtotal)
	assert.Equal(t, 2, view.Totals.Count)
}

func TestAddUnknownProduct(t *testing.T) {
	svc, _ := newCartService(stubCatalog{})

	_, err := svc.Add(context.Background(), "alice", "ghost", 1)
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newCartService(stubCatalog{
		"mug": {Name: "mug", Price: 250},
	})

	_, err := svc.Add(context.Background(), "alice", "mug", 0)
	assert.Error(t, err)
}

func TestReAddIncrementsAndRefreshesPrice(t *testing.T) {
	catalog := stubCatalog{
		"mug": {Name: "mug", Price: 250},
	}
	svc, _ := newCartService(catalog)

	_, err := svc.Add(context.Background(), "alice", "mug", 1)
	require.NoError(t, err)

	// The catalog price changes between adds; the cart line follows it.
	catalog["mug"] = product.Product{Name: "mug", Price: 300}

	view, err := svc.Add(context.Background(), "alice", "mug", 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, 300, view.Items[0].Price)
	assert.Equal(t, 900, view.Totals.Subtotal)
}

func TestSetQuantityReplacesCount(t *testing.T) {
	svc, _ := newCartService(stubCatalog{
		"mug": {Name: "mug", Price: 250},
	})

	_, err := svc.Add(context.Background(), "alice", "mug", 1)
	require.NoError(t, err)

	view, err := svc.SetQuantity(context.Background(), "alice", "mug", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Items[0].Quantity)
}

func TestSetQuantityMissingItem(t *testing.T) {
	svc, _ := newCartService(stubCatalog{
		"mug": {Name: "mug", Price: 250},
	})

	_, err := svc.SetQuantity(context.Background(), "alice", "mug", 5)
	assert.ErrorIs(t, err, cart.ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	svc, _ := newCartService(stubCatalog{
		"mug": {Name: "mug", Price: 250},
		"pen": {Name: "pen", Price: 50},
	})

	_, err := svc.Add(context.Background(), "alice", "mug", 1)
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), "alice", "pen", 3)
	require.NoError(t, err)

	view, err := svc.Remove(context.Background(), "alice", "mug")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "pen", view.Items[0].Name)
	assert.Equal(t, 150, view.Totals.Subtotal)
}

func TestRemoveMissingItem(t *testing.T) {
	svc, _ := newCartService(stubCatalog{})

	_, err := svc.Remove(context.Background(), "alice", "mug")
	assert.ErrorIs(t, err, cart.ErrItemNotFound)
}

func TestClearEmptiesCart(t *testing.T) {
	svc, store := newCartService(stubCatalog{
		"mug": {Name: "mug", Price: 250},
	})

	_, err := svc.Add(context.Background(), "alice", "mug", 1)
	require.NoError(t, err)

	view, err := svc.Clear(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	stored, err := store.FindActive(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, stored.Items)
}

func TestClearWithoutCartIsNoOp(t *testing.T) {
	svc, _ := newCartService(stubCatalog{})

	view, err := svc.Clear(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartsAreScopedPerAccount(t *testing.T) {
	svc, _ := newCartService(stubCatalog{
		"mug": {Name: "mug", Price: 250},
	})

	_, err := svc.Add(context.Background(), "alice", "mug", 1)
	require.NoError(t, err)

	view, err := svc.Get(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}
