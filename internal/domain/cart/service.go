// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

// Catalog resolves product names to their current catalog entry. The cart
// trusts the catalog for price and image; it never accepts them from clients.
type Catalog interface {
	GetByName(ctx context.Context, name string) (*product.Product, error)
}

// Service handles cart business logic
type Service struct {
	store   Store
	catalog Catalog
	logger  *logrus.Logger
}

// NewService creates a new cart service
func NewService(store Store, catalog Catalog, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

// View is the cart as returned to clients: the item list plus totals derived
// from it on every read.
type View struct {
	Items  []Item `json:"cart"`
	Totals Totals `json:"total"`
}

// Get returns the account's active cart. A missing cart reads as an empty one.
func (s *Service) Get(ctx context.Context, account string) (*View, error) {
	c, err := s.store.FindActive(ctx, account)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return &View{Items: []Item{}}, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return s.view(c.Items), nil
}

// Add puts quantity units of the named product into the active cart, creating
// the cart if needed. If the product is already in the cart its quantity is
// incremented and its price refreshed to the current catalog price.
func (s *Service) Add(ctx context.Context, account, name string, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	prod, err := s.catalog.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}

	var items []Item
	c, err := s.store.FindActive(ctx, account)
	if err != nil && !errors.Is(err, ErrCartNotFound) {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if c != nil {
		items = c.Items
	}

	found := false
	for i := range items {
		if items[i].Name == name {
			items[i].Quantity += quantity
			items[i].Price = prod.Price // price follows the catalog on every add
			found = true
			break
		}
	}
	if !found {
		items = append(items, Item{
			Name:     name,
			Quantity: quantity,
			Price:    prod.Price,
			Img:      prod.Img,
		})
	}

	if err := s.store.UpsertActive(ctx, account, items); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return s.view(items), nil
}

// Remove pulls the named item from the active cart.
func (s *Service) Remove(ctx context.Context, account, name string) (*View, error) {
	if err := s.store.PullItem(ctx, account, name); err != nil {
		return nil, err
	}
	return s.Get(ctx, account)
}

// SetQuantity replaces the quantity of the named item on the active cart.
func (s *Service) SetQuantity(ctx context.Context, account, name string, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if err := s.store.SetItemQuantity(ctx, account, name, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, account)
}

// Clear empties the active cart. Clearing a nonexistent cart is a no-op.
func (s *Service) Clear(ctx context.Context, account string) (*View, error) {
	if err := s.store.ClearItems(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	return &View{Items: []Item{}}, nil
}

func (s *Service) view(items []Item) *View {
	if items == nil {
		items = []Item{}
	}
	return &View{
		Items:  items,
		Totals: CalcTotals(items),
	}
}
