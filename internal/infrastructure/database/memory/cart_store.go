// internal/infrastructure/database/memory/cart_store.go

// Package memory provides in-memory store implementations mirroring the
// conditional-update semantics of the MongoDB stores. They back the service
// tests and local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/your-org/storefront-backend/internal/domain/cart"
)

// CartStore implements cart.Store over a slice of documents guarded by a
// mutex. Each mutation applies its filter and update atomically, matching the
// single-document guarantees of the MongoDB implementation.
type CartStore struct {
	mu   sync.RWMutex
	docs []*cart.Cart
}

// NewCartStore creates an empty in-memory cart store.
func NewCartStore() *CartStore {
	return &CartStore{}
}

func (s *CartStore) findActiveLocked(account string) *cart.Cart {
	for _, d := range s.docs {
		if d.Account == account && d.Status == cart.StatusActive {
			return d
		}
	}
	return nil
}

func copyCart(d *cart.Cart) *cart.Cart {
	c := *d
	c.Items = append([]cart.Item(nil), d.Items...)
	c.ItemsSnapshot = append([]cart.Item(nil), d.ItemsSnapshot...)
	return &c
}

func (s *CartStore) FindActive(_ context.Context, account string) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d := s.findActiveLocked(account); d != nil {
		return copyCart(d), nil
	}
	return nil, cart.ErrCartNotFound
}

func (s *CartStore) UpsertActive(_ context.Context, account string, items []cart.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if d := s.findActiveLocked(account); d != nil {
		d.Items = append([]cart.Item(nil), items...)
		d.UpdatedAt = now
		return nil
	}
	s.docs = append(s.docs, &cart.Cart{
		Account:   account,
		Status:    cart.StatusActive,
		Items:     append([]cart.Item(nil), items...),
		CreatedAt: now,
		UpdatedAt: now,
	})
	return nil
}

func (s *CartStore) SetItemQuantity(_ context.Context, account, name string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.findActiveLocked(account)
	if d == nil {
		return cart.ErrItemNotFound
	}
	for i := range d.Items {
		if d.Items[i].Name == name {
			d.Items[i].Quantity = quantity
			d.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return cart.ErrItemNotFound
}

func (s *CartStore) PullItem(_ context.Context, account, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.findActiveLocked(account)
	if d == nil {
		return cart.ErrItemNotFound
	}
	for i := range d.Items {
		if d.Items[i].Name == name {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			d.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return cart.ErrItemNotFound
}

func (s *CartStore) ClearItems(_ context.Context, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d := s.findActiveLocked(account); d != nil {
		d.Items = []cart.Item{}
		d.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (s *CartStore) FindCheckoutable(_ context.Context, account string) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if d := s.findActiveLocked(account); d != nil {
		return copyCart(d), nil
	}

	var latest *cart.Cart
	for _, d := range s.docs {
		if d.Account != account || d.Status != cart.StatusPending {
			continue
		}
		if latest == nil || d.UpdatedAt.After(latest.UpdatedAt) {
			latest = d
		}
	}
	if latest == nil {
		return nil, cart.ErrCartNotFound
	}
	return copyCart(latest), nil
}

func (s *CartStore) BeginCheckout(_ context.Context, account string, from cart.Status, p cart.Pending) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.docs {
		if d.MerchantTradeNo == p.MerchantTradeNo {
			return cart.ErrDuplicateTradeNo
		}
	}

	var d *cart.Cart
	for _, doc := range s.docs {
		if doc.Account == account && doc.Status == from {
			d = doc
			break
		}
	}
	if d == nil {
		return cart.ErrCartNotFound
	}

	d.Status = cart.StatusPending
	d.MerchantTradeNo = p.MerchantTradeNo
	d.AmountSnapshot = p.AmountSnapshot
	d.ItemsSnapshot = append([]cart.Item(nil), p.ItemsSnapshot...)
	d.Provider = p.Provider
	d.PaidAt = nil
	d.Attempt++
	d.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *CartStore) FindByTradeNo(_ context.Context, tradeNo string) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.docs {
		if d.MerchantTradeNo == tradeNo {
			return copyCart(d), nil
		}
	}
	return nil, cart.ErrOrderNotFound
}

func (s *CartStore) ResolvePending(_ context.Context, tradeNo string, r cart.Resolution) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.docs {
		if d.MerchantTradeNo != tradeNo || d.Status != cart.StatusPending {
			continue
		}
		if r.Succeeded {
			d.Status = cart.StatusSuccess
			d.ProviderTradeNo = r.ProviderTradeNo
			paidAt := r.PaidAt
			d.PaidAt = &paidAt
		} else {
			d.Status = cart.StatusActive
			d.ProviderTradeNo = ""
			d.PaidAt = nil
			d.LastPaymentFailed = true
			d.FailureReason = r.FailureReason
		}
		d.ProviderPayload = r.Payload
		d.UpdatedAt = time.Now().UTC()
		return true, nil
	}
	return false, nil
}

func (s *CartStore) ListOrders(_ context.Context, account string) ([]cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var orders []cart.Cart
	for _, d := range s.docs {
		if d.Account == account && d.Status != cart.StatusActive {
			orders = append(orders, *copyCart(d))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].UpdatedAt.After(orders[j].UpdatedAt)
	})
	return orders, nil
}
