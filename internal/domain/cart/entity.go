// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"time"
)

// Status is the lifecycle state of a cart document. A cart starts active,
// freezes into a pending order at checkout, and is resolved by the payment
// webhook. Failed payments return the document to active; it never leaves
// success.
type Status string

const (
	StatusActive  Status = "active"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
)

var (
	// ErrCartNotFound is returned when the account has no active cart.
	ErrCartNotFound = errors.New("cart not found")
	// ErrItemNotFound is returned when the named item is not in the cart.
	ErrItemNotFound = errors.New("item not found in cart")
	// ErrOrderNotFound is returned when no document carries the trade number.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateTradeNo is returned when a generated order number collides
	// with an existing one. Callers regenerate and retry.
	ErrDuplicateTradeNo = errors.New("merchant trade number already exists")
)

// Item is a single cart line. Items are unique by name within one cart; the
// price is a snapshot of the catalog price at the time of the last add.
type Item struct {
	Name     string `bson:"name" json:"name"`
	Quantity int    `bson:"quantity" json:"quantity"`
	Price    int    `bson:"price" json:"price"`
	Img      string `bson:"img" json:"img"`
}

// Cart is one document in the carts collection. The same document serves as
// the mutable cart while active and as the order record once checkout stamps
// it with a trade number.
type Cart struct {
	Account string `bson:"account" json:"account"`
	Status  Status `bson:"status" json:"status"`
	Items   []Item `bson:"items" json:"items"`

	// Checkout fields, written once per attempt and never touched by cart
	// editing operations.
	MerchantTradeNo string `bson:"merchant_trade_no,omitempty" json:"merchant_trade_no,omitempty"`
	AmountSnapshot  int    `bson:"amount_snapshot,omitempty" json:"amount_snapshot,omitempty"`
	ItemsSnapshot   []Item `bson:"items_snapshot,omitempty" json:"items_snapshot,omitempty"`
	Attempt         int    `bson:"attempt,omitempty" json:"attempt,omitempty"`
	Provider        string `bson:"provider,omitempty" json:"provider,omitempty"`

	// Payment result fields, written only by the webhook reconciler.
	ProviderTradeNo   string            `bson:"provider_trade_no,omitempty" json:"provider_trade_no,omitempty"`
	PaidAt            *time.Time        `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	LastPaymentFailed bool              `bson:"last_payment_failed,omitempty" json:"last_payment_failed,omitempty"`
	FailureReason     string            `bson:"failure_reason,omitempty" json:"failure_reason,omitempty"`
	ProviderPayload   map[string]string `bson:"provider_payload,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Totals is the derived summary of a set of items. It is recomputed on every
// read and never stored, except inside the checkout snapshot.
type Totals struct {
	Subtotal int `json:"subtotal"`
	Count    int `json:"count"`
}

// CalcTotals computes subtotal and quantity count over the given items.
func CalcTotals(items []Item) Totals {
	var t Totals
	for _, it := range items {
		t.Subtotal += it.Price * it.Quantity
		t.Count += it.Quantity
	}
	return t
}
