// internal/domain/cart/store.go
package cart

import (
	"context"
	"time"
)

// Pending carries the fields stamped onto the active cart when checkout
// freezes it into a pending order.
type Pending struct {
	MerchantTradeNo string
	AmountSnapshot  int
	ItemsSnapshot   []Item
	Provider        string
}

// Resolution carries the outcome the webhook reconciler applies to a pending
// order. The raw provider payload is always stored for audit.
type Resolution struct {
	Succeeded       bool
	ProviderTradeNo string
	PaidAt          time.Time
	FailureReason   string
	Payload         map[string]string
}

// Store is the persistence contract for cart and order documents. All
// mutations are single-document conditional updates; the filter carries the
// expected prior status so concurrent writers cannot race each other past an
// already-applied transition.
type Store interface {
	// FindActive returns the account's single active cart, or ErrCartNotFound.
	FindActive(ctx context.Context, account string) (*Cart, error)

	// UpsertActive replaces the item list of the active cart, creating the
	// document if the account has none.
	UpsertActive(ctx context.Context, account string, items []Item) error

	// SetItemQuantity updates one named line on the active cart. Returns
	// ErrItemNotFound when no active cart holds that item.
	SetItemQuantity(ctx context.Context, account, name string, quantity int) error

	// PullItem removes one named line from the active cart. Returns
	// ErrItemNotFound when nothing was removed.
	PullItem(ctx context.Context, account, name string) error

	// ClearItems empties the active cart. A missing cart is not an error.
	ClearItems(ctx context.Context, account string) error

	// FindCheckoutable returns the cart a checkout would freeze: the active
	// cart when one exists, otherwise the account's most recent still-pending
	// order (re-checkout before the prior attempt resolved). Returns
	// ErrCartNotFound when there is neither.
	FindCheckoutable(ctx context.Context, account string) (*Cart, error)

	// BeginCheckout transitions the cart currently in status from to pending
	// in place, stamping the pending fields, incrementing the attempt counter
	// and clearing any prior paid_at. Re-checkout of a pending order passes
	// from=StatusPending and overwrites the order fields on the same document.
	// Returns ErrCartNotFound when no document matches and ErrDuplicateTradeNo
	// on an order-number collision.
	BeginCheckout(ctx context.Context, account string, from Status, p Pending) error

	// FindByTradeNo looks up any document (pending or resolved) by its
	// merchant trade number. Returns ErrOrderNotFound when absent.
	FindByTradeNo(ctx context.Context, tradeNo string) (*Cart, error)

	// ResolvePending applies a payment result to the document matching
	// {merchant_trade_no, status=pending}. The boolean reports whether the
	// filter matched; false means another callback already resolved the order
	// and the mutation was skipped.
	ResolvePending(ctx context.Context, tradeNo string, r Resolution) (bool, error)

	// ListOrders returns the account's non-active documents, most recent
	// first. They double as the order history log.
	ListOrders(ctx context.Context, account string) ([]Cart, error)
}
