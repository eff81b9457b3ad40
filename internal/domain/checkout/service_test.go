// internal/domain/checkout/service_test.go
package checkout_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/memory"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ECPay.MerchantID = "2000132"
	cfg.ECPay.HashKey = "5294y06JbISpM5x9"
	cfg.ECPay.HashIV = "v77hoKGq4kWxNNIS"
	cfg.ECPay.GatewayURL = "https://payment-stage.ecpay.com.tw/Cashier/AioCheckOut/V5"
	cfg.ECPay.BaseURL = "https://shop.example.com"
	cfg.ECPay.FrontendBaseURL = "https://www.example.com"
	return cfg
}

func newCheckoutService() (*checkout.Service, *memory.CartStore) {
	cfg := testConfig()
	gateway := payment.NewECPayClient(cfg.ECPay.MerchantID, cfg.ECPay.HashKey, cfg.ECPay.HashIV)
	store := memory.NewCartStore()
	return checkout.NewService(store, gateway, cfg, nil), store
}

func seedCart(t *testing.T, store *memory.CartStore, account string, items []cart.Item) {
	t.Helper()
	require.NoError(t, store.UpsertActive(context.Background(), account, items))
}

func TestCreateCheckoutMissingCart(t *testing.T) {
	svc, _ := newCheckoutService()

	_, err := svc.CreateCheckout(context.Background(), "alice")
	assert.ErrorIs(t, err, checkout.ErrCartEmpty)
}

func TestCreateCheckoutEmptyCart(t *testing.T) {
	svc, store := newCheckoutService()
	seedCart(t, store, "alice", []cart.Item{})

	_, err := svc.CreateCheckout(context.Background(), "alice")
	assert.ErrorIs(t, err, checkout.ErrCartEmpty)
}

func TestCreateCheckoutFreezesCart(t *testing.T) {
	svc, store := newCheckoutService()
	seedCart(t, store, "alice", []cart.Item{
		{Name: "mug", Quantity: 2, Price: 100},
		{Name: "pen", Quantity: 1, Price: 100},
	})

	redirect, err := svc.CreateCheckout(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, "https://payment-stage.ecpay.com.tw/Cashier/AioCheckOut/V5", redirect.Action)
	assert.Equal(t, "POST", redirect.Method)
	assert.Equal(t, "2000132", redirect.Fields["MerchantID"])
	assert.Equal(t, "300", redirect.Fields["TotalAmount"])
	assert.Equal(t, "mug#pen", redirect.Fields["ItemName"])
	assert.Equal(t, "https://shop.example.com/payment/notify", redirect.Fields["ReturnURL"])
	assert.NotEmpty(t, redirect.Fields["CheckMacValue"])
	assert.Regexp(t, `^ODR\d{8}[0-9A-F]{8}$`, redirect.Fields["MerchantTradeNo"])

	order, err := store.FindByTradeNo(context.Background(), redirect.Fields["MerchantTradeNo"])
	require.NoError(t, err)
	assert.Equal(t, cart.StatusPending, order.Status)
	assert.Equal(t, 300, order.AmountSnapshot)
	assert.Len(t, order.ItemsSnapshot, 2)
	assert.Equal(t, 1, order.Attempt)
	assert.Equal(t, payment.ProviderName, order.Provider)
	assert.Nil(t, order.PaidAt)

	// the frozen cart is no longer active
	_, err = store.FindActive(context.Background(), "alice")
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

func TestRecheckoutOverwritesPendingOrder(t *testing.T) {
	svc, store := newCheckoutService()
	seedCart(t, store, "alice", []cart.Item{
		{Name: "mug", Quantity: 1, Price: 100},
	})

	first, err := svc.CreateCheckout(context.Background(), "alice")
	require.NoError(t, err)
	firstNo := first.Fields["MerchantTradeNo"]

	second, err := svc.CreateCheckout(context.Background(), "alice")
	require.NoError(t, err)
	secondNo := second.Fields["MerchantTradeNo"]
	require.NotEqual(t, firstNo, secondNo)

	// the old order number is orphaned, the same document carries the new one
	_, err = store.FindByTradeNo(context.Background(), firstNo)
	assert.ErrorIs(t, err, cart.ErrOrderNotFound)

	order, err := store.FindByTradeNo(context.Background(), secondNo)
	require.NoError(t, err)
	assert.Equal(t, cart.StatusPending, order.Status)
	assert.Equal(t, 2, order.Attempt)
}

func TestGetOrderChecksOwnership(t *testing.T) {
	svc, store := newCheckoutService()
	seedCart(t, store, "alice", []cart.Item{
		{Name: "mug", Quantity: 1, Price: 100},
	})

	redirect, err := svc.CreateCheckout(context.Background(), "alice")
	require.NoError(t, err)
	tradeNo := redirect.Fields["MerchantTradeNo"]

	order, err := svc.GetOrder(context.Background(), "alice", tradeNo)
	require.NoError(t, err)
	assert.Equal(t, tradeNo, order.MerchantTradeNo)

	// another account's order reads as not found
	_, err = svc.GetOrder(context.Background(), "bob", tradeNo)
	assert.ErrorIs(t, err, cart.ErrOrderNotFound)
}

func TestListOrdersExcludesActiveCart(t *testing.T) {
	svc, store := newCheckoutService()
	seedCart(t, store, "alice", []cart.Item{
		{Name: "mug", Quantity: 1, Price: 100},
	})

	_, err := svc.CreateCheckout(context.Background(), "alice")
	require.NoError(t, err)

	// a fresh active cart after checkout is not part of the history
	seedCart(t, store, "alice", []cart.Item{
		{Name: "pen", Quantity: 1, Price: 50},
	})

	orders, err := svc.ListOrders(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, cart.StatusPending, orders[0].Status)
}
