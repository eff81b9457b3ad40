// internal/interfaces/http/handlers/payment_test.go
package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/memory"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
)

func newPaymentRouter(t *testing.T) (*gin.Engine, *memory.CartStore, *payment.ECPayClient) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.ECPay.FrontendBaseURL = "https://www.example.com"

	gateway := payment.NewECPayClient("2000132", "5294y06JbISpM5x9", "v77hoKGq4kWxNNIS")
	store := memory.NewCartStore()
	handler := handlers.NewPaymentHandler(payment.NewReconciler(store, gateway, nil), cfg)

	router := gin.New()
	router.POST("/payment/notify", handler.Notify)
	router.POST("/payment/return", handler.Return)
	return router, store, gateway
}

func postForm(router *gin.Engine, path string, form map[string]string) *httptest.ResponseRecorder {
	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNotifyRespondsWithBareAckLiteral(t *testing.T) {
	router, store, gateway := newPaymentRouter(t)

	items := []cart.Item{{Name: "mug", Quantity: 1, Price: 300}}
	require.NoError(t, store.UpsertActive(context.Background(), "alice", items))
	require.NoError(t, store.BeginCheckout(context.Background(), "alice", cart.StatusActive, cart.Pending{
		MerchantTradeNo: "ODR20250307AAAAAAAA",
		AmountSnapshot:  300,
		ItemsSnapshot:   items,
		Provider:        payment.ProviderName,
	}))

	form := gateway.Sign(map[string]string{
		"MerchantTradeNo": "ODR20250307AAAAAAAA",
		"RtnCode":         "1",
		"TradeAmt":        "300",
		"TradeNo":         "2503071234567890",
	})

	w := postForm(router, "/payment/notify", form)
	assert.Equal(t, http.StatusOK, w.Code)
	// the provider matches on the exact body, no JSON wrapping
	assert.Equal(t, "1|OK", w.Body.String())

	order, err := store.FindByTradeNo(context.Background(), "ODR20250307AAAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, cart.StatusSuccess, order.Status)
}

func TestNotifyBadSignatureAck(t *testing.T) {
	router, _, _ := newPaymentRouter(t)

	w := postForm(router, "/payment/notify", map[string]string{
		"MerchantTradeNo": "ODR20250307AAAAAAAA",
		"RtnCode":         "1",
		"TradeAmt":        "300",
		"CheckMacValue":   "BOGUS",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0|FAIL", w.Body.String())
}

func TestReturnRedirectsToFrontend(t *testing.T) {
	router, _, _ := newPaymentRouter(t)

	w := postForm(router, "/payment/return", map[string]string{
		"MerchantTradeNo": "ODR20250307AAAAAAAA",
		"RtnCode":         "1",
	})
	assert.Equal(t, http.StatusFound, w.Code)

	location := w.Header().Get("Location")
	assert.Contains(t, location, "https://www.example.com/payment/result")
	assert.Contains(t, location, "status=success")
	assert.Contains(t, location, "order=ODR20250307AAAAAAAA")
}

func TestReturnFailureRedirect(t *testing.T) {
	router, _, _ := newPaymentRouter(t)

	w := postForm(router, "/payment/return", map[string]string{
		"MerchantTradeNo": "ODR20250307AAAAAAAA",
		"RtnCode":         "10100058",
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "status=failure")
}
