// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/payment"
)

// PaymentHandler handles gateway callback endpoints. These are hit by the
// payment provider and the paying customer's browser, never by our own
// frontend code.
type PaymentHandler struct {
	reconciler *payment.Reconciler
	config     *config.Config
}

// NewPaymentHandler creates a new payment callback handler
func NewPaymentHandler(reconciler *payment.Reconciler, cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{reconciler: reconciler, config: cfg}
}

// Notify handles POST /payment/notify, the provider's server-to-server
// result callback. The response body is the bare acknowledgement token the
// provider expects; anything else triggers redelivery.
func (h *PaymentHandler) Notify(c *gin.Context) {
	form, err := callbackForm(c)
	if err != nil {
		c.String(http.StatusOK, payment.AckFailure)
		return
	}

	ack := h.reconciler.HandleNotify(c.Request.Context(), form)
	c.String(http.StatusOK, ack)
}

// Return handles POST /payment/return, where the provider sends the
// customer's browser after payment. It forwards to the frontend with the
// outcome in the query string.
func (h *PaymentHandler) Return(c *gin.Context) {
	form, err := callbackForm(c)
	if err != nil {
		c.Redirect(http.StatusFound, h.resultURL("failure", ""))
		return
	}

	status := "failure"
	if form["RtnCode"] == "1" {
		status = "success"
	}
	c.Redirect(http.StatusFound, h.resultURL(status, form["MerchantTradeNo"]))
}

func (h *PaymentHandler) resultURL(status, tradeNo string) string {
	q := url.Values{}
	q.Set("status", status)
	if tradeNo != "" {
		q.Set("order", tradeNo)
	}
	return h.config.ECPay.FrontendBaseURL + "/payment/result?" + q.Encode()
}

// callbackForm flattens the urlencoded callback body into a string map,
// keeping the first value of each key.
func callbackForm(c *gin.Context) (map[string]string, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}

	form := make(map[string]string, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			form[key] = values[0]
		}
	}
	return form, nil
}
