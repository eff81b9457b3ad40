// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/payment"
)

var (
	// ErrCartEmpty is returned when checkout is attempted on an empty cart.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrInvalidAmount is returned when the computed charge is not positive.
	ErrInvalidAmount = errors.New("order amount must be positive")
)

// How many trade numbers we generate before giving up on a checkout. A single
// collision is already vanishingly unlikely.
const maxTradeNoAttempts = 5

// Signer produces the signed field set for the gateway redirect form.
type Signer interface {
	Sign(params map[string]string) map[string]string
}

// Redirect is what the client needs to hand the browser over to the hosted
// payment page: a same-origin form POST of Fields to Action.
type Redirect struct {
	Action string            `json:"action"`
	Method string            `json:"method"`
	Fields map[string]string `json:"fields"`
}

// Service orchestrates the cart-to-order transition and prepares the gateway
// redirect. It never talks to the provider directly.
type Service struct {
	store   cart.Store
	gateway Signer
	config  *config.Config
	logger  *logrus.Logger
	now     func() time.Time
}

// NewService creates a new checkout service
func NewService(store cart.Store, gateway Signer, cfg *config.Config, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		store:   store,
		gateway: gateway,
		config:  cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateCheckout freezes the account's active cart into a pending order and
// returns the signed redirect payload. Invoking it again while a prior order
// is still pending stamps fresh order fields onto the same document; the old
// trade number stays findable for a late callback but is no longer reachable
// from the cart.
func (s *Service) CreateCheckout(ctx context.Context, account string) (*Redirect, error) {
	c, err := s.store.FindCheckoutable(ctx, account)
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			return nil, ErrCartEmpty
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(c.Items) == 0 {
		return nil, ErrCartEmpty
	}

	amount := cart.CalcTotals(c.Items).Subtotal
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var tradeNo string
	for attempt := 0; ; attempt++ {
		tradeNo = NewTradeNo(s.now())
		err = s.store.BeginCheckout(ctx, account, c.Status, cart.Pending{
			MerchantTradeNo: tradeNo,
			AmountSnapshot:  amount,
			ItemsSnapshot:   c.Items,
			Provider:        payment.ProviderName,
		})
		if err == nil {
			break
		}
		if errors.Is(err, cart.ErrDuplicateTradeNo) && attempt+1 < maxTradeNoAttempts {
			s.logger.WithField("trade_no", tradeNo).Warn("trade number collision, regenerating")
			continue
		}
		if errors.Is(err, cart.ErrCartNotFound) {
			// the cart disappeared between load and transition
			return nil, ErrCartEmpty
		}
		return nil, fmt.Errorf("failed to begin checkout: %w", err)
	}

	params := map[string]string{
		"MerchantTradeNo":   tradeNo,
		"MerchantTradeDate": s.now().Format("2006/01/02 15:04:05"),
		"PaymentType":       "aio",
		"TotalAmount":       strconv.Itoa(amount),
		"TradeDesc":         "Storefront order",
		"ItemName":          itemNames(c.Items),
		"ChoosePayment":     "ALL",
		"ReturnURL":         s.config.ECPay.BaseURL + "/payment/notify",
		"OrderResultURL":    s.config.ECPay.BaseURL + "/payment/return",
		"ClientBackURL":     s.config.ECPay.FrontendBaseURL + "/",
		"NeedExtraPaidInfo": "Y",
		"EncryptType":       "1",
	}

	s.logger.WithFields(logrus.Fields{
		"account":  account,
		"trade_no": tradeNo,
		"amount":   amount,
	}).Info("checkout created")

	return &Redirect{
		Action: s.config.ECPay.GatewayURL,
		Method: "POST",
		Fields: s.gateway.Sign(params),
	}, nil
}

// ListOrders returns the account's order history, most recent first.
func (s *Service) ListOrders(ctx context.Context, account string) ([]cart.Cart, error) {
	return s.store.ListOrders(ctx, account)
}

// GetOrder returns one order by trade number, scoped to its owner.
func (s *Service) GetOrder(ctx context.Context, account, tradeNo string) (*cart.Cart, error) {
	order, err := s.store.FindByTradeNo(ctx, tradeNo)
	if err != nil {
		return nil, err
	}
	if order.Account != account {
		// don't leak other accounts' orders
		return nil, cart.ErrOrderNotFound
	}
	return order, nil
}

// itemNames concatenates item names with the gateway's '#' separator.
func itemNames(items []cart.Item) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	joined := strings.Join(names, "#")
	if joined == "" {
		return "order"
	}
	return joined
}
