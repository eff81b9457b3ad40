// internal/domain/payment/reconciler.go
package payment

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
)

// Acknowledgement tokens. The gateway matches the response body against these
// exact strings: anything other than AckSuccess makes it redeliver the
// callback later.
const (
	AckSuccess = "1|OK"
	AckFailure = "0|FAIL"
)

// Default failure reason when the callback carries no message.
const defaultFailureReason = "PaymentNotSuccessful"

// Verifier checks the authenticity of a callback payload.
type Verifier interface {
	Verify(form map[string]string) bool
}

// Reconciler applies asynchronous payment-result callbacks to pending orders.
// It is the sole writer of payment result fields; the browser return endpoint
// never mutates anything.
type Reconciler struct {
	store   cart.Store
	gateway Verifier
	logger  *logrus.Logger
	now     func() time.Time
}

// NewReconciler creates a webhook reconciler.
func NewReconciler(store cart.Store, gateway Verifier, logger *logrus.Logger) *Reconciler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Reconciler{
		store:   store,
		gateway: gateway,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// HandleNotify evaluates one callback delivery and returns the acknowledgement
// token to send back. The provider delivers at least once, so every path here
// must be safe to replay.
func (r *Reconciler) HandleNotify(ctx context.Context, form map[string]string) string {
	tradeNo := form["MerchantTradeNo"]
	rtnCode := form["RtnCode"]

	log := r.logger.WithFields(logrus.Fields{
		"trade_no": tradeNo,
		"rtn_code": rtnCode,
	})
	log.Info("payment notify received")

	// 1. Authenticity. A verification panic counts as a failed check, not a
	// crash: the gateway will redeliver.
	if !r.verify(form) {
		log.WithField("payload", form).Error("payment notify rejected: bad check mac value")
		return AckFailure
	}

	// 2. Amount must parse as an integer.
	tradeAmt, err := strconv.Atoi(form["TradeAmt"])
	if err != nil {
		log.WithField("trade_amt", form["TradeAmt"]).Warn("payment notify rejected: unparsable amount")
		return AckFailure
	}

	// 3. Order lookup. Unknown trade numbers are acknowledged positively so a
	// stale or foreign callback does not loop forever.
	order, err := r.store.FindByTradeNo(ctx, tradeNo)
	if err != nil {
		if errors.Is(err, cart.ErrOrderNotFound) {
			log.Warn("payment notify for unknown order, treating as already processed")
			return AckSuccess
		}
		log.WithError(err).Error("payment notify: order lookup failed, requesting redelivery")
		return AckFailure
	}

	// 4. Idempotency: a resolved order is never touched again.
	if order.Status != cart.StatusPending {
		log.WithField("status", order.Status).Info("payment notify for non-pending order, idempotent ok")
		return AckSuccess
	}

	// 5. The callback amount must match the checkout snapshot.
	if order.AmountSnapshot != tradeAmt {
		log.WithFields(logrus.Fields{
			"expected": order.AmountSnapshot,
			"got":      tradeAmt,
		}).Warn("payment notify rejected: amount mismatch")
		return AckFailure
	}

	// 6/7. Apply the result under a {trade_no, status=pending} filter. A zero
	// match means a concurrent delivery won the race; that is already the
	// outcome we wanted.
	res := cart.Resolution{
		Succeeded:       rtnCode == "1",
		ProviderTradeNo: form["TradeNo"],
		PaidAt:          r.now(),
		Payload:         form,
	}
	if !res.Succeeded {
		res.FailureReason = form["RtnMsg"]
		if res.FailureReason == "" {
			res.FailureReason = defaultFailureReason
		}
	}

	matched, err := r.store.ResolvePending(ctx, tradeNo, res)
	if err != nil {
		log.WithError(err).Error("payment notify: failed to apply result, requesting redelivery")
		return AckFailure
	}

	outcome := "failed"
	if res.Succeeded {
		outcome = "success"
	}
	log.WithFields(logrus.Fields{
		"matched": matched,
		"outcome": outcome,
	}).Info("payment notify applied")

	// 8. The callback has been fully evaluated; acknowledge it.
	return AckSuccess
}

func (r *Reconciler) verify(form map[string]string) (ok bool) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.WithField("panic", p).Error("payment notify verification panicked")
			ok = false
		}
	}()
	return r.gateway.Verify(form)
}
