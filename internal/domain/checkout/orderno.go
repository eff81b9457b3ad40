// internal/domain/checkout/orderno.go
package checkout

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"strings"
	"time"
)

const tradeNoPrefix = "ODR"

// NewTradeNo generates an order identifier of the form ODR<YYYYMMDD><8 hex>,
// date in UTC, hex uppercase. Four random bytes keep the same-day collision
// probability negligible; the store's unique index catches the rest and the
// caller regenerates.
func NewTradeNo(now time.Time) string {
	var b [4]byte
	if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
		// crypto/rand failing means the platform is broken
		panic(err)
	}
	return tradeNoPrefix + now.UTC().Format("20060102") + strings.ToUpper(hex.EncodeToString(b[:]))
}
