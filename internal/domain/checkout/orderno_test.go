// internal/domain/checkout/orderno_test.go
package checkout

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTradeNoFormat(t *testing.T) {
	now := time.Date(2025, 3, 7, 23, 59, 0, 0, time.FixedZone("CST", 8*3600))

	tradeNo := NewTradeNo(now)

	// the date part is always UTC
	assert.Regexp(t, regexp.MustCompile(`^ODR20250307[0-9A-F]{8}$`), tradeNo)
	assert.Len(t, tradeNo, 19)
}

func TestNewTradeNoIsRandomPerCall(t *testing.T) {
	now := time.Now()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[NewTradeNo(now)] = true
	}
	assert.Len(t, seen, 100)
}
