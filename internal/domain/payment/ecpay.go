// internal/domain/payment/ecpay.go
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// ProviderName is stamped on orders created through this gateway.
const ProviderName = "ECPay"

// ECPayClient computes and verifies ECPay CheckMacValue authentication codes
// and prepares the field set for the hosted-checkout redirect form. It is a
// pure transformation; no network calls are made.
type ECPayClient struct {
	merchantID string
	hashKey    string
	hashIV     string
}

// NewECPayClient creates a gateway client for the given merchant credentials.
func NewECPayClient(merchantID, hashKey, hashIV string) *ECPayClient {
	return &ECPayClient{
		merchantID: merchantID,
		hashKey:    hashKey,
		hashIV:     hashIV,
	}
}

// Sign returns a copy of the order parameters with MerchantID and the
// computed CheckMacValue added. The result is the exact field set the browser
// submits to the gateway.
func (c *ECPayClient) Sign(params map[string]string) map[string]string {
	fields := make(map[string]string, len(params)+2)
	for k, v := range params {
		fields[k] = v
	}
	fields["MerchantID"] = c.merchantID
	fields["CheckMacValue"] = c.checkMacValue(fields)
	return fields
}

// Verify recomputes the CheckMacValue over a callback payload and compares it
// against the one the gateway sent.
func (c *ECPayClient) Verify(form map[string]string) bool {
	mac, ok := form["CheckMacValue"]
	if !ok || mac == "" {
		return false
	}
	expected := c.checkMacValue(form)
	return hmac.Equal([]byte(strings.ToUpper(mac)), []byte(expected))
}

// checkMacValue implements the EncryptType=1 algorithm: sort the parameters
// by key, wrap them in HashKey/HashIV, URL-encode the whole string the way
// .NET does, lowercase it and SHA256 the result to uppercase hex.
func (c *ECPayClient) checkMacValue(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "CheckMacValue" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("HashKey=")
	b.WriteString(c.hashKey)
	for _, k := range keys {
		b.WriteString("&")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(params[k])
	}
	b.WriteString("&HashIV=")
	b.WriteString(c.hashIV)

	encoded := strings.ToLower(url.QueryEscape(b.String()))
	encoded = dotNetEncode(encoded)

	sum := sha256.Sum256([]byte(encoded))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// dotNetEncode reconciles Go's query escaping with the .NET UrlEncode output
// the gateway computes against: !*() stay literal, ~ is escaped.
func dotNetEncode(s string) string {
	r := strings.NewReplacer(
		"%21", "!",
		"%2a", "*",
		"%28", "(",
		"%29", ")",
		"~", "%7e",
	)
	return r.Replace(s)
}
