package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// VerifyWebhookSignature checks the x-paystack-signature header: HMAC-SHA512
// over the exact raw payload bytes, hex encoded. The comparison is constant
// time via hmac.Equal. Any re-serialization of the payload before hashing
// would change the bytes and must fail verification, so callers hand in the
// raw request body untouched.
func VerifyWebhookSignature(payload []byte, signatureHex, secret string) bool {
	sig := strings.TrimSpace(signatureHex)
	if sig == "" || secret == "" {
		return false
	}

	decoded, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return false
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), decoded)
}
