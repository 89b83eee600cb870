package paystack_test

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naijavibes/NaijaVibes/internal/pkg/paystack"
)

func sign(payload []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "sk_test_secret"
	payload := []byte(`{"event":"charge.success","data":{"reference":"premium_1_1_ab"}}`)

	t.Run("accepts a valid signature", func(t *testing.T) {
		assert.True(t, paystack.VerifyWebhookSignature(payload, sign(payload, secret), secret))
	})

	t.Run("accepts uppercase hex", func(t *testing.T) {
		sig := strings.ToUpper(sign(payload, secret))
		assert.True(t, paystack.VerifyWebhookSignature(payload, sig, secret))
	})

	t.Run("rejects a flipped payload byte", func(t *testing.T) {
		sig := sign(payload, secret)
		tampered := append([]byte(nil), payload...)
		tampered[10] ^= 0x01
		assert.False(t, paystack.VerifyWebhookSignature(tampered, sig, secret))
	})

	t.Run("rejects a flipped signature byte", func(t *testing.T) {
		sig := []byte(sign(payload, secret))
		if sig[0] == 'a' {
			sig[0] = 'b'
		} else {
			sig[0] = 'a'
		}
		assert.False(t, paystack.VerifyWebhookSignature(payload, string(sig), secret))
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		assert.False(t, paystack.VerifyWebhookSignature(payload, sign(payload, "other"), secret))
	})

	t.Run("rejects empty signature", func(t *testing.T) {
		assert.False(t, paystack.VerifyWebhookSignature(payload, "", secret))
	})

	t.Run("rejects non-hex signature", func(t *testing.T) {
		assert.False(t, paystack.VerifyWebhookSignature(payload, "not-hex!", secret))
	})

	t.Run("rejects when secret is unset", func(t *testing.T) {
		assert.False(t, paystack.VerifyWebhookSignature(payload, sign(payload, ""), ""))
	})
}
