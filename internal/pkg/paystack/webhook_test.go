package paystack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naijavibes/NaijaVibes/internal/pkg/paystack"
)

func TestParseWebhookEvent(t *testing.T) {
	t.Run("decodes a charge.success delivery", func(t *testing.T) {
		payload := []byte(`{"event":"charge.success","data":{"id":4242,"reference":"premium_3_1700000000000_cafe00","amount":250000,"status":"success"}}`)

		event, err := paystack.ParseWebhookEvent(payload)

		require.NoError(t, err)
		assert.Equal(t, "charge.success", event.Event)
		assert.Equal(t, "premium_3_1700000000000_cafe00", event.Reference)
		assert.Equal(t, int64(4242), event.ProviderTransactionID)
		assert.Equal(t, int64(250000), event.Amount)
		assert.True(t, event.IsChargeSuccess())
	})

	t.Run("other event types are not charge successes", func(t *testing.T) {
		payload := []byte(`{"event":"transfer.success","data":{"reference":"ref"}}`)

		event, err := paystack.ParseWebhookEvent(payload)

		require.NoError(t, err)
		assert.False(t, event.IsChargeSuccess())
	})

	t.Run("event match is case insensitive", func(t *testing.T) {
		payload := []byte(`{"event":"Charge.Success","data":{"reference":"ref"}}`)

		event, err := paystack.ParseWebhookEvent(payload)

		require.NoError(t, err)
		assert.True(t, event.IsChargeSuccess())
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		_, err := paystack.ParseWebhookEvent([]byte(`{`))
		assert.Error(t, err)
	})

	t.Run("rejects missing event type", func(t *testing.T) {
		_, err := paystack.ParseWebhookEvent([]byte(`{"data":{"reference":"ref"}}`))
		assert.Error(t, err)
	})

	t.Run("rejects missing reference", func(t *testing.T) {
		_, err := paystack.ParseWebhookEvent([]byte(`{"event":"charge.success","data":{}}`))
		assert.Error(t, err)
	})
}
