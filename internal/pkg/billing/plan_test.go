package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/naijavibes/NaijaVibes/internal/pkg/billing"
)

func TestNextExpiry(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("first activation runs one month from now", func(t *testing.T) {
		got := billing.NextExpiry(now, nil)
		assert.Equal(t, time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC), got)
	})

	t.Run("expired membership restarts from now", func(t *testing.T) {
		expired := now.AddDate(0, 0, -10)
		got := billing.NextExpiry(now, &expired)
		assert.Equal(t, now.AddDate(0, 1, 0), got)
	})

	t.Run("renewal before expiry stacks on the remaining time", func(t *testing.T) {
		current := now.AddDate(0, 0, 10)
		got := billing.NextExpiry(now, &current)
		assert.Equal(t, current.AddDate(0, 1, 0), got)
	})

	t.Run("expiry exactly now restarts from now", func(t *testing.T) {
		current := now
		got := billing.NextExpiry(now, &current)
		assert.Equal(t, now.AddDate(0, 1, 0), got)
	})
}
