package paystack_test

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naijavibes/NaijaVibes/internal/pkg/paystack"
)

func TestGenerateReference(t *testing.T) {
	t.Run("matches premium_<user>_<millis>_<rand> format", func(t *testing.T) {
		ref := paystack.GenerateReference("42")

		pattern := regexp.MustCompile(`^premium_42_\d{13}_[0-9a-f]{12}$`)
		assert.Regexp(t, pattern, ref)
	})

	t.Run("embeds the user id", func(t *testing.T) {
		ref := paystack.GenerateReference("1337")

		parts := strings.Split(ref, "_")
		assert.Len(t, parts, 4)
		assert.Equal(t, "premium", parts[0])
		assert.Equal(t, "1337", parts[1])

		_, err := strconv.ParseInt(parts[2], 10, 64)
		assert.NoError(t, err)
	})

	t.Run("never collides within the same millisecond", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			ref := paystack.GenerateReference("7")
			assert.False(t, seen[ref], "duplicate reference %s", ref)
			seen[ref] = true
		}
	})
}
