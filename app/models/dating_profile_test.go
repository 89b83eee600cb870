package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/naijavibes/NaijaVibes/app/models"
)

func TestDatingProfileIsPremiumAt(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("basic tier is never premium", func(t *testing.T) {
		future := now.AddDate(0, 1, 0)
		p := models.DatingProfile{MembershipType: models.MembershipBasic, PremiumExpiresAt: &future}
		assert.False(t, p.IsPremiumAt(now))
	})

	t.Run("premium with a future expiry is premium", func(t *testing.T) {
		future := now.Add(time.Minute)
		p := models.DatingProfile{MembershipType: models.MembershipPremium, PremiumExpiresAt: &future}
		assert.True(t, p.IsPremiumAt(now))
	})

	t.Run("premium drops back to basic at the expiry instant", func(t *testing.T) {
		expiry := now
		p := models.DatingProfile{MembershipType: models.MembershipPremium, PremiumExpiresAt: &expiry}
		assert.False(t, p.IsPremiumAt(now))
	})

	t.Run("premium with a past expiry is not premium", func(t *testing.T) {
		past := now.Add(-time.Second)
		p := models.DatingProfile{MembershipType: models.MembershipPremium, PremiumExpiresAt: &past}
		assert.False(t, p.IsPremiumAt(now))
	})

	t.Run("premium without an expiry is not premium", func(t *testing.T) {
		p := models.DatingProfile{MembershipType: models.MembershipPremium}
		assert.False(t, p.IsPremiumAt(now))
	})
}

func TestDatingProfileValidate(t *testing.T) {
	valid := models.DatingProfile{
		UserID: 1,
		Name:   "Ada",
		Email:  "ada@example.com",
		Gender: "female",
		Age:    25,
	}

	t.Run("accepts a minimal valid profile", func(t *testing.T) {
		p := valid
		assert.NoError(t, p.Validate())
	})

	t.Run("rejects underage profiles", func(t *testing.T) {
		p := valid
		p.Age = 17
		assert.Error(t, p.Validate())
	})

	t.Run("rejects unknown gender values", func(t *testing.T) {
		p := valid
		p.Gender = "other"
		assert.Error(t, p.Validate())
	})

	t.Run("rejects unknown preference enums", func(t *testing.T) {
		p := valid
		p.PreferredBodySize = "gigantic"
		assert.Error(t, p.Validate())
	})

	t.Run("accepts valid preference enums", func(t *testing.T) {
		p := valid
		p.PreferredBodySize = "curvy"
		p.RelationshipPurpose = "marriage"
		assert.NoError(t, p.Validate())
	})
}
