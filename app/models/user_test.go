package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naijavibes/NaijaVibes/app/models"
)

func TestCreateUser(t *testing.T) {
	t.Run("hashes the password and starts inactive", func(t *testing.T) {
		u, err := models.CreateUser("Ada", "ada@example.com", "secret123")

		require.NoError(t, err)
		assert.NotEqual(t, "secret123", u.Password)
		assert.True(t, u.CheckPassword("secret123"))
		assert.False(t, u.CheckPassword("wrong"))
		assert.Equal(t, models.STATUS_INACTIVE, u.Status)
		assert.Equal(t, models.ROLE_USER, u.Role)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := models.CreateUser("Ada", "not-an-email", "secret123")
		assert.Error(t, err)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := models.CreateUser("Ada", "ada@example.com", "abc")
		assert.Error(t, err)
	})
}

func TestGenerateActivationToken(t *testing.T) {
	u := &models.User{}
	require.NoError(t, u.GenerateActivationToken())

	assert.Len(t, u.ActivationToken, 32)
	assert.NotNil(t, u.ActivationSentAt)

	prev := u.ActivationToken
	require.NoError(t, u.GenerateActivationToken())
	assert.NotEqual(t, prev, u.ActivationToken)
}
