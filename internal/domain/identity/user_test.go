package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with initial token version", func(t *testing.T) {
		user, err := NewUser("Jordan@Example.com", "jordan", "hashed-secret")
		require.NoError(t, err)

		assert.Equal(t, "jordan@example.com", user.Email)
		assert.Equal(t, "jordan", user.Username)
		assert.Equal(t, 1, user.TokenVersion)
		assert.True(t, user.IsActive)
	})

	t.Run("falls back to email as username", func(t *testing.T) {
		user, err := NewUser("jordan@example.com", "", "hashed-secret")
		require.NoError(t, err)
		assert.Equal(t, "jordan@example.com", user.Username)
	})

	t.Run("fails with malformed email", func(t *testing.T) {
		for _, email := range []string{"", "jordan", "jordan@", "@example.com", "jordan@host"} {
			_, err := NewUser(email, "jordan", "hashed-secret")
			require.Error(t, err, email)
		}
	})

	t.Run("fails without password hash", func(t *testing.T) {
		_, err := NewUser("jordan@example.com", "jordan", "")
		require.Error(t, err)
	})
}

func TestUserChangePassword(t *testing.T) {
	user, err := NewUser("jordan@example.com", "jordan", "old-hash")
	require.NoError(t, err)

	require.True(t, user.MatchesTokenVersion(1))

	require.NoError(t, user.ChangePassword("new-hash"))
	assert.Equal(t, "new-hash", user.PasswordHash)
	assert.Equal(t, 2, user.TokenVersion)

	// refresh tokens minted before the change no longer match
	assert.False(t, user.MatchesTokenVersion(1))
	assert.True(t, user.MatchesTokenVersion(2))
}

func TestUserFullName(t *testing.T) {
	user, err := NewUser("jordan@example.com", "jordan", "hash")
	require.NoError(t, err)

	assert.Equal(t, "jordan", user.FullName())

	user.UpdateProfile("Jordan", "Biles")
	assert.Equal(t, "Jordan Biles", user.FullName())
}
