package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetTokenCodec(t *testing.T) {
	codec := NewResetTokenCodec("reset-secret", time.Hour)

	t.Run("fresh token verifies", func(t *testing.T) {
		user := testUser(t)

		token, err := codec.Generate(user)

		require.NoError(t, err)
		assert.True(t, codec.Verify(user, token))
	})

	t.Run("token dies with a password change", func(t *testing.T) {
		user := testUser(t)
		token, err := codec.Generate(user)
		require.NoError(t, err)

		require.NoError(t, user.ChangePassword("another-hash"))

		assert.False(t, codec.Verify(user, token))
	})

	t.Run("token is single-user", func(t *testing.T) {
		user := testUser(t)
		token, err := codec.Generate(user)
		require.NoError(t, err)

		other := testUser(t)

		assert.False(t, codec.Verify(other, token))
	})

	t.Run("expired token is refused", func(t *testing.T) {
		short := NewResetTokenCodec("reset-secret", time.Nanosecond)
		user := testUser(t)
		token, err := short.Generate(user)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		assert.False(t, short.Verify(user, token))
	})

	t.Run("malformed tokens are refused", func(t *testing.T) {
		user := testUser(t)

		assert.False(t, codec.Verify(user, "zz-not-a-hex-stamp"))
		assert.False(t, codec.Verify(user, "nodash"))
		assert.False(t, codec.Verify(user, ""))
	})
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(4) // minimal cost keeps the test fast

	hash, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.NoError(t, hasher.Compare(hash, "s3cret-pass"))
	assert.Error(t, hasher.Compare(hash, "wrong"))
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	blacklist := NewInMemoryTokenBlacklist()

	t.Run("unknown token is not revoked", func(t *testing.T) {
		revoked, err := blacklist.IsRevoked(ctx, "jti-unknown")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revoked token reports revoked until expiry", func(t *testing.T) {
		require.NoError(t, blacklist.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

		revoked, err := blacklist.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("expired entries fall out", func(t *testing.T) {
		require.NoError(t, blacklist.Revoke(ctx, "jti-2", time.Now().Add(-time.Minute)))

		revoked, err := blacklist.IsRevoked(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
