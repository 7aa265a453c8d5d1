package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/identity"
)

// TokenClaims carries the verified contents of a credential
type TokenClaims struct {
	UserID       uuid.UUID
	Email        string
	TokenVersion int
	TokenID      string
	ExpiresAt    time.Time
}

// TokenService signs and verifies access and refresh credentials
type TokenService interface {
	GenerateAccessToken(user *identity.User) (string, time.Time, error)
	GenerateRefreshToken(user *identity.User) (string, time.Time, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// PasswordHasher hashes and verifies user passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenBlacklist revokes individual credentials until they expire
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// MailSender delivers transactional mail to users
type MailSender interface {
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}

// ResetTokenCodec signs and verifies short-lived password reset tokens
type ResetTokenCodec interface {
	Generate(user *identity.User) (string, error)
	Verify(user *identity.User, token string) bool
}
