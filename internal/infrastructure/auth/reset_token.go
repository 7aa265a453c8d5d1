package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	appidentity "github.com/stocker/backend/internal/application/identity"
	"github.com/stocker/backend/internal/domain/identity"
)

// ResetTokenCodec issues stateless password-reset tokens. The signature
// covers the user's token version and current password hash, so a token
// stops verifying as soon as the password changes.
type ResetTokenCodec struct {
	secret []byte
	ttl    time.Duration
}

var _ appidentity.ResetTokenCodec = (*ResetTokenCodec)(nil)

// NewResetTokenCodec creates a codec; zero ttl defaults to one hour
func NewResetTokenCodec(secret string, ttl time.Duration) *ResetTokenCodec {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &ResetTokenCodec{secret: []byte(secret), ttl: ttl}
}

// Generate returns "<unix-hex>-<signature>" for the user's current state
func (c *ResetTokenCodec) Generate(user *identity.User) (string, error) {
	issuedAt := time.Now().Unix()
	stamp := strconv.FormatInt(issuedAt, 16)
	return stamp + "-" + c.sign(user, stamp), nil
}

// Verify checks the signature and the token age against the ttl
func (c *ResetTokenCodec) Verify(user *identity.User, token string) bool {
	stamp, signature, found := strings.Cut(token, "-")
	if !found {
		return false
	}

	issuedAt, err := strconv.ParseInt(stamp, 16, 64)
	if err != nil {
		return false
	}
	if time.Since(time.Unix(issuedAt, 0)) > c.ttl {
		return false
	}

	expected := c.sign(user, stamp)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *ResetTokenCodec) sign(user *identity.User, stamp string) string {
	mac := hmac.New(sha256.New, c.secret)
	fmt.Fprintf(mac, "%s|%d|%s|%s", user.ID, user.TokenVersion, user.PasswordHash, stamp)
	return hex.EncodeToString(mac.Sum(nil))
}
