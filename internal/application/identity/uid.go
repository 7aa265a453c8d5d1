package identity

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// encodeUserID packs a user ID into the URL-safe segment used in reset links
func encodeUserID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id.String()))
}

// decodeUserID reverses encodeUserID
func decodeUserID(encoded string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(string(raw))
}
