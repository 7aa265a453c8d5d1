package trade

import (
	"strings"

	"github.com/google/uuid"
)

// NewReferenceID generates a short human-visible order reference,
// eight hex characters drawn from a fresh UUID.
func NewReferenceID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:8])
}
