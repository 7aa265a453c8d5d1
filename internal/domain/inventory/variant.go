package inventory

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stocker/backend/internal/domain/shared"
)

// ItemVariant is one (name, options) pair attached to an item,
// e.g. ("color", ["red", "blue"]).
type ItemVariant struct {
	shared.BaseEntity
	ItemID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name    string         `gorm:"type:varchar(100);not null"`
	Options pq.StringArray `gorm:"type:text[];not null"`
}

// TableName returns the table name for GORM
func (ItemVariant) TableName() string {
	return "item_variants"
}

// NewItemVariant creates a variant; options may be empty but not nil entries
func NewItemVariant(name string, options []string) (*ItemVariant, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Variant name cannot be empty")
	}
	for _, opt := range options {
		if opt == "" {
			return nil, shared.NewDomainError(shared.CodeValidation, "Variant options cannot be blank")
		}
	}

	return &ItemVariant{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Options:    pq.StringArray(options),
	}, nil
}
