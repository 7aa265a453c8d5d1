package inventory

import (
	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/shared"
)

// Category is a tenant-owned reference row for grouping items
type Category struct {
	shared.TenantAggregateRoot
	Name    string `gorm:"type:varchar(100);not null"`
	NameKey string `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_tenant_name,priority:2"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(tenantID uuid.UUID, name string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Category name cannot exceed 100 characters")
	}

	return &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		NameKey:             shared.NormalizeName(name),
	}, nil
}
