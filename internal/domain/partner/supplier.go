package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/shared"
)

// Supplier is a tenant-owned partner supplying inventory items
type Supplier struct {
	shared.TenantAggregateRoot
	Name       string     `gorm:"type:varchar(200);not null"`
	NameKey    string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_supplier_tenant_name,priority:2"`
	Phone      string     `gorm:"type:varchar(30)"`
	Email      string     `gorm:"type:varchar(254)"`
	LocationID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(tenantID uuid.UUID, name string) (*Supplier, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		NameKey:             shared.NormalizeName(name),
	}, nil
}

// Rename changes the supplier name, refreshing the uniqueness key
func (s *Supplier) Rename(name string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}

	s.Name = name
	s.NameKey = shared.NormalizeName(name)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetContact updates contact fields
func (s *Supplier) SetContact(phone, email string) {
	s.Phone = phone
	s.Email = email
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// SetLocation assigns or clears the location
func (s *Supplier) SetLocation(locationID *uuid.UUID) {
	s.LocationID = locationID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

func validatePartnerName(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeValidation, "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError(shared.CodeValidation, "Name cannot exceed 200 characters")
	}
	return nil
}
