package partner

import (
	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/shared"
)

// Country is a process-wide reference row populated by seed data
type Country struct {
	shared.BaseEntity
	Name    string `gorm:"type:varchar(100);not null"`
	NameKey string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Country) TableName() string {
	return "countries"
}

// NewCountry creates a new country row
func NewCountry(name string) (*Country, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Country name cannot be empty")
	}

	return &Country{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		NameKey:    shared.NormalizeName(name),
	}, nil
}

// City is a process-wide reference row, unique per country
type City struct {
	shared.BaseEntity
	CountryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_city_country_name,priority:1"`
	Name      string    `gorm:"type:varchar(100);not null"`
	NameKey   string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_city_country_name,priority:2"`
}

// TableName returns the table name for GORM
func (City) TableName() string {
	return "cities"
}

// NewCity creates a new city row
func NewCity(countryID uuid.UUID, name string) (*City, error) {
	if countryID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "City requires a country")
	}
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "City name cannot be empty")
	}

	return &City{
		BaseEntity: shared.NewBaseEntity(),
		CountryID:  countryID,
		Name:       name,
		NameKey:    shared.NormalizeName(name),
	}, nil
}

// Location identifies a shipping address by the normalized tuple
// (country, city, street_address) and is shared across the tenant.
type Location struct {
	shared.TenantAggregateRoot
	CountryID     *uuid.UUID `gorm:"type:uuid;index"`
	CityID        *uuid.UUID `gorm:"type:uuid;index"`
	StreetAddress string     `gorm:"type:varchar(300)"`
	StreetKey     string     `gorm:"type:varchar(300);index"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates a location row owned by the tenant
func NewLocation(tenantID uuid.UUID, countryID, cityID *uuid.UUID, streetAddress string) (*Location, error) {
	if countryID == nil && cityID == nil && streetAddress == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Location cannot be empty")
	}

	return &Location{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CountryID:           countryID,
		CityID:              cityID,
		StreetAddress:       streetAddress,
		StreetKey:           shared.NormalizeName(streetAddress),
	}, nil
}

// AcquisitionSource is a tenant-owned reference row recording where a
// client or order came from (e.g. a marketplace or referral).
type AcquisitionSource struct {
	shared.TenantAggregateRoot
	Name    string `gorm:"type:varchar(100);not null"`
	NameKey string `gorm:"type:varchar(100);not null;uniqueIndex:idx_source_tenant_name,priority:2"`
}

// TableName returns the table name for GORM
func (AcquisitionSource) TableName() string {
	return "acquisition_sources"
}

// NewAcquisitionSource creates a new acquisition source
func NewAcquisitionSource(tenantID uuid.UUID, name string) (*AcquisitionSource, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Source name cannot be empty")
	}

	return &AcquisitionSource{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		NameKey:             shared.NormalizeName(name),
	}, nil
}
