package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/shared"
)

// Client is a tenant-owned partner placing client orders
type Client struct {
	shared.TenantAggregateRoot
	Name       string     `gorm:"type:varchar(200);not null"`
	NameKey    string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_client_tenant_name,priority:2"`
	Phone      string     `gorm:"type:varchar(30)"`
	Email      string     `gorm:"type:varchar(254)"`
	LocationID *uuid.UUID `gorm:"type:uuid;index"`
	SourceID   *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client
func NewClient(tenantID uuid.UUID, name string) (*Client, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Client{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		NameKey:             shared.NormalizeName(name),
	}, nil
}

// Rename changes the client name, refreshing the uniqueness key
func (c *Client) Rename(name string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}

	c.Name = name
	c.NameKey = shared.NormalizeName(name)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContact updates contact fields
func (c *Client) SetContact(phone, email string) {
	c.Phone = phone
	c.Email = email
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetLocation assigns or clears the location
func (c *Client) SetLocation(locationID *uuid.UUID) {
	c.LocationID = locationID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetSource assigns or clears the acquisition source
func (c *Client) SetSource(sourceID *uuid.UUID) {
	c.SourceID = sourceID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
