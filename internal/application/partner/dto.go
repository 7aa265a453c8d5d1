package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/partner"
)

// CreatePartnerRequest creates a supplier or client
type CreatePartnerRequest struct {
	Name     string  `json:"name" binding:"required"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	Country  string  `json:"country"`
	City     string  `json:"city"`
	Street   string  `json:"street_address"`
	Source   *string `json:"source"`
}

// UpdatePartnerRequest updates a supplier or client; nil fields are untouched
type UpdatePartnerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Country *string `json:"country"`
	City    *string `json:"city"`
	Street  *string `json:"street_address"`
	Source  *string `json:"source"`
}

// PartnerListFilter narrows partner listings
type PartnerListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}

// SupplierResponse is the outward shape of a supplier
type SupplierResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone,omitempty"`
	Email      string     `json:"email,omitempty"`
	LocationID *uuid.UUID `json:"location_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ClientResponse is the outward shape of a client
type ClientResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone,omitempty"`
	Email      string     `json:"email,omitempty"`
	LocationID *uuid.UUID `json:"location_id,omitempty"`
	SourceID   *uuid.UUID `json:"source_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToSupplierResponse maps a supplier entity to its response shape
func ToSupplierResponse(supplier *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:         supplier.ID,
		Name:       supplier.Name,
		Phone:      supplier.Phone,
		Email:      supplier.Email,
		LocationID: supplier.LocationID,
		CreatedAt:  supplier.CreatedAt,
		UpdatedAt:  supplier.UpdatedAt,
	}
}

// ToSupplierResponses maps a slice of suppliers
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	out := make([]SupplierResponse, 0, len(suppliers))
	for idx := range suppliers {
		out = append(out, ToSupplierResponse(&suppliers[idx]))
	}
	return out
}

// ToClientResponse maps a client entity to its response shape
func ToClientResponse(client *partner.Client) ClientResponse {
	return ClientResponse{
		ID:         client.ID,
		Name:       client.Name,
		Phone:      client.Phone,
		Email:      client.Email,
		LocationID: client.LocationID,
		SourceID:   client.SourceID,
		CreatedAt:  client.CreatedAt,
		UpdatedAt:  client.UpdatedAt,
	}
}

// ToClientResponses maps a slice of clients
func ToClientResponses(clients []partner.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for idx := range clients {
		out = append(out, ToClientResponse(&clients[idx]))
	}
	return out
}
