package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocker/backend/internal/domain/inventory"
)

// VariantInput is one (name, options) pair submitted with an item
type VariantInput struct {
	Name    string   `json:"name" binding:"required"`
	Options []string `json:"options"`
}

// CreateItemRequest creates an inventory item
type CreateItemRequest struct {
	Name     string          `json:"name" binding:"required"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Category *string         `json:"category"`
	Supplier *string         `json:"supplier"`
	Variants []VariantInput  `json:"variants"`
	Picture  string          `json:"picture"`
}

// UpdateItemRequest updates an inventory item; nil fields are untouched.
// PUT handlers populate every field; PATCH handlers only the submitted ones.
type UpdateItemRequest struct {
	Name     *string          `json:"name"`
	Quantity *int64           `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
	Category *string          `json:"category"`
	Supplier *string          `json:"supplier"`
	Variants *[]VariantInput  `json:"variants"`
	Picture  *string          `json:"picture"`
}

// VariantResponse is the outward shape of a variant
type VariantResponse struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// ItemResponse is the outward shape of an item
type ItemResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Quantity    int64             `json:"quantity"`
	Price       decimal.Decimal   `json:"price"`
	TotalPrice  decimal.Decimal   `json:"total_price"`
	CategoryID  *uuid.UUID        `json:"category_id,omitempty"`
	SupplierID  *uuid.UUID        `json:"supplier_id,omitempty"`
	Picture     string            `json:"picture,omitempty"`
	InInventory bool              `json:"in_inventory"`
	Updated     bool              `json:"updated"`
	Variants    []VariantResponse `json:"variants,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ItemListFilter narrows item listings
type ItemListFilter struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir"`
	Search      string `form:"search"`
	InInventory *bool  `form:"in_inventory"`
	Category    string `form:"category"`
}

// ToItemResponse maps an item entity to its response shape
func ToItemResponse(item *inventory.Item) ItemResponse {
	variants := make([]VariantResponse, 0, len(item.Variants))
	for _, v := range item.Variants {
		variants = append(variants, VariantResponse{Name: v.Name, Options: []string(v.Options)})
	}

	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Quantity:    item.Quantity,
		Price:       item.Price,
		TotalPrice:  item.TotalPrice(),
		CategoryID:  item.CategoryID,
		SupplierID:  item.SupplierID,
		Picture:     item.Picture,
		InInventory: item.InInventory,
		Updated:     item.Updated,
		Variants:    variants,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ToItemResponses maps a slice of items
func ToItemResponses(items []inventory.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for idx := range items {
		out = append(out, ToItemResponse(&items[idx]))
	}
	return out
}
