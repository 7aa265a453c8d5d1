package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocker/backend/internal/domain/shared"
)

// Item represents a stocked inventory item.
// It is the aggregate root for stock-level operations; quantity and price
// are mutated only through the order engines or the fold/adjust methods here.
type Item struct {
	shared.TenantAggregateRoot
	Name string `gorm:"type:varchar(200);not null"`
	// NameKey is the case-folded name backing the per-tenant unique index.
	NameKey     string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_item_tenant_name,priority:2"`
	Quantity    int64           `gorm:"not null;default:0"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierID  *uuid.UUID      `gorm:"type:uuid;index"`
	Picture     string          `gorm:"type:varchar(500)"`
	InInventory bool            `gorm:"not null;default:false"`
	Updated     bool            `gorm:"not null;default:false"`
	Variants    []ItemVariant   `gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new inventory item
func NewItem(tenantID uuid.UUID, name string, quantity int64, price decimal.Decimal) (*Item, error) {
	if err := validateItemName(name); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Quantity cannot be negative")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Price cannot be negative")
	}

	return &Item{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		NameKey:             shared.NormalizeName(name),
		Quantity:            quantity,
		Price:               price.RoundBank(2),
		Variants:            make([]ItemVariant, 0),
	}, nil
}

// Rename changes the item name, refreshing the uniqueness key
func (i *Item) Rename(name string) error {
	if err := validateItemName(name); err != nil {
		return err
	}

	i.Name = name
	i.NameKey = shared.NormalizeName(name)
	i.markUpdated()

	return nil
}

// SetPrice replaces the unit price directly
func (i *Item) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Price cannot be negative")
	}

	i.Price = price.RoundBank(2)
	i.markUpdated()

	return nil
}

// SetQuantity replaces the on-hand quantity directly.
// Only the item store's own API may call this; the order engines use
// AbsorbStock / Decrement / Restock instead.
func (i *Item) SetQuantity(quantity int64) error {
	if quantity < 0 {
		return shared.NewDomainError(shared.CodeValidation, "Quantity cannot be negative")
	}

	i.Quantity = quantity
	i.markUpdated()

	return nil
}

// SetCategory assigns or clears the category
func (i *Item) SetCategory(categoryID *uuid.UUID) {
	i.CategoryID = categoryID
	i.markUpdated()
}

// SetSupplier assigns or clears the recorded supplier
func (i *Item) SetSupplier(supplierID *uuid.UUID) {
	i.SupplierID = supplierID
	i.markUpdated()
}

// SetPicture updates the picture URL
func (i *Item) SetPicture(url string) {
	i.Picture = url
	i.markUpdated()
}

// HasSupplier reports whether a supplier is recorded on the item
func (i *Item) HasSupplier() bool {
	return i.SupplierID != nil
}

// SuppliedBy reports whether the item's recorded supplier matches the given one
func (i *Item) SuppliedBy(supplierID uuid.UUID) bool {
	return i.SupplierID != nil && *i.SupplierID == supplierID
}

// AbsorbStock folds a delivered batch into the item using weighted-average
// pricing: newPrice = (q0*p0 + dq*pd) / (q0 + dq), rounded to 2 decimals
// half-to-even. An item not yet in inventory takes the batch price as-is.
func (i *Item) AbsorbStock(quantity int64, price decimal.Decimal) error {
	if quantity < 1 {
		return shared.NewDomainError(shared.CodeValidation, "Absorbed quantity must be at least 1")
	}
	if price.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Absorbed price cannot be negative")
	}

	if !i.InInventory || i.Quantity == 0 {
		i.Quantity += quantity
		i.Price = price.RoundBank(2)
		i.InInventory = true
		i.markUpdated()
		return nil
	}

	q0 := decimal.NewFromInt(i.Quantity)
	dq := decimal.NewFromInt(quantity)
	totalCost := q0.Mul(i.Price).Add(dq.Mul(price))
	newQty := q0.Add(dq)

	i.Price = totalCost.Div(newQty).RoundBank(2)
	i.Quantity += quantity
	i.markUpdated()

	return nil
}

// Decrement removes stock for a client order line.
// Fails with INSUFFICIENT_STOCK when the request exceeds on-hand quantity.
func (i *Item) Decrement(quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError(shared.CodeValidation, "Decrement quantity must be at least 1")
	}
	if quantity > i.Quantity {
		return shared.NewDomainErrorWithDetails(
			shared.CodeInsufficientStock,
			fmt.Sprintf("Insufficient stock for item %q: requested %d, available %d", i.Name, quantity, i.Quantity),
			map[string]any{"item": i.Name, "requested": quantity, "available": i.Quantity},
		)
	}

	i.Quantity -= quantity
	i.markUpdated()

	return nil
}

// Restock returns stock removed by a deleted or shrunk client order line
func (i *Item) Restock(quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError(shared.CodeValidation, "Restock quantity must be at least 1")
	}

	i.Quantity += quantity
	i.markUpdated()

	return nil
}

// TotalPrice returns quantity x price; derived, never stored
func (i *Item) TotalPrice() decimal.Decimal {
	return decimal.NewFromInt(i.Quantity).Mul(i.Price).RoundBank(2)
}

// ReplaceVariants swaps the variant list, enforcing name uniqueness within the item
func (i *Item) ReplaceVariants(variants []ItemVariant) error {
	seen := make(map[string]struct{}, len(variants))
	for idx := range variants {
		key := shared.NormalizeName(variants[idx].Name)
		if _, dup := seen[key]; dup {
			return shared.NewDomainError(shared.CodeValidation,
				fmt.Sprintf("Duplicate variant %q in item", variants[idx].Name))
		}
		seen[key] = struct{}{}
		variants[idx].ItemID = i.ID
	}

	i.Variants = variants
	i.markUpdated()

	return nil
}

func (i *Item) markUpdated() {
	i.Updated = true
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

func validateItemName(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeValidation, "Item name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError(shared.CodeValidation, "Item name cannot exceed 200 characters")
	}
	return nil
}
