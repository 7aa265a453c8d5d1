package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocker/backend/internal/domain/shared"
)

// SupplierOrderedItem is one line linking a supplier order to one item
// with the quantity and price agreed at order time.
type SupplierOrderedItem struct {
	shared.BaseEntity
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_supplier_line_order_item,priority:1"`
	ItemID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_supplier_line_order_item,priority:2"`
	ItemName        string          `gorm:"type:varchar(200);not null"`
	SupplierID      uuid.UUID       `gorm:"type:uuid;not null"`
	OrderedQuantity int64           `gorm:"not null"`
	OrderedPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SupplierOrderedItem) TableName() string {
	return "supplier_ordered_items"
}

// NewSupplierOrderedItem creates a supplier order line
func NewSupplierOrderedItem(orderID, itemID, supplierID uuid.UUID, itemName string, quantity int64, price decimal.Decimal) (*SupplierOrderedItem, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Line item cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Ordered quantity must be at least 1")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Ordered price cannot be negative")
	}

	return &SupplierOrderedItem{
		BaseEntity:      shared.NewBaseEntity(),
		OrderID:         orderID,
		ItemID:          itemID,
		ItemName:        itemName,
		SupplierID:      supplierID,
		OrderedQuantity: quantity,
		OrderedPrice:    price.RoundBank(2),
	}, nil
}

// UpdateLine replaces quantity and price on an existing line
func (l *SupplierOrderedItem) UpdateLine(quantity int64, price decimal.Decimal) error {
	if quantity < 1 {
		return shared.NewDomainError(shared.CodeValidation, "Ordered quantity must be at least 1")
	}
	if price.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Ordered price cannot be negative")
	}

	l.OrderedQuantity = quantity
	l.OrderedPrice = price.RoundBank(2)
	l.UpdatedAt = time.Now()

	return nil
}

// TotalPrice returns quantity x price for the line
func (l *SupplierOrderedItem) TotalPrice() decimal.Decimal {
	return decimal.NewFromInt(l.OrderedQuantity).Mul(l.OrderedPrice).RoundBank(2)
}

// SupplierOrder is the aggregate root for stock entering inventory.
// Once delivery reaches Delivered the supplier, the line set and the
// delivery status itself are frozen.
type SupplierOrder struct {
	shared.TenantAggregateRoot
	ReferenceID    string                `gorm:"type:varchar(20);not null;uniqueIndex:idx_supplier_order_tenant_ref,priority:2"`
	SupplierID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	SupplierName   string                `gorm:"type:varchar(200);not null"`
	DeliveryStatus DeliveryStatus        `gorm:"type:varchar(20);not null;default:'Pending'"`
	PaymentStatus  PaymentStatus         `gorm:"type:varchar(20);not null;default:'Pending'"`
	TrackingNumber *string               `gorm:"type:varchar(100)"`
	ShippingCost   *decimal.Decimal      `gorm:"type:decimal(18,2)"`
	Updated        bool                  `gorm:"not null;default:false"`
	Items          []SupplierOrderedItem `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SupplierOrder) TableName() string {
	return "supplier_orders"
}

// NewSupplierOrder creates a supplier order with defaults on both statuses
func NewSupplierOrder(tenantID, supplierID uuid.UUID, supplierName string) (*SupplierOrder, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Supplier cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Supplier name cannot be empty")
	}

	return &SupplierOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ReferenceID:         NewReferenceID(),
		SupplierID:          supplierID,
		SupplierName:        supplierName,
		DeliveryStatus:      DeliveryPending,
		PaymentStatus:       PaymentPending,
		Items:               make([]SupplierOrderedItem, 0),
	}, nil
}

// IsDelivered reports whether the order has reached the frozen state
func (o *SupplierOrder) IsDelivered() bool {
	return o.DeliveryStatus == DeliveryDelivered
}

// EnsureMutable refuses mutation of the named restricted fields when the
// order is Delivered, reporting them back in the error details.
func (o *SupplierOrder) EnsureMutable(fields ...string) error {
	if !o.IsDelivered() || len(fields) == 0 {
		return nil
	}
	return shared.NewDomainErrorWithDetails(
		shared.CodeRestrictedAfterDelivery,
		fmt.Sprintf("Order %s is delivered and cannot be modified", o.ReferenceID),
		map[string]any{"restricted_fields": fields},
	)
}

// SetDeliveryStatus transitions the delivery leg.
// Leaving Delivered is refused; reaching Delivered is reported to the
// caller so the engine can fold the lines into inventory.
func (o *SupplierOrder) SetDeliveryStatus(status DeliveryStatus) (becameDelivered bool, err error) {
	if !status.IsValid() {
		return false, shared.NewDomainError(shared.CodeValidation,
			fmt.Sprintf("Invalid delivery status %q", status))
	}
	if status == o.DeliveryStatus {
		return false, nil
	}
	if err := o.EnsureMutable(FieldDeliveryStatus); err != nil {
		return false, err
	}

	o.DeliveryStatus = status
	o.touch()

	return status == DeliveryDelivered, nil
}

// SetPaymentStatus transitions the payment leg; editable in any state
func (o *SupplierOrder) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError(shared.CodeValidation,
			fmt.Sprintf("Invalid payment status %q", status))
	}

	o.PaymentStatus = status
	o.touch()

	return nil
}

// SetTracking updates tracking number and shipping cost; editable in any state
func (o *SupplierOrder) SetTracking(trackingNumber *string, shippingCost *decimal.Decimal) error {
	if shippingCost != nil && shippingCost.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Shipping cost cannot be negative")
	}

	if trackingNumber != nil {
		o.TrackingNumber = trackingNumber
	}
	if shippingCost != nil {
		rounded := shippingCost.RoundBank(2)
		o.ShippingCost = &rounded
	}
	o.touch()

	return nil
}

// AddLine appends a line, enforcing the one-line-per-item invariant
func (o *SupplierOrder) AddLine(itemID uuid.UUID, itemName string, quantity int64, price decimal.Decimal) (*SupplierOrderedItem, error) {
	if err := o.EnsureMutable(FieldOrderedItems); err != nil {
		return nil, err
	}
	for _, line := range o.Items {
		if line.ItemID == itemID {
			return nil, shared.NewDomainError(shared.CodeValidation,
				fmt.Sprintf("Item %q appears more than once in the order", itemName))
		}
	}

	line, err := NewSupplierOrderedItem(o.ID, itemID, o.SupplierID, itemName, quantity, price)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *line)
	o.touch()

	return line, nil
}

// RemoveLine drops the line for the given item.
// An order must keep at least one line.
func (o *SupplierOrder) RemoveLine(itemID uuid.UUID) error {
	if err := o.EnsureMutable(FieldOrderedItems); err != nil {
		return err
	}
	if len(o.Items) <= 1 {
		return shared.NewDomainError(shared.CodeOrderMustHaveItem,
			fmt.Sprintf("Order %s must keep at least one item", o.ReferenceID))
	}

	for idx, line := range o.Items {
		if line.ItemID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.touch()
			return nil
		}
	}

	return shared.NewDomainError(shared.CodeNotFound, "Order line not found")
}

// GetLineByItem returns the line referencing the given item
func (o *SupplierOrder) GetLineByItem(itemID uuid.UUID) *SupplierOrderedItem {
	for idx := range o.Items {
		if o.Items[idx].ItemID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// LineCount returns the number of lines in the order
func (o *SupplierOrder) LineCount() int {
	return len(o.Items)
}

func (o *SupplierOrder) touch() {
	o.Updated = true
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
