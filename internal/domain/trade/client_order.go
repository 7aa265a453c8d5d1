package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocker/backend/internal/domain/shared"
)

// ClientOrderedItem is one line linking a client order to one item
// with the quantity and price agreed at order time.
type ClientOrderedItem struct {
	shared.BaseEntity
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_client_line_order_item,priority:1"`
	ItemID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_client_line_order_item,priority:2"`
	ItemName        string          `gorm:"type:varchar(200);not null"`
	OrderedQuantity int64           `gorm:"not null"`
	OrderedPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (ClientOrderedItem) TableName() string {
	return "client_ordered_items"
}

// NewClientOrderedItem creates a client order line
func NewClientOrderedItem(orderID, itemID uuid.UUID, itemName string, quantity int64, price decimal.Decimal) (*ClientOrderedItem, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Line item cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Ordered quantity must be at least 1")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Ordered price cannot be negative")
	}

	return &ClientOrderedItem{
		BaseEntity:      shared.NewBaseEntity(),
		OrderID:         orderID,
		ItemID:          itemID,
		ItemName:        itemName,
		OrderedQuantity: quantity,
		OrderedPrice:    price.RoundBank(2),
	}, nil
}

// UpdateLine replaces quantity and price on an existing line
func (l *ClientOrderedItem) UpdateLine(quantity int64, price decimal.Decimal) error {
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
func (l *ClientOrderedItem) TotalPrice() decimal.Decimal {
	return decimal.NewFromInt(l.OrderedQuantity).Mul(l.OrderedPrice).RoundBank(2)
}

// ClientOrder is the aggregate root for stock leaving inventory.
// Creating a line decrements the referenced item; reaching Delivered
// freezes client, lines and delivery status, and spawns a linked Sale.
type ClientOrder struct {
	shared.TenantAggregateRoot
	ReferenceID       string              `gorm:"type:varchar(20);not null;uniqueIndex:idx_client_order_tenant_ref,priority:2"`
	ClientID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	ClientName        string              `gorm:"type:varchar(200);not null"`
	ShippingAddressID *uuid.UUID          `gorm:"type:uuid;index"`
	SourceID          *uuid.UUID          `gorm:"type:uuid;index"`
	DeliveryStatus    DeliveryStatus      `gorm:"type:varchar(20);not null;default:'Pending'"`
	PaymentStatus     PaymentStatus       `gorm:"type:varchar(20);not null;default:'Pending'"`
	TrackingNumber    *string             `gorm:"type:varchar(100)"`
	ShippingCost      *decimal.Decimal    `gorm:"type:decimal(18,2)"`
	SaleID            *uuid.UUID          `gorm:"type:uuid;index"`
	Updated           bool                `gorm:"not null;default:false"`
	Items             []ClientOrderedItem `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ClientOrder) TableName() string {
	return "client_orders"
}

// NewClientOrder creates a client order with defaults on both statuses
func NewClientOrder(tenantID, clientID uuid.UUID, clientName string) (*ClientOrder, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Client cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Client name cannot be empty")
	}

	return &ClientOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ReferenceID:         NewReferenceID(),
		ClientID:            clientID,
		ClientName:          clientName,
		DeliveryStatus:      DeliveryPending,
		PaymentStatus:       PaymentPending,
		Items:               make([]ClientOrderedItem, 0),
	}, nil
}

// IsDelivered reports whether the order has reached the frozen state
func (o *ClientOrder) IsDelivered() bool {
	return o.DeliveryStatus == DeliveryDelivered
}

// HasSale reports whether a Sale is linked to this order
func (o *ClientOrder) HasSale() bool {
	return o.SaleID != nil
}

// EnsureMutable refuses mutation of the named restricted fields when the
// order is Delivered, reporting them back in the error details.
func (o *ClientOrder) EnsureMutable(fields ...string) error {
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
// caller so the engine can materialize the linked Sale.
func (o *ClientOrder) SetDeliveryStatus(status DeliveryStatus) (becameDelivered bool, err error) {
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

// SetPaymentStatus transitions the payment leg; editable in any state.
// The engine propagates this to a linked Sale after delivery.
func (o *ClientOrder) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError(shared.CodeValidation,
			fmt.Sprintf("Invalid payment status %q", status))
	}

	o.PaymentStatus = status
	o.touch()

	return nil
}

// SetTracking updates tracking number and shipping cost; editable in any state
func (o *ClientOrder) SetTracking(trackingNumber *string, shippingCost *decimal.Decimal) error {
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

// SetShippingAddress assigns or clears the shipping address
func (o *ClientOrder) SetShippingAddress(locationID *uuid.UUID) {
	o.ShippingAddressID = locationID
	o.touch()
}

// SetSource assigns or clears the acquisition source
func (o *ClientOrder) SetSource(sourceID *uuid.UUID) {
	o.SourceID = sourceID
	o.touch()
}

// LinkSale records the one-to-one link to the materialized Sale
func (o *ClientOrder) LinkSale(saleID uuid.UUID) error {
	if o.SaleID != nil {
		return shared.NewDomainError(shared.CodeConflict,
			fmt.Sprintf("Order %s already has a linked sale", o.ReferenceID))
	}

	o.SaleID = &saleID
	o.touch()

	return nil
}

// DetachSale clears the sale link when the sale is deleted
func (o *ClientOrder) DetachSale() {
	o.SaleID = nil
	o.touch()
}

// AddLine appends a line, enforcing the one-line-per-item invariant
func (o *ClientOrder) AddLine(itemID uuid.UUID, itemName string, quantity int64, price decimal.Decimal) (*ClientOrderedItem, error) {
	if err := o.EnsureMutable(FieldOrderedItems); err != nil {
		return nil, err
	}
	for _, line := range o.Items {
		if line.ItemID == itemID {
			return nil, shared.NewDomainError(shared.CodeValidation,
				fmt.Sprintf("Item %q appears more than once in the order", itemName))
		}
	}

	line, err := NewClientOrderedItem(o.ID, itemID, itemName, quantity, price)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *line)
	o.touch()

	return line, nil
}

// RemoveLine drops the line for the given item.
// An order must keep at least one line.
func (o *ClientOrder) RemoveLine(itemID uuid.UUID) error {
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
func (o *ClientOrder) GetLineByItem(itemID uuid.UUID) *ClientOrderedItem {
	for idx := range o.Items {
		if o.Items[idx].ItemID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// LineCount returns the number of lines in the order
func (o *ClientOrder) LineCount() int {
	return len(o.Items)
}

func (o *ClientOrder) touch() {
	o.Updated = true
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
