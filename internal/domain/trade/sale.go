package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocker/backend/internal/domain/shared"
)

// SoldItem is one line of a sale, mirroring a client order line
type SoldItem struct {
	shared.BaseEntity
	SaleID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_sold_item_sale_item,priority:1"`
	ItemID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_sold_item_sale_item,priority:2"`
	ItemName     string          `gorm:"type:varchar(200);not null"`
	SoldQuantity int64           `gorm:"not null"`
	SoldPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SoldItem) TableName() string {
	return "sold_items"
}

// TotalPrice returns quantity x price for the line
func (l *SoldItem) TotalPrice() decimal.Decimal {
	return decimal.NewFromInt(l.SoldQuantity).Mul(l.SoldPrice).RoundBank(2)
}

// Sale mirrors a delivered client order. When FromOrder is true it is a
// read-mostly mirror tracking the parent order until the order is deleted;
// the unique index on OrderID guarantees at most one sale per order.
type Sale struct {
	shared.TenantAggregateRoot
	ReferenceID       string           `gorm:"type:varchar(20);not null;uniqueIndex:idx_sale_tenant_ref,priority:2"`
	ClientID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	ClientName        string           `gorm:"type:varchar(200);not null"`
	OrderID           *uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	FromOrder         bool             `gorm:"not null;default:false"`
	ShippingAddressID *uuid.UUID       `gorm:"type:uuid;index"`
	SourceID          *uuid.UUID       `gorm:"type:uuid;index"`
	DeliveryStatus    DeliveryStatus   `gorm:"type:varchar(20);not null;default:'Pending'"`
	PaymentStatus     PaymentStatus    `gorm:"type:varchar(20);not null;default:'Pending'"`
	TrackingNumber    *string          `gorm:"type:varchar(100)"`
	ShippingCost      *decimal.Decimal `gorm:"type:decimal(18,2)"`
	Items             []SoldItem       `gorm:"foreignKey:SaleID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSaleFromOrder materializes the sale mirroring a delivered client order.
// Each sold line copies the corresponding order line's quantity and price.
func NewSaleFromOrder(order *ClientOrder) (*Sale, error) {
	if order == nil || len(order.Items) == 0 {
		return nil, shared.NewDomainError(shared.CodeOrderMustHaveItem, "Cannot create a sale from an order without items")
	}
	if order.HasSale() {
		return nil, shared.NewDomainError(shared.CodeConflict, "Order already has a linked sale")
	}

	orderID := order.ID
	sale := &Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(order.TenantID),
		ReferenceID:         NewReferenceID(),
		ClientID:            order.ClientID,
		ClientName:          order.ClientName,
		OrderID:             &orderID,
		FromOrder:           true,
		ShippingAddressID:   order.ShippingAddressID,
		SourceID:            order.SourceID,
		DeliveryStatus:      order.DeliveryStatus,
		PaymentStatus:       order.PaymentStatus,
		TrackingNumber:      order.TrackingNumber,
		ShippingCost:        order.ShippingCost,
		Items:               make([]SoldItem, 0, len(order.Items)),
	}

	for _, line := range order.Items {
		sale.Items = append(sale.Items, SoldItem{
			BaseEntity:   shared.NewBaseEntity(),
			SaleID:       sale.ID,
			ItemID:       line.ItemID,
			ItemName:     line.ItemName,
			SoldQuantity: line.OrderedQuantity,
			SoldPrice:    line.OrderedPrice,
		})
	}

	return sale, nil
}

// SetPaymentStatus mirrors a payment transition from the parent order
func (s *Sale) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError(shared.CodeValidation, "Invalid payment status")
	}

	s.PaymentStatus = status
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Detach severs the order link, e.g. when the parent order is deleted.
// The sale survives as a standalone record.
func (s *Sale) Detach() {
	s.OrderID = nil
	s.FromOrder = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// RestocksOnDelete reports whether deleting this sale must return its
// sold quantities to inventory. Order-linked sales never restock; the
// parent order retains the stock delta.
func (s *Sale) RestocksOnDelete() bool {
	return !s.FromOrder
}

// TotalAmount returns the sum over all sold lines
func (s *Sale) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for idx := range s.Items {
		total = total.Add(s.Items[idx].TotalPrice())
	}
	return total.RoundBank(2)
}

// LineCount returns the number of sold lines
func (s *Sale) LineCount() int {
	return len(s.Items)
}
