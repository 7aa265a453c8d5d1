package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocker/backend/internal/application/catalog"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stocker/backend/internal/domain/trade"
)

// OrderedItemInput is one submitted order line, referencing the item by name
type OrderedItemInput struct {
	Item            string          `json:"item" binding:"required"`
	OrderedQuantity int64           `json:"ordered_quantity" binding:"required,min=1"`
	OrderedPrice    decimal.Decimal `json:"ordered_price"`
}

// CreateSupplierOrderRequest creates a supplier order
type CreateSupplierOrderRequest struct {
	Supplier       string             `json:"supplier" binding:"required"`
	OrderedItems   []OrderedItemInput `json:"ordered_items" binding:"required"`
	DeliveryStatus *string            `json:"delivery_status"`
	PaymentStatus  *string            `json:"payment_status"`
	TrackingNumber *string            `json:"tracking_number"`
	ShippingCost   *decimal.Decimal   `json:"shipping_cost"`
}

// UpdateSupplierOrderRequest updates a supplier order; nil fields are untouched
type UpdateSupplierOrderRequest struct {
	Supplier       *string             `json:"supplier"`
	OrderedItems   *[]OrderedItemInput `json:"ordered_items"`
	DeliveryStatus *string             `json:"delivery_status"`
	PaymentStatus  *string             `json:"payment_status"`
	TrackingNumber *string             `json:"tracking_number"`
	ShippingCost   *decimal.Decimal    `json:"shipping_cost"`
}

// CreateClientOrderRequest creates a client order
type CreateClientOrderRequest struct {
	Client          string                 `json:"client" binding:"required"`
	OrderedItems    []OrderedItemInput     `json:"ordered_items" binding:"required"`
	ShippingAddress *catalog.LocationInput `json:"shipping_address"`
	Source          *string                `json:"source"`
	DeliveryStatus  *string                `json:"delivery_status"`
	PaymentStatus   *string                `json:"payment_status"`
	TrackingNumber  *string                `json:"tracking_number"`
	ShippingCost    *decimal.Decimal       `json:"shipping_cost"`
}

// UpdateClientOrderRequest updates a client order; nil fields are untouched
type UpdateClientOrderRequest struct {
	Client          *string                `json:"client"`
	OrderedItems    *[]OrderedItemInput    `json:"ordered_items"`
	ShippingAddress *catalog.LocationInput `json:"shipping_address"`
	Source          *string                `json:"source"`
	DeliveryStatus  *string                `json:"delivery_status"`
	PaymentStatus   *string                `json:"payment_status"`
	TrackingNumber  *string                `json:"tracking_number"`
	ShippingCost    *decimal.Decimal       `json:"shipping_cost"`
}

// UpdateOrderedItemRequest updates one order line in place
type UpdateOrderedItemRequest struct {
	OrderedQuantity *int64           `json:"ordered_quantity"`
	OrderedPrice    *decimal.Decimal `json:"ordered_price"`
}

// OrderedItemResponse is the outward shape of one order line
type OrderedItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	Item            string          `json:"item"`
	ItemID          uuid.UUID       `json:"item_id"`
	OrderedQuantity int64           `json:"ordered_quantity"`
	OrderedPrice    decimal.Decimal `json:"ordered_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
}

// SupplierOrderResponse is the outward shape of a supplier order
type SupplierOrderResponse struct {
	ID             uuid.UUID             `json:"id"`
	ReferenceID    string                `json:"reference_id"`
	Supplier       string                `json:"supplier"`
	SupplierID     uuid.UUID             `json:"supplier_id"`
	DeliveryStatus string                `json:"delivery_status"`
	PaymentStatus  string                `json:"payment_status"`
	TrackingNumber *string               `json:"tracking_number,omitempty"`
	ShippingCost   *decimal.Decimal      `json:"shipping_cost,omitempty"`
	Updated        bool                  `json:"updated"`
	OrderedItems   []OrderedItemResponse `json:"ordered_items"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// ClientOrderResponse is the outward shape of a client order
type ClientOrderResponse struct {
	ID                uuid.UUID             `json:"id"`
	ReferenceID       string                `json:"reference_id"`
	Client            string                `json:"client"`
	ClientID          uuid.UUID             `json:"client_id"`
	ShippingAddressID *uuid.UUID            `json:"shipping_address_id,omitempty"`
	SourceID          *uuid.UUID            `json:"source_id,omitempty"`
	DeliveryStatus    string                `json:"delivery_status"`
	PaymentStatus     string                `json:"payment_status"`
	TrackingNumber    *string               `json:"tracking_number,omitempty"`
	ShippingCost      *decimal.Decimal      `json:"shipping_cost,omitempty"`
	SaleID            *uuid.UUID            `json:"sale_id,omitempty"`
	Updated           bool                  `json:"updated"`
	OrderedItems      []OrderedItemResponse `json:"ordered_items"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// SoldItemResponse is the outward shape of one sold line
type SoldItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	Item         string          `json:"item"`
	ItemID       uuid.UUID       `json:"item_id"`
	SoldQuantity int64           `json:"sold_quantity"`
	SoldPrice    decimal.Decimal `json:"sold_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

// SaleResponse is the outward shape of a sale
type SaleResponse struct {
	ID             uuid.UUID          `json:"id"`
	ReferenceID    string             `json:"reference_id"`
	Client         string             `json:"client"`
	ClientID       uuid.UUID          `json:"client_id"`
	OrderID        *uuid.UUID         `json:"order_id,omitempty"`
	FromOrder      bool               `json:"from_order"`
	DeliveryStatus string             `json:"delivery_status"`
	PaymentStatus  string             `json:"payment_status"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	SoldItems      []SoldItemResponse `json:"sold_items"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// OrderListFilter narrows order and sale listings
type OrderListFilter struct {
	Page           int    `form:"page"`
	PageSize       int    `form:"page_size"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir"`
	Search         string `form:"search"`
	DeliveryStatus string `form:"delivery_status"`
	PaymentStatus  string `form:"payment_status"`
}

// ToSupplierOrderResponse maps a supplier order to its response shape
func ToSupplierOrderResponse(order *trade.SupplierOrder) SupplierOrderResponse {
	lines := make([]OrderedItemResponse, 0, len(order.Items))
	for idx := range order.Items {
		line := &order.Items[idx]
		lines = append(lines, OrderedItemResponse{
			ID:              line.ID,
			Item:            line.ItemName,
			ItemID:          line.ItemID,
			OrderedQuantity: line.OrderedQuantity,
			OrderedPrice:    line.OrderedPrice,
			TotalPrice:      line.TotalPrice(),
		})
	}

	return SupplierOrderResponse{
		ID:             order.ID,
		ReferenceID:    order.ReferenceID,
		Supplier:       order.SupplierName,
		SupplierID:     order.SupplierID,
		DeliveryStatus: order.DeliveryStatus.String(),
		PaymentStatus:  order.PaymentStatus.String(),
		TrackingNumber: order.TrackingNumber,
		ShippingCost:   order.ShippingCost,
		Updated:        order.Updated,
		OrderedItems:   lines,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

// ToSupplierOrderResponses maps a slice of supplier orders
func ToSupplierOrderResponses(orders []trade.SupplierOrder) []SupplierOrderResponse {
	out := make([]SupplierOrderResponse, 0, len(orders))
	for idx := range orders {
		out = append(out, ToSupplierOrderResponse(&orders[idx]))
	}
	return out
}

// ToClientOrderResponse maps a client order to its response shape
func ToClientOrderResponse(order *trade.ClientOrder) ClientOrderResponse {
	lines := make([]OrderedItemResponse, 0, len(order.Items))
	for idx := range order.Items {
		line := &order.Items[idx]
		lines = append(lines, OrderedItemResponse{
			ID:              line.ID,
			Item:            line.ItemName,
			ItemID:          line.ItemID,
			OrderedQuantity: line.OrderedQuantity,
			OrderedPrice:    line.OrderedPrice,
			TotalPrice:      line.TotalPrice(),
		})
	}

	return ClientOrderResponse{
		ID:                order.ID,
		ReferenceID:       order.ReferenceID,
		Client:            order.ClientName,
		ClientID:          order.ClientID,
		ShippingAddressID: order.ShippingAddressID,
		SourceID:          order.SourceID,
		DeliveryStatus:    order.DeliveryStatus.String(),
		PaymentStatus:     order.PaymentStatus.String(),
		TrackingNumber:    order.TrackingNumber,
		ShippingCost:      order.ShippingCost,
		SaleID:            order.SaleID,
		Updated:           order.Updated,
		OrderedItems:      lines,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

// ToClientOrderResponses maps a slice of client orders
func ToClientOrderResponses(orders []trade.ClientOrder) []ClientOrderResponse {
	out := make([]ClientOrderResponse, 0, len(orders))
	for idx := range orders {
		out = append(out, ToClientOrderResponse(&orders[idx]))
	}
	return out
}

// ToSaleResponse maps a sale to its response shape
func ToSaleResponse(sale *trade.Sale) SaleResponse {
	lines := make([]SoldItemResponse, 0, len(sale.Items))
	for idx := range sale.Items {
		line := &sale.Items[idx]
		lines = append(lines, SoldItemResponse{
			ID:           line.ID,
			Item:         line.ItemName,
			ItemID:       line.ItemID,
			SoldQuantity: line.SoldQuantity,
			SoldPrice:    line.SoldPrice,
			TotalPrice:   line.TotalPrice(),
		})
	}

	return SaleResponse{
		ID:             sale.ID,
		ReferenceID:    sale.ReferenceID,
		Client:         sale.ClientName,
		ClientID:       sale.ClientID,
		OrderID:        sale.OrderID,
		FromOrder:      sale.FromOrder,
		DeliveryStatus: sale.DeliveryStatus.String(),
		PaymentStatus:  sale.PaymentStatus.String(),
		TotalAmount:    sale.TotalAmount(),
		SoldItems:      lines,
		CreatedAt:      sale.CreatedAt,
		UpdatedAt:      sale.UpdatedAt,
	}
}

// ToSaleResponses maps a slice of sales
func ToSaleResponses(sales []trade.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for idx := range sales {
		out = append(out, ToSaleResponse(&sales[idx]))
	}
	return out
}

// buildDomainFilter converts the list filter to the repository filter
func buildDomainFilter(filter OrderListFilter) shared.Filter {
	f := shared.NewFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search
	if filter.DeliveryStatus != "" {
		f.Filters["delivery_status"] = filter.DeliveryStatus
	}
	if filter.PaymentStatus != "" {
		f.Filters["payment_status"] = filter.PaymentStatus
	}
	return f
}
