package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stocker/backend/internal/application/bulk"
	tradeapp "github.com/stocker/backend/internal/application/trade"
)

// SupplierOrderHandler handles supplier order endpoints
type SupplierOrderHandler struct {
	BaseHandler
	orders  *tradeapp.SupplierOrderService
	bulk    *bulk.BulkService
	metrics BulkRecorder
}

// NewSupplierOrderHandler creates a new SupplierOrderHandler
func NewSupplierOrderHandler(orders *tradeapp.SupplierOrderService, bulkService *bulk.BulkService, metrics BulkRecorder) *SupplierOrderHandler {
	if metrics == nil {
		metrics = nopBulkRecorder{}
	}
	return &SupplierOrderHandler{orders: orders, bulk: bulkService, metrics: metrics}
}

// List returns the tenant's supplier orders
func (h *SupplierOrderHandler) List(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var filter tradeapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, total, err := h.orders.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Create creates a supplier order with its lines
func (h *SupplierOrderHandler) Create(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req tradeapp.CreateSupplierOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orders.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Get returns one supplier order with its lines
func (h *SupplierOrderHandler) Get(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	orderID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Update applies a partial update with line reconciliation
func (h *SupplierOrderHandler) Update(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	orderID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req tradeapp.UpdateSupplierOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orders.Update(c.Request.Context(), userID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete removes one supplier order without reversing inventory
func (h *SupplierOrderHandler) Delete(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	orderID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orders.Delete(c.Request.Context(), userID, orderID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListLines returns the lines of one supplier order
func (h *SupplierOrderHandler) ListLines(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	orderID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order.OrderedItems)
}

// UpdateLine updates one order line in place
func (h *SupplierOrderHandler) UpdateLine(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	orderID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	lineID, err := bindID(c, "item_id")
	if err != nil {
		h.BadRequest(c, "Invalid order line ID")
		return
	}

	var req tradeapp.UpdateOrderedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orders.UpdateLine(c.Request.Context(), userID, orderID, lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// DeleteLine removes one order line
func (h *SupplierOrderHandler) DeleteLine(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	orderID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	lineID, err := bindID(c, "item_id")
	if err != nil {
		h.BadRequest(c, "Invalid order line ID")
		return
	}

	if err := h.orders.DeleteLine(c.Request.Context(), userID, orderID, lineID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// BulkDelete removes a batch of supplier orders
func (h *SupplierOrderHandler) BulkDelete(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req bulk.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.bulk.DeleteSupplierOrders(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.BulkDelete("supplier_order", bulkOutcomeLabel(result))
	h.BulkOutcome(c, result)
}

// BulkDeleteLines removes a batch of supplier order lines
func (h *SupplierOrderHandler) BulkDeleteLines(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req bulk.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.bulk.DeleteSupplierOrderLines(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.BulkDelete("supplier_order_line", bulkOutcomeLabel(result))
	h.BulkOutcome(c, result)
}
