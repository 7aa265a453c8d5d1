package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stocker/backend/internal/application/bulk"
	tradeapp "github.com/stocker/backend/internal/application/trade"
)

// ClientOrderHandler handles client order endpoints
type ClientOrderHandler struct {
	BaseHandler
	orders  *tradeapp.ClientOrderService
	bulk    *bulk.BulkService
	metrics BulkRecorder
}

// NewClientOrderHandler creates a new ClientOrderHandler
func NewClientOrderHandler(orders *tradeapp.ClientOrderService, bulkService *bulk.BulkService, metrics BulkRecorder) *ClientOrderHandler {
	if metrics == nil {
		metrics = nopBulkRecorder{}
	}
	return &ClientOrderHandler{orders: orders, bulk: bulkService, metrics: metrics}
}

// List returns the tenant's client orders
func (h *ClientOrderHandler) List(c *gin.Context) {
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

// Create creates a client order, decrementing stock per line
func (h *ClientOrderHandler) Create(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req tradeapp.CreateClientOrderRequest
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

// Get returns one client order with its lines
func (h *ClientOrderHandler) Get(c *gin.Context) {
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
func (h *ClientOrderHandler) Update(c *gin.Context) {
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

	var req tradeapp.UpdateClientOrderRequest
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

// Delete removes one client order, restocking unless a sale is linked
func (h *ClientOrderHandler) Delete(c *gin.Context) {
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

// ListLines returns the lines of one client order
func (h *ClientOrderHandler) ListLines(c *gin.Context) {
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

// UpdateLine updates one order line in place, moving stock by the delta
func (h *ClientOrderHandler) UpdateLine(c *gin.Context) {
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

// DeleteLine removes one order line, restocking its item
func (h *ClientOrderHandler) DeleteLine(c *gin.Context) {
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

// BulkDelete removes a batch of client orders
func (h *ClientOrderHandler) BulkDelete(c *gin.Context) {
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

	result, err := h.bulk.DeleteClientOrders(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.BulkDelete("client_order", bulkOutcomeLabel(result))
	h.BulkOutcome(c, result)
}

// BulkDeleteLines removes a batch of client order lines
func (h *ClientOrderHandler) BulkDeleteLines(c *gin.Context) {
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

	result, err := h.bulk.DeleteClientOrderLines(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.BulkDelete("client_order_line", bulkOutcomeLabel(result))
	h.BulkOutcome(c, result)
}
