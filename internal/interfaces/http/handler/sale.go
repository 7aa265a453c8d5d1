package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stocker/backend/internal/application/bulk"
	tradeapp "github.com/stocker/backend/internal/application/trade"
)

// SaleHandler handles sale endpoints. Sales are created only by the
// client order engine, so there is no create route.
type SaleHandler struct {
	BaseHandler
	sales   *tradeapp.SaleService
	bulk    *bulk.BulkService
	metrics BulkRecorder
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(sales *tradeapp.SaleService, bulkService *bulk.BulkService, metrics BulkRecorder) *SaleHandler {
	if metrics == nil {
		metrics = nopBulkRecorder{}
	}
	return &SaleHandler{sales: sales, bulk: bulkService, metrics: metrics}
}

// List returns the tenant's sales
func (h *SaleHandler) List(c *gin.Context) {
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

	sales, total, err := h.sales.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}

// Get returns one sale with its sold lines
func (h *SaleHandler) Get(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	saleID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.sales.GetByID(c.Request.Context(), userID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Delete removes one sale; standalone sales restock their lines
func (h *SaleHandler) Delete(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	saleID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.sales.Delete(c.Request.Context(), userID, saleID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// BulkDeleteSoldItems removes a batch of sold lines across sales
func (h *SaleHandler) BulkDeleteSoldItems(c *gin.Context) {
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

	result, err := h.bulk.DeleteSoldItems(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.BulkDelete("sold_item", bulkOutcomeLabel(result))
	h.BulkOutcome(c, result)
}
