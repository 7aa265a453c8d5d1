package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stocker/backend/internal/application/bulk"
	partnerapp "github.com/stocker/backend/internal/application/partner"
)

// SupplierHandler handles supplier endpoints
type SupplierHandler struct {
	BaseHandler
	suppliers *partnerapp.SupplierService
	bulk      *bulk.BulkService
	metrics   BulkRecorder
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(suppliers *partnerapp.SupplierService, bulkService *bulk.BulkService, metrics BulkRecorder) *SupplierHandler {
	if metrics == nil {
		metrics = nopBulkRecorder{}
	}
	return &SupplierHandler{suppliers: suppliers, bulk: bulkService, metrics: metrics}
}

// List returns the tenant's suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var filter partnerapp.PartnerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	suppliers, total, err := h.suppliers.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, suppliers, total, filter.Page, filter.PageSize)
}

// Create creates a new supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req partnerapp.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.suppliers.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// Get returns one supplier
func (h *SupplierHandler) Get(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	supplierID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.suppliers.GetByID(c.Request.Context(), userID, supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Update updates one supplier; absent fields are untouched
func (h *SupplierHandler) Update(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	supplierID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req partnerapp.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.suppliers.Update(c.Request.Context(), userID, supplierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Delete removes one supplier; refused while orders reference it
func (h *SupplierHandler) Delete(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	supplierID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	if err := h.suppliers.Delete(c.Request.Context(), userID, supplierID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// BulkDelete removes a batch of suppliers, reporting blocked rows
func (h *SupplierHandler) BulkDelete(c *gin.Context) {
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

	result, err := h.bulk.DeleteSuppliers(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.BulkDelete("supplier", bulkOutcomeLabel(result))
	h.BulkOutcome(c, result)
}
