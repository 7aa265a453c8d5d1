package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stocker/backend/internal/application/bulk"
	invapp "github.com/stocker/backend/internal/application/inventory"
)

// BulkRecorder counts bulk delete batches by entity kind and outcome
type BulkRecorder interface {
	BulkDelete(kind, outcome string)
}

type nopBulkRecorder struct{}

func (nopBulkRecorder) BulkDelete(string, string) {}

// ItemHandler handles inventory item endpoints
type ItemHandler struct {
	BaseHandler
	items   *invapp.ItemService
	bulk    *bulk.BulkService
	metrics BulkRecorder
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(items *invapp.ItemService, bulkService *bulk.BulkService, metrics BulkRecorder) *ItemHandler {
	if metrics == nil {
		metrics = nopBulkRecorder{}
	}
	return &ItemHandler{items: items, bulk: bulkService, metrics: metrics}
}

// List returns the tenant's items
func (h *ItemHandler) List(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var filter invapp.ItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.items.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Create creates a new item
func (h *ItemHandler) Create(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req invapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.items.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Get returns one item
func (h *ItemHandler) Get(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	itemID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.items.GetByID(c.Request.Context(), userID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update applies a full or partial update; absent fields are untouched
func (h *ItemHandler) Update(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	itemID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req invapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.items.Update(c.Request.Context(), userID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete removes one item; refused while order lines reference it
func (h *ItemHandler) Delete(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	itemID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.items.Delete(c.Request.Context(), userID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// BulkDelete removes a batch of items, reporting blocked rows
func (h *ItemHandler) BulkDelete(c *gin.Context) {
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

	result, err := h.bulk.DeleteItems(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.BulkDelete("item", bulkOutcomeLabel(result))
	h.BulkOutcome(c, result)
}
