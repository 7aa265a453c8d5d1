package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stocker/backend/internal/application/bulk"
	partnerapp "github.com/stocker/backend/internal/application/partner"
)

// ClientHandler handles client endpoints
type ClientHandler struct {
	BaseHandler
	clients *partnerapp.ClientService
	bulk    *bulk.BulkService
	metrics BulkRecorder
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clients *partnerapp.ClientService, bulkService *bulk.BulkService, metrics BulkRecorder) *ClientHandler {
	if metrics == nil {
		metrics = nopBulkRecorder{}
	}
	return &ClientHandler{clients: clients, bulk: bulkService, metrics: metrics}
}

// List returns the tenant's clients
func (h *ClientHandler) List(c *gin.Context) {
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

	clients, total, err := h.clients.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, clients, total, filter.Page, filter.PageSize)
}

// Create creates a new client
func (h *ClientHandler) Create(c *gin.Context) {
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

	client, err := h.clients.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

// Get returns one client
func (h *ClientHandler) Get(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	clientID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.clients.GetByID(c.Request.Context(), userID, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Update updates one client; absent fields are untouched
func (h *ClientHandler) Update(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	clientID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var req partnerapp.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clients.Update(c.Request.Context(), userID, clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Delete removes one client; refused while orders reference it
func (h *ClientHandler) Delete(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	clientID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.clients.Delete(c.Request.Context(), userID, clientID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// BulkDelete removes a batch of clients, reporting blocked rows
func (h *ClientHandler) BulkDelete(c *gin.Context) {
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

	result, err := h.bulk.DeleteClients(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.BulkDelete("client", bulkOutcomeLabel(result))
	h.BulkOutcome(c, result)
}
