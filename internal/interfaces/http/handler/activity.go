package handler

import (
	"github.com/gin-gonic/gin"
	activityapp "github.com/stocker/backend/internal/application/activity"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stocker/backend/internal/interfaces/http/dto"
)

// ActivityHandler serves the per-tenant activity feed
type ActivityHandler struct {
	BaseHandler
	activities *activityapp.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activities *activityapp.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// List returns the tenant's activity records, newest first
func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.NewFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search

	records, total, err := h.activities.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, records, total, filter.Page, filter.PageSize)
}
