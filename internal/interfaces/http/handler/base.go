package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stocker/backend/internal/application/bulk"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stocker/backend/internal/interfaces/http/dto"
	"github.com/stocker/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// tenantID resolves the acting user's ID from the auth middleware.
// The backend is single-user-per-tenant, so this is the tenant scope
// for every repository query.
func tenantID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	return id, ok
}

// bindID parses the :id path parameter as a UUID
func bindID(c *gin.Context, param string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(param))
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 validation response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(shared.CodeValidation, message))
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(shared.CodeNotFound, message))
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(shared.CodeAuthentication, message))
}

// HandleError converts domain errors to HTTP responses, including any
// structured details (restricted_fields, invalid_uuids, ...)
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		if len(domainErr.Details) > 0 {
			c.JSON(status, dto.NewErrorResponseWithDetails(domainErr.Code, domainErr.Message, domainErr.Details))
			return
		}
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred"))
}

// BulkOutcome renders a bulk delete result. Fully blocked batches come
// back as 400, partially deleted batches as 207 Multi-Status, fully
// deleted batches as 200.
func (h *BaseHandler) BulkOutcome(c *gin.Context, result *bulk.Result) {
	data := gin.H{
		"message":       result.Message,
		"deleted_count": result.DeletedCount,
	}
	if len(result.MissingIDs) > 0 {
		data["missing_ids"] = result.MissingIDs
	}

	switch {
	case result.FullyBlocked():
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			shared.CodeConflict, result.Message,
			map[string]any{result.BlockedKey: result.Blocked}))
	case result.Partial():
		data[result.BlockedKey] = result.Blocked
		c.JSON(http.StatusMultiStatus, dto.NewSuccessResponse(data))
	default:
		c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
	}
}

// bulkOutcomeLabel names the result shape for the bulk-delete counter
func bulkOutcomeLabel(result *bulk.Result) string {
	switch {
	case result.FullyBlocked():
		return "blocked"
	case result.Partial():
		return "partial"
	default:
		return "deleted"
	}
}
