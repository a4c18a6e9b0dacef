// Package handler provides HTTP handlers for the cold storage backend.
package handler

import (
	"errors"
	"net/http"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/infrastructure/logger"
	"github.com/coldstore/backend/internal/interfaces/http/dto"
	"github.com/coldstore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common response and error handling for all handlers
type BaseHandler struct{}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with data and pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response for malformed requests
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.respondError(c, http.StatusBadRequest, "VALIDATION_FAILED", message)
}

// HandleError maps an error to an HTTP response. Domain errors carry their
// own code; anything else is an internal error and the detail stays in the
// logs.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.respondError(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	logger.FromContext(c.Request.Context()).Error("Unhandled error",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)
	h.respondError(c, http.StatusInternalServerError, "INTERNAL", "An internal error occurred")
}

func (h *BaseHandler) respondError(c *gin.Context, status int, code, message string) {
	requestID := logger.GetRequestID(c.Request.Context())
	if requestID == "" {
		requestID = c.GetString("request_id")
	}
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// listFilter binds common pagination query parameters
func (h *BaseHandler) listFilter(c *gin.Context) (shared.Filter, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return shared.Filter{}, false
	}

	filter := shared.DefaultFilter()
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
	return filter, true
}

// tenantID extracts the tenant from the request. The tenant middleware
// guarantees a valid UUID on every route under its scope; a miss here means
// a wiring mistake, answered with 401 rather than a panic.
func (h *BaseHandler) tenantID(c *gin.Context) (uuid.UUID, bool) {
	tenantID, err := middleware.GetTenantUUID(c)
	if err != nil || tenantID == uuid.Nil {
		h.respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Tenant identification required")
		return uuid.Nil, false
	}
	return tenantID, true
}
