package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	orderapp "github.com/tshirtshop/backend/internal/application/order"
	"github.com/tshirtshop/backend/internal/domain/shared"
	"github.com/tshirtshop/backend/internal/infrastructure/logger"
	"github.com/tshirtshop/backend/internal/interfaces/http/dto"
	"github.com/tshirtshop/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// errNoCaller is returned when a route that needs the caller runs unauthenticated
var errNoCaller = shared.NewDomainError(shared.CodeUnauthorized, "Authentication required")

// getRequestID extracts the request ID set by the RequestID middleware
func getRequestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

// callerID returns the authenticated user id
func callerID(c *gin.Context) (int64, error) {
	id, ok := middleware.GetJWTUserID(c)
	if !ok {
		return 0, errNoCaller
	}
	return id, nil
}

// viewerOf describes the authenticated caller for owner-or-admin reads
func viewerOf(c *gin.Context) (orderapp.Viewer, error) {
	id, err := callerID(c)
	if err != nil {
		return orderapp.Viewer{}, err
	}
	return orderapp.Viewer{UserID: id, Admin: middleware.GetJWTRole(c).IsAdmin()}, nil
}

// pathID parses a positive int64 path parameter
func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Invalid %s: %q", name, raw))
	}
	return id, nil
}

// listFilter binds the pagination query parameters
func (h *BaseHandler) listFilter(c *gin.Context) (shared.Filter, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return shared.Filter{}, false
	}
	req = req.Normalized()
	return shared.Filter{Page: req.Page, PageSize: req.PageSize, OrderDir: req.OrderDir}, true
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError renders domain errors with their own code and status.
// Anything else is logged and becomes a 500 ERR_INTERNAL.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled error", zap.Error(err))
	_ = c.Error(err)
	h.InternalError(c, "An unexpected error occurred")
}
