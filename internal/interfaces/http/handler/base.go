package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/logger"
	printinfra "github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/printing"
	"github.com/ceodigitcare/fastflow01-sub002/internal/interfaces/http/dto"
	"github.com/ceodigitcare/fastflow01-sub002/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, message string, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(message, middleware.GetRequestID(c), details))
}

// HandleError maps an error to the response envelope. Field validation
// failures carry their details; domain and rendering errors keep their
// code; anything else is logged and answered with a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var fieldErrs finance.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		h.ValidationError(c, fieldErrs[0].Message, validationDetails(fieldErrs))
		return
	}
	var fieldErr *finance.ValidationError
	if errors.As(err, &fieldErr) {
		h.ValidationError(c, fieldErr.Message, validationDetails(finance.ValidationErrors{fieldErr}))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	var renderErr *printinfra.RenderError
	if errors.As(err, &renderErr) {
		logger.GetGinLogger(c).Warn("Report rendering failed", zap.Error(err))
		h.Error(c, dto.GetHTTPStatus(renderErr.Code), renderErr.Code, renderErr.Message)
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		h.Error(c, http.StatusGatewayTimeout, dto.ErrCodeTimeout, "The request took too long")
		return
	}

	logger.GetGinLogger(c).Error("Unhandled error", zap.Error(err))
	_ = c.Error(err)
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

func validationDetails(errs finance.ValidationErrors) []dto.ValidationDetail {
	details := make([]dto.ValidationDetail, len(errs))
	for i, e := range errs {
		details[i] = dto.ValidationDetail{Field: e.Field, Code: e.Code, Message: e.Message}
	}
	return details
}

// storeID returns the acting store, answering 400 when there is none
func (h *BaseHandler) storeID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetStoreUUID(c)
	if !ok {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeMissingStore, "Store identification required")
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses a UUID path parameter, answering 400 when it is malformed
func (h *BaseHandler) pathID(c *gin.Context, param, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.BadRequest(c, "Invalid "+what+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds and validates the request body
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// bindQuery binds and validates query parameters
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// page returns the page and size to report in list metadata
func page(requested, size int) (int, int) {
	if requested < 1 {
		requested = 1
	}
	if size < 1 {
		size = dto.DefaultPageSize
	}
	return requested, size
}
