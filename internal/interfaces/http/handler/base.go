package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/infrastructure/auth"
	"github.com/acaipos/backend/internal/infrastructure/logger"
	"github.com/acaipos/backend/internal/interfaces/http/dto"
	"github.com/acaipos/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// sessionClaims extracts the authenticated session, nil on public routes
func sessionClaims(c *gin.Context) *auth.SessionClaims {
	return middleware.GetSessionClaims(c)
}

// sessionUserID extracts the authenticated user's ID
func sessionUserID(c *gin.Context) (uuid.UUID, error) {
	claims := sessionClaims(c)
	if claims == nil {
		return uuid.Nil, errors.New("no session in context")
	}
	return claims.GetUserUUID()
}

// sessionShiftID extracts the session's shift, nil for admin sessions
func sessionShiftID(c *gin.Context) (*uuid.UUID, error) {
	claims := sessionClaims(c)
	if claims == nil {
		return nil, errors.New("no session in context")
	}
	return claims.GetShiftUUID()
}

// parseIDParam parses a UUID path parameter
func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// dayOrToday parses a YYYY-MM-DD field, defaulting to today when empty
func dayOrToday(s string) (calendar.Day, error) {
	if s == "" {
		return calendar.Today(), nil
	}
	return dto.ParseDay(s)
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	requestID := middleware.GetRequestID(c)
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, message, requestID))
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	requestID := middleware.GetRequestID(c)
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, requestID))
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	requestID := middleware.GetRequestID(c)
	c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(dto.ErrCodeNotFound, message, requestID))
}

// HandleError maps application errors onto HTTP responses. Domain errors
// carry their own code; sentinel errors are translated; anything else is a
// 500 without leaking internals.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	h.HandleErrorWithDetails(c, err, nil)
}

// HandleErrorWithDetails is HandleError with a structured details payload,
// used by the closing endpoint to return the reconciliation breakdown with
// the mismatch error.
func (h *BaseHandler) HandleErrorWithDetails(c *gin.Context, err error, details interface{}) {
	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponseWithDetails(domainErr.Code, domainErr.Message, requestID, details))
		return
	}

	switch {
	case errors.Is(err, shared.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(dto.ErrCodeNotFound, "Resource not found", requestID))
	case errors.Is(err, shared.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Not allowed", requestID))
	default:
		// The client gets a generic 500; the cause goes to the request log.
		ctx := c.Request.Context()
		logger.WithTraceContext(ctx, logger.FromContext(ctx)).Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An unexpected error occurred", requestID))
	}
}
