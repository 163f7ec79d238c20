package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appshift "github.com/acaipos/backend/internal/application/shift"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/infrastructure/config"
	"github.com/acaipos/backend/internal/interfaces/http/dto"
)

// ShiftHandler handles production entries and shift closing. Register
// operations require a staff session with an open shift.
type ShiftHandler struct {
	BaseHandler
	productionService *appshift.ProductionService
	closingService    *appshift.ClosingService
	requireShift      gin.HandlerFunc
	cookieName        string
	cookie            config.CookieConfig
	logger            *zap.Logger
}

// NewShiftHandler creates a shift handler. The cookie settings are needed
// because a successful closing ends the session.
func NewShiftHandler(
	productionService *appshift.ProductionService,
	closingService *appshift.ClosingService,
	requireShift gin.HandlerFunc,
	cookieName string,
	cookie config.CookieConfig,
	logger *zap.Logger,
) *ShiftHandler {
	return &ShiftHandler{
		productionService: productionService,
		closingService:    closingService,
		requireShift:      requireShift,
		cookieName:        cookieName,
		cookie:            cookie,
		logger:            logger,
	}
}

// RegisterRoutes registers shift routes
func (h *ShiftHandler) RegisterRoutes(rg *gin.RouterGroup) {
	production := rg.Group("/production", h.requireShift)
	{
		production.POST("", h.RegisterProduction)
		production.GET("", h.ListProduction)
	}
	shifts := rg.Group("/shifts")
	{
		shifts.POST("/close", h.requireShift, h.CloseShift)
		shifts.GET("/:id/closing", h.GetClosing)
	}
}

// RegisterProduction records baskets blended into liters for the shift
func (h *ShiftHandler) RegisterProduction(c *gin.Context) {
	var req dto.RegisterProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Baskets count and liters produced are required")
		return
	}

	day, err := dayOrToday(req.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	liters, err := dto.ParseLiters(req.LitersProduced)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	userID, err := sessionUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	shiftID, err := sessionShiftID(c)
	if err != nil || shiftID == nil {
		h.Unauthorized(c, "An open shift is required")
		return
	}

	entry, err := h.productionService.RegisterProduction(c.Request.Context(), appshift.RegisterProductionInput{
		Date:           day.Time(),
		BasketsCount:   req.BasketsCount,
		LitersProduced: liters,
		UserID:         userID,
		ShiftID:        *shiftID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// ListProduction lists the current shift's production entries
func (h *ShiftHandler) ListProduction(c *gin.Context) {
	shiftID, err := sessionShiftID(c)
	if err != nil || shiftID == nil {
		h.Unauthorized(c, "An open shift is required")
		return
	}

	entries, err := h.productionService.ListByShift(c.Request.Context(), *shiftID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// CloseShift reconciles the till and closes the current shift. An
// unexplained cash difference comes back as 422 with the full breakdown so
// the attendant can recount or justify; the shift stays open.
func (h *ShiftHandler) CloseShift(c *gin.Context) {
	var req dto.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Leftover liters is required")
		return
	}

	leftover, err := dto.ParseLiters(req.LeftoverLiters)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	claims := sessionClaims(c)
	userID, err := sessionUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	shiftID, err := sessionShiftID(c)
	if err != nil || shiftID == nil {
		h.Unauthorized(c, "An open shift is required")
		return
	}

	result, err := h.closingService.CloseShift(c.Request.Context(), appshift.CloseShiftInput{
		ShiftID:        *shiftID,
		UserID:         userID,
		LeftoverLiters: leftover,
		Justification:  req.Justification,
		TokenJTI:       claims.ID,
		TokenTTL:       claims.GetRemainingTTL(),
	})
	if err != nil {
		if errors.Is(err, shared.ErrUnjustifiedMismatch) && result != nil {
			h.HandleErrorWithDetails(c, err, result.Breakdown)
			return
		}
		h.HandleError(c, err)
		return
	}

	// The session died with the shift; drop the cookie so the client
	// returns to the login screen.
	c.SetSameSite(h.cookie.SameSiteMode())
	c.SetCookie(h.cookieName, "", -1, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
	h.Success(c, result)
}

// GetClosing returns the closing written for a shift, if any
func (h *ShiftHandler) GetClosing(c *gin.Context) {
	shiftID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid shift ID")
		return
	}

	closing, err := h.closingService.GetClosingByShift(c.Request.Context(), shiftID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if closing == nil {
		h.NotFound(c, "Shift has no closing yet")
		return
	}
	h.Success(c, closing)
}
