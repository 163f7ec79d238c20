package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/application/finance"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/interfaces/http/dto"
)

// FinanceHandler handles pricing config administration. Writes are
// admin-only; the effective config is readable by any session so the
// register can show the price per liter.
type FinanceHandler struct {
	BaseHandler
	configService *finance.ConfigService
	adminOnly     gin.HandlerFunc
	logger        *zap.Logger
}

// NewFinanceHandler creates a finance handler
func NewFinanceHandler(configService *finance.ConfigService, adminOnly gin.HandlerFunc, logger *zap.Logger) *FinanceHandler {
	return &FinanceHandler{configService: configService, adminOnly: adminOnly, logger: logger}
}

// RegisterRoutes registers finance routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	configs := rg.Group("/configs")
	{
		configs.PUT("", h.adminOnly, h.UpsertConfig)
		configs.GET("", h.adminOnly, h.ListConfigs)
		configs.GET("/effective", h.GetEffectiveConfig)
	}
}

// UpsertConfig creates or overwrites the config effective from a date.
// History stays intact: past days keep the config that was effective then.
func (h *FinanceHandler) UpsertConfig(c *gin.Context) {
	var req dto.UpsertConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Effective date and all four rates are required")
		return
	}

	effectiveFrom, err := dto.ParseDay(req.EffectiveFrom)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sellPrice, err := dto.ParseMoney(req.SellPricePerLiter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	costPerBasket, err := dto.ParseMoney(req.CostPerBasket)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	rent, err := dto.ParseMoney(req.MonthlyRent)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	electricity, err := dto.ParseMoney(req.MonthlyElectricity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	adminID, err := sessionUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cfg, err := h.configService.UpsertConfig(c.Request.Context(), finance.UpsertConfigInput{
		EffectiveFrom:      effectiveFrom,
		SellPricePerLiter:  sellPrice,
		CostPerBasket:      costPerBasket,
		MonthlyRent:        rent,
		MonthlyElectricity: electricity,
		AdminID:            adminID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}

// ListConfigs lists all configs, newest effective date first
func (h *FinanceHandler) ListConfigs(c *gin.Context) {
	configs, err := h.configService.ListConfigs(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, configs)
}

// GetEffectiveConfig returns the config effective on a day (query param
// "date", default today)
func (h *FinanceHandler) GetEffectiveConfig(c *gin.Context) {
	day := calendar.Today()
	if raw := c.Query("date"); raw != "" {
		parsed, err := dto.ParseDay(raw)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		day = parsed
	}

	cfg, err := h.configService.GetEffectiveConfig(c.Request.Context(), day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}
