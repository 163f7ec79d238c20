package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/application/sales"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
	"github.com/acaipos/backend/internal/interfaces/http/dto"
)

// SalesHandler handles sale registration at the register
type SalesHandler struct {
	BaseHandler
	saleService  *sales.SaleService
	requireShift gin.HandlerFunc
	logger       *zap.Logger
}

// NewSalesHandler creates a sales handler
func NewSalesHandler(saleService *sales.SaleService, requireShift gin.HandlerFunc, logger *zap.Logger) *SalesHandler {
	return &SalesHandler{saleService: saleService, requireShift: requireShift, logger: logger}
}

// RegisterRoutes registers sales routes
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	salesGroup := rg.Group("/sales", h.requireShift)
	{
		salesGroup.POST("", h.RegisterSale)
		salesGroup.GET("", h.ListSales)
	}
}

// RegisterSale records a sale on the current shift. FIADO sales with a
// customer ID also write a ledger entry; liters is optional on every type.
func (h *SalesHandler) RegisterSale(c *gin.Context) {
	var req dto.RegisterSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Amount and payment type are required")
		return
	}

	day, err := dayOrToday(req.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	amount, err := dto.ParseMoney(req.Amount)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var liters *valueobject.Liters
	if req.Liters != nil && *req.Liters != "" {
		parsed, err := dto.ParseLiters(*req.Liters)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		liters = &parsed
	}

	var customerID *uuid.UUID
	if req.CreditCustomerID != nil && *req.CreditCustomerID != "" {
		id, err := uuid.Parse(*req.CreditCustomerID)
		if err != nil {
			h.BadRequest(c, "Invalid credit customer ID")
			return
		}
		customerID = &id
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

	sale, err := h.saleService.RegisterSale(c.Request.Context(), sales.RegisterSaleInput{
		Date:             day.Time(),
		Amount:           amount,
		Liters:           liters,
		PaymentType:      req.PaymentType,
		UserID:           userID,
		ShiftID:          *shiftID,
		CreditCustomerID: customerID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// ListSales lists the current shift's sales
func (h *SalesHandler) ListSales(c *gin.Context) {
	shiftID, err := sessionShiftID(c)
	if err != nil || shiftID == nil {
		h.Unauthorized(c, "An open shift is required")
		return
	}

	list, err := h.saleService.ListByShift(c.Request.Context(), *shiftID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}
