package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/application/credit"
	"github.com/acaipos/backend/internal/interfaces/http/dto"
)

// CreditHandler handles fiado customer accounts and settlements
type CreditHandler struct {
	BaseHandler
	creditService *credit.CreditService
	logger        *zap.Logger
}

// NewCreditHandler creates a credit handler
func NewCreditHandler(creditService *credit.CreditService, logger *zap.Logger) *CreditHandler {
	return &CreditHandler{creditService: creditService, logger: logger}
}

// RegisterRoutes registers credit routes
func (h *CreditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/debtors", h.ListDebtors)
		customers.GET("/:id/statement", h.GetStatement)
		customers.POST("/:id/payments", h.RegisterPayment)
	}
}

// CreateCustomer opens a store-credit account
func (h *CreditHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Name is required")
		return
	}

	customer, err := h.creditService.CreateCustomer(c.Request.Context(), credit.CreateCustomerInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// ListCustomers lists all credit customers
func (h *CreditHandler) ListCustomers(c *gin.Context) {
	customers, err := h.creditService.ListCustomers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// ListDebtors lists customers with an outstanding balance
func (h *CreditHandler) ListDebtors(c *gin.Context) {
	debtors, err := h.creditService.ListDebtors(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, debtors)
}

// GetStatement returns a customer with their full ledger
func (h *CreditHandler) GetStatement(c *gin.Context) {
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	statement, err := h.creditService.GetStatement(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statement)
}

// RegisterPayment settles part or all of a customer's debt. Overpayment is
// rejected, not turned into a positive balance.
func (h *CreditHandler) RegisterPayment(c *gin.Context) {
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req dto.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Amount is required")
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
	userID, err := sessionUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.creditService.RegisterPayment(c.Request.Context(), credit.RegisterPaymentInput{
		CustomerID: customerID,
		Amount:     amount,
		UserID:     userID,
		Date:       day.Time(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
