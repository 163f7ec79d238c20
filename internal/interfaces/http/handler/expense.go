package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/application/expense"
	"github.com/acaipos/backend/internal/interfaces/http/dto"
)

// ExpenseHandler handles expense registration and admin review
type ExpenseHandler struct {
	BaseHandler
	expenseService *expense.ExpenseService
	adminOnly      gin.HandlerFunc
	logger         *zap.Logger
}

// NewExpenseHandler creates an expense handler
func NewExpenseHandler(expenseService *expense.ExpenseService, adminOnly gin.HandlerFunc, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, adminOnly: adminOnly, logger: logger}
}

// RegisterRoutes registers expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.CreateExpense)
		expenses.GET("", h.ListByShift)
		expenses.GET("/pending", h.adminOnly, h.ListPending)
		expenses.POST("/:id/approve", h.adminOnly, h.Approve)
		expenses.POST("/:id/reject", h.adminOnly, h.Reject)
		expenses.POST("/daily-wage", h.adminOnly, h.RecordDailyWage)
	}
}

// CreateExpense records an expense pending admin approval. Staff expenses
// are tied to the shift; an admin can record one without a shift.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Description, category and amount are required")
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
	shiftID, err := sessionShiftID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid session")
		return
	}

	created, err := h.expenseService.CreateExpense(c.Request.Context(), expense.CreateExpenseInput{
		Date:        day.Time(),
		Description: req.Description,
		Category:    req.Category,
		Amount:      amount,
		UserID:      userID,
		ShiftID:     shiftID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// ListByShift lists the current shift's expenses
func (h *ExpenseHandler) ListByShift(c *gin.Context) {
	shiftID, err := sessionShiftID(c)
	if err != nil || shiftID == nil {
		h.Unauthorized(c, "An open shift is required")
		return
	}

	list, err := h.expenseService.ListByShift(c.Request.Context(), *shiftID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// ListPending lists expenses awaiting review
func (h *ExpenseHandler) ListPending(c *gin.Context) {
	list, err := h.expenseService.ListPending(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// Approve approves a pending expense
func (h *ExpenseHandler) Approve(c *gin.Context) {
	h.review(c, true)
}

// Reject rejects a pending expense
func (h *ExpenseHandler) Reject(c *gin.Context) {
	h.review(c, false)
}

func (h *ExpenseHandler) review(c *gin.Context, approve bool) {
	expenseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}
	adminID, err := sessionUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	input := expense.ReviewExpenseInput{ExpenseID: expenseID, AdminID: adminID}
	var reviewed *expense.ExpenseDTO
	if approve {
		reviewed, err = h.expenseService.ApproveExpense(c.Request.Context(), input)
	} else {
		reviewed, err = h.expenseService.RejectExpense(c.Request.Context(), input)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reviewed)
}

// RecordDailyWage records a daily wage payout, approved on the spot
func (h *ExpenseHandler) RecordDailyWage(c *gin.Context) {
	var req dto.RecordDailyWageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Staff name and amount are required")
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
	adminID, err := sessionUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	created, err := h.expenseService.RecordDailyWage(c.Request.Context(), expense.RecordDailyWageInput{
		Date:      day.Time(),
		StaffName: req.StaffName,
		Amount:    amount,
		AdminID:   adminID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}
