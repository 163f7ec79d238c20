package expense

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/domain/expense"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shift"
)

// ExpenseService handles expense submission and the admin review queue
type ExpenseService struct {
	expenseRepo expense.ExpenseRepository
	shiftRepo   shift.ShiftRepository
	logger      *zap.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo expense.ExpenseRepository,
	shiftRepo shift.ShiftRepository,
	logger *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		shiftRepo:   shiftRepo,
		logger:      logger,
	}
}

// CreateExpense records a staff expense pending admin review
func (s *ExpenseService) CreateExpense(ctx context.Context, input CreateExpenseInput) (*ExpenseDTO, error) {
	if input.ShiftID != nil {
		sh, err := s.shiftRepo.FindByID(ctx, *input.ShiftID)
		if err != nil {
			return nil, err
		}
		if !sh.IsOpen() {
			return nil, shared.NewDomainError("SHIFT_CLOSED", "Cannot record an expense on a closed shift")
		}
	}

	e, err := expense.NewExpense(input.Date, input.Description, input.Category, input.Amount, input.UserID, input.ShiftID)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, e); err != nil {
		s.logger.Error("Failed to save expense", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record expense")
	}

	s.logger.Info("Expense submitted",
		zap.String("expense_id", e.GetID().String()),
		zap.String("category", e.Category),
		zap.String("amount", e.Amount.String()),
	)
	return toExpenseDTO(e), nil
}

// ApproveExpense marks a pending expense as counting toward totals
func (s *ExpenseService) ApproveExpense(ctx context.Context, input ReviewExpenseInput) (*ExpenseDTO, error) {
	return s.review(ctx, input, true)
}

// RejectExpense excludes a pending expense from totals
func (s *ExpenseService) RejectExpense(ctx context.Context, input ReviewExpenseInput) (*ExpenseDTO, error) {
	return s.review(ctx, input, false)
}

func (s *ExpenseService) review(ctx context.Context, input ReviewExpenseInput, approve bool) (*ExpenseDTO, error) {
	e, err := s.expenseRepo.FindByID(ctx, input.ExpenseID)
	if err != nil {
		return nil, err
	}

	if approve {
		err = e.Approve(input.AdminID)
	} else {
		err = e.Reject(input.AdminID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, e); err != nil {
		s.logger.Error("Failed to save expense review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to review expense")
	}

	s.logger.Info("Expense reviewed",
		zap.String("expense_id", e.GetID().String()),
		zap.String("status", e.Status.String()),
		zap.String("admin_id", input.AdminID.String()),
	)
	return toExpenseDTO(e), nil
}

// RecordDailyWage records a staff daily wage as an already-approved expense
func (s *ExpenseService) RecordDailyWage(ctx context.Context, input RecordDailyWageInput) (*ExpenseDTO, error) {
	staffName := strings.TrimSpace(input.StaffName)
	if staffName == "" {
		return nil, shared.NewDomainError("INVALID_STAFF_NAME", "Staff name is required for a daily wage")
	}

	description := fmt.Sprintf("Diária - %s", staffName)
	e, err := expense.NewApprovedExpense(input.Date, description, expense.CategoryDailyWage, input.Amount, input.AdminID, input.AdminID)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, e); err != nil {
		s.logger.Error("Failed to save daily wage expense", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record daily wage")
	}

	s.logger.Info("Daily wage recorded",
		zap.String("expense_id", e.GetID().String()),
		zap.String("staff_name", staffName),
		zap.String("amount", e.Amount.String()),
	)
	return toExpenseDTO(e), nil
}

// ListPending returns expenses awaiting review, oldest first
func (s *ExpenseService) ListPending(ctx context.Context) ([]ExpenseDTO, error) {
	items, err := s.expenseRepo.FindPending(ctx)
	if err != nil {
		s.logger.Error("Failed to list pending expenses", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list expenses")
	}
	return toExpenseDTOs(items), nil
}

// ListByShift returns a shift's expenses, newest first
func (s *ExpenseService) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]ExpenseDTO, error) {
	items, err := s.expenseRepo.FindByShift(ctx, shiftID)
	if err != nil {
		s.logger.Error("Failed to list shift expenses", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list expenses")
	}
	return toExpenseDTOs(items), nil
}

func toExpenseDTOs(items []expense.Expense) []ExpenseDTO {
	out := make([]ExpenseDTO, 0, len(items))
	for i := range items {
		out = append(out, *toExpenseDTO(&items[i]))
	}
	return out
}

func toExpenseDTO(e *expense.Expense) *ExpenseDTO {
	return &ExpenseDTO{
		ID:          e.GetID(),
		Date:        e.Date,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		Status:      e.Status.String(),
		UserID:      e.UserID,
		ShiftID:     e.ShiftID,
		ApprovedBy:  e.ApprovedBy,
		ApprovedAt:  e.ApprovedAt,
	}
}
