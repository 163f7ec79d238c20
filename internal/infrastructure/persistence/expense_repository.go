package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acaipos/backend/internal/domain/expense"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/infrastructure/persistence/models"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByShift lists all expenses recorded during a shift, newest first
func (r *GormExpenseRepository) FindByShift(ctx context.Context, shiftID uuid.UUID) ([]expense.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Order("date DESC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toDomainExpenses(expenseModels), nil
}

// FindPending lists expenses awaiting review, oldest first
func (r *GormExpenseRepository) FindPending(ctx context.Context) ([]expense.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", expense.StatusPending.String()).
		Order("date ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toDomainExpenses(expenseModels), nil
}

// FindApprovedInRange lists approved expenses with date in [start, end)
func (r *GormExpenseRepository) FindApprovedInRange(ctx context.Context, start, end time.Time) ([]expense.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND date >= ? AND date < ?", expense.StatusApproved.String(), start, end).
		Order("date ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toDomainExpenses(expenseModels), nil
}

// Save creates or updates an expense. The review transition is
// version-checked so two admins cannot both decide the same expense.
func (r *GormExpenseRepository) Save(ctx context.Context, e *expense.Expense) error {
	model := models.ExpenseModelFromDomain(e)
	return saveVersioned(r.db.WithContext(ctx), model, e.Version)
}

func toDomainExpenses(expenseModels []models.ExpenseModel) []expense.Expense {
	result := make([]expense.Expense, len(expenseModels))
	for i, model := range expenseModels {
		result[i] = *model.ToDomain()
	}
	return result
}

var _ expense.ExpenseRepository = (*GormExpenseRepository)(nil)
