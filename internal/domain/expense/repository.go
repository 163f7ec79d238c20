package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ExpenseRepository defines persistence operations for expenses
type ExpenseRepository interface {
	// FindByID finds an expense by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// FindByShift lists all expenses recorded during a shift, newest first
	FindByShift(ctx context.Context, shiftID uuid.UUID) ([]Expense, error)

	// FindPending lists expenses awaiting review, oldest first
	FindPending(ctx context.Context) ([]Expense, error)

	// FindApprovedInRange lists approved expenses with date in [start, end)
	FindApprovedInRange(ctx context.Context, start, end time.Time) ([]Expense, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error
}
