package expense

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// Status represents the approval status of an expense
type Status string

const (
	StatusPending  Status = "PENDING"  // Submitted by staff, awaiting admin review
	StatusApproved Status = "APPROVED" // Counts toward period totals
	StatusRejected Status = "REJECTED" // Excluded from totals
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true once the expense has been reviewed
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CategoryDailyWage marks the admin-recorded staff daily-wage expenses.
const CategoryDailyWage = "DIARIA_FUNCIONARIO"

// Expense represents money spent running the stand. Staff entries start
// PENDING; only APPROVED expenses count toward profit.
type Expense struct {
	shared.BaseAggregateRoot
	Date        time.Time
	Description string
	Category    string
	Amount      valueobject.Money
	Status      Status
	UserID      uuid.UUID
	ShiftID     *uuid.UUID // nil for admin-recorded expenses outside a shift
	ApprovedBy  *uuid.UUID
	ApprovedAt  *time.Time
}

// NewExpense records a staff expense pending admin approval.
func NewExpense(
	date time.Time,
	description, category string,
	amount valueobject.Money,
	userID uuid.UUID,
	shiftID *uuid.UUID,
) (*Expense, error) {
	description = strings.TrimSpace(description)
	category = strings.TrimSpace(category)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EXPENSE", "Expense requires a user")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Expense{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		Description:       description,
		Category:          category,
		Amount:            amount,
		Status:            StatusPending,
		UserID:            userID,
		ShiftID:           shiftID,
	}, nil
}

// NewApprovedExpense records an expense already reviewed, used for the
// admin daily-wage entries which skip the approval queue.
func NewApprovedExpense(
	date time.Time,
	description, category string,
	amount valueobject.Money,
	userID, approvedBy uuid.UUID,
) (*Expense, error) {
	e, err := NewExpense(date, description, category, amount, userID, nil)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	e.Status = StatusApproved
	e.ApprovedBy = &approvedBy
	e.ApprovedAt = &now
	return e, nil
}

// Approve marks a pending expense as counting toward totals.
func (e *Expense) Approve(adminID uuid.UUID) error {
	return e.review(StatusApproved, adminID)
}

// Reject excludes a pending expense from totals.
func (e *Expense) Reject(adminID uuid.UUID) error {
	return e.review(StatusRejected, adminID)
}

func (e *Expense) review(status Status, adminID uuid.UUID) error {
	if e.Status.IsTerminal() {
		return shared.NewDomainError("ALREADY_REVIEWED", "Expense has already been reviewed")
	}
	if adminID == uuid.Nil {
		return shared.NewDomainError("INVALID_REVIEWER", "Reviewer is required")
	}
	now := time.Now()
	e.Status = status
	e.ApprovedBy = &adminID
	e.ApprovedAt = &now
	e.IncrementVersion()
	return nil
}
