package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// CreateExpenseInput contains input for a staff-submitted expense
type CreateExpenseInput struct {
	Date        time.Time
	Description string
	Category    string
	Amount      valueobject.Money
	UserID      uuid.UUID
	ShiftID     *uuid.UUID
}

// ReviewExpenseInput contains input for approving or rejecting an expense
type ReviewExpenseInput struct {
	ExpenseID uuid.UUID
	AdminID   uuid.UUID
}

// RecordDailyWageInput contains input for the admin-recorded staff daily wage.
// Wage expenses skip the approval queue and carry no shift.
type RecordDailyWageInput struct {
	Date      time.Time
	StaffName string
	Amount    valueobject.Money
	AdminID   uuid.UUID
}

// ExpenseDTO represents an expense returned to the API layer
type ExpenseDTO struct {
	ID          uuid.UUID         `json:"id"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Amount      valueobject.Money `json:"amount"`
	Status      string            `json:"status"`
	UserID      uuid.UUID         `json:"user_id"`
	ShiftID     *uuid.UUID        `json:"shift_id,omitempty"`
	ApprovedBy  *uuid.UUID        `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time        `json:"approved_at,omitempty"`
}
