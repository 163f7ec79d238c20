package shift

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// ClosingStatus represents the status of a daily closing
type ClosingStatus string

const (
	ClosingStatusSubmitted ClosingStatus = "SUBMITTED"
)

// IsValid checks if the status is a valid ClosingStatus
func (s ClosingStatus) IsValid() bool {
	return s == ClosingStatusSubmitted
}

// String returns the string representation of ClosingStatus
func (s ClosingStatus) String() string {
	return string(s)
}

// DailyClosing is the immutable record written when a shift's cash count is
// accepted. A non-zero difference must carry a justification; without one the
// closing is refused and nothing is written.
type DailyClosing struct {
	shared.BaseAggregateRoot
	Date           time.Time
	ExpectedAmount valueobject.Money
	ActualAmount   valueobject.Money
	Difference     valueobject.Money
	LeftoverLiters valueobject.Liters
	Justification  *string
	Status         ClosingStatus
	UserID         uuid.UUID
	ShiftID        uuid.UUID
}

// NewDailyClosing builds the closing record from a reconciliation. When the
// drawer does not balance, a justification is required.
func NewDailyClosing(date time.Time, rec Reconciliation, justification string, userID, shiftID uuid.UUID) (*DailyClosing, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Closing requires a user")
	}
	if shiftID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHIFT", "Closing requires a shift")
	}
	if date.IsZero() {
		date = time.Now()
	}

	justification = strings.TrimSpace(justification)
	if !rec.Balanced() && justification == "" {
		return nil, shared.ErrUnjustifiedMismatch
	}

	closing := &DailyClosing{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		ExpectedAmount:    rec.ExpectedAmount,
		ActualAmount:      rec.ActualAmount,
		Difference:        rec.Difference,
		LeftoverLiters:    rec.LeftoverLiters,
		Status:            ClosingStatusSubmitted,
		UserID:            userID,
		ShiftID:           shiftID,
	}
	if justification != "" {
		closing.Justification = &justification
	}
	return closing, nil
}
