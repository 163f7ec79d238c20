package shift

import (
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
)

// Shift is one working session of a staff member at the stand. A user has at
// most one open shift; sales, expenses and production entries hang off it.
type Shift struct {
	shared.BaseAggregateRoot
	UserID   uuid.UUID
	OpenedAt time.Time
	ClosedAt *time.Time
}

// NewShift opens a shift for the given user.
func NewShift(userID uuid.UUID, at time.Time) (*Shift, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Shift requires a user")
	}
	if at.IsZero() {
		at = time.Now()
	}

	return &Shift{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		OpenedAt:          at,
	}, nil
}

// IsOpen reports whether the shift has not been closed yet.
func (s *Shift) IsOpen() bool {
	return s.ClosedAt == nil
}

// OpenedOn returns the UTC calendar day the shift was opened on.
func (s *Shift) OpenedOn() calendar.Day {
	return calendar.DayOf(s.OpenedAt)
}

// Close marks the shift as ended. Closing twice is an error.
func (s *Shift) Close(at time.Time) error {
	if !s.IsOpen() {
		return shared.NewDomainError("SHIFT_ALREADY_CLOSED", "Shift is already closed")
	}
	if at.IsZero() {
		at = time.Now()
	}

	closedAt := at
	s.ClosedAt = &closedAt
	s.IncrementVersion()
	return nil
}
