package shift

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// ShiftRepository defines persistence operations for shifts
type ShiftRepository interface {
	// FindByID finds a shift by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Shift, error)

	// FindOpenByUser finds the user's currently open shift, nil if none
	FindOpenByUser(ctx context.Context, userID uuid.UUID) (*Shift, error)

	// Save creates or updates a shift
	Save(ctx context.Context, shift *Shift) error
}

// ProductionRepository defines persistence operations for production entries
type ProductionRepository interface {
	// FindByShift lists the production entries of a shift, oldest first
	FindByShift(ctx context.Context, shiftID uuid.UUID) ([]ProductionEntry, error)

	// FindInRange lists production entries with date in [start, end)
	FindInRange(ctx context.Context, start, end time.Time) ([]ProductionEntry, error)

	// SumLitersByShift sums the liters produced during a shift
	SumLitersByShift(ctx context.Context, shiftID uuid.UUID) (valueobject.Liters, error)

	// Save creates a production entry
	Save(ctx context.Context, entry *ProductionEntry) error
}

// ClosingRepository defines persistence operations for daily closings
type ClosingRepository interface {
	// FindByID finds a closing by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*DailyClosing, error)

	// FindByShift finds the closing written for a shift, nil if none
	FindByShift(ctx context.Context, shiftID uuid.UUID) (*DailyClosing, error)

	// FindInRange lists closings with date in [start, end), newest first
	FindInRange(ctx context.Context, start, end time.Time) ([]DailyClosing, error)

	// Save creates a closing record
	Save(ctx context.Context, closing *DailyClosing) error
}
