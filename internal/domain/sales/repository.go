package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// SaleRepository defines persistence operations for sales
type SaleRepository interface {
	// FindByID finds a sale by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByShift lists all sales recorded during a shift, newest first
	FindByShift(ctx context.Context, shiftID uuid.UUID) ([]Sale, error)

	// FindNonCreditInRange lists non-credit sales with date in [start, end)
	FindNonCreditInRange(ctx context.Context, start, end time.Time) ([]Sale, error)

	// SumNonCreditByShift sums the amounts of a shift's non-credit sales
	SumNonCreditByShift(ctx context.Context, shiftID uuid.UUID) (valueobject.Money, error)

	// SumManualCreditByShift sums the amounts of a shift's credit sales
	// that have no linked customer (legacy manual entries)
	SumManualCreditByShift(ctx context.Context, shiftID uuid.UUID) (valueobject.Money, error)

	// Save creates or updates a sale
	Save(ctx context.Context, sale *Sale) error
}
