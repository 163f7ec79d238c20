package shift

import (
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// ProductionEntry records açaí batches blended during a shift: how many
// baskets of fruit went in and how many liters came out. Entries are
// append-only; corrections are made with compensating entries.
type ProductionEntry struct {
	shared.BaseEntity
	Date           time.Time
	BasketsCount   int
	LitersProduced valueobject.Liters
	UserID         uuid.UUID
	ShiftID        uuid.UUID
}

// NewProductionEntry creates a production record for a shift.
func NewProductionEntry(date time.Time, basketsCount int, litersProduced valueobject.Liters, userID, shiftID uuid.UUID) (*ProductionEntry, error) {
	if basketsCount <= 0 {
		return nil, shared.NewDomainError("INVALID_BASKETS", "Baskets count must be positive")
	}
	if litersProduced.IsZero() || litersProduced.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LITERS", "Liters produced must be positive")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Production entry requires a user")
	}
	if shiftID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHIFT", "Production entry requires a shift")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &ProductionEntry{
		BaseEntity:     shared.NewBaseEntity(),
		Date:           date,
		BasketsCount:   basketsCount,
		LitersProduced: litersProduced,
		UserID:         userID,
		ShiftID:        shiftID,
	}, nil
}
