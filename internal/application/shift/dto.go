package shift

import (
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// RegisterProductionInput contains input for recording a production entry
type RegisterProductionInput struct {
	Date           time.Time
	BasketsCount   int
	LitersProduced valueobject.Liters
	UserID         uuid.UUID
	ShiftID        uuid.UUID
}

// ProductionEntryDTO represents a production entry returned to the API layer
type ProductionEntryDTO struct {
	ID             uuid.UUID          `json:"id"`
	Date           time.Time          `json:"date"`
	BasketsCount   int                `json:"baskets_count"`
	LitersProduced valueobject.Liters `json:"liters_produced"`
	UserID         uuid.UUID          `json:"user_id"`
	ShiftID        uuid.UUID          `json:"shift_id"`
}

// CloseShiftInput contains input for the end-of-day cash closing
type CloseShiftInput struct {
	ShiftID        uuid.UUID
	UserID         uuid.UUID
	LeftoverLiters valueobject.Liters
	Justification  string
	TokenJTI       string        // session to revoke once the shift is closed
	TokenTTL       time.Duration // remaining session lifetime
}

// ReconciliationBreakdown is the cash-count detail returned both on success
// and on an unjustified mismatch, so the attendant sees where the numbers
// diverge before retrying with a justification.
type ReconciliationBreakdown struct {
	LitersProduced    valueobject.Liters `json:"liters_produced"`
	LeftoverLiters    valueobject.Liters `json:"leftover_liters"`
	PricePerLiter     valueobject.Money  `json:"price_per_liter"`
	NonCreditSales    valueobject.Money  `json:"non_credit_sales"`
	LinkedCreditSales valueobject.Money  `json:"linked_credit_sales"`
	ManualCreditSales valueobject.Money  `json:"manual_credit_sales"`
	ExpectedAmount    valueobject.Money  `json:"expected_amount"`
	ActualAmount      valueobject.Money  `json:"actual_amount"`
	Difference        valueobject.Money  `json:"difference"`
}

// CloseShiftResult contains the outcome of a shift closing
type CloseShiftResult struct {
	ClosingID     uuid.UUID               `json:"closing_id"`
	Date          time.Time               `json:"date"`
	Balanced      bool                    `json:"balanced"`
	Justification *string                 `json:"justification,omitempty"`
	Breakdown     ReconciliationBreakdown `json:"breakdown"`
}

// ClosingDTO represents a daily closing returned to the API layer
type ClosingDTO struct {
	ID             uuid.UUID          `json:"id"`
	Date           time.Time          `json:"date"`
	ExpectedAmount valueobject.Money  `json:"expected_amount"`
	ActualAmount   valueobject.Money  `json:"actual_amount"`
	Difference     valueobject.Money  `json:"difference"`
	LeftoverLiters valueobject.Liters `json:"leftover_liters"`
	Justification  *string            `json:"justification,omitempty"`
	Status         string             `json:"status"`
	UserID         uuid.UUID          `json:"user_id"`
	ShiftID        uuid.UUID          `json:"shift_id"`
}
