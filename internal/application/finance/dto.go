package finance

import (
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// UpsertConfigInput contains input for creating or updating a pricing config.
// EffectiveFrom is the config's key: submitting the same date again
// overwrites that config's rates in place.
type UpsertConfigInput struct {
	EffectiveFrom      calendar.Day
	SellPricePerLiter  valueobject.Money
	CostPerBasket      valueobject.Money
	MonthlyRent        valueobject.Money
	MonthlyElectricity valueobject.Money
	AdminID            uuid.UUID
}

// ConfigDTO represents a pricing config returned to the API layer
type ConfigDTO struct {
	ID                 uuid.UUID         `json:"id"`
	EffectiveFrom      string            `json:"effective_from"`
	SellPricePerLiter  valueobject.Money `json:"sell_price_per_liter"`
	CostPerBasket      valueobject.Money `json:"cost_per_basket"`
	MonthlyRent        valueobject.Money `json:"monthly_rent"`
	MonthlyElectricity valueobject.Money `json:"monthly_electricity"`
	DailyFixedCost     valueobject.Money `json:"daily_fixed_cost"`
	CreatedBy          uuid.UUID         `json:"created_by"`
	CreatedAt          time.Time         `json:"created_at"`
}
