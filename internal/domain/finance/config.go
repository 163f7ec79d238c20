package finance

import (
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// FixedCostDivisor is the number of days a monthly fixed-cost pool is
// spread across. It is a flat 30 regardless of the actual month length;
// the books have always been kept that way and reports must match them.
const FixedCostDivisor = 30

// FinancialConfig is a versioned pricing/cost record. The config in effect
// for a day is the one with the greatest EffectiveFrom at or before it;
// at most one config exists per effective date.
type FinancialConfig struct {
	shared.BaseAggregateRoot
	EffectiveFrom      calendar.Day
	SellPricePerLiter  valueobject.Money
	CostPerBasket      valueobject.Money
	MonthlyRent        valueobject.Money
	MonthlyElectricity valueobject.Money
	CreatedBy          uuid.UUID
}

// NewFinancialConfig creates a new pricing config effective from the given day.
func NewFinancialConfig(
	effectiveFrom calendar.Day,
	sellPricePerLiter valueobject.Money,
	costPerBasket valueobject.Money,
	monthlyRent valueobject.Money,
	monthlyElectricity valueobject.Money,
	createdBy uuid.UUID,
) (*FinancialConfig, error) {
	if effectiveFrom.IsZero() {
		return nil, shared.NewDomainError("INVALID_EFFECTIVE_FROM", "Effective date is required")
	}
	if !sellPricePerLiter.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Sell price per liter must be positive")
	}
	if costPerBasket.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost per basket cannot be negative")
	}
	if monthlyRent.IsNegative() || monthlyElectricity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FIXED_COST", "Monthly fixed costs cannot be negative")
	}

	return &FinancialConfig{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		EffectiveFrom:      effectiveFrom,
		SellPricePerLiter:  sellPricePerLiter,
		CostPerBasket:      costPerBasket,
		MonthlyRent:        monthlyRent,
		MonthlyElectricity: monthlyElectricity,
		CreatedBy:          createdBy,
	}, nil
}

// UpdateRates replaces the config's rates in place. The effective date is
// the config's identity and never changes; a new date means a new config.
func (c *FinancialConfig) UpdateRates(
	sellPricePerLiter valueobject.Money,
	costPerBasket valueobject.Money,
	monthlyRent valueobject.Money,
	monthlyElectricity valueobject.Money,
) error {
	if !sellPricePerLiter.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Sell price per liter must be positive")
	}
	if costPerBasket.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost per basket cannot be negative")
	}
	if monthlyRent.IsNegative() || monthlyElectricity.IsNegative() {
		return shared.NewDomainError("INVALID_FIXED_COST", "Monthly fixed costs cannot be negative")
	}

	c.SellPricePerLiter = sellPricePerLiter
	c.CostPerBasket = costPerBasket
	c.MonthlyRent = monthlyRent
	c.MonthlyElectricity = monthlyElectricity
	c.IncrementVersion()
	return nil
}

// DailyFixedCost returns this config's share of monthly rent and
// electricity allocated to a single day.
func (c *FinancialConfig) DailyFixedCost() valueobject.Money {
	total := c.MonthlyRent.Add(c.MonthlyElectricity)
	daily, err := total.Divide(decimalFixedCostDivisor)
	if err != nil {
		// divisor is a nonzero constant
		panic(err)
	}
	return daily
}
