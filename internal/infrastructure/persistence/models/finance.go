package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/finance"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// FinancialConfigModel is the persistence model for financial configurations
type FinancialConfigModel struct {
	AggregateModel
	EffectiveFrom      time.Time          `gorm:"type:date;uniqueIndex;not null"`
	SellPricePerLiter  valueobject.Money  `gorm:"type:decimal(12,2);not null"`
	CostPerBasket      valueobject.Money  `gorm:"type:decimal(12,2);not null"`
	MonthlyRent        valueobject.Money  `gorm:"type:decimal(12,2);not null"`
	MonthlyElectricity valueobject.Money  `gorm:"type:decimal(12,2);not null"`
	CreatedBy          uuid.UUID          `gorm:"type:uuid;not null"`
}

// TableName returns the table name for FinancialConfigModel
func (FinancialConfigModel) TableName() string {
	return "financial_configs"
}

// ToDomain converts FinancialConfigModel to domain FinancialConfig
func (m *FinancialConfigModel) ToDomain() *finance.FinancialConfig {
	return &finance.FinancialConfig{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		EffectiveFrom:      calendar.DayOf(m.EffectiveFrom),
		SellPricePerLiter:  m.SellPricePerLiter,
		CostPerBasket:      m.CostPerBasket,
		MonthlyRent:        m.MonthlyRent,
		MonthlyElectricity: m.MonthlyElectricity,
		CreatedBy:          m.CreatedBy,
	}
}

// FinancialConfigModelFromDomain creates a FinancialConfigModel from domain FinancialConfig
func FinancialConfigModelFromDomain(c *finance.FinancialConfig) *FinancialConfigModel {
	m := &FinancialConfigModel{
		EffectiveFrom:      c.EffectiveFrom.Time(),
		SellPricePerLiter:  c.SellPricePerLiter,
		CostPerBasket:      c.CostPerBasket,
		MonthlyRent:        c.MonthlyRent,
		MonthlyElectricity: c.MonthlyElectricity,
		CreatedBy:          c.CreatedBy,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}
