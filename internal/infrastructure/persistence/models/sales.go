package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/sales"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// SaleModel is the persistence model for sales
type SaleModel struct {
	AggregateModel
	Date             time.Time           `gorm:"not null;index"`
	Amount           valueobject.Money   `gorm:"type:decimal(12,2);not null"`
	Liters           *valueobject.Liters `gorm:"type:decimal(12,3)"`
	PaymentType      string              `gorm:"type:varchar(20);not null;index"`
	UserID           uuid.UUID           `gorm:"type:uuid;not null"`
	ShiftID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	CreditCustomerID *uuid.UUID          `gorm:"type:uuid;index"`
}

// TableName returns the table name for SaleModel
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts SaleModel to domain Sale
func (m *SaleModel) ToDomain() *sales.Sale {
	return &sales.Sale{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Date:              m.Date,
		Amount:            m.Amount,
		Liters:            m.Liters,
		PaymentType:       sales.PaymentType(m.PaymentType),
		UserID:            m.UserID,
		ShiftID:           m.ShiftID,
		CreditCustomerID:  m.CreditCustomerID,
	}
}

// SaleModelFromDomain creates a SaleModel from domain Sale
func SaleModelFromDomain(s *sales.Sale) *SaleModel {
	m := &SaleModel{
		Date:             s.Date,
		Amount:           s.Amount,
		Liters:           s.Liters,
		PaymentType:      s.PaymentType.String(),
		UserID:           s.UserID,
		ShiftID:          s.ShiftID,
		CreditCustomerID: s.CreditCustomerID,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}
