package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/credit"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// CreditCustomerModel is the persistence model for credit customers
type CreditCustomerModel struct {
	AggregateModel
	Name        string            `gorm:"type:varchar(200);not null;index"`
	Phone       string            `gorm:"type:varchar(50)"`
	BalanceOwed valueobject.Money `gorm:"type:decimal(12,2);not null"`
	SettledAt   *time.Time
}

// TableName returns the table name for CreditCustomerModel
func (CreditCustomerModel) TableName() string {
	return "credit_customers"
}

// ToDomain converts CreditCustomerModel to domain Customer
func (m *CreditCustomerModel) ToDomain() *credit.Customer {
	return &credit.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Phone:             m.Phone,
		BalanceOwed:       m.BalanceOwed,
		SettledAt:         m.SettledAt,
	}
}

// CreditCustomerModelFromDomain creates a CreditCustomerModel from domain Customer
func CreditCustomerModelFromDomain(c *credit.Customer) *CreditCustomerModel {
	m := &CreditCustomerModel{
		Name:        c.Name,
		Phone:       c.Phone,
		BalanceOwed: c.BalanceOwed,
		SettledAt:   c.SettledAt,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// CreditLedgerEntryModel is the persistence model for credit ledger entries
type CreditLedgerEntryModel struct {
	BaseModel
	CustomerID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Kind       string            `gorm:"type:varchar(20);not null;index"`
	Amount     valueobject.Money `gorm:"type:decimal(12,2);not null"`
	Date       time.Time         `gorm:"not null;index"`
	SaleID     *uuid.UUID        `gorm:"type:uuid;index"`
	MarkedPaid bool              `gorm:"not null;default:false"`
	PaidAt     *time.Time
	UserID     uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for CreditLedgerEntryModel
func (CreditLedgerEntryModel) TableName() string {
	return "credit_ledger_entries"
}

// ToDomain converts CreditLedgerEntryModel to domain LedgerEntry
func (m *CreditLedgerEntryModel) ToDomain() *credit.LedgerEntry {
	return &credit.LedgerEntry{
		BaseEntity: m.BaseModel.ToDomain(),
		CustomerID: m.CustomerID,
		Kind:       credit.EntryKind(m.Kind),
		Amount:     m.Amount,
		Date:       m.Date,
		SaleID:     m.SaleID,
		MarkedPaid: m.MarkedPaid,
		PaidAt:     m.PaidAt,
		UserID:     m.UserID,
	}
}

// CreditLedgerEntryModelFromDomain creates a CreditLedgerEntryModel from domain LedgerEntry
func CreditLedgerEntryModelFromDomain(e *credit.LedgerEntry) *CreditLedgerEntryModel {
	m := &CreditLedgerEntryModel{
		CustomerID: e.CustomerID,
		Kind:       e.Kind.String(),
		Amount:     e.Amount,
		Date:       e.Date,
		SaleID:     e.SaleID,
		MarkedPaid: e.MarkedPaid,
		PaidAt:     e.PaidAt,
		UserID:     e.UserID,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}
