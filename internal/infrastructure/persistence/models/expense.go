package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/expense"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// ExpenseModel is the persistence model for expenses
type ExpenseModel struct {
	AggregateModel
	Date        time.Time         `gorm:"not null;index"`
	Description string            `gorm:"type:varchar(500);not null"`
	Category    string            `gorm:"type:varchar(100);not null"`
	Amount      valueobject.Money `gorm:"type:decimal(12,2);not null"`
	Status      string            `gorm:"type:varchar(20);not null;index"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null"`
	ShiftID     *uuid.UUID        `gorm:"type:uuid;index"`
	ApprovedBy  *uuid.UUID        `gorm:"type:uuid"`
	ApprovedAt  *time.Time
}

// TableName returns the table name for ExpenseModel
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts ExpenseModel to domain Expense
func (m *ExpenseModel) ToDomain() *expense.Expense {
	return &expense.Expense{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Date:              m.Date,
		Description:       m.Description,
		Category:          m.Category,
		Amount:            m.Amount,
		Status:            expense.Status(m.Status),
		UserID:            m.UserID,
		ShiftID:           m.ShiftID,
		ApprovedBy:        m.ApprovedBy,
		ApprovedAt:        m.ApprovedAt,
	}
}

// ExpenseModelFromDomain creates an ExpenseModel from domain Expense
func ExpenseModelFromDomain(e *expense.Expense) *ExpenseModel {
	m := &ExpenseModel{
		Date:        e.Date,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		Status:      e.Status.String(),
		UserID:      e.UserID,
		ShiftID:     e.ShiftID,
		ApprovedBy:  e.ApprovedBy,
		ApprovedAt:  e.ApprovedAt,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}
