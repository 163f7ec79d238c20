package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shift"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// ShiftModel is the persistence model for shifts
type ShiftModel struct {
	AggregateModel
	UserID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	OpenedAt time.Time  `gorm:"not null"`
	ClosedAt *time.Time `gorm:"index"`
}

// TableName returns the table name for ShiftModel
func (ShiftModel) TableName() string {
	return "shifts"
}

// ToDomain converts ShiftModel to domain Shift
func (m *ShiftModel) ToDomain() *shift.Shift {
	return &shift.Shift{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		UserID:            m.UserID,
		OpenedAt:          m.OpenedAt,
		ClosedAt:          m.ClosedAt,
	}
}

// ShiftModelFromDomain creates a ShiftModel from domain Shift
func ShiftModelFromDomain(s *shift.Shift) *ShiftModel {
	m := &ShiftModel{
		UserID:   s.UserID,
		OpenedAt: s.OpenedAt,
		ClosedAt: s.ClosedAt,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}

// ProductionEntryModel is the persistence model for production entries
type ProductionEntryModel struct {
	BaseModel
	Date           time.Time          `gorm:"not null;index"`
	BasketsCount   int                `gorm:"not null"`
	LitersProduced valueobject.Liters `gorm:"type:decimal(12,3);not null"`
	UserID         uuid.UUID          `gorm:"type:uuid;not null"`
	ShiftID        uuid.UUID          `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for ProductionEntryModel
func (ProductionEntryModel) TableName() string {
	return "production_entries"
}

// ToDomain converts ProductionEntryModel to domain ProductionEntry
func (m *ProductionEntryModel) ToDomain() *shift.ProductionEntry {
	return &shift.ProductionEntry{
		BaseEntity:     m.BaseModel.ToDomain(),
		Date:           m.Date,
		BasketsCount:   m.BasketsCount,
		LitersProduced: m.LitersProduced,
		UserID:         m.UserID,
		ShiftID:        m.ShiftID,
	}
}

// ProductionEntryModelFromDomain creates a ProductionEntryModel from domain ProductionEntry
func ProductionEntryModelFromDomain(e *shift.ProductionEntry) *ProductionEntryModel {
	m := &ProductionEntryModel{
		Date:           e.Date,
		BasketsCount:   e.BasketsCount,
		LitersProduced: e.LitersProduced,
		UserID:         e.UserID,
		ShiftID:        e.ShiftID,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}

// DailyClosingModel is the persistence model for daily closings
type DailyClosingModel struct {
	AggregateModel
	Date           time.Time          `gorm:"not null;index"`
	ExpectedAmount valueobject.Money  `gorm:"type:decimal(12,2);not null"`
	ActualAmount   valueobject.Money  `gorm:"type:decimal(12,2);not null"`
	Difference     valueobject.Money  `gorm:"type:decimal(12,2);not null"`
	LeftoverLiters valueobject.Liters `gorm:"type:decimal(12,3);not null"`
	Justification  *string            `gorm:"type:text"`
	Status         string             `gorm:"type:varchar(20);not null"`
	UserID         uuid.UUID          `gorm:"type:uuid;not null"`
	ShiftID        uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex"`
}

// TableName returns the table name for DailyClosingModel
func (DailyClosingModel) TableName() string {
	return "daily_closings"
}

// ToDomain converts DailyClosingModel to domain DailyClosing
func (m *DailyClosingModel) ToDomain() *shift.DailyClosing {
	return &shift.DailyClosing{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Date:              m.Date,
		ExpectedAmount:    m.ExpectedAmount,
		ActualAmount:      m.ActualAmount,
		Difference:        m.Difference,
		LeftoverLiters:    m.LeftoverLiters,
		Justification:     m.Justification,
		Status:            shift.ClosingStatus(m.Status),
		UserID:            m.UserID,
		ShiftID:           m.ShiftID,
	}
}

// DailyClosingModelFromDomain creates a DailyClosingModel from domain DailyClosing
func DailyClosingModelFromDomain(c *shift.DailyClosing) *DailyClosingModel {
	m := &DailyClosingModel{
		Date:           c.Date,
		ExpectedAmount: c.ExpectedAmount,
		ActualAmount:   c.ActualAmount,
		Difference:     c.Difference,
		LeftoverLiters: c.LeftoverLiters,
		Justification:  c.Justification,
		Status:         c.Status.String(),
		UserID:         c.UserID,
		ShiftID:        c.ShiftID,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}
