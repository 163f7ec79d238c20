package models

import (
	"github.com/acaipos/backend/internal/domain/identity"
)

// UserModel is the persistence model for users
type UserModel struct {
	AggregateModel
	Name    string `gorm:"type:varchar(100);not null;uniqueIndex"`
	PinHash string `gorm:"type:varchar(100);not null"`
	Role    string `gorm:"type:varchar(20);not null"`
	Active  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		PinHash:           m.PinHash,
		Role:              identity.Role(m.Role),
		Active:            m.Active,
	}
}

// UserModelFromDomain creates a UserModel from domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Name:    u.Name,
		PinHash: u.PinHash,
		Role:    u.Role.String(),
		Active:  u.Active,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}
