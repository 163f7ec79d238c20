package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/acaipos/backend/internal/domain/credit"
	"github.com/acaipos/backend/internal/domain/expense"
	"github.com/acaipos/backend/internal/domain/finance"
	"github.com/acaipos/backend/internal/domain/identity"
	"github.com/acaipos/backend/internal/domain/sales"
	"github.com/acaipos/backend/internal/domain/shift"
)

// Repositories bundles every repository bound to one database handle, either
// the shared pool or a single transaction.
type Repositories struct {
	Configs     finance.FinancialConfigRepository
	Shifts      shift.ShiftRepository
	Production  shift.ProductionRepository
	Closings    shift.ClosingRepository
	Sales       sales.SaleRepository
	Expenses    expense.ExpenseRepository
	Customers   credit.CustomerRepository
	Ledger      credit.LedgerRepository
	Users       identity.UserRepository
}

// NewRepositories builds the repository bundle on a database handle
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Configs:    NewGormFinancialConfigRepository(db),
		Shifts:     NewGormShiftRepository(db),
		Production: NewGormProductionRepository(db),
		Closings:   NewGormClosingRepository(db),
		Sales:      NewGormSaleRepository(db),
		Expenses:   NewGormExpenseRepository(db),
		Customers:  NewGormCreditCustomerRepository(db),
		Ledger:     NewGormCreditLedgerRepository(db),
		Users:      NewGormUserRepository(db),
	}
}

// UnitOfWork runs multi-repository operations inside one transaction. The
// shift closing and the credit settlement cascade both depend on this:
// either every row lands or none do.
type UnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a UnitOfWork on the given database handle
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// WithinTx executes fn with repositories bound to a single transaction.
// Returning an error rolls everything back.
func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(repos *Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
