package credit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// CustomerRepository defines persistence operations for credit customers
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// ListAll lists every customer ordered by name
	ListAll(ctx context.Context) ([]Customer, error)

	// ListWithBalance lists customers that still owe money, largest balance first
	ListWithBalance(ctx context.Context) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error
}

// LedgerRepository defines persistence operations for credit ledger entries
type LedgerRepository interface {
	// FindByCustomer lists a customer's ledger entries, newest first
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]LedgerEntry, error)

	// FindPaymentsInRange lists PAYMENT entries with date in [start, end)
	FindPaymentsInRange(ctx context.Context, start, end time.Time) ([]LedgerEntry, error)

	// SumPurchasesByShift sums PURCHASE entries whose linked sale belongs
	// to the given shift
	SumPurchasesByShift(ctx context.Context, shiftID uuid.UUID) (valueobject.Money, error)

	// MarkPurchasesPaid marks all of a customer's unpaid PURCHASE entries
	// as paid at the given time, returning how many were updated
	MarkPurchasesPaid(ctx context.Context, customerID uuid.UUID, paidAt time.Time) (int64, error)

	// Save creates or updates a ledger entry
	Save(ctx context.Context, entry *LedgerEntry) error
}
