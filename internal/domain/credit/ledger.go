package credit

import (
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// EntryKind represents the kind of a credit ledger entry
type EntryKind string

const (
	EntryKindPurchase EntryKind = "PURCHASE" // Increases the balance owed
	EntryKindPayment  EntryKind = "PAYMENT"  // Decreases the balance owed
)

// IsValid checks if the kind is a valid EntryKind
func (k EntryKind) IsValid() bool {
	return k == EntryKindPurchase || k == EntryKindPayment
}

// String returns the string representation of EntryKind
func (k EntryKind) String() string {
	return string(k)
}

// LedgerEntry is one movement on a fiado account. Purchases stay unpaid
// until a payment settles the whole balance, at which point all of the
// customer's unpaid purchases are batch-marked paid.
type LedgerEntry struct {
	shared.BaseEntity
	CustomerID uuid.UUID
	Kind       EntryKind
	Amount     valueobject.Money
	Date       time.Time
	SaleID     *uuid.UUID
	MarkedPaid bool
	PaidAt     *time.Time
	UserID     uuid.UUID
}

func newPurchaseEntry(customerID uuid.UUID, amount valueobject.Money, saleID *uuid.UUID, userID uuid.UUID, at time.Time) *LedgerEntry {
	return &LedgerEntry{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		Kind:       EntryKindPurchase,
		Amount:     amount,
		Date:       at,
		SaleID:     saleID,
		MarkedPaid: false,
		UserID:     userID,
	}
}

func newPaymentEntry(customerID uuid.UUID, amount valueobject.Money, userID uuid.UUID, at time.Time) *LedgerEntry {
	paidAt := at
	return &LedgerEntry{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		Kind:       EntryKindPayment,
		Amount:     amount,
		Date:       at,
		MarkedPaid: true,
		PaidAt:     &paidAt,
		UserID:     userID,
	}
}
