package credit

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// Customer represents a fiado account: a customer the stand extends store
// credit to, tracked as a running balance owed.
type Customer struct {
	shared.BaseAggregateRoot
	Name        string
	Phone       string
	BalanceOwed valueobject.Money
	SettledAt   *time.Time
}

// NewCustomer creates a credit customer with a zero balance.
func NewCustomer(name, phone string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             strings.TrimSpace(phone),
		BalanceOwed:       valueobject.ZeroMoney(),
	}, nil
}

// IsSettled reports whether the account currently owes nothing.
func (c *Customer) IsSettled() bool {
	return c.BalanceOwed.IsZero()
}

// RegisterPurchase adds a fiado purchase to the account: the balance grows
// and any previous settlement mark is cleared. Returns the PURCHASE ledger
// entry to persist alongside the updated balance.
func (c *Customer) RegisterPurchase(amount valueobject.Money, saleID *uuid.UUID, userID uuid.UUID, at time.Time) (*LedgerEntry, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Purchase amount must be positive")
	}
	if at.IsZero() {
		at = time.Now()
	}

	c.BalanceOwed = c.BalanceOwed.Add(amount)
	c.SettledAt = nil
	c.IncrementVersion()

	return newPurchaseEntry(c.GetID(), amount, saleID, userID, at), nil
}

// ApplyPayment reduces the balance by the paid amount. Overpayment is
// rejected outright with no mutation. When the payment zeroes the balance
// exactly, the account is marked settled and the caller must also mark the
// customer's unpaid PURCHASE entries paid in the same transaction.
func (c *Customer) ApplyPayment(amount valueobject.Money, userID uuid.UUID, at time.Time) (entry *LedgerEntry, settled bool, err error) {
	if !amount.IsPositive() {
		return nil, false, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(c.BalanceOwed) {
		return nil, false, shared.ErrInsufficientBalance
	}
	if at.IsZero() {
		at = time.Now()
	}

	c.BalanceOwed = c.BalanceOwed.Subtract(amount)
	settled = c.BalanceOwed.IsZero()
	if settled {
		settledAt := at
		c.SettledAt = &settledAt
	}
	c.IncrementVersion()

	return newPaymentEntry(c.GetID(), amount, userID, at), settled, nil
}
