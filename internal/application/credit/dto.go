package credit

import (
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// CreateCustomerInput contains input for opening a credit account
type CreateCustomerInput struct {
	Name  string
	Phone string
}

// RegisterPaymentInput contains input for a payment against an account
type RegisterPaymentInput struct {
	CustomerID uuid.UUID
	Amount     valueobject.Money
	UserID     uuid.UUID
	Date       time.Time
}

// CustomerDTO represents a credit customer returned to the API layer
type CustomerDTO struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Phone       string            `json:"phone,omitempty"`
	BalanceOwed valueobject.Money `json:"balance_owed"`
	SettledAt   *time.Time        `json:"settled_at,omitempty"`
}

// LedgerEntryDTO represents a ledger entry returned to the API layer
type LedgerEntryDTO struct {
	ID         uuid.UUID         `json:"id"`
	CustomerID uuid.UUID         `json:"customer_id"`
	Kind       string            `json:"kind"`
	Amount     valueobject.Money `json:"amount"`
	Date       time.Time         `json:"date"`
	SaleID     *uuid.UUID        `json:"sale_id,omitempty"`
	MarkedPaid bool              `json:"marked_paid"`
	PaidAt     *time.Time        `json:"paid_at,omitempty"`
	UserID     uuid.UUID         `json:"user_id"`
}

// PaymentResult contains the outcome of a payment
type PaymentResult struct {
	Entry      LedgerEntryDTO    `json:"entry"`
	NewBalance valueobject.Money `json:"new_balance"`
	Settled    bool              `json:"settled"`
}

// CustomerStatementDTO bundles a customer with their full ledger
type CustomerStatementDTO struct {
	Customer CustomerDTO      `json:"customer"`
	Ledger   []LedgerEntryDTO `json:"ledger"`
}
