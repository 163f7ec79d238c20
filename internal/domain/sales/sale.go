package sales

import (
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// PaymentType represents how a sale was paid
type PaymentType string

const (
	PaymentTypePix      PaymentType = "PIX"
	PaymentTypeCard     PaymentType = "CARD"
	PaymentTypeCash     PaymentType = "CASH"
	PaymentTypeDelivery PaymentType = "DELIVERY"
	PaymentTypeCredit   PaymentType = "CREDIT" // fiado: a receivable, not cash
)

// IsValid checks if the payment type is a valid PaymentType
func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentTypePix, PaymentTypeCard, PaymentTypeCash, PaymentTypeDelivery, PaymentTypeCredit:
		return true
	}
	return false
}

// String returns the string representation of PaymentType
func (p PaymentType) String() string {
	return string(p)
}

// IsCredit returns true for store-credit sales, which are excluded from
// cash inflow until the customer pays them off.
func (p PaymentType) IsCredit() bool {
	return p == PaymentTypeCredit
}

// Sale represents a single register entry at the stand. Sales are
// append-only; corrections are new entries.
type Sale struct {
	shared.BaseAggregateRoot
	Date             time.Time
	Amount           valueobject.Money
	Liters           *valueobject.Liters
	PaymentType      PaymentType
	UserID           uuid.UUID
	ShiftID          uuid.UUID
	CreditCustomerID *uuid.UUID
}

// NewSale records a sale made during a shift.
func NewSale(
	date time.Time,
	amount valueobject.Money,
	liters *valueobject.Liters,
	paymentType PaymentType,
	userID, shiftID uuid.UUID,
) (*Sale, error) {
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Sale amount must be positive")
	}
	if liters != nil && liters.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LITERS", "Sale liters cannot be negative")
	}
	if userID == uuid.Nil || shiftID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale requires a user and an open shift")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		Amount:            amount,
		Liters:            liters,
		PaymentType:       paymentType,
		UserID:            userID,
		ShiftID:           shiftID,
	}, nil
}

// NewCreditSale records a fiado sale linked to a credit customer.
func NewCreditSale(
	date time.Time,
	amount valueobject.Money,
	liters *valueobject.Liters,
	userID, shiftID, creditCustomerID uuid.UUID,
) (*Sale, error) {
	sale, err := NewSale(date, amount, liters, PaymentTypeCredit, userID, shiftID)
	if err != nil {
		return nil, err
	}
	if creditCustomerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Credit sale requires a customer")
	}
	sale.CreditCustomerID = &creditCustomerID
	return sale, nil
}

// IsManualCredit reports whether this is a legacy credit sale entered
// without a linked customer. Those count toward the shift's cash-basis
// total at reconciliation; nothing else treats them specially.
func (s *Sale) IsManualCredit() bool {
	return s.PaymentType.IsCredit() && s.CreditCustomerID == nil
}
