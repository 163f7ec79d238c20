package sales

import (
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// RegisterSaleInput contains input for recording a sale
type RegisterSaleInput struct {
	Date             time.Time
	Amount           valueobject.Money
	Liters           *valueobject.Liters
	PaymentType      string
	UserID           uuid.UUID
	ShiftID          uuid.UUID
	CreditCustomerID *uuid.UUID // required semantics only for CREDIT sales linked to an account
}

// SaleDTO represents a sale returned to the API layer
type SaleDTO struct {
	ID               uuid.UUID           `json:"id"`
	Date             time.Time           `json:"date"`
	Amount           valueobject.Money   `json:"amount"`
	Liters           *valueobject.Liters `json:"liters,omitempty"`
	PaymentType      string              `json:"payment_type"`
	UserID           uuid.UUID           `json:"user_id"`
	ShiftID          uuid.UUID           `json:"shift_id"`
	CreditCustomerID *uuid.UUID          `json:"credit_customer_id,omitempty"`
}
