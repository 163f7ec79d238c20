package dto

// LoginRequest is the PIN login payload
type LoginRequest struct {
	Name string `json:"name" binding:"required"`
	Pin  string `json:"pin" binding:"required"`
}

// CreateUserRequest creates a staff or admin account
type CreateUserRequest struct {
	Name string `json:"name" binding:"required"`
	Pin  string `json:"pin" binding:"required"`
	Role string `json:"role" binding:"required"`
}

// ChangePinRequest replaces a user's PIN
type ChangePinRequest struct {
	NewPin string `json:"new_pin" binding:"required"`
}

// SetActiveRequest activates or deactivates an account
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// RegisterProductionRequest records baskets blended into liters.
// Date defaults to today when omitted.
type RegisterProductionRequest struct {
	Date           string `json:"date"`
	BasketsCount   int    `json:"baskets_count" binding:"required,min=1"`
	LitersProduced string `json:"liters_produced" binding:"required"`
}

// CloseShiftRequest closes the shift with the counted leftover
type CloseShiftRequest struct {
	LeftoverLiters string `json:"leftover_liters" binding:"required"`
	Justification  string `json:"justification"`
}

// RegisterSaleRequest records a sale. Liters is optional: attendants often
// ring up a price without weighing. Amount accepts comma decimals.
type RegisterSaleRequest struct {
	Date             string  `json:"date"`
	Amount           string  `json:"amount" binding:"required"`
	Liters           *string `json:"liters"`
	PaymentType      string  `json:"payment_type" binding:"required"`
	CreditCustomerID *string `json:"credit_customer_id"`
}

// CreateExpenseRequest records a pending expense
type CreateExpenseRequest struct {
	Date        string `json:"date"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
}

// RecordDailyWageRequest records a pre-approved daily wage payout
type RecordDailyWageRequest struct {
	Date      string `json:"date"`
	StaffName string `json:"staff_name" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
}

// CreateCustomerRequest opens a store-credit account
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// RegisterPaymentRequest settles part or all of a customer's debt
type RegisterPaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
	Date   string `json:"date"`
}

// UpsertConfigRequest creates or overwrites the pricing config effective
// from a given date
type UpsertConfigRequest struct {
	EffectiveFrom      string `json:"effective_from" binding:"required"`
	SellPricePerLiter  string `json:"sell_price_per_liter" binding:"required"`
	CostPerBasket      string `json:"cost_per_basket" binding:"required"`
	MonthlyRent        string `json:"monthly_rent" binding:"required"`
	MonthlyElectricity string `json:"monthly_electricity" binding:"required"`
}
