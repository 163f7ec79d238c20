package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// DayProfitDTO is one day of a profit report
type DayProfitDTO struct {
	Day              string             `json:"day"`
	NonCreditSales   valueobject.Money  `json:"non_credit_sales"`
	CreditPayments   valueobject.Money  `json:"credit_payments"`
	Inflow           valueobject.Money  `json:"inflow"`
	ApprovedExpenses valueobject.Money  `json:"approved_expenses"`
	InputCost        valueobject.Money  `json:"input_cost"`
	FixedCost        valueobject.Money  `json:"fixed_cost"`
	Profit           valueobject.Money  `json:"profit"`
	BasketsProduced  int                `json:"baskets_produced"`
	LitersProduced   valueobject.Liters `json:"liters_produced"`
	MissingConfig    bool               `json:"missing_config"`
}

// ProfitReportDTO is the per-day series plus totals for a period
type ProfitReportDTO struct {
	Start             string            `json:"start"`
	End               string            `json:"end"` // exclusive
	Days              []DayProfitDTO    `json:"days"`
	TotalInflow       valueobject.Money `json:"total_inflow"`
	TotalExpenses     valueobject.Money `json:"total_expenses"`
	TotalInputCost    valueobject.Money `json:"total_input_cost"`
	TotalFixedCost    valueobject.Money `json:"total_fixed_cost"`
	TotalProfit       valueobject.Money `json:"total_profit"`
	FormattedProfit   string            `json:"formatted_profit"`
	DaysWithoutConfig []string          `json:"days_without_config,omitempty"`
}

// DashboardDTO is the daily snapshot for the admin landing view
type DashboardDTO struct {
	Day              string             `json:"day"`
	NonCreditSales   valueobject.Money  `json:"non_credit_sales"`
	CreditPayments   valueobject.Money  `json:"credit_payments"`
	Inflow           valueobject.Money  `json:"inflow"`
	ApprovedExpenses valueobject.Money  `json:"approved_expenses"`
	InputCost        valueobject.Money  `json:"input_cost"`
	FixedCost        valueobject.Money  `json:"fixed_cost"`
	Profit           valueobject.Money  `json:"profit"`
	FormattedProfit  string             `json:"formatted_profit"`
	BasketsProduced  int                `json:"baskets_produced"`
	LitersProduced   valueobject.Liters `json:"liters_produced"`
	OutstandingDebt  valueobject.Money  `json:"outstanding_debt"`
	MissingConfig    bool               `json:"missing_config"`
}

// ClosingAuditDTO is one closing in the audit list
type ClosingAuditDTO struct {
	ID             uuid.UUID          `json:"id"`
	Date           time.Time          `json:"date"`
	UserID         uuid.UUID          `json:"user_id"`
	UserName       string             `json:"user_name"`
	ShiftID        uuid.UUID          `json:"shift_id"`
	ExpectedAmount valueobject.Money  `json:"expected_amount"`
	ActualAmount   valueobject.Money  `json:"actual_amount"`
	Difference     valueobject.Money  `json:"difference"`
	LeftoverLiters valueobject.Liters `json:"leftover_liters"`
	Justification  *string            `json:"justification,omitempty"`
	Balanced       bool               `json:"balanced"`
}
