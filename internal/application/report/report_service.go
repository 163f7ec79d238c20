package report

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/acaipos/backend/internal/domain/credit"
	"github.com/acaipos/backend/internal/domain/expense"
	"github.com/acaipos/backend/internal/domain/finance"
	"github.com/acaipos/backend/internal/domain/identity"
	"github.com/acaipos/backend/internal/domain/sales"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
	"github.com/acaipos/backend/internal/domain/shift"
)

// brl renders amounts the way the owner reads them: "R$ 1.234,56".
var brl = message.NewPrinter(language.BrazilianPortuguese)

func formatBRL(m valueobject.Money) string {
	return brl.Sprintf("R$ %.2f", m.Amount().InexactFloat64())
}

// ReportService assembles profit reports and the daily dashboard from the
// other modules' records. It only reads; every write path lives in the
// module that owns the data.
type ReportService struct {
	configRepo     finance.FinancialConfigRepository
	saleRepo       sales.SaleRepository
	ledgerRepo     credit.LedgerRepository
	expenseRepo    expense.ExpenseRepository
	productionRepo shift.ProductionRepository
	closingRepo    shift.ClosingRepository
	customerRepo   credit.CustomerRepository
	userRepo       identity.UserRepository
	logger         *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(
	configRepo finance.FinancialConfigRepository,
	saleRepo sales.SaleRepository,
	ledgerRepo credit.LedgerRepository,
	expenseRepo expense.ExpenseRepository,
	productionRepo shift.ProductionRepository,
	closingRepo shift.ClosingRepository,
	customerRepo credit.CustomerRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		configRepo:     configRepo,
		saleRepo:       saleRepo,
		ledgerRepo:     ledgerRepo,
		expenseRepo:    expenseRepo,
		productionRepo: productionRepo,
		closingRepo:    closingRepo,
		customerRepo:   customerRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// periodFigures holds the per-day aggregates a report is built from.
type periodFigures struct {
	days          []calendar.Day
	nonCredit     finance.DayAmounts
	payments      finance.DayAmounts
	expenses      finance.DayAmounts
	inputCosts    finance.DayAmounts
	fixedCosts    finance.DayAmounts
	basketsByDay  map[string]int
	litersByDay   map[string]valueobject.Liters
	missingConfig []string
}

func (s *ReportService) collectPeriod(ctx context.Context, start, end calendar.Day) (*periodFigures, error) {
	days := calendar.Range(start, end)
	startT := start.Time()
	endT := end.Time()

	saleRows, err := s.saleRepo.FindNonCreditInRange(ctx, startT, endT)
	if err != nil {
		s.logger.Error("Failed to load sales for report", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build report")
	}
	paymentRows, err := s.ledgerRepo.FindPaymentsInRange(ctx, startT, endT)
	if err != nil {
		s.logger.Error("Failed to load credit payments for report", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build report")
	}
	expenseRows, err := s.expenseRepo.FindApprovedInRange(ctx, startT, endT)
	if err != nil {
		s.logger.Error("Failed to load expenses for report", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build report")
	}
	productionRows, err := s.productionRepo.FindInRange(ctx, startT, endT)
	if err != nil {
		s.logger.Error("Failed to load production for report", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build report")
	}
	configs, err := s.configRepo.ListEffectiveThrough(ctx, end.AddDays(-1))
	if err != nil {
		s.logger.Error("Failed to load configs for report", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build report")
	}

	saleAmounts := make([]finance.DatedAmount, 0, len(saleRows))
	for _, sale := range saleRows {
		saleAmounts = append(saleAmounts, finance.DatedAmount{At: sale.Date, Amount: sale.Amount})
	}
	paymentAmounts := make([]finance.DatedAmount, 0, len(paymentRows))
	for _, entry := range paymentRows {
		paymentAmounts = append(paymentAmounts, finance.DatedAmount{At: entry.Date, Amount: entry.Amount})
	}
	expenseAmounts := make([]finance.DatedAmount, 0, len(expenseRows))
	for _, exp := range expenseRows {
		expenseAmounts = append(expenseAmounts, finance.DatedAmount{At: exp.Date, Amount: exp.Amount})
	}
	basketCounts := make([]finance.DatedCount, 0, len(productionRows))
	litersByDay := make(map[string]valueobject.Liters, len(productionRows))
	for _, entry := range productionRows {
		basketCounts = append(basketCounts, finance.DatedCount{At: entry.Date, Count: entry.BasketsCount})
		key := calendar.KeyOf(entry.Date)
		litersByDay[key] = litersByDay[key].Add(entry.LitersProduced)
	}

	basketsByDay := finance.SumCountsByDay(basketCounts)

	// The resolver's cursor only moves forward, so each sweep over the
	// period needs its own resolver.
	inputCosts, missing := finance.InputCostsByDay(days, finance.NewConfigResolver(configs), basketsByDay)
	fixedCosts, _ := finance.FixedCostsByDay(days, finance.NewConfigResolver(configs))

	return &periodFigures{
		days:          days,
		nonCredit:     finance.SumByDay(saleAmounts),
		payments:      finance.SumByDay(paymentAmounts),
		expenses:      finance.SumByDay(expenseAmounts),
		inputCosts:    inputCosts,
		fixedCosts:    fixedCosts,
		basketsByDay:  basketsByDay,
		litersByDay:   litersByDay,
		missingConfig: missing,
	}, nil
}

// ProfitReport builds the per-day profit series for [start, end). Days
// without a pricing config contribute zero cost and are listed in
// DaysWithoutConfig instead of being silently absorbed.
//
// An empty period is rejected with INVALID_PERIOD at this level even though
// the underlying per-day helpers would happily return all-zero totals for it:
// a report request where start == end is always a caller mistake, and a 400
// is more useful to the admin UI than a report full of zeroes.
func (s *ReportService) ProfitReport(ctx context.Context, start, end calendar.Day) (*ProfitReportDTO, error) {
	if !start.Before(end) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Report period must not be empty")
	}

	figures, err := s.collectPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	missingSet := make(map[string]struct{}, len(figures.missingConfig))
	for _, key := range figures.missingConfig {
		missingSet[key] = struct{}{}
	}

	report := &ProfitReportDTO{
		Start:             start.Key(),
		End:               end.Key(),
		Days:              make([]DayProfitDTO, 0, len(figures.days)),
		TotalInflow:       valueobject.ZeroMoney(),
		TotalExpenses:     valueobject.ZeroMoney(),
		TotalInputCost:    valueobject.ZeroMoney(),
		TotalFixedCost:    valueobject.ZeroMoney(),
		TotalProfit:       valueobject.ZeroMoney(),
		DaysWithoutConfig: figures.missingConfig,
	}

	for _, day := range figures.days {
		key := day.Key()
		nonCredit := figures.nonCredit.Get(key)
		payments := figures.payments.Get(key)
		inflow := nonCredit.Add(payments)
		expenses := figures.expenses.Get(key)
		inputCost := figures.inputCosts.Get(key)
		fixedCost := figures.fixedCosts.Get(key)
		profit := finance.Profit(inflow, expenses, inputCost, fixedCost)
		_, noConfig := missingSet[key]

		report.Days = append(report.Days, DayProfitDTO{
			Day:              key,
			NonCreditSales:   nonCredit,
			CreditPayments:   payments,
			Inflow:           inflow,
			ApprovedExpenses: expenses,
			InputCost:        inputCost,
			FixedCost:        fixedCost,
			Profit:           profit,
			BasketsProduced:  figures.basketsByDay[key],
			LitersProduced:   figures.litersByDay[key],
			MissingConfig:    noConfig,
		})

		report.TotalInflow = report.TotalInflow.Add(inflow)
		report.TotalExpenses = report.TotalExpenses.Add(expenses)
		report.TotalInputCost = report.TotalInputCost.Add(inputCost)
		report.TotalFixedCost = report.TotalFixedCost.Add(fixedCost)
		report.TotalProfit = report.TotalProfit.Add(profit)
	}

	report.FormattedProfit = formatBRL(report.TotalProfit)

	if len(figures.missingConfig) > 0 {
		s.logger.Warn("Report period has days without a pricing config",
			zap.Strings("days", figures.missingConfig),
		)
	}
	return report, nil
}

// WeeklyReport builds the profit report for the week containing day,
// Monday through Sunday.
func (s *ReportService) WeeklyReport(ctx context.Context, day calendar.Day) (*ProfitReportDTO, error) {
	start := day.StartOfWeek()
	return s.ProfitReport(ctx, start, start.AddDays(7))
}

// MonthlyReport builds the profit report for the calendar month containing day.
func (s *ReportService) MonthlyReport(ctx context.Context, day calendar.Day) (*ProfitReportDTO, error) {
	start := day.StartOfMonth()
	return s.ProfitReport(ctx, start, start.AddMonths(1))
}

// DailyDashboard builds the single-day snapshot: the day's profit figures
// plus the total still owed across all credit customers.
func (s *ReportService) DailyDashboard(ctx context.Context, day calendar.Day) (*DashboardDTO, error) {
	report, err := s.ProfitReport(ctx, day, day.AddDays(1))
	if err != nil {
		return nil, err
	}

	debtors, err := s.customerRepo.ListWithBalance(ctx)
	if err != nil {
		s.logger.Error("Failed to load debtors for dashboard", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build dashboard")
	}
	outstanding := valueobject.ZeroMoney()
	for i := range debtors {
		outstanding = outstanding.Add(debtors[i].BalanceOwed)
	}

	d := report.Days[0]
	return &DashboardDTO{
		Day:              d.Day,
		NonCreditSales:   d.NonCreditSales,
		CreditPayments:   d.CreditPayments,
		Inflow:           d.Inflow,
		ApprovedExpenses: d.ApprovedExpenses,
		InputCost:        d.InputCost,
		FixedCost:        d.FixedCost,
		Profit:           d.Profit,
		FormattedProfit:  formatBRL(d.Profit),
		BasketsProduced:  d.BasketsProduced,
		LitersProduced:   d.LitersProduced,
		OutstandingDebt:  outstanding,
		MissingConfig:    d.MissingConfig,
	}, nil
}

// ClosingsAudit lists the closings submitted in [start, end) with the
// submitting user's name resolved for display.
func (s *ReportService) ClosingsAudit(ctx context.Context, start, end calendar.Day) ([]ClosingAuditDTO, error) {
	if !start.Before(end) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Audit period must not be empty")
	}

	closings, err := s.closingRepo.FindInRange(ctx, start.Time(), end.Time())
	if err != nil {
		s.logger.Error("Failed to load closings for audit", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build audit")
	}

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load users for audit", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build audit")
	}
	names := make(map[string]string, len(users))
	for i := range users {
		names[users[i].GetID().String()] = users[i].Name
	}

	out := make([]ClosingAuditDTO, 0, len(closings))
	for i := range closings {
		c := &closings[i]
		out = append(out, ClosingAuditDTO{
			ID:             c.GetID(),
			Date:           c.Date,
			UserID:         c.UserID,
			UserName:       names[c.UserID.String()],
			ShiftID:        c.ShiftID,
			ExpectedAmount: c.ExpectedAmount,
			ActualAmount:   c.ActualAmount,
			Difference:     c.Difference,
			LeftoverLiters: c.LeftoverLiters,
			Justification:  c.Justification,
			Balanced:       c.Difference.IsZero(),
		})
	}
	return out, nil
}
