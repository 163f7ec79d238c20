package credit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/domain/credit"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/infrastructure/persistence"
)

// TxRunner runs a function with repositories bound to a single transaction
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(repos *persistence.Repositories) error) error
}

// CreditService manages fiado accounts: customers, their ledgers and the
// payment flow with the settlement cascade.
type CreditService struct {
	uow          TxRunner
	customerRepo credit.CustomerRepository
	ledgerRepo   credit.LedgerRepository
	logger       *zap.Logger
}

// NewCreditService creates a new credit service
func NewCreditService(
	uow TxRunner,
	customerRepo credit.CustomerRepository,
	ledgerRepo credit.LedgerRepository,
	logger *zap.Logger,
) *CreditService {
	return &CreditService{
		uow:          uow,
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
		logger:       logger,
	}
}

// CreateCustomer opens a credit account with a zero balance
func (s *CreditService) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*CustomerDTO, error) {
	customer, err := credit.NewCustomer(input.Name, input.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		s.logger.Error("Failed to save credit customer", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create customer")
	}

	s.logger.Info("Credit customer created",
		zap.String("customer_id", customer.GetID().String()),
		zap.String("name", customer.Name),
	)
	return toCustomerDTO(customer), nil
}

// RegisterPayment applies a payment to an account. Overpayment is rejected
// with no mutation. When the balance reaches exactly zero the account is
// settled and every unpaid purchase entry is batch-marked paid, atomically
// with the balance update.
func (s *CreditService) RegisterPayment(ctx context.Context, input RegisterPaymentInput) (*PaymentResult, error) {
	var result *PaymentResult

	err := s.uow.WithinTx(ctx, func(repos *persistence.Repositories) error {
		customer, err := repos.Customers.FindByID(ctx, input.CustomerID)
		if err != nil {
			return err
		}

		entry, settled, err := customer.ApplyPayment(input.Amount, input.UserID, input.Date)
		if err != nil {
			return err
		}

		if err := repos.Ledger.Save(ctx, entry); err != nil {
			return err
		}
		if settled {
			marked, err := repos.Ledger.MarkPurchasesPaid(ctx, customer.GetID(), entry.Date)
			if err != nil {
				return err
			}
			s.logger.Info("Account settled",
				zap.String("customer_id", customer.GetID().String()),
				zap.Int64("purchases_marked_paid", marked),
			)
		}
		if err := repos.Customers.Save(ctx, customer); err != nil {
			return err
		}

		result = &PaymentResult{
			Entry:      *toLedgerEntryDTO(entry),
			NewBalance: customer.BalanceOwed,
			Settled:    settled,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.String("customer_id", input.CustomerID.String()),
		zap.String("amount", input.Amount.String()),
		zap.Bool("settled", result.Settled),
	)
	return result, nil
}

// ListCustomers returns every credit customer ordered by name
func (s *CreditService) ListCustomers(ctx context.Context) ([]CustomerDTO, error) {
	customers, err := s.customerRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list credit customers", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list customers")
	}
	return toCustomerDTOs(customers), nil
}

// ListDebtors returns customers that still owe money, largest balance first
func (s *CreditService) ListDebtors(ctx context.Context) ([]CustomerDTO, error) {
	customers, err := s.customerRepo.ListWithBalance(ctx)
	if err != nil {
		s.logger.Error("Failed to list debtors", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list customers")
	}
	return toCustomerDTOs(customers), nil
}

// GetStatement returns a customer with their full ledger, newest first
func (s *CreditService) GetStatement(ctx context.Context, customerID uuid.UUID) (*CustomerStatementDTO, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error("Failed to load ledger", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load ledger")
	}

	ledger := make([]LedgerEntryDTO, 0, len(entries))
	for i := range entries {
		ledger = append(ledger, *toLedgerEntryDTO(&entries[i]))
	}

	return &CustomerStatementDTO{
		Customer: *toCustomerDTO(customer),
		Ledger:   ledger,
	}, nil
}

func toCustomerDTOs(customers []credit.Customer) []CustomerDTO {
	out := make([]CustomerDTO, 0, len(customers))
	for i := range customers {
		out = append(out, *toCustomerDTO(&customers[i]))
	}
	return out
}

func toCustomerDTO(c *credit.Customer) *CustomerDTO {
	return &CustomerDTO{
		ID:          c.GetID(),
		Name:        c.Name,
		Phone:       c.Phone,
		BalanceOwed: c.BalanceOwed,
		SettledAt:   c.SettledAt,
	}
}

func toLedgerEntryDTO(e *credit.LedgerEntry) *LedgerEntryDTO {
	return &LedgerEntryDTO{
		ID:         e.GetID(),
		CustomerID: e.CustomerID,
		Kind:       e.Kind.String(),
		Amount:     e.Amount,
		Date:       e.Date,
		SaleID:     e.SaleID,
		MarkedPaid: e.MarkedPaid,
		PaidAt:     e.PaidAt,
		UserID:     e.UserID,
	}
}
