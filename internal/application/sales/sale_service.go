package sales

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/domain/sales"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shift"
	"github.com/acaipos/backend/internal/infrastructure/persistence"
)

// TxRunner runs a function with repositories bound to a single transaction
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(repos *persistence.Repositories) error) error
}

// SaleService records register entries. A fiado sale linked to a customer
// writes the sale, the ledger entry and the balance update in one
// transaction; everything else is a single row.
type SaleService struct {
	uow       TxRunner
	saleRepo  sales.SaleRepository
	shiftRepo shift.ShiftRepository
	logger    *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(
	uow TxRunner,
	saleRepo sales.SaleRepository,
	shiftRepo shift.ShiftRepository,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		uow:       uow,
		saleRepo:  saleRepo,
		shiftRepo: shiftRepo,
		logger:    logger,
	}
}

// RegisterSale records a sale on the caller's open shift
func (s *SaleService) RegisterSale(ctx context.Context, input RegisterSaleInput) (*SaleDTO, error) {
	paymentType := sales.PaymentType(input.PaymentType)
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type is not valid")
	}

	sh, err := s.shiftRepo.FindByID(ctx, input.ShiftID)
	if err != nil {
		return nil, err
	}
	if !sh.IsOpen() {
		return nil, shared.NewDomainError("SHIFT_CLOSED", "Cannot record a sale on a closed shift")
	}

	if paymentType.IsCredit() && input.CreditCustomerID != nil {
		return s.registerCreditSale(ctx, input)
	}

	sale, err := sales.NewSale(input.Date, input.Amount, input.Liters, paymentType, input.UserID, input.ShiftID)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		s.logger.Error("Failed to save sale", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record sale")
	}

	s.logger.Info("Sale recorded",
		zap.String("sale_id", sale.GetID().String()),
		zap.String("payment_type", paymentType.String()),
		zap.String("amount", input.Amount.String()),
	)
	return toSaleDTO(sale), nil
}

// registerCreditSale writes the sale, the PURCHASE ledger entry and the
// customer's balance atomically.
func (s *SaleService) registerCreditSale(ctx context.Context, input RegisterSaleInput) (*SaleDTO, error) {
	var sale *sales.Sale

	err := s.uow.WithinTx(ctx, func(repos *persistence.Repositories) error {
		customer, err := repos.Customers.FindByID(ctx, *input.CreditCustomerID)
		if err != nil {
			return err
		}

		sale, err = sales.NewCreditSale(input.Date, input.Amount, input.Liters, input.UserID, input.ShiftID, customer.GetID())
		if err != nil {
			return err
		}
		if err := repos.Sales.Save(ctx, sale); err != nil {
			return err
		}

		saleID := sale.GetID()
		entry, err := customer.RegisterPurchase(input.Amount, &saleID, input.UserID, sale.Date)
		if err != nil {
			return err
		}
		if err := repos.Ledger.Save(ctx, entry); err != nil {
			return err
		}
		return repos.Customers.Save(ctx, customer)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Credit sale recorded",
		zap.String("sale_id", sale.GetID().String()),
		zap.String("customer_id", input.CreditCustomerID.String()),
		zap.String("amount", input.Amount.String()),
	)
	return toSaleDTO(sale), nil
}

// ListByShift returns a shift's sales, newest first
func (s *SaleService) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]SaleDTO, error) {
	items, err := s.saleRepo.FindByShift(ctx, shiftID)
	if err != nil {
		s.logger.Error("Failed to list sales", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list sales")
	}

	out := make([]SaleDTO, 0, len(items))
	for i := range items {
		out = append(out, *toSaleDTO(&items[i]))
	}
	return out, nil
}

func toSaleDTO(sale *sales.Sale) *SaleDTO {
	return &SaleDTO{
		ID:               sale.GetID(),
		Date:             sale.Date,
		Amount:           sale.Amount,
		Liters:           sale.Liters,
		PaymentType:      sale.PaymentType.String(),
		UserID:           sale.UserID,
		ShiftID:          sale.ShiftID,
		CreditCustomerID: sale.CreditCustomerID,
	}
}
