package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/domain/credit"
	"github.com/acaipos/backend/internal/domain/sales"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
	"github.com/acaipos/backend/internal/domain/shift"
	"github.com/acaipos/backend/internal/infrastructure/persistence"
)

type fakeTx struct {
	repos *persistence.Repositories
}

func (f *fakeTx) WithinTx(_ context.Context, fn func(repos *persistence.Repositories) error) error {
	return fn(f.repos)
}

// MockSaleRepository is a mock implementation of sales.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByShift(ctx context.Context, shiftID uuid.UUID) ([]sales.Sale, error) {
	args := m.Called(ctx, shiftID)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindNonCreditInRange(ctx context.Context, start, end time.Time) ([]sales.Sale, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) SumNonCreditByShift(ctx context.Context, shiftID uuid.UUID) (valueobject.Money, error) {
	args := m.Called(ctx, shiftID)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockSaleRepository) SumManualCreditByShift(ctx context.Context, shiftID uuid.UUID) (valueobject.Money, error) {
	args := m.Called(ctx, shiftID)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

// MockShiftRepository is a mock implementation of shift.ShiftRepository
type MockShiftRepository struct {
	mock.Mock
}

func (m *MockShiftRepository) FindByID(ctx context.Context, id uuid.UUID) (*shift.Shift, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shift.Shift), args.Error(1)
}

func (m *MockShiftRepository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*shift.Shift, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shift.Shift), args.Error(1)
}

func (m *MockShiftRepository) Save(ctx context.Context, s *shift.Shift) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of credit.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*credit.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credit.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListAll(ctx context.Context) ([]credit.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]credit.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListWithBalance(ctx context.Context) ([]credit.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]credit.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *credit.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// MockLedgerRepository is a mock implementation of credit.LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]credit.LedgerEntry, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]credit.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindPaymentsInRange(ctx context.Context, start, end time.Time) ([]credit.LedgerEntry, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]credit.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SumPurchasesByShift(ctx context.Context, shiftID uuid.UUID) (valueobject.Money, error) {
	args := m.Called(ctx, shiftID)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockLedgerRepository) MarkPurchasesPaid(ctx context.Context, customerID uuid.UUID, paidAt time.Time) (int64, error) {
	args := m.Called(ctx, customerID, paidAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) Save(ctx context.Context, entry *credit.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func mustMoney(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

type saleFixture struct {
	svc       *SaleService
	saleRepo  *MockSaleRepository
	shiftRepo *MockShiftRepository
	customers *MockCustomerRepository
	ledger    *MockLedgerRepository
}

func newSaleFixture() *saleFixture {
	f := &saleFixture{
		saleRepo:  new(MockSaleRepository),
		shiftRepo: new(MockShiftRepository),
		customers: new(MockCustomerRepository),
		ledger:    new(MockLedgerRepository),
	}
	uow := &fakeTx{repos: &persistence.Repositories{
		Sales:     f.saleRepo,
		Customers: f.customers,
		Ledger:    f.ledger,
	}}
	f.svc = NewSaleService(uow, f.saleRepo, f.shiftRepo, zap.NewNop())
	return f
}

func openShift(t *testing.T, userID uuid.UUID) *shift.Shift {
	t.Helper()
	sh, err := shift.NewShift(userID, time.Now())
	require.NoError(t, err)
	return sh
}

func TestSaleService_RegisterSale(t *testing.T) {
	ctx := context.Background()

	t.Run("records a cash sale", func(t *testing.T) {
		f := newSaleFixture()
		userID := uuid.New()
		sh := openShift(t, userID)

		f.shiftRepo.On("FindByID", ctx, sh.GetID()).Return(sh, nil)
		f.saleRepo.On("Save", ctx, mock.AnythingOfType("*sales.Sale")).Return(nil)

		dto, err := f.svc.RegisterSale(ctx, RegisterSaleInput{
			Date:        time.Now(),
			Amount:      mustMoney(t, "18.00"),
			PaymentType: "CASH",
			UserID:      userID,
			ShiftID:     sh.GetID(),
		})

		require.NoError(t, err)
		assert.Equal(t, "CASH", dto.PaymentType)
		assert.Nil(t, dto.CreditCustomerID)
		f.customers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown payment type", func(t *testing.T) {
		f := newSaleFixture()

		_, err := f.svc.RegisterSale(ctx, RegisterSaleInput{
			Amount:      mustMoney(t, "18.00"),
			PaymentType: "CHEQUE",
			UserID:      uuid.New(),
			ShiftID:     uuid.New(),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PAYMENT_TYPE", domainErr.Code)
	})

	t.Run("rejects a sale on a closed shift", func(t *testing.T) {
		f := newSaleFixture()
		userID := uuid.New()
		sh := openShift(t, userID)
		require.NoError(t, sh.Close(time.Now()))

		f.shiftRepo.On("FindByID", ctx, sh.GetID()).Return(sh, nil)

		_, err := f.svc.RegisterSale(ctx, RegisterSaleInput{
			Amount:      mustMoney(t, "18.00"),
			PaymentType: "PIX",
			UserID:      userID,
			ShiftID:     sh.GetID(),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SHIFT_CLOSED", domainErr.Code)
	})

	t.Run("credit sale updates the customer's ledger and balance", func(t *testing.T) {
		f := newSaleFixture()
		userID := uuid.New()
		sh := openShift(t, userID)

		customer, err := credit.NewCustomer("Dona Lúcia", "")
		require.NoError(t, err)
		customerID := customer.GetID()

		f.shiftRepo.On("FindByID", ctx, sh.GetID()).Return(sh, nil)
		f.customers.On("FindByID", ctx, customerID).Return(customer, nil)
		f.saleRepo.On("Save", ctx, mock.AnythingOfType("*sales.Sale")).Return(nil)
		f.ledger.On("Save", ctx, mock.AnythingOfType("*credit.LedgerEntry")).Return(nil)
		f.customers.On("Save", ctx, customer).Return(nil)

		dto, err := f.svc.RegisterSale(ctx, RegisterSaleInput{
			Date:             time.Now(),
			Amount:           mustMoney(t, "25.00"),
			PaymentType:      "CREDIT",
			UserID:           userID,
			ShiftID:          sh.GetID(),
			CreditCustomerID: &customerID,
		})

		require.NoError(t, err)
		require.NotNil(t, dto.CreditCustomerID)
		assert.Equal(t, customerID, *dto.CreditCustomerID)
		assert.Equal(t, "25.00", customer.BalanceOwed.String())
		f.ledger.AssertExpectations(t)
		f.customers.AssertExpectations(t)
	})

	t.Run("manual credit sale without customer is a plain row", func(t *testing.T) {
		f := newSaleFixture()
		userID := uuid.New()
		sh := openShift(t, userID)

		f.shiftRepo.On("FindByID", ctx, sh.GetID()).Return(sh, nil)
		f.saleRepo.On("Save", ctx, mock.AnythingOfType("*sales.Sale")).Return(nil)

		dto, err := f.svc.RegisterSale(ctx, RegisterSaleInput{
			Date:        time.Now(),
			Amount:      mustMoney(t, "12.00"),
			PaymentType: "CREDIT",
			UserID:      userID,
			ShiftID:     sh.GetID(),
		})

		require.NoError(t, err)
		assert.Equal(t, "CREDIT", dto.PaymentType)
		assert.Nil(t, dto.CreditCustomerID)
		f.customers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
