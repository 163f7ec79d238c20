package shift

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
	"github.com/acaipos/backend/internal/domain/finance"
	"github.com/acaipos/backend/internal/domain/sales"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
	"github.com/acaipos/backend/internal/domain/shift"
	"github.com/acaipos/backend/internal/infrastructure/auth"
	"github.com/acaipos/backend/internal/infrastructure/persistence"
)

// fakeTx runs the closing transaction against a fixed repository bundle
type fakeTx struct {
	repos *persistence.Repositories
}

func (f *fakeTx) WithinTx(_ context.Context, fn func(repos *persistence.Repositories) error) error {
	return fn(f.repos)
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

// MockProductionRepository is a mock implementation of shift.ProductionRepository
type MockProductionRepository struct {
	mock.Mock
}

func (m *MockProductionRepository) FindByShift(ctx context.Context, shiftID uuid.UUID) ([]shift.ProductionEntry, error) {
	args := m.Called(ctx, shiftID)
	return args.Get(0).([]shift.ProductionEntry), args.Error(1)
}

func (m *MockProductionRepository) FindInRange(ctx context.Context, start, end time.Time) ([]shift.ProductionEntry, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]shift.ProductionEntry), args.Error(1)
}

func (m *MockProductionRepository) SumLitersByShift(ctx context.Context, shiftID uuid.UUID) (valueobject.Liters, error) {
	args := m.Called(ctx, shiftID)
	return args.Get(0).(valueobject.Liters), args.Error(1)
}

func (m *MockProductionRepository) Save(ctx context.Context, entry *shift.ProductionEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockClosingRepository is a mock implementation of shift.ClosingRepository
type MockClosingRepository struct {
	mock.Mock
}

func (m *MockClosingRepository) FindByID(ctx context.Context, id uuid.UUID) (*shift.DailyClosing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shift.DailyClosing), args.Error(1)
}

func (m *MockClosingRepository) FindByShift(ctx context.Context, shiftID uuid.UUID) (*shift.DailyClosing, error) {
	args := m.Called(ctx, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shift.DailyClosing), args.Error(1)
}

func (m *MockClosingRepository) FindInRange(ctx context.Context, start, end time.Time) ([]shift.DailyClosing, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]shift.DailyClosing), args.Error(1)
}

func (m *MockClosingRepository) Save(ctx context.Context, closing *shift.DailyClosing) error {
	args := m.Called(ctx, closing)
	return args.Error(0)
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

// MockConfigRepository is a mock implementation of finance.FinancialConfigRepository
type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FinancialConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FinancialConfig), args.Error(1)
}

func (m *MockConfigRepository) FindByEffectiveFrom(ctx context.Context, day calendar.Day) (*finance.FinancialConfig, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FinancialConfig), args.Error(1)
}

func (m *MockConfigRepository) FindEffectiveAt(ctx context.Context, day calendar.Day) (*finance.FinancialConfig, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FinancialConfig), args.Error(1)
}

func (m *MockConfigRepository) ListEffectiveThrough(ctx context.Context, lastDay calendar.Day) ([]finance.FinancialConfig, error) {
	args := m.Called(ctx, lastDay)
	return args.Get(0).([]finance.FinancialConfig), args.Error(1)
}

func (m *MockConfigRepository) ListAll(ctx context.Context) ([]finance.FinancialConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).([]finance.FinancialConfig), args.Error(1)
}

func (m *MockConfigRepository) Save(ctx context.Context, config *finance.FinancialConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func mustMoney(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func mustLiters(t *testing.T, s string) valueobject.Liters {
	t.Helper()
	l, err := valueobject.NewLitersFromString(s)
	require.NoError(t, err)
	return l
}

type closingFixture struct {
	svc      *ClosingService
	shifts   *MockShiftRepository
	prod     *MockProductionRepository
	closings *MockClosingRepository
	sales    *MockSaleRepository
	ledger   *MockLedgerRepository
	configs  *MockConfigRepository
	revoker  *auth.InMemorySessionRevoker
}

func newClosingFixture() *closingFixture {
	f := &closingFixture{
		shifts:   new(MockShiftRepository),
		prod:     new(MockProductionRepository),
		closings: new(MockClosingRepository),
		sales:    new(MockSaleRepository),
		ledger:   new(MockLedgerRepository),
		configs:  new(MockConfigRepository),
		revoker:  auth.NewInMemorySessionRevoker(),
	}
	uow := &fakeTx{repos: &persistence.Repositories{
		Configs:    f.configs,
		Shifts:     f.shifts,
		Production: f.prod,
		Closings:   f.closings,
		Sales:      f.sales,
		Ledger:     f.ledger,
	}}
	f.svc = NewClosingService(uow, f.closings, f.revoker, zap.NewNop())
	return f
}

func testConfig(t *testing.T, price string) *finance.FinancialConfig {
	t.Helper()
	cfg, err := finance.NewFinancialConfig(
		calendar.Today().AddDays(-30),
		mustMoney(t, price),
		mustMoney(t, "120.00"),
		mustMoney(t, "900.00"),
		mustMoney(t, "300.00"),
		uuid.New(),
	)
	require.NoError(t, err)
	return cfg
}

func TestClosingService_CloseShift(t *testing.T) {
	ctx := context.Background()

	t.Run("balanced drawer closes the shift and revokes the session", func(t *testing.T) {
		f := newClosingFixture()
		userID := uuid.New()
		sh, err := shift.NewShift(userID, time.Now())
		require.NoError(t, err)

		f.shifts.On("FindByID", ctx, sh.GetID()).Return(sh, nil)
		f.closings.On("FindByShift", ctx, sh.GetID()).Return(nil, nil)
		f.configs.On("FindEffectiveAt", ctx, mock.AnythingOfType("calendar.Day")).Return(testConfig(t, "4.00"), nil)
		f.prod.On("SumLitersByShift", ctx, sh.GetID()).Return(mustLiters(t, "100"), nil)
		f.sales.On("SumNonCreditByShift", ctx, sh.GetID()).Return(mustMoney(t, "340.00"), nil)
		f.ledger.On("SumPurchasesByShift", ctx, sh.GetID()).Return(mustMoney(t, "50.00"), nil)
		f.sales.On("SumManualCreditByShift", ctx, sh.GetID()).Return(mustMoney(t, "6.00"), nil)
		f.closings.On("Save", ctx, mock.AnythingOfType("*shift.DailyClosing")).Return(nil)
		f.shifts.On("Save", ctx, sh).Return(nil)

		result, err := f.svc.CloseShift(ctx, CloseShiftInput{
			ShiftID:        sh.GetID(),
			UserID:         userID,
			LeftoverLiters: mustLiters(t, "1"),
			TokenJTI:       "jti-closing",
			TokenTTL:       time.Hour,
		})

		require.NoError(t, err)
		assert.True(t, result.Balanced)
		assert.Equal(t, "396.00", result.Breakdown.ExpectedAmount.String())
		assert.Equal(t, "396.00", result.Breakdown.ActualAmount.String())
		assert.True(t, result.Breakdown.Difference.IsZero())
		assert.False(t, sh.IsOpen())

		revoked, err := f.revoker.IsRevoked(ctx, "jti-closing")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("unjustified mismatch aborts with the breakdown", func(t *testing.T) {
		f := newClosingFixture()
		userID := uuid.New()
		sh, err := shift.NewShift(userID, time.Now())
		require.NoError(t, err)

		f.shifts.On("FindByID", ctx, sh.GetID()).Return(sh, nil)
		f.closings.On("FindByShift", ctx, sh.GetID()).Return(nil, nil)
		f.configs.On("FindEffectiveAt", ctx, mock.AnythingOfType("calendar.Day")).Return(testConfig(t, "4.00"), nil)
		f.prod.On("SumLitersByShift", ctx, sh.GetID()).Return(mustLiters(t, "100"), nil)
		f.sales.On("SumNonCreditByShift", ctx, sh.GetID()).Return(mustMoney(t, "340.00"), nil)
		f.ledger.On("SumPurchasesByShift", ctx, sh.GetID()).Return(mustMoney(t, "10.00"), nil)
		f.sales.On("SumManualCreditByShift", ctx, sh.GetID()).Return(mustMoney(t, "0.00"), nil)

		result, err := f.svc.CloseShift(ctx, CloseShiftInput{
			ShiftID:        sh.GetID(),
			UserID:         userID,
			LeftoverLiters: mustLiters(t, "1"),
		})

		require.ErrorIs(t, err, shared.ErrUnjustifiedMismatch)
		require.NotNil(t, result)
		assert.False(t, result.Balanced)
		assert.Equal(t, "-46.00", result.Breakdown.Difference.String())
		assert.True(t, sh.IsOpen())
		f.closings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.shifts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("justified mismatch is persisted", func(t *testing.T) {
		f := newClosingFixture()
		userID := uuid.New()
		sh, err := shift.NewShift(userID, time.Now())
		require.NoError(t, err)

		f.shifts.On("FindByID", ctx, sh.GetID()).Return(sh, nil)
		f.closings.On("FindByShift", ctx, sh.GetID()).Return(nil, nil)
		f.configs.On("FindEffectiveAt", ctx, mock.AnythingOfType("calendar.Day")).Return(testConfig(t, "4.00"), nil)
		f.prod.On("SumLitersByShift", ctx, sh.GetID()).Return(mustLiters(t, "100"), nil)
		f.sales.On("SumNonCreditByShift", ctx, sh.GetID()).Return(mustMoney(t, "340.00"), nil)
		f.ledger.On("SumPurchasesByShift", ctx, sh.GetID()).Return(mustMoney(t, "10.00"), nil)
		f.sales.On("SumManualCreditByShift", ctx, sh.GetID()).Return(mustMoney(t, "0.00"), nil)
		f.closings.On("Save", ctx, mock.AnythingOfType("*shift.DailyClosing")).Return(nil)
		f.shifts.On("Save", ctx, sh).Return(nil)

		result, err := f.svc.CloseShift(ctx, CloseShiftInput{
			ShiftID:        sh.GetID(),
			UserID:         userID,
			LeftoverLiters: mustLiters(t, "1"),
			Justification:  "duas vendas anotadas no caderno",
		})

		require.NoError(t, err)
		assert.False(t, result.Balanced)
		require.NotNil(t, result.Justification)
		assert.Equal(t, "duas vendas anotadas no caderno", *result.Justification)
		assert.False(t, sh.IsOpen())
	})

	t.Run("no config for the closing date leaves the shift open", func(t *testing.T) {
		f := newClosingFixture()
		userID := uuid.New()
		sh, err := shift.NewShift(userID, time.Now())
		require.NoError(t, err)

		f.shifts.On("FindByID", ctx, sh.GetID()).Return(sh, nil)
		f.closings.On("FindByShift", ctx, sh.GetID()).Return(nil, nil)
		f.configs.On("FindEffectiveAt", ctx, mock.AnythingOfType("calendar.Day")).Return(nil, shared.ErrNotFound)

		_, err = f.svc.CloseShift(ctx, CloseShiftInput{
			ShiftID:        sh.GetID(),
			UserID:         userID,
			LeftoverLiters: mustLiters(t, "0"),
		})

		require.ErrorIs(t, err, shared.ErrNoConfigForDate)
		assert.True(t, sh.IsOpen())
		f.closings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("closing someone else's shift is forbidden", func(t *testing.T) {
		f := newClosingFixture()
		sh, err := shift.NewShift(uuid.New(), time.Now())
		require.NoError(t, err)

		f.shifts.On("FindByID", ctx, sh.GetID()).Return(sh, nil)

		_, err = f.svc.CloseShift(ctx, CloseShiftInput{
			ShiftID:        sh.GetID(),
			UserID:         uuid.New(),
			LeftoverLiters: mustLiters(t, "0"),
		})

		require.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("already closed shift is rejected", func(t *testing.T) {
		f := newClosingFixture()
		userID := uuid.New()
		sh, err := shift.NewShift(userID, time.Now())
		require.NoError(t, err)
		require.NoError(t, sh.Close(time.Now()))

		f.shifts.On("FindByID", ctx, sh.GetID()).Return(sh, nil)

		_, err = f.svc.CloseShift(ctx, CloseShiftInput{
			ShiftID:        sh.GetID(),
			UserID:         userID,
			LeftoverLiters: mustLiters(t, "0"),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SHIFT_ALREADY_CLOSED", domainErr.Code)
	})
}
