package expense

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/domain/expense"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
	"github.com/acaipos/backend/internal/domain/shift"
)

// MockExpenseRepository is a mock implementation of expense.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByShift(ctx context.Context, shiftID uuid.UUID) ([]expense.Expense, error) {
	args := m.Called(ctx, shiftID)
	return args.Get(0).([]expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindPending(ctx context.Context) ([]expense.Expense, error) {
	args := m.Called(ctx)
	return args.Get(0).([]expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindApprovedInRange(ctx context.Context, start, end time.Time) ([]expense.Expense, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, e *expense.Expense) error {
	args := m.Called(ctx, e)
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

func mustMoney(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func newTestService() (*ExpenseService, *MockExpenseRepository, *MockShiftRepository) {
	expenses := new(MockExpenseRepository)
	shifts := new(MockShiftRepository)
	return NewExpenseService(expenses, shifts, zap.NewNop()), expenses, shifts
}

func TestExpenseService_CreateExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("staff expense starts pending", func(t *testing.T) {
		svc, expenses, shifts := newTestService()

		userID := uuid.New()
		sh, err := shift.NewShift(userID, time.Now())
		require.NoError(t, err)
		shiftID := sh.GetID()

		shifts.On("FindByID", ctx, shiftID).Return(sh, nil)
		expenses.On("Save", ctx, mock.AnythingOfType("*expense.Expense")).Return(nil)

		dto, err := svc.CreateExpense(ctx, CreateExpenseInput{
			Date:        time.Now(),
			Description: "gelo",
			Category:    "INSUMOS",
			Amount:      mustMoney(t, "15.00"),
			UserID:      userID,
			ShiftID:     &shiftID,
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", dto.Status)
		assert.Nil(t, dto.ApprovedBy)
	})

	t.Run("expense on a closed shift is rejected", func(t *testing.T) {
		svc, expenses, shifts := newTestService()

		userID := uuid.New()
		sh, err := shift.NewShift(userID, time.Now())
		require.NoError(t, err)
		require.NoError(t, sh.Close(time.Now()))
		shiftID := sh.GetID()

		shifts.On("FindByID", ctx, shiftID).Return(sh, nil)

		_, err = svc.CreateExpense(ctx, CreateExpenseInput{
			Date:        time.Now(),
			Description: "gelo",
			Category:    "INSUMOS",
			Amount:      mustMoney(t, "15.00"),
			UserID:      userID,
			ShiftID:     &shiftID,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SHIFT_CLOSED", domainErr.Code)
		expenses.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestExpenseService_Review(t *testing.T) {
	ctx := context.Background()

	t.Run("approve marks the expense approved", func(t *testing.T) {
		svc, expenses, _ := newTestService()

		e, err := expense.NewExpense(time.Now(), "gelo", "INSUMOS", mustMoney(t, "15.00"), uuid.New(), nil)
		require.NoError(t, err)
		adminID := uuid.New()

		expenses.On("FindByID", ctx, e.GetID()).Return(e, nil)
		expenses.On("Save", ctx, e).Return(nil)

		dto, err := svc.ApproveExpense(ctx, ReviewExpenseInput{ExpenseID: e.GetID(), AdminID: adminID})

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", dto.Status)
		require.NotNil(t, dto.ApprovedBy)
		assert.Equal(t, adminID, *dto.ApprovedBy)
	})

	t.Run("reject excludes the expense", func(t *testing.T) {
		svc, expenses, _ := newTestService()

		e, err := expense.NewExpense(time.Now(), "gelo", "INSUMOS", mustMoney(t, "15.00"), uuid.New(), nil)
		require.NoError(t, err)

		expenses.On("FindByID", ctx, e.GetID()).Return(e, nil)
		expenses.On("Save", ctx, e).Return(nil)

		dto, err := svc.RejectExpense(ctx, ReviewExpenseInput{ExpenseID: e.GetID(), AdminID: uuid.New()})

		require.NoError(t, err)
		assert.Equal(t, "REJECTED", dto.Status)
	})

	t.Run("reviewing twice fails", func(t *testing.T) {
		svc, expenses, _ := newTestService()

		e, err := expense.NewExpense(time.Now(), "gelo", "INSUMOS", mustMoney(t, "15.00"), uuid.New(), nil)
		require.NoError(t, err)
		require.NoError(t, e.Approve(uuid.New()))

		expenses.On("FindByID", ctx, e.GetID()).Return(e, nil)

		_, err = svc.RejectExpense(ctx, ReviewExpenseInput{ExpenseID: e.GetID(), AdminID: uuid.New()})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_REVIEWED", domainErr.Code)
	})
}

func TestExpenseService_RecordDailyWage(t *testing.T) {
	ctx := context.Background()

	t.Run("daily wage is created approved with no shift", func(t *testing.T) {
		svc, expenses, _ := newTestService()

		expenses.On("Save", ctx, mock.AnythingOfType("*expense.Expense")).Return(nil)

		dto, err := svc.RecordDailyWage(ctx, RecordDailyWageInput{
			Date:      time.Now(),
			StaffName: "Maria",
			Amount:    mustMoney(t, "80.00"),
			AdminID:   uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", dto.Status)
		assert.Equal(t, expense.CategoryDailyWage, dto.Category)
		assert.Equal(t, "Diária - Maria", dto.Description)
		assert.Nil(t, dto.ShiftID)
		assert.NotNil(t, dto.ApprovedBy)
	})

	t.Run("blank staff name is rejected", func(t *testing.T) {
		svc, expenses, _ := newTestService()

		_, err := svc.RecordDailyWage(ctx, RecordDailyWageInput{
			Date:    time.Now(),
			Amount:  mustMoney(t, "80.00"),
			AdminID: uuid.New(),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STAFF_NAME", domainErr.Code)
		expenses.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
