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

	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shift"
)

func TestProductionService_RegisterProduction(t *testing.T) {
	ctx := context.Background()

	t.Run("records production on an open shift", func(t *testing.T) {
		shifts := new(MockShiftRepository)
		prod := new(MockProductionRepository)
		svc := NewProductionService(shifts, prod, zap.NewNop())

		userID := uuid.New()
		sh, err := shift.NewShift(userID, time.Now())
		require.NoError(t, err)

		shifts.On("FindByID", ctx, sh.GetID()).Return(sh, nil)
		prod.On("Save", ctx, mock.AnythingOfType("*shift.ProductionEntry")).Return(nil)

		dto, err := svc.RegisterProduction(ctx, RegisterProductionInput{
			Date:           time.Now(),
			BasketsCount:   3,
			LitersProduced: mustLiters(t, "21.5"),
			UserID:         userID,
			ShiftID:        sh.GetID(),
		})

		require.NoError(t, err)
		assert.Equal(t, 3, dto.BasketsCount)
		assert.Equal(t, "21.50", dto.LitersProduced.String())
		prod.AssertExpectations(t)
	})

	t.Run("rejects production on a closed shift", func(t *testing.T) {
		shifts := new(MockShiftRepository)
		prod := new(MockProductionRepository)
		svc := NewProductionService(shifts, prod, zap.NewNop())

		userID := uuid.New()
		sh, err := shift.NewShift(userID, time.Now())
		require.NoError(t, err)
		require.NoError(t, sh.Close(time.Now()))

		shifts.On("FindByID", ctx, sh.GetID()).Return(sh, nil)

		_, err = svc.RegisterProduction(ctx, RegisterProductionInput{
			Date:           time.Now(),
			BasketsCount:   2,
			LitersProduced: mustLiters(t, "14"),
			UserID:         userID,
			ShiftID:        sh.GetID(),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SHIFT_CLOSED", domainErr.Code)
		prod.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-positive baskets", func(t *testing.T) {
		shifts := new(MockShiftRepository)
		prod := new(MockProductionRepository)
		svc := NewProductionService(shifts, prod, zap.NewNop())

		userID := uuid.New()
		sh, err := shift.NewShift(userID, time.Now())
		require.NoError(t, err)

		shifts.On("FindByID", ctx, sh.GetID()).Return(sh, nil)

		_, err = svc.RegisterProduction(ctx, RegisterProductionInput{
			Date:           time.Now(),
			BasketsCount:   0,
			LitersProduced: mustLiters(t, "7"),
			UserID:         userID,
			ShiftID:        sh.GetID(),
		})

		assert.Error(t, err)
		prod.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
