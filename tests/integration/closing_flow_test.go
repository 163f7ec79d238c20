package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	financeapp "github.com/acaipos/backend/internal/application/finance"
	salesapp "github.com/acaipos/backend/internal/application/sales"
	shiftapp "github.com/acaipos/backend/internal/application/shift"
	"github.com/acaipos/backend/internal/domain/identity"
	domainshift "github.com/acaipos/backend/internal/domain/shift"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
	"github.com/acaipos/backend/internal/infrastructure/auth"
	"github.com/acaipos/backend/internal/infrastructure/persistence"
)

func money(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func liters(t *testing.T, s string) valueobject.Liters {
	t.Helper()
	l, err := valueobject.NewLitersFromString(s)
	require.NoError(t, err)
	return l
}

type closingFixture struct {
	repos      *persistence.Repositories
	uow        *persistence.UnitOfWork
	revoker    *auth.InMemorySessionRevoker
	production *shiftapp.ProductionService
	sales      *salesapp.SaleService
	closing    *shiftapp.ClosingService
	configs    *financeapp.ConfigService
}

func newClosingFixture(t *testing.T, tdb *TestDB) *closingFixture {
	t.Helper()

	log := zap.NewNop()
	repos := persistence.NewRepositories(tdb.DB)
	uow := persistence.NewUnitOfWork(tdb.DB)
	revoker := auth.NewInMemorySessionRevoker()

	return &closingFixture{
		repos:      repos,
		uow:        uow,
		revoker:    revoker,
		production: shiftapp.NewProductionService(repos.Shifts, repos.Production, log),
		sales:      salesapp.NewSaleService(uow, repos.Sales, repos.Shifts, log),
		closing:    shiftapp.NewClosingService(uow, repos.Closings, revoker, log),
		configs:    financeapp.NewConfigService(repos.Configs, log),
	}
}

// seedStand saves an admin, a staff member with an open shift, and a pricing
// config effective from yesterday at R$4.00 per liter.
func (f *closingFixture) seedStand(t *testing.T, ctx context.Context, staffName string) (*identity.User, *domainshift.Shift) {
	t.Helper()

	admin, err := identity.NewUser("Dona Rosa "+staffName, "9999", identity.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, f.repos.Users.Save(ctx, admin))

	staff, err := identity.NewUser(staffName, "1234", identity.RoleStaff)
	require.NoError(t, err)
	require.NoError(t, f.repos.Users.Save(ctx, staff))

	_, err = f.configs.UpsertConfig(ctx, financeapp.UpsertConfigInput{
		EffectiveFrom:      calendar.Today().AddDays(-1),
		SellPricePerLiter:  money(t, "4.00"),
		CostPerBasket:      money(t, "120.00"),
		MonthlyRent:        money(t, "900.00"),
		MonthlyElectricity: money(t, "300.00"),
		AdminID:            admin.GetID(),
	})
	require.NoError(t, err)

	sh, err := domainshift.NewShift(staff.GetID(), time.Now())
	require.NoError(t, err)
	require.NoError(t, f.repos.Shifts.Save(ctx, sh))

	return staff, sh
}

func TestClosingFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	ctx := context.Background()
	f := newClosingFixture(t, tdb)

	t.Run("balanced day closes the shift", func(t *testing.T) {
		staff, sh := f.seedStand(t, ctx, "Maria")

		_, err := f.production.RegisterProduction(ctx, shiftapp.RegisterProductionInput{
			Date:           time.Now(),
			BasketsCount:   10,
			LitersProduced: liters(t, "50.00"),
			UserID:         staff.GetID(),
			ShiftID:        sh.GetID(),
		})
		require.NoError(t, err)

		for _, sale := range []struct {
			amount      string
			paymentType string
		}{
			{"100.00", "CASH"},
			{"92.00", "PIX"},
		} {
			_, err := f.sales.RegisterSale(ctx, salesapp.RegisterSaleInput{
				Date:        time.Now(),
				Amount:      money(t, sale.amount),
				PaymentType: sale.paymentType,
				UserID:      staff.GetID(),
				ShiftID:     sh.GetID(),
			})
			require.NoError(t, err)
		}

		// 50L produced, 2L leftover, R$4.00/L: expected 192.00 = recorded 192.00
		result, err := f.closing.CloseShift(ctx, shiftapp.CloseShiftInput{
			ShiftID:        sh.GetID(),
			UserID:         staff.GetID(),
			LeftoverLiters: liters(t, "2.00"),
		})
		require.NoError(t, err)

		assert.True(t, result.Balanced)
		assert.Equal(t, "192.00", result.Breakdown.ExpectedAmount.String())
		assert.Equal(t, "192.00", result.Breakdown.ActualAmount.String())
		assert.Equal(t, "0.00", result.Breakdown.Difference.String())

		reloaded, err := f.repos.Shifts.FindByID(ctx, sh.GetID())
		require.NoError(t, err)
		assert.False(t, reloaded.IsOpen())

		closing, err := f.closing.GetClosingByShift(ctx, sh.GetID())
		require.NoError(t, err)
		require.NotNil(t, closing)
		assert.Equal(t, "192.00", closing.ExpectedAmount.String())
	})

	t.Run("unjustified mismatch keeps the shift open", func(t *testing.T) {
		staff, sh := f.seedStand(t, ctx, "Joana")

		_, err := f.production.RegisterProduction(ctx, shiftapp.RegisterProductionInput{
			Date:           time.Now(),
			BasketsCount:   10,
			LitersProduced: liters(t, "50.00"),
			UserID:         staff.GetID(),
			ShiftID:        sh.GetID(),
		})
		require.NoError(t, err)

		_, err = f.sales.RegisterSale(ctx, salesapp.RegisterSaleInput{
			Date:        time.Now(),
			Amount:      money(t, "100.00"),
			PaymentType: "CASH",
			UserID:      staff.GetID(),
			ShiftID:     sh.GetID(),
		})
		require.NoError(t, err)

		// Expected (50-10)*4.00 = 160.00, recorded 100.00
		result, err := f.closing.CloseShift(ctx, shiftapp.CloseShiftInput{
			ShiftID:        sh.GetID(),
			UserID:         staff.GetID(),
			LeftoverLiters: liters(t, "10.00"),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrUnjustifiedMismatch))
		require.NotNil(t, result)
		assert.Equal(t, "-60.00", result.Breakdown.Difference.String())

		// The whole closing rolled back
		reloaded, err := f.repos.Shifts.FindByID(ctx, sh.GetID())
		require.NoError(t, err)
		assert.True(t, reloaded.IsOpen())

		closing, err := f.closing.GetClosingByShift(ctx, sh.GetID())
		require.NoError(t, err)
		assert.Nil(t, closing)

		// Retrying with a justification closes the day
		result, err = f.closing.CloseShift(ctx, shiftapp.CloseShiftInput{
			ShiftID:        sh.GetID(),
			UserID:         staff.GetID(),
			LeftoverLiters: liters(t, "10.00"),
			Justification:  "Gelo derretido, duas promoções não registradas",
		})
		require.NoError(t, err)
		assert.False(t, result.Balanced)
		require.NotNil(t, result.Justification)
	})

	t.Run("closing revokes the session token", func(t *testing.T) {
		staff, sh := f.seedStand(t, ctx, "Clara")

		// Nothing produced, nothing sold: the empty day reconciles at zero.
		_, err := f.closing.CloseShift(ctx, shiftapp.CloseShiftInput{
			ShiftID:        sh.GetID(),
			UserID:         staff.GetID(),
			LeftoverLiters: liters(t, "0.00"),
			TokenJTI:       "jti-clara",
			TokenTTL:       time.Hour,
		})
		require.NoError(t, err)

		revoked, err := f.revoker.IsRevoked(ctx, "jti-clara")
		require.NoError(t, err)
		assert.True(t, revoked)
	})
}
