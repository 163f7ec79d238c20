package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

func TestNewFinancialConfig(t *testing.T) {
	day := mustDay(t, "2024-01-01")
	creator := uuid.New()

	cfg, err := NewFinancialConfig(
		day,
		mustMoney(t, "18.00"),
		mustMoney(t, "80.00"),
		mustMoney(t, "3000.00"),
		mustMoney(t, "600.00"),
		creator,
	)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", cfg.EffectiveFrom.Key())
	assert.Equal(t, creator, cfg.CreatedBy)
	assert.Equal(t, 1, cfg.GetVersion())
	assert.NotEqual(t, uuid.Nil, cfg.GetID())
}

func TestNewFinancialConfig_Validation(t *testing.T) {
	day := mustDay(t, "2024-01-01")

	tests := []struct {
		name     string
		price    string
		cost     string
		rent     string
		electric string
		code     string
	}{
		{"zero price", "0", "80.00", "0", "0", "INVALID_PRICE"},
		{"negative price", "-1", "80.00", "0", "0", "INVALID_PRICE"},
		{"negative basket cost", "18.00", "-5", "0", "0", "INVALID_COST"},
		{"negative rent", "18.00", "80.00", "-100", "0", "INVALID_FIXED_COST"},
		{"negative electricity", "18.00", "80.00", "0", "-1", "INVALID_FIXED_COST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFinancialConfig(
				day,
				mustMoney(t, tt.price),
				mustMoney(t, tt.cost),
				mustMoney(t, tt.rent),
				mustMoney(t, tt.electric),
				uuid.New(),
			)
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
		})
	}

	_, err := NewFinancialConfig(
		calendar.Day{},
		mustMoney(t, "18.00"),
		mustMoney(t, "80.00"),
		valueobject.ZeroMoney(),
		valueobject.ZeroMoney(),
		uuid.New(),
	)
	assert.Error(t, err)
}

func TestFinancialConfig_UpdateRates(t *testing.T) {
	cfg := testConfig(t, "2024-01-01", "18.00", "80.00", "3000.00", "600.00")

	err := cfg.UpdateRates(
		mustMoney(t, "20.00"),
		mustMoney(t, "90.00"),
		mustMoney(t, "3300.00"),
		mustMoney(t, "700.00"),
	)
	require.NoError(t, err)
	assert.Equal(t, "20.00", cfg.SellPricePerLiter.String())
	assert.Equal(t, "2024-01-01", cfg.EffectiveFrom.Key())
	assert.Equal(t, 2, cfg.GetVersion())

	err = cfg.UpdateRates(
		valueobject.ZeroMoney(),
		mustMoney(t, "90.00"),
		mustMoney(t, "3300.00"),
		mustMoney(t, "700.00"),
	)
	assert.Error(t, err)
}
