package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appfinance "github.com/acaipos/backend/internal/application/finance"
	"github.com/acaipos/backend/internal/domain/finance"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
	"github.com/acaipos/backend/internal/infrastructure/auth"
	"github.com/acaipos/backend/internal/interfaces/http/middleware"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.FinancialConfig), args.Error(1)
}

func (m *MockConfigRepository) ListAll(ctx context.Context) ([]finance.FinancialConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

// fakeSession injects claims the way the session middleware would
func fakeSession(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.SessionClaimsKey, &auth.SessionClaims{
			UserID: uuid.NewString(),
			Name:   "Dona Rosa",
			Role:   role,
		})
		c.Next()
	}
}

func newFinanceEngine(t *testing.T, repo *MockConfigRepository, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(fakeSession(role))

	service := appfinance.NewConfigService(repo, zap.NewNop())
	handler := NewFinanceHandler(service, middleware.RequireAdmin(), zap.NewNop())
	handler.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestFinanceHandlerUpsertConfig(t *testing.T) {
	t.Run("creates config from comma-decimal input", func(t *testing.T) {
		repo := new(MockConfigRepository)
		repo.On("FindByEffectiveFrom", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(cfg *finance.FinancialConfig) bool {
			return cfg.SellPricePerLiter.Equals(mustMoney(t, "4.50")) &&
				cfg.MonthlyRent.Equals(mustMoney(t, "1234.56"))
		})).Return(nil)

		engine := newFinanceEngine(t, repo, "ADMIN")

		body := `{
			"effective_from": "2026-03-01",
			"sell_price_per_liter": "4,50",
			"cost_per_basket": "120,00",
			"monthly_rent": "1.234,56",
			"monthly_electricity": "300"
		}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/configs", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("staff cannot write configs", func(t *testing.T) {
		repo := new(MockConfigRepository)
		engine := newFinanceEngine(t, repo, "STAFF")

		req := httptest.NewRequest(http.MethodPut, "/api/v1/configs", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects a malformed amount", func(t *testing.T) {
		repo := new(MockConfigRepository)
		engine := newFinanceEngine(t, repo, "ADMIN")

		body := `{
			"effective_from": "2026-03-01",
			"sell_price_per_liter": "quatro reais",
			"cost_per_basket": "120",
			"monthly_rent": "900",
			"monthly_electricity": "300"
		}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/configs", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_AMOUNT")
	})
}

func TestFinanceHandlerGetEffectiveConfig(t *testing.T) {
	t.Run("staff can read the effective config", func(t *testing.T) {
		day, err := calendar.ParseDay("2026-03-02")
		require.NoError(t, err)

		cfg, err := finance.NewFinancialConfig(
			day,
			mustMoney(t, "4.00"),
			mustMoney(t, "120.00"),
			mustMoney(t, "900.00"),
			mustMoney(t, "300.00"),
			uuid.New(),
		)
		require.NoError(t, err)

		repo := new(MockConfigRepository)
		repo.On("FindEffectiveAt", mock.Anything, mock.Anything).Return(cfg, nil)

		engine := newFinanceEngine(t, repo, "STAFF")
		req := httptest.NewRequest(http.MethodGet, "/api/v1/configs/effective?date=2026-03-05", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				EffectiveFrom     string `json:"effective_from"`
				SellPricePerLiter string `json:"sell_price_per_liter"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "2026-03-02", resp.Data.EffectiveFrom)
	})

	t.Run("no config for the date maps to 422", func(t *testing.T) {
		repo := new(MockConfigRepository)
		repo.On("FindEffectiveAt", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		engine := newFinanceEngine(t, repo, "ADMIN")
		req := httptest.NewRequest(http.MethodGet, "/api/v1/configs/effective", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "NO_CONFIG_FOR_DATE")
	})
}
