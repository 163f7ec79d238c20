package finance

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/domain/finance"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
)

// ConfigService manages the versioned pricing configuration
type ConfigService struct {
	configRepo finance.FinancialConfigRepository
	logger     *zap.Logger
}

// NewConfigService creates a new config service
func NewConfigService(configRepo finance.FinancialConfigRepository, logger *zap.Logger) *ConfigService {
	return &ConfigService{
		configRepo: configRepo,
		logger:     logger,
	}
}

// UpsertConfig creates the config for an effective date, or overwrites its
// rates when that date already has one. History for other dates is never
// touched, so past reports keep their pricing.
func (s *ConfigService) UpsertConfig(ctx context.Context, input UpsertConfigInput) (*ConfigDTO, error) {
	existing, err := s.configRepo.FindByEffectiveFrom(ctx, input.EffectiveFrom)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to look up config", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save config")
	}

	var cfg *finance.FinancialConfig
	if existing != nil {
		if err := existing.UpdateRates(input.SellPricePerLiter, input.CostPerBasket, input.MonthlyRent, input.MonthlyElectricity); err != nil {
			return nil, err
		}
		cfg = existing
	} else {
		cfg, err = finance.NewFinancialConfig(
			input.EffectiveFrom,
			input.SellPricePerLiter,
			input.CostPerBasket,
			input.MonthlyRent,
			input.MonthlyElectricity,
			input.AdminID,
		)
		if err != nil {
			return nil, err
		}
	}

	if err := s.configRepo.Save(ctx, cfg); err != nil {
		s.logger.Error("Failed to save config", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save config")
	}

	s.logger.Info("Pricing config saved",
		zap.String("effective_from", cfg.EffectiveFrom.Key()),
		zap.String("sell_price_per_liter", cfg.SellPricePerLiter.String()),
		zap.Bool("updated", existing != nil),
	)
	return toConfigDTO(cfg), nil
}

// ListConfigs returns every pricing config, newest effective date first
func (s *ConfigService) ListConfigs(ctx context.Context) ([]ConfigDTO, error) {
	configs, err := s.configRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list configs", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list configs")
	}

	out := make([]ConfigDTO, 0, len(configs))
	for i := range configs {
		out = append(out, *toConfigDTO(&configs[i]))
	}
	return out, nil
}

// GetEffectiveConfig returns the config in effect for a day, or
// shared.ErrNoConfigForDate when the day precedes every config
func (s *ConfigService) GetEffectiveConfig(ctx context.Context, day calendar.Day) (*ConfigDTO, error) {
	cfg, err := s.configRepo.FindEffectiveAt(ctx, day)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNoConfigForDate
		}
		s.logger.Error("Failed to resolve config", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve config")
	}
	return toConfigDTO(cfg), nil
}

func toConfigDTO(c *finance.FinancialConfig) *ConfigDTO {
	return &ConfigDTO{
		ID:                 c.GetID(),
		EffectiveFrom:      c.EffectiveFrom.Key(),
		SellPricePerLiter:  c.SellPricePerLiter,
		CostPerBasket:      c.CostPerBasket,
		MonthlyRent:        c.MonthlyRent,
		MonthlyElectricity: c.MonthlyElectricity,
		DailyFixedCost:     c.DailyFixedCost(),
		CreatedBy:          c.CreatedBy,
		CreatedAt:          c.CreatedAt,
	}
}
