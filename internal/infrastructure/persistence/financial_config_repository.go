package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acaipos/backend/internal/domain/finance"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/infrastructure/persistence/models"
)

// GormFinancialConfigRepository implements FinancialConfigRepository using GORM
type GormFinancialConfigRepository struct {
	db *gorm.DB
}

// NewGormFinancialConfigRepository creates a new GormFinancialConfigRepository
func NewGormFinancialConfigRepository(db *gorm.DB) *GormFinancialConfigRepository {
	return &GormFinancialConfigRepository{db: db}
}

// FindByID finds a config by its ID
func (r *GormFinancialConfigRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FinancialConfig, error) {
	var model models.FinancialConfigModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEffectiveFrom finds the config keyed by an exact effective date
func (r *GormFinancialConfigRepository) FindByEffectiveFrom(ctx context.Context, day calendar.Day) (*finance.FinancialConfig, error) {
	var model models.FinancialConfigModel
	if err := r.db.WithContext(ctx).
		Where("effective_from = ?", day.Time()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindEffectiveAt finds the config in effect for a single day
func (r *GormFinancialConfigRepository) FindEffectiveAt(ctx context.Context, day calendar.Day) (*finance.FinancialConfig, error) {
	var model models.FinancialConfigModel
	if err := r.db.WithContext(ctx).
		Where("effective_from <= ?", day.Time()).
		Order("effective_from DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListEffectiveThrough lists configs with EffectiveFrom at or before lastDay,
// ascending, ready to feed a ConfigResolver
func (r *GormFinancialConfigRepository) ListEffectiveThrough(ctx context.Context, lastDay calendar.Day) ([]finance.FinancialConfig, error) {
	var configModels []models.FinancialConfigModel
	if err := r.db.WithContext(ctx).
		Where("effective_from <= ?", lastDay.Time()).
		Order("effective_from ASC").
		Find(&configModels).Error; err != nil {
		return nil, err
	}

	configs := make([]finance.FinancialConfig, len(configModels))
	for i, model := range configModels {
		configs[i] = *model.ToDomain()
	}
	return configs, nil
}

// ListAll lists every config ordered by descending EffectiveFrom
func (r *GormFinancialConfigRepository) ListAll(ctx context.Context) ([]finance.FinancialConfig, error) {
	var configModels []models.FinancialConfigModel
	if err := r.db.WithContext(ctx).
		Order("effective_from DESC").
		Find(&configModels).Error; err != nil {
		return nil, err
	}

	configs := make([]finance.FinancialConfig, len(configModels))
	for i, model := range configModels {
		configs[i] = *model.ToDomain()
	}
	return configs, nil
}

// Save creates or updates a config with a version check on updates
func (r *GormFinancialConfigRepository) Save(ctx context.Context, config *finance.FinancialConfig) error {
	model := models.FinancialConfigModelFromDomain(config)
	return saveVersioned(r.db.WithContext(ctx), model, config.Version)
}

var _ finance.FinancialConfigRepository = (*GormFinancialConfigRepository)(nil)
