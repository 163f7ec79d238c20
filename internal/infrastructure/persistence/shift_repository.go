package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
	"github.com/acaipos/backend/internal/domain/shift"
	"github.com/acaipos/backend/internal/infrastructure/persistence/models"
)

// GormShiftRepository implements ShiftRepository using GORM
type GormShiftRepository struct {
	db *gorm.DB
}

// NewGormShiftRepository creates a new GormShiftRepository
func NewGormShiftRepository(db *gorm.DB) *GormShiftRepository {
	return &GormShiftRepository{db: db}
}

// FindByID finds a shift by its ID
func (r *GormShiftRepository) FindByID(ctx context.Context, id uuid.UUID) (*shift.Shift, error) {
	var model models.ShiftModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpenByUser finds the user's currently open shift, nil if none
func (r *GormShiftRepository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*shift.Shift, error) {
	var model models.ShiftModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND closed_at IS NULL", userID).
		Order("opened_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a shift. Closing is version-checked so two racing
// closings cannot both transition the same open shift.
func (r *GormShiftRepository) Save(ctx context.Context, s *shift.Shift) error {
	model := models.ShiftModelFromDomain(s)
	return saveVersioned(r.db.WithContext(ctx), model, s.Version)
}

var _ shift.ShiftRepository = (*GormShiftRepository)(nil)

// GormProductionRepository implements ProductionRepository using GORM
type GormProductionRepository struct {
	db *gorm.DB
}

// NewGormProductionRepository creates a new GormProductionRepository
func NewGormProductionRepository(db *gorm.DB) *GormProductionRepository {
	return &GormProductionRepository{db: db}
}

// FindByShift lists the production entries of a shift, oldest first
func (r *GormProductionRepository) FindByShift(ctx context.Context, shiftID uuid.UUID) ([]shift.ProductionEntry, error) {
	var entryModels []models.ProductionEntryModel
	if err := r.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Order("date ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainProductionEntries(entryModels), nil
}

// FindInRange lists production entries with date in [start, end)
func (r *GormProductionRepository) FindInRange(ctx context.Context, start, end time.Time) ([]shift.ProductionEntry, error) {
	var entryModels []models.ProductionEntryModel
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start, end).
		Order("date ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainProductionEntries(entryModels), nil
}

// SumLitersByShift sums the liters produced during a shift
func (r *GormProductionRepository) SumLitersByShift(ctx context.Context, shiftID uuid.UUID) (valueobject.Liters, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.ProductionEntryModel{}).
		Where("shift_id = ?", shiftID).
		Select("SUM(liters_produced)").
		Scan(&total).Error
	if err != nil {
		return valueobject.ZeroLiters(), err
	}
	if !total.Valid {
		return valueobject.ZeroLiters(), nil
	}
	return valueobject.NewLiters(total.Decimal), nil
}

// Save creates a production entry
func (r *GormProductionRepository) Save(ctx context.Context, entry *shift.ProductionEntry) error {
	model := models.ProductionEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

func toDomainProductionEntries(entryModels []models.ProductionEntryModel) []shift.ProductionEntry {
	result := make([]shift.ProductionEntry, len(entryModels))
	for i, model := range entryModels {
		result[i] = *model.ToDomain()
	}
	return result
}

var _ shift.ProductionRepository = (*GormProductionRepository)(nil)

// GormClosingRepository implements ClosingRepository using GORM
type GormClosingRepository struct {
	db *gorm.DB
}

// NewGormClosingRepository creates a new GormClosingRepository
func NewGormClosingRepository(db *gorm.DB) *GormClosingRepository {
	return &GormClosingRepository{db: db}
}

// FindByID finds a closing by its ID
func (r *GormClosingRepository) FindByID(ctx context.Context, id uuid.UUID) (*shift.DailyClosing, error) {
	var model models.DailyClosingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByShift finds the closing written for a shift, nil if none
func (r *GormClosingRepository) FindByShift(ctx context.Context, shiftID uuid.UUID) (*shift.DailyClosing, error) {
	var model models.DailyClosingModel
	if err := r.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindInRange lists closings with date in [start, end), newest first
func (r *GormClosingRepository) FindInRange(ctx context.Context, start, end time.Time) ([]shift.DailyClosing, error) {
	var closingModels []models.DailyClosingModel
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start, end).
		Order("date DESC").
		Find(&closingModels).Error; err != nil {
		return nil, err
	}

	closings := make([]shift.DailyClosing, len(closingModels))
	for i, model := range closingModels {
		closings[i] = *model.ToDomain()
	}
	return closings, nil
}

// Save creates a closing record
func (r *GormClosingRepository) Save(ctx context.Context, closing *shift.DailyClosing) error {
	model := models.DailyClosingModelFromDomain(closing)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ shift.ClosingRepository = (*GormClosingRepository)(nil)
