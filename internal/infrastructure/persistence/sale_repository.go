package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/acaipos/backend/internal/domain/sales"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
	"github.com/acaipos/backend/internal/infrastructure/persistence/models"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByShift lists all sales recorded during a shift, newest first
func (r *GormSaleRepository) FindByShift(ctx context.Context, shiftID uuid.UUID) ([]sales.Sale, error) {
	var saleModels []models.SaleModel
	if err := r.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Order("date DESC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}
	return toDomainSales(saleModels), nil
}

// FindNonCreditInRange lists non-credit sales with date in [start, end)
func (r *GormSaleRepository) FindNonCreditInRange(ctx context.Context, start, end time.Time) ([]sales.Sale, error) {
	var saleModels []models.SaleModel
	if err := r.db.WithContext(ctx).
		Where("payment_type <> ? AND date >= ? AND date < ?", sales.PaymentTypeCredit.String(), start, end).
		Order("date ASC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}
	return toDomainSales(saleModels), nil
}

// SumNonCreditByShift sums the amounts of a shift's non-credit sales
func (r *GormSaleRepository) SumNonCreditByShift(ctx context.Context, shiftID uuid.UUID) (valueobject.Money, error) {
	return r.sumAmounts(ctx, r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("shift_id = ? AND payment_type <> ?", shiftID, sales.PaymentTypeCredit.String()))
}

// SumManualCreditByShift sums credit sales with no linked customer
func (r *GormSaleRepository) SumManualCreditByShift(ctx context.Context, shiftID uuid.UUID) (valueobject.Money, error) {
	return r.sumAmounts(ctx, r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("shift_id = ? AND payment_type = ? AND credit_customer_id IS NULL",
			shiftID, sales.PaymentTypeCredit.String()))
}

func (r *GormSaleRepository) sumAmounts(ctx context.Context, query *gorm.DB) (valueobject.Money, error) {
	var total decimal.NullDecimal
	if err := query.Select("SUM(amount)").Scan(&total).Error; err != nil {
		return valueobject.ZeroMoney(), err
	}
	if !total.Valid {
		return valueobject.ZeroMoney(), nil
	}
	return valueobject.NewMoney(total.Decimal), nil
}

// Save creates or updates a sale
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	model := models.SaleModelFromDomain(sale)
	return r.db.WithContext(ctx).Save(model).Error
}

func toDomainSales(saleModels []models.SaleModel) []sales.Sale {
	result := make([]sales.Sale, len(saleModels))
	for i, model := range saleModels {
		result[i] = *model.ToDomain()
	}
	return result
}

var _ sales.SaleRepository = (*GormSaleRepository)(nil)
