package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/acaipos/backend/internal/domain/credit"
	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
	"github.com/acaipos/backend/internal/infrastructure/persistence/models"
)

// GormCreditCustomerRepository implements CustomerRepository using GORM
type GormCreditCustomerRepository struct {
	db *gorm.DB
}

// NewGormCreditCustomerRepository creates a new GormCreditCustomerRepository
func NewGormCreditCustomerRepository(db *gorm.DB) *GormCreditCustomerRepository {
	return &GormCreditCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCreditCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*credit.Customer, error) {
	var model models.CreditCustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListAll lists every customer ordered by name
func (r *GormCreditCustomerRepository) ListAll(ctx context.Context) ([]credit.Customer, error) {
	var customerModels []models.CreditCustomerModel
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&customerModels).Error; err != nil {
		return nil, err
	}
	return toDomainCreditCustomers(customerModels), nil
}

// ListWithBalance lists customers that still owe money, largest balance first
func (r *GormCreditCustomerRepository) ListWithBalance(ctx context.Context) ([]credit.Customer, error) {
	var customerModels []models.CreditCustomerModel
	if err := r.db.WithContext(ctx).
		Where("balance_owed > 0").
		Order("balance_owed DESC").
		Find(&customerModels).Error; err != nil {
		return nil, err
	}
	return toDomainCreditCustomers(customerModels), nil
}

// Save creates or updates a customer. Balance updates are version-checked so
// two concurrent payments cannot both apply against the same starting balance.
func (r *GormCreditCustomerRepository) Save(ctx context.Context, customer *credit.Customer) error {
	model := models.CreditCustomerModelFromDomain(customer)
	return saveVersioned(r.db.WithContext(ctx), model, customer.Version)
}

func toDomainCreditCustomers(customerModels []models.CreditCustomerModel) []credit.Customer {
	result := make([]credit.Customer, len(customerModels))
	for i, model := range customerModels {
		result[i] = *model.ToDomain()
	}
	return result
}

var _ credit.CustomerRepository = (*GormCreditCustomerRepository)(nil)

// GormCreditLedgerRepository implements LedgerRepository using GORM
type GormCreditLedgerRepository struct {
	db *gorm.DB
}

// NewGormCreditLedgerRepository creates a new GormCreditLedgerRepository
func NewGormCreditLedgerRepository(db *gorm.DB) *GormCreditLedgerRepository {
	return &GormCreditLedgerRepository{db: db}
}

// FindByCustomer lists a customer's ledger entries, newest first
func (r *GormCreditLedgerRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]credit.LedgerEntry, error) {
	var entryModels []models.CreditLedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date DESC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainLedgerEntries(entryModels), nil
}

// FindPaymentsInRange lists PAYMENT entries with date in [start, end)
func (r *GormCreditLedgerRepository) FindPaymentsInRange(ctx context.Context, start, end time.Time) ([]credit.LedgerEntry, error) {
	var entryModels []models.CreditLedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND date >= ? AND date < ?", credit.EntryKindPayment.String(), start, end).
		Order("date ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainLedgerEntries(entryModels), nil
}

// SumPurchasesByShift sums PURCHASE entries whose linked sale belongs to the shift
func (r *GormCreditLedgerRepository) SumPurchasesByShift(ctx context.Context, shiftID uuid.UUID) (valueobject.Money, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.CreditLedgerEntryModel{}).
		Joins("JOIN sales ON sales.id = credit_ledger_entries.sale_id").
		Where("credit_ledger_entries.kind = ? AND sales.shift_id = ?", credit.EntryKindPurchase.String(), shiftID).
		Select("SUM(credit_ledger_entries.amount)").
		Scan(&total).Error
	if err != nil {
		return valueobject.ZeroMoney(), err
	}
	if !total.Valid {
		return valueobject.ZeroMoney(), nil
	}
	return valueobject.NewMoney(total.Decimal), nil
}

// MarkPurchasesPaid marks all of a customer's unpaid PURCHASE entries paid
func (r *GormCreditLedgerRepository) MarkPurchasesPaid(ctx context.Context, customerID uuid.UUID, paidAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CreditLedgerEntryModel{}).
		Where("customer_id = ? AND kind = ? AND marked_paid = false", customerID, credit.EntryKindPurchase.String()).
		Updates(map[string]interface{}{
			"marked_paid": true,
			"paid_at":     paidAt,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Save creates or updates a ledger entry
func (r *GormCreditLedgerRepository) Save(ctx context.Context, entry *credit.LedgerEntry) error {
	model := models.CreditLedgerEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

func toDomainLedgerEntries(entryModels []models.CreditLedgerEntryModel) []credit.LedgerEntry {
	result := make([]credit.LedgerEntry, len(entryModels))
	for i, model := range entryModels {
		result[i] = *model.ToDomain()
	}
	return result
}

var _ credit.LedgerRepository = (*GormCreditLedgerRepository)(nil)
