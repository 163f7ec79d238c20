package finance

import (
	"context"

	"github.com/google/uuid"

	"github.com/acaipos/backend/internal/domain/shared/calendar"
)

// FinancialConfigRepository defines persistence operations for pricing configs
type FinancialConfigRepository interface {
	// FindByID finds a config by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*FinancialConfig, error)

	// FindByEffectiveFrom finds the config keyed by an exact effective date
	FindByEffectiveFrom(ctx context.Context, day calendar.Day) (*FinancialConfig, error)

	// FindEffectiveAt finds the config in effect for a single day
	// (greatest EffectiveFrom at or before it)
	FindEffectiveAt(ctx context.Context, day calendar.Day) (*FinancialConfig, error)

	// ListEffectiveThrough lists all configs with EffectiveFrom at or before
	// lastDay, ordered by ascending EffectiveFrom, ready for a ConfigResolver
	ListEffectiveThrough(ctx context.Context, lastDay calendar.Day) ([]FinancialConfig, error)

	// ListAll lists every config ordered by descending EffectiveFrom
	ListAll(ctx context.Context) ([]FinancialConfig, error)

	// Save creates or updates a config
	Save(ctx context.Context, config *FinancialConfig) error
}
