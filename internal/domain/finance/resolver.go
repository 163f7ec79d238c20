package finance

import (
	"github.com/shopspring/decimal"

	"github.com/acaipos/backend/internal/domain/shared/calendar"
)

var decimalFixedCostDivisor = decimal.NewFromInt(FixedCostDivisor)

// ConfigResolver answers "which config was in effect on this day" for a
// sequence of days presented in non-decreasing order. It keeps a cursor
// into the ascending config list and only ever advances it, so resolving
// a whole report period is a single merge sweep rather than a lookup per
// day. Callers that need random-access lookups should sort their days
// first or use a fresh resolver.
type ConfigResolver struct {
	configs []FinancialConfig
	idx     int
}

// NewConfigResolver creates a resolver over configs ordered by ascending
// EffectiveFrom, as repositories return them.
func NewConfigResolver(configs []FinancialConfig) *ConfigResolver {
	return &ConfigResolver{configs: configs}
}

// ConfigFor returns the config with the greatest EffectiveFrom at or
// before day, or nil if the day precedes the earliest config (or no
// configs exist at all).
func (r *ConfigResolver) ConfigFor(day calendar.Day) *FinancialConfig {
	if len(r.configs) == 0 || r.configs[0].EffectiveFrom.After(day) {
		return nil
	}
	for r.idx+1 < len(r.configs) && !r.configs[r.idx+1].EffectiveFrom.After(day) {
		r.idx++
	}
	return &r.configs[r.idx]
}
