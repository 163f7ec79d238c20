package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// DatedAmount is a raw monetary row carrying only what day-bucketing needs.
type DatedAmount struct {
	At     time.Time
	Amount valueobject.Money
}

// DatedCount is a raw integer-count row (baskets produced).
type DatedCount struct {
	At    time.Time
	Count int
}

// DayAmounts maps "YYYY-MM-DD" day keys to exact decimal sums. Days with
// no rows are absent; Get defaults them to zero.
type DayAmounts map[string]valueobject.Money

// Get returns the amount for a day key, zero when the day has no entry.
func (m DayAmounts) Get(key string) valueobject.Money {
	if v, ok := m[key]; ok {
		return v
	}
	return valueobject.ZeroMoney()
}

// Total sums every day bucket into one exact decimal amount.
func (m DayAmounts) Total() valueobject.Money {
	total := valueobject.ZeroMoney()
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}

// SumByDay buckets rows by UTC calendar day, summing amounts per day.
func SumByDay(rows []DatedAmount) DayAmounts {
	out := make(DayAmounts, len(rows))
	for _, row := range rows {
		key := calendar.KeyOf(row.At)
		out[key] = out.Get(key).Add(row.Amount)
	}
	return out
}

// SumCountsByDay buckets integer-count rows by UTC calendar day.
func SumCountsByDay(rows []DatedCount) map[string]int {
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[calendar.KeyOf(row.At)] += row.Count
	}
	return out
}

// InputCostsByDay computes each day's variable input cost: baskets produced
// that day times the cost per basket of the config then in effect. Days
// before the earliest config cost zero and are reported in missing so the
// caller can surface the gap instead of hiding it. Days must be ascending.
func InputCostsByDay(days []calendar.Day, resolver *ConfigResolver, basketsByDay map[string]int) (DayAmounts, []string) {
	costs := make(DayAmounts, len(days))
	var missing []string
	for _, day := range days {
		key := day.Key()
		cfg := resolver.ConfigFor(day)
		if cfg == nil {
			costs[key] = valueobject.ZeroMoney()
			missing = append(missing, key)
			continue
		}
		baskets := basketsByDay[key]
		costs[key] = cfg.CostPerBasket.Multiply(decimal.NewFromInt(int64(baskets)))
	}
	return costs, missing
}

// FixedCostsByDay allocates each day's share of the monthly rent and
// electricity pool using the config then in effect. Days before the
// earliest config get zero. Days must be ascending.
func FixedCostsByDay(days []calendar.Day, resolver *ConfigResolver) (DayAmounts, []string) {
	fixed := make(DayAmounts, len(days))
	var missing []string
	for _, day := range days {
		key := day.Key()
		cfg := resolver.ConfigFor(day)
		if cfg == nil {
			fixed[key] = valueobject.ZeroMoney()
			missing = append(missing, key)
			continue
		}
		fixed[key] = cfg.DailyFixedCost()
	}
	return fixed, missing
}

// Profit computes period profit: inflow minus approved expenses minus
// variable input cost minus allocated fixed cost. Inflow is non-credit
// sales plus credit payments received; open credit is a receivable, not
// cash, and never counts here.
func Profit(inflow, expenses, inputCost, fixedCost valueobject.Money) valueobject.Money {
	return inflow.Subtract(expenses).Subtract(inputCost).Subtract(fixedCost)
}
