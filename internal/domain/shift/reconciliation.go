package shift

import (
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// Reconciliation is the cash-count computed when a shift closes: what the
// drawer should hold given production versus what was actually registered.
type Reconciliation struct {
	LitersProduced    valueobject.Liters
	LeftoverLiters    valueobject.Liters
	PricePerLiter     valueobject.Money
	NonCreditSales    valueobject.Money
	LinkedCreditSales valueobject.Money
	ManualCreditSales valueobject.Money
	ExpectedAmount    valueobject.Money
	ActualAmount      valueobject.Money
	Difference        valueobject.Money
}

// Reconcile computes the closing figures. Expected revenue is the liters
// sold (produced minus leftover) at the day's price; actual is everything
// registered during the shift, fiado purchases included. The difference is
// an exact decimal, so an honest drawer comes out at precisely zero.
func Reconcile(litersProduced, leftoverLiters valueobject.Liters, pricePerLiter, nonCreditSales, linkedCreditSales, manualCreditSales valueobject.Money) Reconciliation {
	litersSold := litersProduced.Subtract(leftoverLiters)
	expected := litersSold.PriceAt(pricePerLiter)
	actual := nonCreditSales.Add(linkedCreditSales).Add(manualCreditSales)

	return Reconciliation{
		LitersProduced:    litersProduced,
		LeftoverLiters:    leftoverLiters,
		PricePerLiter:     pricePerLiter,
		NonCreditSales:    nonCreditSales,
		LinkedCreditSales: linkedCreditSales,
		ManualCreditSales: manualCreditSales,
		ExpectedAmount:    expected,
		ActualAmount:      actual,
		Difference:        actual.Subtract(expected),
	}
}

// Balanced reports whether the drawer matched expectations exactly.
func (r Reconciliation) Balanced() bool {
	return r.Difference.IsZero()
}
