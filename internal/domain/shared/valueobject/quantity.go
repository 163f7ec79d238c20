package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Liters is a value object representing a volume of product in liters.
// Production yield, leftover at close, and per-sale volume all use it.
// It is immutable - all operations return new Liters instances.
type Liters struct {
	value decimal.Decimal
}

// NewLiters creates a new Liters value
func NewLiters(value decimal.Decimal) Liters {
	return Liters{value: value}
}

// NewLitersFromString creates Liters from a string representation,
// accepting a comma decimal separator.
func NewLitersFromString(value string) (Liters, error) {
	normalized := strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
	if normalized == "" {
		return Liters{}, errors.New("liters cannot be empty")
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return Liters{}, fmt.Errorf("invalid liters string: %w", err)
	}
	return Liters{value: d}, nil
}

// ZeroLiters returns a zero-value Liters
func ZeroLiters() Liters {
	return Liters{value: decimal.Zero}
}

// Value returns the decimal value
func (l Liters) Decimal() decimal.Decimal {
	return l.value
}

// IsZero returns true if the volume is exactly zero
func (l Liters) IsZero() bool {
	return l.value.IsZero()
}

// IsNegative returns true if the volume is negative
func (l Liters) IsNegative() bool {
	return l.value.IsNegative()
}

// Add returns a new Liters with the sum of both volumes
func (l Liters) Add(other Liters) Liters {
	return Liters{value: l.value.Add(other.value)}
}

// Subtract returns a new Liters with the difference
func (l Liters) Subtract(other Liters) Liters {
	return Liters{value: l.value.Sub(other.value)}
}

// PriceAt returns the Money value of this volume at the given price per liter
func (l Liters) PriceAt(pricePerLiter Money) Money {
	return pricePerLiter.Multiply(l.value)
}

// Equals returns true if both volumes are exactly equal
func (l Liters) Equals(other Liters) bool {
	return l.value.Equal(other.value)
}

// String returns the volume formatted with two decimal places
func (l Liters) String() string {
	return l.value.StringFixed(2)
}

// MarshalJSON implements json.Marshaler
func (l Liters) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (l *Liters) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	l.value = d
	return nil
}

// Value implements driver.Valuer for database storage
func (l Liters) Value() (driver.Value, error) {
	return l.value.Value()
}

// Scan implements sql.Scanner for database retrieval
func (l *Liters) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	l.value = d
	return nil
}
