package dto

import (
	"strings"

	"github.com/acaipos/backend/internal/domain/shared"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/domain/shared/valueobject"
)

// normalizeDecimal accepts Brazilian keypad input: "12,50" means "12.50".
// A value with both separators ("1.234,56") drops the thousands dots first.
func normalizeDecimal(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	}
	return raw
}

// ParseMoney parses a monetary amount from request input
func ParseMoney(raw string) (valueobject.Money, error) {
	m, err := valueobject.NewMoneyFromString(normalizeDecimal(raw))
	if err != nil {
		return valueobject.Money{}, shared.NewDomainError("INVALID_AMOUNT", "Amount is not a valid number")
	}
	return m, nil
}

// ParseLiters parses a liters quantity from request input
func ParseLiters(raw string) (valueobject.Liters, error) {
	l, err := valueobject.NewLitersFromString(normalizeDecimal(raw))
	if err != nil {
		return valueobject.Liters{}, shared.NewDomainError("INVALID_LITERS", "Liters is not a valid number")
	}
	return l, nil
}

// ParseDay parses a "YYYY-MM-DD" calendar day from request input
func ParseDay(raw string) (calendar.Day, error) {
	day, err := calendar.ParseDay(strings.TrimSpace(raw))
	if err != nil {
		return calendar.Day{}, shared.NewDomainError("INVALID_DATE", "Date must be YYYY-MM-DD")
	}
	return day, nil
}
