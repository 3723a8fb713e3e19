// Package types provides value types shared by the domain packages.
package types

import (
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept in aggregated amounts.
// Unit prices are whole numbers today; sums keep two places of headroom.
const MoneyScale int32 = 2

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// MoneyFromInt converts a whole-unit amount to Money.
func MoneyFromInt(v int64) Money {
	return decimal.NewFromInt(v)
}

// NewMoneyFromString parses a decimal string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	return decimal.RequireFromString(s)
}

// LineTotal returns quantity × unit amount without intermediate rounding.
func LineTotal(quantity, unitAmount int) Money {
	return decimal.NewFromInt(int64(quantity)).Mul(decimal.NewFromInt(int64(unitAmount)))
}

// Sum adds all values. An empty input yields zero.
func Sum(values ...Money) Money {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// FormatMoney renders m with MoneyScale fractional digits, e.g. "250.00".
func FormatMoney(m Money) string {
	return m.StringFixed(MoneyScale)
}
