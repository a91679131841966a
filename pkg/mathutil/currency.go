// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(constants.PercentageMultiplier)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Halves round away from zero.
func Round(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.CurrencyPlaces)
}

// IsZero checks if a value is zero once rounded to currency
func IsZero(val decimal.Decimal) bool {
	return Round(val).IsZero()
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance decimal.Decimal) bool {
	return val1.Sub(val2).Abs().LessThanOrEqual(tolerance)
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return value.Mul(hundred).Div(total)
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage decimal.Decimal) decimal.Decimal {
	return value.Mul(percentage).Div(hundred)
}

// PercentToFraction converts a percentage such as 5.25 into 0.0525
func PercentToFraction(percentage decimal.Decimal) decimal.Decimal {
	return percentage.Div(hundred)
}

// FractionToPercent converts a fraction such as 0.0310 into 3.10
func FractionToPercent(fraction decimal.Decimal) decimal.Decimal {
	return fraction.Mul(hundred)
}
