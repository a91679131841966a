package format

import (
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount decimal.Decimal) string {
	formatted := formatPositiveCurrency(amount.Abs())
	if amount.IsNegative() && formatted != "0.00" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// WholeCurrency returns a currency string rounded to whole dollars (e.g., "$500,000").
func WholeCurrency(amount decimal.Decimal) string {
	formatted := Currency(amount.Round(0))
	return strings.TrimSuffix(formatted, ".00")
}

// Percent renders a percentage value with two decimals (e.g., "3.10%").
func Percent(percentage decimal.Decimal) string {
	return percentage.StringFixed(constants.CurrencyPlaces) + "%"
}

// RateAsPercent renders a fractional rate as a percentage (0.031 -> "3.10%").
func RateAsPercent(rate decimal.Decimal) string {
	return Percent(mathutil.FractionToPercent(rate))
}

func formatPositiveCurrency(value decimal.Decimal) string {
	formatted := value.StringFixed(constants.CurrencyPlaces)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
